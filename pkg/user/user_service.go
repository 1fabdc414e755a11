package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils/mailing"
	"foodgram-backend/pkg/jwt"
	"foodgram-backend/pkg/recipe"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, actor domain.Actor) (domain.UserResponse, error)
		GetUser(ctx context.Context, id string, actor domain.Actor) (domain.UserResponse, error)
		GetUsers(ctx context.Context, page, limit int, actor domain.Actor) ([]domain.UserResponse, int64, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, actor domain.Actor) (domain.UserResponse, error)
		SetPassword(ctx context.Context, req domain.SetPasswordRequest, actor domain.Actor) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error

		Subscribe(ctx context.Context, authorID string, recipesLimit int, actor domain.Actor) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, authorID string, actor domain.Actor) error
		GetSubscriptions(ctx context.Context, page, limit, recipesLimit int, actor domain.Actor) ([]domain.SubscriptionResponse, int64, error)
	}

	userService struct {
		userRepository   UserRepository
		recipeRepository recipe.RecipeRepository
		jwtService       jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, recipeRepository recipe.RecipeRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository:   userRepository,
		recipeRepository: recipeRepository,
		jwtService:       jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.UserResponse{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); err == nil {
		return domain.UserResponse{}, domain.ErrUsernameAlreadyUsed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		ID:        uuid.New(),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hashed),
		Role:      domain.RoleUser,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		// The pre-checks above can race; the unique indexes decide.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrEmailAlreadyExists
		}
		return domain.UserResponse{}, err
	}

	return userResponse(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		Token: token,
		User:  userResponse(user, false),
	}, nil
}

func (s *userService) Me(ctx context.Context, actor domain.Actor) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, actor.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return userResponse(user, false), nil
}

func (s *userService) GetUser(ctx context.Context, id string, actor domain.Actor) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	isSubscribed, err := s.subscriptionFlag(ctx, actor, user.ID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return userResponse(user, isSubscribed), nil
}

func (s *userService) GetUsers(ctx context.Context, page, limit int, actor domain.Actor) ([]domain.UserResponse, int64, error) {
	users, count, err := s.userRepository.GetUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.UserResponse, 0, len(users))
	for _, user := range users {
		isSubscribed, err := s.subscriptionFlag(ctx, actor, user.ID)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, userResponse(user, isSubscribed))
	}
	return result, count, nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, actor domain.Actor) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, actor.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if _, err := s.userRepository.GetUserByUsername(ctx, *req.Username); err == nil {
			return domain.UserResponse{}, domain.ErrUsernameAlreadyUsed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, err
		}
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrUsernameAlreadyUsed
		}
		return domain.UserResponse{}, err
	}
	return userResponse(user, false), nil
}

func (s *userService) SetPassword(ctx context.Context, req domain.SetPasswordRequest, actor domain.Actor) error {
	user, err := s.userRepository.GetUserByID(ctx, actor.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrPasswordIncorrect
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}

// ForgotPassword issues a short-lived reset token and mails a reset link.
// An unknown email is reported to the caller the same as a known one would
// be, so the endpoint cannot be used to probe registered addresses.
func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenResetPassword(user.ID.String(), 15*time.Minute)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", mailing.LoadMailConfig().AppURL, token)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Click <a href=%q>here</a> to reset your password. The link expires in 15 minutes.</p>",
		user.FirstName, resetLink,
	)
	return mailing.SendMail(user.Email, "Reset your password", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	userID, err := s.jwtService.ValidateTokenResetPassword(req.Token)
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) Subscribe(ctx context.Context, authorID string, recipesLimit int, actor domain.Actor) (domain.SubscriptionResponse, error) {
	parsedAuthorID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.SubscriptionResponse{}, domain.ErrParseUUID
	}
	if parsedAuthorID == actor.ID {
		return domain.SubscriptionResponse{}, domain.ErrSelfSubscription
	}

	author, err := s.userRepository.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscriptionResponse{}, domain.ErrUserNotFound
		}
		return domain.SubscriptionResponse{}, err
	}

	exists, err := s.userRepository.IsSubscribed(ctx, actor.ID.String(), authorID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if exists {
		return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
	}

	subscription := &entities.Subscription{
		ID:       uuid.New(),
		UserID:   actor.ID,
		AuthorID: parsedAuthorID,
	}
	if err := s.userRepository.CreateSubscription(ctx, subscription); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SubscriptionResponse{}, domain.ErrAlreadySubscribed
		}
		return domain.SubscriptionResponse{}, err
	}

	return s.subscriptionResponse(ctx, author, recipesLimit)
}

func (s *userService) Unsubscribe(ctx context.Context, authorID string, actor domain.Actor) error {
	if _, err := s.userRepository.GetUserByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	deleted, err := s.userRepository.DeleteSubscription(ctx, actor.ID.String(), authorID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

func (s *userService) GetSubscriptions(ctx context.Context, page, limit, recipesLimit int, actor domain.Actor) ([]domain.SubscriptionResponse, int64, error) {
	authors, count, err := s.userRepository.GetSubscribedAuthors(ctx, actor.ID.String(), page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.SubscriptionResponse, 0, len(authors))
	for _, author := range authors {
		res, err := s.subscriptionResponse(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, res)
	}
	return result, count, nil
}

func (s *userService) subscriptionFlag(ctx context.Context, actor domain.Actor, authorID uuid.UUID) (bool, error) {
	if actor.IsAnonymous() || actor.ID == authorID {
		return false, nil
	}
	return s.userRepository.IsSubscribed(ctx, actor.ID.String(), authorID.String())
}

func (s *userService) subscriptionResponse(ctx context.Context, author *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	recipes, err := s.recipeRepository.GetRecipesByAuthor(ctx, author.ID.String(), recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	count, err := s.recipeRepository.CountRecipesByAuthor(ctx, author.ID.String())
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	shorts := make([]domain.ShortRecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		shorts = append(shorts, domain.ShortRecipeResponse{
			ID:          r.ID.String(),
			Name:        r.Name,
			Image:       r.ImageURL,
			CookingTime: r.CookingTime,
		})
	}

	return domain.SubscriptionResponse{
		UserResponse: userResponse(author, true),
		Recipes:      shorts,
		RecipesCount: count,
	}, nil
}

func userResponse(user *entities.User, isSubscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}
