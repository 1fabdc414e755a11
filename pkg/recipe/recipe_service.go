package recipe

import (
	"context"
	"errors"
	"time"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/catalog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, actor domain.Actor) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, actor domain.Actor) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, id string, actor domain.Actor) error
		GetRecipe(ctx context.Context, id string, actor domain.Actor) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, params domain.RecipeListParams, actor domain.Actor) ([]domain.RecipeResponse, int64, error)

		FavoriteRecipe(ctx context.Context, recipeID string, actor domain.Actor) (domain.ShortRecipeResponse, error)
		UnfavoriteRecipe(ctx context.Context, recipeID string, actor domain.Actor) error
		AddToCart(ctx context.Context, recipeID string, actor domain.Actor) (domain.ShortRecipeResponse, error)
		RemoveFromCart(ctx context.Context, recipeID string, actor domain.Actor) error

		DownloadShoppingCart(ctx context.Context, actor domain.Actor) (domain.ShoppingListFile, error)
	}

	recipeService struct {
		recipeRepository  RecipeRepository
		catalogRepository catalog.CatalogRepository
		s3                storage.AwsS3
	}
)

func NewRecipeService(recipeRepository RecipeRepository, catalogRepository catalog.CatalogRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository:  recipeRepository,
		catalogRepository: catalogRepository,
		s3:                s3,
	}
}

// validateIngredientList rejects on the first duplicate ingredient
// reference, naming the colliding id, and enforces the amount floor.
func validateIngredientList(items []domain.IngredientAmountRequest) error {
	if len(items) == 0 {
		return domain.ErrNoIngredients
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			return domain.ErrParseUUID
		}
		if item.Amount < 1 {
			return domain.ErrInvalidAmount
		}
		if _, ok := seen[id]; ok {
			return domain.NewDuplicateIngredientError(id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (s *recipeService) resolveTags(ctx context.Context, ids []string) ([]*entities.Tag, error) {
	if len(ids) == 0 {
		return nil, domain.ErrNoTags
	}

	tags, err := s.catalogRepository.GetTagsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, domain.ErrTagNotFound
	}
	return tags, nil
}

func (s *recipeService) resolveIngredients(ctx context.Context, items []domain.IngredientAmountRequest) ([]*entities.IngredientInRecipe, error) {
	if err := validateIngredientList(items); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	found, err := s.catalogRepository.GetIngredientsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(items) {
		return nil, domain.ErrIngredientNotFound
	}

	joins := make([]*entities.IngredientInRecipe, 0, len(items))
	for _, item := range items {
		joins = append(joins, &entities.IngredientInRecipe{
			IngredientID: uuid.MustParse(item.ID),
			Amount:       item.Amount,
		})
	}
	return joins, nil
}

func (s *recipeService) uploadImage(ctx context.Context, payload string) (string, error) {
	objectKey, err := s.s3.UploadBase64(ctx, uuid.New().String(), "recipes", payload, storage.AllowImage...)
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, actor domain.Actor) (domain.RecipeResponse, error) {
	if req.CookingTime < 1 {
		return domain.RecipeResponse{}, domain.ErrInvalidCookingTime
	}

	tags, err := s.resolveTags(ctx, req.Tags)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	ingredients, err := s.resolveIngredients(ctx, req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	imageURL, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		ID:          uuid.New(),
		UserID:      actor.ID,
		Name:        req.Name,
		Text:        req.Text,
		ImageURL:    imageURL,
		CookingTime: req.CookingTime,
		Tags:        tags,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe, ingredients); err != nil {
		return domain.RecipeResponse{}, err
	}

	// A write returns the denormalized read representation, not an echo
	// of the input.
	return s.GetRecipe(ctx, recipe.ID.String(), actor)
}

func (s *recipeService) UpdateRecipe(ctx context.Context, id string, req domain.UpdateRecipeRequest, actor domain.Actor) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	if !actor.CanManage(recipe.UserID) {
		return domain.RecipeResponse{}, domain.ErrUserNotAllowed
	}

	if req.Name != nil {
		recipe.Name = *req.Name
	}
	if req.Text != nil {
		recipe.Text = *req.Text
	}
	if req.CookingTime != nil {
		if *req.CookingTime < 1 {
			return domain.RecipeResponse{}, domain.ErrInvalidCookingTime
		}
		recipe.CookingTime = *req.CookingTime
	}
	if req.Image != nil {
		oldKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL)
		imageURL, err := s.uploadImage(ctx, *req.Image)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.ImageURL = imageURL
		if oldKey != "" {
			_ = s.s3.DeleteFile(ctx, oldKey)
		}
	}

	var tags []*entities.Tag
	if req.Tags != nil {
		tags, err = s.resolveTags(ctx, req.Tags)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	// A nil ingredient list leaves existing joins untouched; a non-nil
	// list replaces them wholesale.
	var ingredients []*entities.IngredientInRecipe
	if req.Ingredients != nil {
		ingredients, err = s.resolveIngredients(ctx, req.Ingredients)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe, ingredients, tags); err != nil {
		return domain.RecipeResponse{}, err
	}

	return s.GetRecipe(ctx, id, actor)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id string, actor domain.Actor) error {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	if !actor.CanManage(recipe.UserID) {
		return domain.ErrUserNotAllowed
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, id); err != nil {
		return err
	}

	if objectKey := s.s3.GetObjectKeyFromLink(recipe.ImageURL); objectKey != "" {
		_ = s.s3.DeleteFile(ctx, objectKey)
	}
	return nil
}

func (s *recipeService) GetRecipe(ctx context.Context, id string, actor domain.Actor) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	return s.toRecipeResponse(ctx, recipe, actor)
}

func (s *recipeService) GetRecipes(ctx context.Context, params domain.RecipeListParams, actor domain.Actor) ([]domain.RecipeResponse, int64, error) {
	userID := ""
	if !actor.IsAnonymous() {
		userID = actor.ID.String()
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, params, userID)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		res, err := s.toRecipeResponse(ctx, recipe, actor)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, res)
	}
	return result, count, nil
}

func (s *recipeService) toRecipeResponse(ctx context.Context, recipe *entities.Recipe, actor domain.Actor) (domain.RecipeResponse, error) {
	isFavorited := false
	isInCart := false
	isSubscribed := false

	if !actor.IsAnonymous() {
		var err error
		userID := actor.ID.String()
		recipeID := recipe.ID.String()

		if isFavorited, err = s.recipeRepository.IsFavorited(ctx, userID, recipeID); err != nil {
			return domain.RecipeResponse{}, err
		}
		if isInCart, err = s.recipeRepository.IsInCart(ctx, userID, recipeID); err != nil {
			return domain.RecipeResponse{}, err
		}
		if isSubscribed, err = s.recipeRepository.IsSubscribed(ctx, userID, recipe.UserID.String()); err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	tags := make([]domain.TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, domain.TagResponse{
			ID:    tag.ID.String(),
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}

	ingredients := make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, join := range recipe.Ingredients {
		ingredient := domain.RecipeIngredientResponse{
			ID:     join.IngredientID.String(),
			Amount: join.Amount,
		}
		if join.Ingredient != nil {
			ingredient.Name = join.Ingredient.Name
			ingredient.MeasurementUnit = join.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, ingredient)
	}

	author := domain.UserResponse{IsSubscribed: isSubscribed}
	if recipe.User != nil {
		author.ID = recipe.User.ID.String()
		author.Username = recipe.User.Username
		author.Email = recipe.User.Email
		author.FirstName = recipe.User.FirstName
		author.LastName = recipe.User.LastName
	}

	return domain.RecipeResponse{
		ID:               recipe.ID.String(),
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Name:             recipe.Name,
		Image:            recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		CreatedAt:        recipe.CreatedAt,
	}, nil
}

func shortRecipeResponse(recipe *entities.Recipe) domain.ShortRecipeResponse {
	return domain.ShortRecipeResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}

// FavoriteRecipe adds the recipe to the actor's favorites. The existence
// pre-check gives a clean error; the unique constraint remains the
// authoritative guard when two requests race.
func (s *recipeService) FavoriteRecipe(ctx context.Context, recipeID string, actor domain.Actor) (domain.ShortRecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShortRecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ShortRecipeResponse{}, err
	}

	exists, err := s.recipeRepository.IsFavorited(ctx, actor.ID.String(), recipeID)
	if err != nil {
		return domain.ShortRecipeResponse{}, err
	}
	if exists {
		return domain.ShortRecipeResponse{}, domain.ErrAlreadyFavorited
	}

	favorite := &entities.Favorite{
		ID:       uuid.New(),
		UserID:   actor.ID,
		RecipeID: recipe.ID,
	}
	if err := s.recipeRepository.CreateFavorite(ctx, favorite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ShortRecipeResponse{}, domain.ErrAlreadyFavorited
		}
		return domain.ShortRecipeResponse{}, err
	}

	return shortRecipeResponse(recipe), nil
}

func (s *recipeService) UnfavoriteRecipe(ctx context.Context, recipeID string, actor domain.Actor) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	deleted, err := s.recipeRepository.DeleteFavorite(ctx, actor.ID.String(), recipeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrNotFavorited
	}
	return nil
}

func (s *recipeService) AddToCart(ctx context.Context, recipeID string, actor domain.Actor) (domain.ShortRecipeResponse, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShortRecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.ShortRecipeResponse{}, err
	}

	exists, err := s.recipeRepository.IsInCart(ctx, actor.ID.String(), recipeID)
	if err != nil {
		return domain.ShortRecipeResponse{}, err
	}
	if exists {
		return domain.ShortRecipeResponse{}, domain.ErrAlreadyInCart
	}

	cart := &entities.Cart{
		ID:       uuid.New(),
		UserID:   actor.ID,
		RecipeID: recipe.ID,
	}
	if err := s.recipeRepository.AddToCart(ctx, cart); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ShortRecipeResponse{}, domain.ErrAlreadyInCart
		}
		return domain.ShortRecipeResponse{}, err
	}

	return shortRecipeResponse(recipe), nil
}

func (s *recipeService) RemoveFromCart(ctx context.Context, recipeID string, actor domain.Actor) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	deleted, err := s.recipeRepository.RemoveFromCart(ctx, actor.ID.String(), recipeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrNotInCart
	}
	return nil
}

// DownloadShoppingCart is a pure read-aggregate: no side effects, and two
// calls without cart mutation produce identical output apart from the
// embedded date.
func (s *recipeService) DownloadShoppingCart(ctx context.Context, actor domain.Actor) (domain.ShoppingListFile, error) {
	user, err := s.recipeRepository.GetAuthor(ctx, actor.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ShoppingListFile{}, domain.ErrUserNotFound
		}
		return domain.ShoppingListFile{}, err
	}

	items, err := s.recipeRepository.GetShoppingList(ctx, actor.ID.String())
	if err != nil {
		return domain.ShoppingListFile{}, err
	}

	return domain.ShoppingListFile{
		Filename: shoppingListFilename(user.Username),
		Content:  BuildShoppingList(user.Username, time.Now(), items),
	}, nil
}
