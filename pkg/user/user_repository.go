package user

import (
	"context"

	"foodgram-backend/entities"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
		GetUsers(ctx context.Context, page, limit int) ([]*entities.User, int64, error)
		UpdateUser(ctx context.Context, user *entities.User) error

		CreateSubscription(ctx context.Context, subscription *entities.Subscription) error
		DeleteSubscription(ctx context.Context, userID, authorID string) (int64, error)
		IsSubscribed(ctx context.Context, userID, authorID string) (bool, error)
		GetSubscribedAuthors(ctx context.Context, userID string, page, limit int) ([]*entities.User, int64, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUsers(ctx context.Context, page, limit int) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("username asc").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) CreateSubscription(ctx context.Context, subscription *entities.Subscription) error {
	return r.db.WithContext(ctx).Create(subscription).Error
}

func (r *userRepository) DeleteSubscription(ctx context.Context, userID, authorID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&entities.Subscription{})
	return result.RowsAffected, result.Error
}

func (r *userRepository) IsSubscribed(ctx context.Context, userID, authorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetSubscribedAuthors lists the authors userID follows, newest
// subscription first, with the total for pagination.
func (r *userRepository) GetSubscribedAuthors(ctx context.Context, userID string, page, limit int) ([]*entities.User, int64, error) {
	var authors []*entities.User
	var count int64
	offset := (page - 1) * limit

	base := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID)

	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := base.
		Order("subscriptions.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&authors).Error; err != nil {
		return nil, 0, err
	}
	return authors, count, nil
}
