package recipe

import (
	"context"

	"foodgram-backend/domain"
	"foodgram-backend/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.IngredientInRecipe) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.IngredientInRecipe, tags []*entities.Tag) error
		DeleteRecipe(ctx context.Context, id string) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, params domain.RecipeListParams, userID string) ([]*entities.Recipe, int64, error)
		GetRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, error)
		CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error)
		GetAuthor(ctx context.Context, userID string) (*entities.User, error)

		CreateFavorite(ctx context.Context, favorite *entities.Favorite) error
		DeleteFavorite(ctx context.Context, userID, recipeID string) (int64, error)
		IsFavorited(ctx context.Context, userID, recipeID string) (bool, error)

		AddToCart(ctx context.Context, cart *entities.Cart) error
		RemoveFromCart(ctx context.Context, userID, recipeID string) (int64, error)
		IsInCart(ctx context.Context, userID, recipeID string) (bool, error)

		IsSubscribed(ctx context.Context, userID, authorID string) (bool, error)
		GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingItem, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe persists the recipe row, its tag associations, and one join
// row per ingredient entry in a single transaction. Any failure rolls the
// whole set back.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.IngredientInRecipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}

		for _, ingredient := range ingredients {
			ingredient.RecipeID = recipe.ID
		}
		return tx.Create(&ingredients).Error
	})
}

// UpdateRecipe saves scalar fields, replaces the tag set when tags is
// non-nil, and replaces the ingredient joins wholesale when ingredients is
// non-nil, all atomically. Existing joins are deleted and recreated, not
// diffed.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe, ingredients []*entities.IngredientInRecipe, tags []*entities.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients", "User").Save(recipe).Error; err != nil {
			return err
		}

		if tags != nil {
			if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		if ingredients != nil {
			if err := tx.Where("recipe_id = ?", recipe.ID).
				Delete(&entities.IngredientInRecipe{}).Error; err != nil {
				return err
			}
			for _, ingredient := range ingredients {
				ingredient.RecipeID = recipe.ID
			}
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Recipe{}).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, params domain.RecipeListParams, userID string) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (params.Page - 1) * params.Limit

	query := r.db.WithContext(ctx).Model(&entities.Recipe{})

	if params.AuthorID != "" {
		query = query.Where("recipes.user_id = ?", params.AuthorID)
	}

	if len(params.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", params.TagSlugs).
			Distinct("recipes.*")
	}

	// Favorited-only and in-cart-only are scoped to the requesting
	// identity; anonymous callers get the unfiltered listing.
	if params.IsFavorited && userID != "" {
		query = query.
			Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", userID)
	}

	if params.IsInShoppingCart && userID != "" {
		query = query.
			Joins("JOIN carts ON carts.recipe_id = recipes.id").
			Where("carts.user_id = ?", userID)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("User").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at desc").
		Offset(offset).
		Limit(params.Limit).
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	query := r.db.WithContext(ctx).
		Where("user_id = ?", authorID).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("user_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (r *recipeRepository) GetAuthor(ctx context.Context, userID string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *recipeRepository) CreateFavorite(ctx context.Context, favorite *entities.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *recipeRepository) DeleteFavorite(ctx context.Context, userID, recipeID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Favorite{})
	return result.RowsAffected, result.Error
}

func (r *recipeRepository) IsFavorited(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) AddToCart(ctx context.Context, cart *entities.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *recipeRepository) RemoveFromCart(ctx context.Context, userID, recipeID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.Cart{})
	return result.RowsAffected, result.Error
}

func (r *recipeRepository) IsInCart(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Cart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) IsSubscribed(ctx context.Context, userID, authorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetShoppingList sums ingredient amounts over every recipe in the user's
// cart, grouped by (name, measurement unit) rather than ingredient id so
// same-named reference rows merge. Ordering is fixed for deterministic
// output.
func (r *recipeRepository) GetShoppingList(ctx context.Context, userID string) ([]domain.ShoppingItem, error) {
	var items []domain.ShoppingItem

	query := `
		SELECT
			ingredients.name AS name,
			ingredients.measurement_unit AS measurement_unit,
			SUM(ingredient_in_recipes.amount) AS amount
		FROM ingredient_in_recipes
		JOIN ingredients ON ingredients.id = ingredient_in_recipes.ingredient_id
		JOIN carts ON carts.recipe_id = ingredient_in_recipes.recipe_id
		WHERE carts.user_id = ?
		GROUP BY ingredients.name, ingredients.measurement_unit
		ORDER BY ingredients.name, ingredients.measurement_unit
	`

	if err := r.db.WithContext(ctx).Raw(query, userID).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
