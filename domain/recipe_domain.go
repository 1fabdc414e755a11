package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	MessageSuccessGetRecipes       = "success get recipes"
	MessageSuccessGetRecipeDetail  = "success get recipe detail"
	MessageSuccessCreateRecipe     = "recipe created successfully"
	MessageSuccessUpdateRecipe     = "recipe updated successfully"
	MessageSuccessDeleteRecipe     = "recipe deleted successfully"
	MessageSuccessFavoriteRecipe   = "recipe added to favorites"
	MessageSuccessUnfavoriteRecipe = "recipe removed from favorites"
	MessageSuccessAddToCart        = "recipe added to shopping cart"
	MessageSuccessRemoveFromCart   = "recipe removed from shopping cart"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedFavorite        = "failed to update favorites"
	MessageFailedCart            = "failed to update shopping cart"
	MessageFailedShoppingList    = "failed to build shopping list"

	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrDuplicateIngredient = errors.New("duplicate ingredient in recipe")
	ErrInvalidAmount       = errors.New("ingredient amount must be at least 1")
	ErrInvalidCookingTime  = errors.New("cooking time must be at least 1")
	ErrNoTags              = errors.New("recipe needs at least one tag")
	ErrNoIngredients       = errors.New("recipe needs at least one ingredient")
	ErrAlreadyFavorited    = errors.New("recipe already in favorites")
	ErrNotFavorited        = errors.New("recipe is not in favorites")
	ErrAlreadyInCart       = errors.New("recipe already in shopping cart")
	ErrNotInCart           = errors.New("recipe is not in shopping cart")
)

// NewDuplicateIngredientError names the ingredient that collided so the
// caller can see which entry to fix.
func NewDuplicateIngredientError(id uuid.UUID) error {
	return fmt.Errorf("%w: %s", ErrDuplicateIngredient, id)
}

type (
	IngredientAmountRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required,min=1"`
	}

	CreateRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		Image       string                    `json:"image" validate:"required"` // base64 payload
		CookingTime int                       `json:"cooking_time" validate:"required,min=1"`
		Tags        []string                  `json:"tags" validate:"required,min=1,dive,uuid"`
		Ingredients []IngredientAmountRequest `json:"ingredients" validate:"required,min=1,dive"`
	}

	// UpdateRecipeRequest carries only the fields the caller wants changed.
	// A nil Ingredients slice leaves the existing associations untouched;
	// a non-nil slice replaces them wholesale.
	UpdateRecipeRequest struct {
		Name        *string                   `json:"name,omitempty" validate:"omitempty,max=200"`
		Text        *string                   `json:"text,omitempty"`
		Image       *string                   `json:"image,omitempty"`
		CookingTime *int                      `json:"cooking_time,omitempty" validate:"omitempty,min=1"`
		Tags        []string                  `json:"tags,omitempty" validate:"omitempty,min=1,dive,uuid"`
		Ingredients []IngredientAmountRequest `json:"ingredients,omitempty" validate:"omitempty,min=1,dive"`
	}

	RecipeIngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID               string                     `json:"id"`
		Tags             []TagResponse              `json:"tags"`
		Author           UserResponse               `json:"author"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
		Name             string                     `json:"name"`
		Image            string                     `json:"image"`
		Text             string                     `json:"text"`
		CookingTime      int                        `json:"cooking_time"`
		CreatedAt        time.Time                  `json:"created_at"`
	}

	// ShortRecipeResponse is the condensed summary returned by the
	// favorite and cart toggles.
	ShortRecipeResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeListParams struct {
		AuthorID         string
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
		Page             int
		Limit            int
	}

	// ShoppingItem is one aggregated line of the shopping list, already
	// summed across every recipe in the cart and grouped by name+unit.
	ShoppingItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	ShoppingListFile struct {
		Filename string
		Content  string
	}
)
