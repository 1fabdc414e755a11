package recipe

import (
	"context"
	"testing"

	"foodgram-backend/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateIngredientListRejectsDuplicate(t *testing.T) {
	duplicated := uuid.New()
	items := []domain.IngredientAmountRequest{
		{ID: uuid.New().String(), Amount: 2},
		{ID: duplicated.String(), Amount: 1},
		{ID: duplicated.String(), Amount: 5},
	}

	err := validateIngredientList(items)

	assert.ErrorIs(t, err, domain.ErrDuplicateIngredient)
	assert.Contains(t, err.Error(), duplicated.String())
}

func TestValidateIngredientListRejectsAmountBelowOne(t *testing.T) {
	items := []domain.IngredientAmountRequest{
		{ID: uuid.New().String(), Amount: 0},
	}

	assert.ErrorIs(t, validateIngredientList(items), domain.ErrInvalidAmount)
}

func TestValidateIngredientListRejectsEmpty(t *testing.T) {
	assert.ErrorIs(t, validateIngredientList(nil), domain.ErrNoIngredients)
}

func TestValidateIngredientListRejectsBadID(t *testing.T) {
	items := []domain.IngredientAmountRequest{
		{ID: "not-a-uuid", Amount: 1},
	}

	assert.ErrorIs(t, validateIngredientList(items), domain.ErrParseUUID)
}

func TestValidateIngredientListAcceptsDistinctEntries(t *testing.T) {
	items := []domain.IngredientAmountRequest{
		{ID: uuid.New().String(), Amount: 1},
		{ID: uuid.New().String(), Amount: 300},
	}

	assert.NoError(t, validateIngredientList(items))
}

func TestCreateRecipeRejectsZeroCookingTime(t *testing.T) {
	service := NewRecipeService(nil, nil, nil)

	req := domain.CreateRecipeRequest{
		Name:        "instant",
		Text:        "no cooking involved",
		Image:       "aGVsbG8=",
		CookingTime: 0,
		Tags:        []string{uuid.New().String()},
		Ingredients: []domain.IngredientAmountRequest{
			{ID: uuid.New().String(), Amount: 1},
		},
	}

	// The floor is checked before any dependency is touched.
	_, err := service.CreateRecipe(context.Background(), req, domain.Actor{ID: uuid.New(), Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrInvalidCookingTime)
}
