package presenters

import (
	"errors"
	"testing"

	"foodgram-backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrRecipeNotFound, fiber.StatusNotFound},
		{domain.ErrUserNotFound, fiber.StatusNotFound},
		{domain.ErrNotFavorited, fiber.StatusNotFound},
		{domain.ErrNotInCart, fiber.StatusNotFound},
		{domain.ErrAlreadyFavorited, fiber.StatusConflict},
		{domain.ErrAlreadyInCart, fiber.StatusConflict},
		{domain.ErrAlreadySubscribed, fiber.StatusConflict},
		{domain.ErrEmailAlreadyExists, fiber.StatusConflict},
		{domain.ErrUserNotAllowed, fiber.StatusForbidden},
		{domain.ErrCredentialsInvalid, fiber.StatusUnauthorized},
		{domain.ErrTokenExpired, fiber.StatusUnauthorized},
		{domain.ErrSelfSubscription, fiber.StatusBadRequest},
		{domain.NewDuplicateIngredientError(uuid.New()), fiber.StatusBadRequest},
		{errors.New("anything else"), fiber.StatusBadRequest},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, StatusFromError(tc.err), tc.err.Error())
	}
}
