package presenters

import (
	"errors"

	"foodgram-backend/domain"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type PaginatedResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Count   int64  `json:"count"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func PaginatedSuccessResponse(c *fiber.Ctx, data any, count int64, page, limit int, message string) error {
	return c.Status(fiber.StatusOK).JSON(PaginatedResponse{
		Status:  true,
		Message: message,
		Data:    data,
		Count:   count,
		Page:    page,
		Limit:   limit,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(status).JSON(res)
}

// StatusFromError maps service sentinels onto HTTP statuses so handlers
// stay free of per-error switch statements.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrSubscriptionNotFound),
		errors.Is(err, domain.ErrNotFavorited),
		errors.Is(err, domain.ErrNotInCart):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyFavorited),
		errors.Is(err, domain.ErrAlreadyInCart),
		errors.Is(err, domain.ErrAlreadySubscribed),
		errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrUsernameAlreadyUsed),
		errors.Is(err, domain.ErrTagSlugExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrCredentialsInvalid),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenNotFound):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusBadRequest
	}
}
