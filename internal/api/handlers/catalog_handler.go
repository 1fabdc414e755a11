package handlers

import (
	"foodgram-backend/domain"
	"foodgram-backend/internal/api/presenters"
	"foodgram-backend/pkg/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		CreateTag(c *fiber.Ctx) error
		GetTags(c *fiber.Ctx) error
		GetTag(c *fiber.Ctx) error
		CreateIngredient(c *fiber.Ctx) error
		GetIngredient(c *fiber.Ctx) error
		SearchIngredients(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService catalog.CatalogService
		validator      *validator.Validate
	}
)

func NewCatalogHandler(catalogService catalog.CatalogService, validator *validator.Validate) CatalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
		validator:      validator,
	}
}

func (h *catalogHandler) CreateTag(c *fiber.Ctx) error {
	req := new(domain.CreateTagRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateTag, err)
	}

	res, err := h.catalogService.CreateTag(c.Context(), *req, actorFromCtx(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedCreateTag, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateTag)
}

func (h *catalogHandler) GetTags(c *fiber.Ctx) error {
	res, err := h.catalogService.GetTags(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetTags, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *catalogHandler) GetTag(c *fiber.Ctx) error {
	res, err := h.catalogService.GetTag(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetTags, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *catalogHandler) CreateIngredient(c *fiber.Ctx) error {
	req := new(domain.CreateIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateIngredient, err)
	}

	res, err := h.catalogService.CreateIngredient(c.Context(), *req, actorFromCtx(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedCreateIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateIngredient)
}

func (h *catalogHandler) GetIngredient(c *fiber.Ctx) error {
	res, err := h.catalogService.GetIngredient(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

// SearchIngredients filters by case-insensitive name prefix when the name
// query parameter is present.
func (h *catalogHandler) SearchIngredients(c *fiber.Ctx) error {
	res, err := h.catalogService.SearchIngredients(c.Context(), c.Query("name"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}
