package handlers

import (
	"fmt"
	"strings"

	"foodgram-backend/domain"
	"foodgram-backend/internal/api/presenters"
	"foodgram-backend/pkg/recipe"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		GetRecipes(c *fiber.Ctx) error
		FavoriteRecipe(c *fiber.Ctx) error
		UnfavoriteRecipe(c *fiber.Ctx) error
		AddToCart(c *fiber.Ctx) error
		RemoveFromCart(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, actorFromCtx(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	req := new(domain.UpdateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), c.Params("id"), *req, actorFromCtx(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	if err := h.recipeService.DeleteRecipe(c.Context(), c.Params("id"), actorFromCtx(c)); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedDeleteRecipe, err)
	}

	// 204 carries no body, so the JSON envelope is skipped.
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipe(c.Context(), c.Params("id"), actorFromCtx(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	params := domain.RecipeListParams{
		AuthorID:         c.Query("author"),
		IsFavorited:      c.QueryBool("is_favorited"),
		IsInShoppingCart: c.QueryBool("is_in_shopping_cart"),
		Page:             page,
		Limit:            limit,
	}
	if tags := c.Query("tags"); tags != "" {
		params.TagSlugs = strings.Split(tags, ",")
	}

	res, count, err := h.recipeService.GetRecipes(c.Context(), params, actorFromCtx(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.PaginatedSuccessResponse(c, res, count, page, limit, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) FavoriteRecipe(c *fiber.Ctx) error {
	res, err := h.recipeService.FavoriteRecipe(c.Context(), c.Params("id"), actorFromCtx(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedFavorite, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessFavoriteRecipe)
}

func (h *recipeHandler) UnfavoriteRecipe(c *fiber.Ctx) error {
	if err := h.recipeService.UnfavoriteRecipe(c.Context(), c.Params("id"), actorFromCtx(c)); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedFavorite, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) AddToCart(c *fiber.Ctx) error {
	res, err := h.recipeService.AddToCart(c.Context(), c.Params("id"), actorFromCtx(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedCart, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddToCart)
}

func (h *recipeHandler) RemoveFromCart(c *fiber.Ctx) error {
	if err := h.recipeService.RemoveFromCart(c.Context(), c.Params("id"), actorFromCtx(c)); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedCart, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadShoppingCart serves the aggregated list as a plain-text
// attachment rather than the JSON envelope.
func (h *recipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	file, err := h.recipeService.DownloadShoppingCart(c.Context(), actorFromCtx(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusFromError(err), domain.MessageFailedShoppingList, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.SendString(file.Content)
}
