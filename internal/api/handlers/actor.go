package handlers

import (
	"foodgram-backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFromCtx rebuilds the request identity from the locals the auth
// middleware set. Requests that skipped auth yield the anonymous actor.
func actorFromCtx(c *fiber.Ctx) domain.Actor {
	id, _ := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)

	parsed, err := uuid.Parse(id)
	if err != nil {
		return domain.Actor{}
	}
	return domain.Actor{ID: parsed, Role: role}
}

func pageParams(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
