package routes

import (
	"foodgram-backend/internal/api/handlers"
	"foodgram-backend/internal/middleware"
	"foodgram-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	RecipeHandler  handlers.RecipeHandler
	CatalogHandler handlers.CatalogHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Users()
	c.Catalog()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/token/login", c.UserHandler.Login)
		auth.Post("/forget", c.UserHandler.ForgotPassword)
		auth.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Users() {
	users := c.App.Group("/api/users")
	{
		users.Post("", c.UserHandler.Register)
		users.Get("", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.UserHandler.GetUsers)

		// Fixed paths go before the :id parameter route.
		users.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		users.Patch("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		users.Post("/set_password", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.SetPassword)
		users.Get("/subscriptions", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.GetSubscriptions)

		users.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.UserHandler.GetUser)
		users.Post("/:id/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Subscribe)
		users.Delete("/:id/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Catalog() {
	tags := c.App.Group("/api/tags")
	{
		tags.Get("", c.CatalogHandler.GetTags)
		tags.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.CatalogHandler.CreateTag)
		tags.Get("/:id", c.CatalogHandler.GetTag)
	}

	ingredients := c.App.Group("/api/ingredients")
	{
		ingredients.Get("", c.CatalogHandler.SearchIngredients)
		ingredients.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.CatalogHandler.CreateIngredient)
		ingredients.Get("/:id", c.CatalogHandler.GetIngredient)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/recipes")
	{
		recipes.Get("", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipes)
		recipes.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.CreateRecipe)

		recipes.Get("/download_shopping_cart", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DownloadShoppingCart)

		recipes.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipe)
		recipes.Patch("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UpdateRecipe)
		recipes.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DeleteRecipe)

		recipes.Post("/:id/favorite", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.FavoriteRecipe)
		recipes.Delete("/:id/favorite", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UnfavoriteRecipe)

		recipes.Post("/:id/shopping_cart", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.AddToCart)
		recipes.Delete("/:id/shopping_cart", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.RemoveFromCart)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
