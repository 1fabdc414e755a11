package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"

	"foodgram-backend/cmd/config"
	migration "foodgram-backend/cmd/database/migrate"
	"foodgram-backend/entities"
	"foodgram-backend/pkg/recipe"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// RouteSuite exercises the HTTP surface against a real database. Recipes
// are inserted through the repository so the suite does not depend on
// object storage.
type RouteSuite struct {
	suite.Suite
	app *fiber.App
	db  *gorm.DB
}

func TestRouteSuite(t *testing.T) {
	if os.Getenv("TEST_DATABASE_DSN") == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	suite.Run(t, new(RouteSuite))
}

func (s *RouteSuite) SetupSuite() {
	s.T().Setenv("JWT_SECRET", "integration-test-secret")

	db, err := gorm.Open(postgres.Open(os.Getenv("TEST_DATABASE_DSN")), &gorm.Config{
		TranslateError: true,
	})
	s.Require().NoError(err)
	s.Require().NoError(migration.Migrate(db))
	s.db = db

	app, err := config.NewApp(db)
	s.Require().NoError(err)
	s.app = app
}

func (s *RouteSuite) SetupTest() {
	for _, table := range []string{
		"carts", "favorites", "ingredient_in_recipes", "recipe_tags",
		"recipes", "subscriptions", "ingredients", "tags", "users",
	} {
		s.Require().NoError(s.db.Exec("DELETE FROM " + table).Error)
	}
}

func (s *RouteSuite) request(method, path, token string, body any) (*http.Response, map[string]any) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := s.app.Test(req, -1)
	s.Require().NoError(err)

	var parsed map[string]any
	raw, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	if len(raw) > 0 && res.Header.Get("Content-Type") != "text/plain; charset=utf-8" {
		s.Require().NoError(json.Unmarshal(raw, &parsed))
	} else {
		parsed = map[string]any{"raw": string(raw)}
	}
	return res, parsed
}

func (s *RouteSuite) registerAndLogin(username, email string) string {
	res, _ := s.request(http.MethodPost, "/api/users", "", fiber.Map{
		"username":   username,
		"email":      email,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "str0ng-password",
	})
	s.Require().Equal(http.StatusCreated, res.StatusCode)

	res, body := s.request(http.MethodPost, "/api/auth/token/login", "", fiber.Map{
		"email":    email,
		"password": "str0ng-password",
	})
	s.Require().Equal(http.StatusOK, res.StatusCode)
	data := body["data"].(map[string]any)
	return data["auth_token"].(string)
}

func (s *RouteSuite) userIDByEmail(email string) uuid.UUID {
	var user entities.User
	s.Require().NoError(s.db.Where("email = ?", email).First(&user).Error)
	return user.ID
}

func (s *RouteSuite) insertRecipe(authorID uuid.UUID, name string, ingredients map[uuid.UUID]int) uuid.UUID {
	tag := &entities.Tag{Name: name + " tag", Color: "#FF0000", Slug: name + "-tag"}
	s.Require().NoError(s.db.Create(tag).Error)

	r := &entities.Recipe{
		ID:          uuid.New(),
		UserID:      authorID,
		Name:        name,
		Text:        "instructions",
		ImageURL:    "https://example.com/" + name + ".jpg",
		CookingTime: 10,
		Tags:        []*entities.Tag{tag},
	}

	joins := make([]*entities.IngredientInRecipe, 0, len(ingredients))
	for id, amount := range ingredients {
		joins = append(joins, &entities.IngredientInRecipe{IngredientID: id, Amount: amount})
	}

	repo := recipe.NewRecipeRepository(s.db)
	s.Require().NoError(repo.CreateRecipe(context.Background(), r, joins))
	return r.ID
}

func (s *RouteSuite) insertIngredient(name, unit string) uuid.UUID {
	ingredient := &entities.Ingredient{Name: name, MeasurementUnit: unit}
	s.Require().NoError(s.db.Create(ingredient).Error)
	return ingredient.ID
}

func (s *RouteSuite) TestRecipeDetailReadBack() {
	token := s.registerAndLogin("author", "author@example.com")
	authorID := s.userIDByEmail("author@example.com")
	flour := s.insertIngredient("flour", "g")
	recipeID := s.insertRecipe(authorID, "bread", map[uuid.UUID]int{flour: 300})

	res, body := s.request(http.MethodGet, "/api/recipes/"+recipeID.String(), token, nil)

	s.Equal(http.StatusOK, res.StatusCode)
	data := body["data"].(map[string]any)
	s.Equal("bread", data["name"])
	s.Equal(false, data["is_favorited"])
	author := data["author"].(map[string]any)
	s.Equal("author", author["username"])
	ingredients := data["ingredients"].([]any)
	s.Require().Len(ingredients, 1)
	s.Equal("flour", ingredients[0].(map[string]any)["name"])
	s.Equal(float64(300), ingredients[0].(map[string]any)["amount"])
}

func (s *RouteSuite) TestFavoriteTwiceConflicts() {
	token := s.registerAndLogin("eater", "eater@example.com")
	authorID := s.userIDByEmail("eater@example.com")
	flour := s.insertIngredient("flour", "g")
	recipeID := s.insertRecipe(authorID, "cake", map[uuid.UUID]int{flour: 100})

	res, _ := s.request(http.MethodPost, "/api/recipes/"+recipeID.String()+"/favorite", token, nil)
	s.Equal(http.StatusCreated, res.StatusCode)

	res, _ = s.request(http.MethodPost, "/api/recipes/"+recipeID.String()+"/favorite", token, nil)
	s.Equal(http.StatusConflict, res.StatusCode)
}

func (s *RouteSuite) TestUnfavoriteMissingIsNotFound() {
	token := s.registerAndLogin("eater", "eater@example.com")
	authorID := s.userIDByEmail("eater@example.com")
	flour := s.insertIngredient("flour", "g")
	recipeID := s.insertRecipe(authorID, "cake", map[uuid.UUID]int{flour: 100})

	res, _ := s.request(http.MethodDelete, "/api/recipes/"+recipeID.String()+"/favorite", token, nil)
	s.Equal(http.StatusNotFound, res.StatusCode)
}

func (s *RouteSuite) TestSelfSubscriptionRejected() {
	token := s.registerAndLogin("loner", "loner@example.com")
	selfID := s.userIDByEmail("loner@example.com")

	res, _ := s.request(http.MethodPost, "/api/users/"+selfID.String()+"/subscribe", token, nil)
	s.Equal(http.StatusBadRequest, res.StatusCode)
}

func (s *RouteSuite) TestSubscribeAndList() {
	authorToken := s.registerAndLogin("author", "author@example.com")
	_ = authorToken
	readerToken := s.registerAndLogin("reader", "reader@example.com")
	authorID := s.userIDByEmail("author@example.com")

	res, _ := s.request(http.MethodPost, "/api/users/"+authorID.String()+"/subscribe", readerToken, nil)
	s.Equal(http.StatusCreated, res.StatusCode)

	res, _ = s.request(http.MethodPost, "/api/users/"+authorID.String()+"/subscribe", readerToken, nil)
	s.Equal(http.StatusConflict, res.StatusCode)

	res, body := s.request(http.MethodGet, "/api/users/subscriptions", readerToken, nil)
	s.Equal(http.StatusOK, res.StatusCode)
	data := body["data"].([]any)
	s.Require().Len(data, 1)
	s.Equal("author", data[0].(map[string]any)["username"])
}

func (s *RouteSuite) TestShoppingListAggregatesAcrossRecipes() {
	token := s.registerAndLogin("chef", "chef@example.com")
	chefID := s.userIDByEmail("chef@example.com")

	// Two distinct flour rows share (name, unit); the aggregation must
	// merge them into a single line.
	flour := s.insertIngredient("flour", "g")
	flourDupe := s.insertIngredient("flour", "g")
	eggs := s.insertIngredient("eggs", "pcs")

	bread := s.insertRecipe(chefID, "bread", map[uuid.UUID]int{flour: 200, eggs: 1})
	cake := s.insertRecipe(chefID, "cake", map[uuid.UUID]int{flourDupe: 100, eggs: 1})

	for _, id := range []uuid.UUID{bread, cake} {
		res, _ := s.request(http.MethodPost, "/api/recipes/"+id.String()+"/shopping_cart", token, nil)
		s.Require().Equal(http.StatusCreated, res.StatusCode)
	}

	res, body := s.request(http.MethodGet, "/api/recipes/download_shopping_cart", token, nil)
	s.Equal(http.StatusOK, res.StatusCode)
	s.Contains(res.Header.Get("Content-Disposition"), "chef_shopping.txt")

	content := body["raw"].(string)
	s.Contains(content, "chef, your shopping list is ready!")
	s.Contains(content, "- eggs (pcs) - 2")
	s.Contains(content, "- flour (g) - 300")
	s.Equal(1, strings.Count(content, "- flour"))
}

func (s *RouteSuite) TestUpdateReplacesIngredientList() {
	token := s.registerAndLogin("author", "author@example.com")
	authorID := s.userIDByEmail("author@example.com")
	flour := s.insertIngredient("flour", "g")
	sugar := s.insertIngredient("sugar", "g")
	recipeID := s.insertRecipe(authorID, "cake", map[uuid.UUID]int{flour: 2, sugar: 3})

	res, body := s.request(http.MethodPatch, "/api/recipes/"+recipeID.String(), token, fiber.Map{
		"ingredients": []fiber.Map{
			{"id": flour.String(), "amount": 5},
		},
	})

	s.Equal(http.StatusOK, res.StatusCode)
	data := body["data"].(map[string]any)
	ingredients := data["ingredients"].([]any)
	s.Require().Len(ingredients, 1)
	s.Equal(float64(5), ingredients[0].(map[string]any)["amount"])

	// The old joins are gone, not merely superseded.
	var joins []entities.IngredientInRecipe
	s.Require().NoError(s.db.Where("recipe_id = ?", recipeID).Find(&joins).Error)
	s.Require().Len(joins, 1)
	s.Equal(flour, joins[0].IngredientID)
	s.Equal(5, joins[0].Amount)
}

func (s *RouteSuite) TestUpdateRejectsZeroCookingTime() {
	token := s.registerAndLogin("author", "author@example.com")
	authorID := s.userIDByEmail("author@example.com")
	flour := s.insertIngredient("flour", "g")
	recipeID := s.insertRecipe(authorID, "cake", map[uuid.UUID]int{flour: 100})

	res, _ := s.request(http.MethodPatch, "/api/recipes/"+recipeID.String(), token, fiber.Map{
		"cooking_time": 0,
	})
	s.Equal(http.StatusBadRequest, res.StatusCode)

	var r entities.Recipe
	s.Require().NoError(s.db.Where("id = ?", recipeID).First(&r).Error)
	s.Equal(10, r.CookingTime)
}

func (s *RouteSuite) TestIngredientSearchMatchesWildcardLiterally() {
	s.insertIngredient("100% cocoa", "g")
	s.insertIngredient("100g flour pack", "g")

	res, body := s.request(http.MethodGet, "/api/ingredients?name="+url.QueryEscape("100%"), "", nil)

	s.Equal(http.StatusOK, res.StatusCode)
	data := body["data"].([]any)
	s.Require().Len(data, 1)
	s.Equal("100% cocoa", data[0].(map[string]any)["name"])
}

func (s *RouteSuite) TestUnfavoriteReturnsNoContent() {
	token := s.registerAndLogin("eater", "eater@example.com")
	eaterID := s.userIDByEmail("eater@example.com")
	flour := s.insertIngredient("flour", "g")
	recipeID := s.insertRecipe(eaterID, "cake", map[uuid.UUID]int{flour: 100})

	res, _ := s.request(http.MethodPost, "/api/recipes/"+recipeID.String()+"/favorite", token, nil)
	s.Require().Equal(http.StatusCreated, res.StatusCode)

	res, body := s.request(http.MethodDelete, "/api/recipes/"+recipeID.String()+"/favorite", token, nil)
	s.Equal(http.StatusNoContent, res.StatusCode)
	s.Equal("", body["raw"])
}

func (s *RouteSuite) TestRecipeListingFiltersByAuthor() {
	token := s.registerAndLogin("author", "author@example.com")
	authorID := s.userIDByEmail("author@example.com")
	otherToken := s.registerAndLogin("other", "other@example.com")
	_ = otherToken
	otherID := s.userIDByEmail("other@example.com")

	flour := s.insertIngredient("flour", "g")
	s.insertRecipe(authorID, "bread", map[uuid.UUID]int{flour: 100})
	s.insertRecipe(otherID, "soup", map[uuid.UUID]int{flour: 50})

	path := fmt.Sprintf("/api/recipes?author=%s", authorID)
	res, body := s.request(http.MethodGet, path, token, nil)

	s.Equal(http.StatusOK, res.StatusCode)
	data := body["data"].([]any)
	s.Require().Len(data, 1)
	s.Equal("bread", data[0].(map[string]any)["name"])
}
