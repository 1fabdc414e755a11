package entities

import (
	"github.com/google/uuid"
	"time"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"not null" json:"user_id"`
	Name        string    `gorm:"index;not null" json:"name"`
	Text        string    `gorm:"type:text" json:"text"`
	ImageURL    string    `json:"image_url,omitempty"`
	CookingTime int       `gorm:"not null" json:"cooking_time"`
	CreatedAt   time.Time `gorm:"type:timestamp;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp" json:"updated_at"`

	User        *User                 `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Tags        []*Tag                `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
	Ingredients []*IngredientInRecipe `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

// IngredientInRecipe carries the quantity of one ingredient within one
// recipe. A recipe references an ingredient at most once.
type IngredientInRecipe struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID     uuid.UUID `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uuid.UUID `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Amount       int       `gorm:"not null" json:"amount"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient,omitempty"`
	Timestamp
}

type Favorite struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID uuid.UUID `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
	Timestamp
}

type Cart struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID uuid.UUID `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"recipe_id"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
	Timestamp
}
