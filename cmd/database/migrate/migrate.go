package migration

import (
	"fmt"
	"log"

	"foodgram-backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []any{
		&entities.User{},
		&entities.Subscription{},
		&entities.Tag{},
		&entities.Ingredient{},
		&entities.Recipe{},
		&entities.IngredientInRecipe{},
		&entities.Favorite{},
		&entities.Cart{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			log.Fatalf("Error migrating database: %v", err)
			return err
		}
	}

	// Value constraints AutoMigrate cannot express; the database stays
	// authoritative even if application checks are bypassed.
	db.Exec(`ALTER TABLE ingredient_in_recipes DROP CONSTRAINT IF EXISTS chk_ingredient_amount;
		ALTER TABLE ingredient_in_recipes ADD CONSTRAINT chk_ingredient_amount CHECK (amount >= 1);`)
	db.Exec(`ALTER TABLE recipes DROP CONSTRAINT IF EXISTS chk_cooking_time;
		ALTER TABLE recipes ADD CONSTRAINT chk_cooking_time CHECK (cooking_time >= 1);`)
	db.Exec(`ALTER TABLE subscriptions DROP CONSTRAINT IF EXISTS chk_no_self_subscription;
		ALTER TABLE subscriptions ADD CONSTRAINT chk_no_self_subscription CHECK (user_id <> author_id);`)

	fmt.Println("Database migration complete")
	return nil
}
