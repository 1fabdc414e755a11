package main

import (
	"context"
	"log"
	"os"

	"foodgram-backend/cmd/config"
	migration "foodgram-backend/cmd/database/migrate"
	"foodgram-backend/cmd/database/seed"
	"foodgram-backend/internal/utils"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on config.yaml and environment")
	}
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	if path := os.Getenv("INGREDIENTS_CSV"); path != "" {
		if err := seed.LoadIngredients(context.Background(), db, path); err != nil {
			log.Fatalf("failed to seed ingredients: %v", err)
		}
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	port := utils.GetConfig("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
