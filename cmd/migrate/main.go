package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"partnersync/database"
	"partnersync/logger"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	logg, err := logger.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logg.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Connect(ctx, databaseURL, logg)
	if err != nil {
		logg.Fatal("Failed to connect", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logg.Fatal("Migration failed", zap.Error(err))
	}

	fmt.Println("\nAll migrations completed!")
}
