package main

import (
	"context"
	"os"
	"time"

	"entgo.io/ent/dialect"
	"github.com/joho/godotenv"

	"github.com/gurkanbulca/opsboard/internal/config"
	"github.com/gurkanbulca/opsboard/internal/database"
	"github.com/gurkanbulca/opsboard/internal/logger"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	log := logger.Setup(cfg.Log.Level, cfg.Log.Pretty)
	if envErr != nil {
		log.Debug().Msg("No .env file found")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg.ToDatabaseConfig())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	log.Info().Str("table", database.BoardTasksTable).Msg("Running database migrations...")
	if err := database.Migrate(ctx, db, dialect.Postgres); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	log.Info().Msg("Migrations completed successfully")
}
