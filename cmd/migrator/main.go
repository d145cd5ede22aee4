package main

import (
	"context"
	"database/sql"
	"flag"
	"io/fs"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/db/migrations"
	"github.com/gokatarajesh/trivia-api/internal/config"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, or status")
		dir     = flag.String("dir", "", "Directory containing migration files (default: migrations embedded in the binary)")
	)
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.StorageDriver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("migrations only apply to the postgres driver")
	}

	var source fs.FS = migrations.FS
	if *dir != "" {
		if _, err := os.Stat(*dir); os.IsNotExist(err) {
			log.Fatal().Str("dir", *dir).Msg("migration directory does not exist")
		}
		source = os.DirFS(*dir)
	}

	db, err := sql.Open("pgx", cfg.Postgres.ConnString())
	if err != nil {
		log.Fatal().Err(err).Str("host", cfg.Postgres.Host).Int("port", cfg.Postgres.Port).Msg("failed to open database connection")
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().
		Str("host", cfg.Postgres.Host).
		Int("port", cfg.Postgres.Port).
		Str("database", cfg.Postgres.Database).
		Str("migration_dir", *dir).
		Msg("connected to database")

	provider, err := goose.NewProvider(goose.DialectPostgres, db, source)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build migration provider")
	}

	switch *command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations up")
		}
		log.Info().Int("applied", len(results)).Msg("migrations applied successfully")

	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations down")
		}
		if result != nil {
			log.Info().Int64("version", result.Source.Version).Msg("migration rolled back successfully")
		}

	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to get migration status")
		}
		for _, s := range statuses {
			log.Info().
				Int64("version", s.Source.Version).
				Str("path", s.Source.Path).
				Str("state", string(s.State)).
				Time("applied_at", s.AppliedAt).
				Msg("migration")
		}

	default:
		log.Fatal().Str("command", *command).Msg("unknown command. Use: up, down, or status")
	}
}
