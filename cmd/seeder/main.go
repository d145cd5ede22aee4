package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup happens before exit.
func run(args []string) int {
	fs := flag.NewFlagSet("seeder", flag.ContinueOnError)
	var (
		amount     = fs.Int("amount", 50, "Number of questions to import")
		difficulty = fs.String("difficulty", "", "Difficulty filter: easy, medium or hard")
		source     = fs.String("source", "opentdb", "Question source: opentdb or triviaapi")
		sourceURL  = fs.String("source-url", "", "Override the source's base URL")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Printf("Warning: could not load .env file: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}
	logger := logging.New(cfg.Name+"-seeder", cfg.Env, cfg.LogLevel)

	trivia, err := newSource(*source, *sourceURL, os.Getenv("TRIVIA_API_KEY"))
	if err != nil {
		logger.Error().Err(err).Msg("invalid source")
		return 2
	}

	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to open storage")
		return 1
	}
	defer stores.Close()

	svc := question.NewService(stores.Questions, stores.Categories, logger)
	importer := question.NewImporter(trivia, svc, logger.With().Str("source", *source).Logger())

	if _, err := importer.Import(ctx, *amount, *difficulty); err != nil {
		logger.Error().Err(err).Msg("import failed")
		return 1
	}
	return 0
}

func newSource(name, baseURL, apiKey string) (question.TriviaSource, error) {
	switch name {
	case "opentdb":
		return external.NewOpenTDBClient(baseURL, nil), nil
	case "triviaapi":
		return external.NewTriviaAPIClient(baseURL, apiKey, nil), nil
	default:
		return nil, fmt.Errorf("unknown source %q (want opentdb or triviaapi)", name)
	}
}
