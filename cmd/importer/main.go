package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/importer"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question/external"
)

func main() {
	var (
		amount     = flag.Int("amount", 10, "Number of questions to request from Open Trivia DB (max 50)")
		difficulty = flag.String("difficulty", "", "Restrict to easy, medium or hard")
	)
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.Name+"-importer", cfg.Env)

	infra, err := app.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect")
	}
	defer infra.Pool.Close()
	if infra.Redis != nil {
		defer infra.Redis.Close()
	}

	svc := app.NewQuestionService(cfg, infra, logger)
	source := external.NewOpenTDBClient(cfg.OpenTDB.URL, &http.Client{Timeout: cfg.OpenTDB.Timeout})

	res, err := importer.New(source, svc, logger).Run(ctx, *amount, *difficulty)
	if err != nil {
		logger.Fatal().Err(err).Int("imported", res.Imported).Msg("import failed")
	}
	logger.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("import complete")
}
