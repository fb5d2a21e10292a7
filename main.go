package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"negar/internal/config"
	"negar/internal/database"
	"negar/internal/events"
	"negar/internal/llm/client"
	"negar/internal/services"
	"negar/internal/sessions"
	"negar/internal/web"
)

func main() {
	events.EnableLogEmitter()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Init(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, err := client.NewGeneratorClient(ctx, cfg.Provider, cfg.GeneratorModel, cfg.GeneratorAPIKey())
	if err != nil {
		log.Fatalf("generator client: %v", err)
	}

	// Evaluation always goes through the OpenAI JSON-mode client; when
	// no OpenAI key is configured, the generator doubles as evaluator.
	var evalCompleter client.TextCompleter = generator
	if cfg.OpenAIAPIKey != "" {
		evalClient, err := client.NewEvaluatorClient(ctx, cfg.OpenAIAPIKey)
		if err != nil {
			log.Fatalf("evaluator client: %v", err)
		}
		evalCompleter = evalClient
	}
	evaluator := services.NewEvaluationService(evalCompleter)

	var images client.ImageGenerator
	if cfg.EnableImages && cfg.OpenAIAPIKey != "" {
		images = client.NewImageClient(cfg.OpenAIAPIKey)
	}

	store := sessions.NewStore(cfg.SessionTTL)
	generation := services.NewGenerationService(generator, images, evaluator, store, cfg.GeneratorModel)

	svcs := services.NewServices(db)

	server := web.NewServer(cfg.Port, generation, svcs.Artworks)
	if err := server.Start(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
