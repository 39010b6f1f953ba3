package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"itinera/internal/config"
	"itinera/internal/handler"
	"itinera/internal/llm"
	"itinera/internal/parser"
	"itinera/internal/pdftext"
	"itinera/internal/repository/postgres"
	"itinera/internal/router"
	"itinera/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	jobRepo := postgres.NewParseJobRepo(db)
	docRepo := postgres.NewParsedDocumentRepo(db)

	// Initialize parsing dependencies
	catalog := llm.BuildCatalog(&cfg.LLM)
	extractor := pdftext.NewExtractor()
	pipeline := parser.New(catalog)

	// Initialize services
	jobSvc := service.NewParseJobService(jobRepo, docRepo, extractor, pipeline, service.ParseJobServiceConfig{
		QueueEnabled:       cfg.Queue.Enabled,
		DefaultModelID:     cfg.LLM.DefaultModel,
		MaxStoredTextChars: cfg.Parser.MaxStoredTextChars,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Queue.Enabled {
		worker := service.NewParseQueueWorker(jobRepo, jobSvc, service.ParseQueueConfig{
			PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
			MaxAttempts:  cfg.Queue.MaxAttempts,
			Concurrency:  cfg.Queue.Concurrency,
		})
		go worker.Start(ctx)
	}

	// Initialize handlers
	parseH := handler.NewParseHandler(jobSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(parseH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
