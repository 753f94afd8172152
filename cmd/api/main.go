// @title Doc Quiz API
// @version 1.0
// @description Extracts text from uploaded documents and generates multiple-choice quizzes from it.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"doc-quiz/internal/adapter/extractor"
	"doc-quiz/internal/adapter/llm"
	"doc-quiz/internal/config"
	"doc-quiz/internal/logger"
	"doc-quiz/internal/service"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	completion, err := llm.NewFromConfig(context.Background(), cfg)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	appLogger.Info("LLM client initialized",
		zap.String("provider", completion.Provider()),
		zap.String("default_model", cfg.LLM.DefaultModel))

	extractionService := service.NewExtractionService(extractor.NewRegistry())
	quizService := service.NewQuizService(completion)

	app := newApp(cfg, extractionService, quizService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Starting server", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Logger.Env))
	if err := run(ctx, app, cfg.Addr()); err != nil {
		appLogger.Fatal("Server stopped with error", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
