package main

import (
	"context"
	"time"

	_ "doc-quiz/cmd/api/docs"
	"doc-quiz/internal/config"
	"doc-quiz/internal/handler"
	"doc-quiz/internal/logger"
	"doc-quiz/internal/middleware"
	"doc-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// newApp builds the fiber app hosting both services. Every endpoint is
// served at the root, where existing clients call them, and under /api.
func newApp(cfg *config.Config, extraction service.ExtractionService, quiz service.QuizService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "doc-quiz",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/health", handler.Health)
	app.Get("/swagger/*", swagger.HandlerDefault)

	documentHandler := handler.NewDocumentHandler(extraction)
	quizHandler := handler.NewQuizHandler(quiz)

	handler.RegisterRoutes(app, documentHandler, quizHandler, cfg.LLM.DefaultModel)
	handler.RegisterRoutes(app.Group("/api"), documentHandler, quizHandler, cfg.LLM.DefaultModel)

	return app
}

// run serves app on addr until ctx is cancelled or the listener fails.
func run(ctx context.Context, app *fiber.App, addr string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.Listen(addr)
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Get().Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	return g.Wait()
}
