package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"wrapstudio/internal/adapter/repo"
	"wrapstudio/internal/bootstrap"
	"wrapstudio/internal/infra"
	"wrapstudio/internal/infra/credentials"
	"wrapstudio/internal/providers/genai"
	"wrapstudio/internal/providers/image"
	"wrapstudio/internal/render"
	"wrapstudio/internal/storage"
	"wrapstudio/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	fileStore, err := storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure storage")
	}

	catalog, templates, err := bootstrap.Catalogs(ctx, cfg, repo.NewSwatchRepository(runner), repo.NewTemplateRepository(runner), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to load catalogs")
	}
	svc, err := render.NewService(render.Options{
		Store:       catalog,
		Templates:   templates,
		Logger:      logger,
		Concurrency: cfg.RenderConcurrency,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure render service")
	}

	geminiAPIKey, err := credentials.NewStore(runner).GeminiAPIKey(ctx, cfg.GeminiAPIKey)
	if err != nil {
		logger.Warn().Err(err).Msg("worker: failed to load gemini api key from store")
	}
	geminiClient, err := genai.NewClient(genai.Options{
		APIKey:     geminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		Model:      cfg.GeminiModel,
		HTTPClient: &http.Client{Timeout: cfg.HTTPWriteTimeout},
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure gemini client")
	}
	if geminiClient.Synthetic() {
		logger.Warn().Str("model", geminiClient.Model()).Msg("worker: gemini api key missing, using synthetic image generation")
	}

	w, err := worker.New(worker.Options{
		Renders:      repo.NewRenderRepository(runner, logger),
		Service:      svc,
		Generator:    image.NewGeminiGenerator(geminiClient),
		Store:        fileStore,
		Logger:       logger,
		PollInterval: cfg.WorkerPollInterval,
		ImageSize:    cfg.ImageSize,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: invalid configuration")
	}

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}
