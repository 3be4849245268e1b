package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"wrapstudio/internal/adapter/repo"
	"wrapstudio/internal/bootstrap"
	"wrapstudio/internal/domain"
	"wrapstudio/internal/http/handlers"
	httpapi "wrapstudio/internal/http/httpapi"
	"wrapstudio/internal/infra"
	"wrapstudio/internal/render"
	"wrapstudio/internal/storage"
)

func main() {
	// Optional .env
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		pool      *pgxpool.Pool
		renders   domain.RenderRepository
		swatches  domain.SwatchRepository
		templates domain.TemplateRepository
	)
	if cfg.PersistenceEnabled() {
		pool, err = infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		runner := infra.NewSQLRunner(pool, logger)
		renders = repo.NewRenderRepository(runner, logger)
		swatches = repo.NewSwatchRepository(runner)
		templates = repo.NewTemplateRepository(runner)
	} else {
		logger.Warn().Msg("DATABASE_URL not set, render endpoints disabled")
	}

	catalog, templateSet, err := bootstrap.Catalogs(ctx, cfg, swatches, templates, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalogs")
	}

	svc, err := render.NewService(render.Options{
		Store:       catalog,
		Templates:   templateSet,
		Logger:      logger,
		Concurrency: cfg.RenderConcurrency,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure render service")
	}

	var fileStore *storage.FileStore
	if renders != nil {
		fileStore, err = storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure storage")
		}
	}

	app := handlers.NewApp(cfg, logger, svc, renders, fileStore)
	server := infra.NewHTTPServer(cfg, httpapi.NewRouter(app))

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		errCh <- server.Start()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
