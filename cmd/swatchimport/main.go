package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"wrapstudio/internal/adapter/repo"
	"wrapstudio/internal/domain"
	"wrapstudio/internal/infra"
	"wrapstudio/internal/placement"
	"wrapstudio/internal/swatch"
)

func main() {
	_ = godotenv.Load()

	var (
		catalogFlag   string
		templatesFlag string
		defaultsFlag  bool
		dryRunFlag    bool
	)
	flag.StringVar(&catalogFlag, "catalog", "", "YAML swatch catalog to import")
	flag.StringVar(&templatesFlag, "templates", "", "YAML vehicle template catalog to import")
	flag.BoolVar(&defaultsFlag, "defaults", false, "import the built-in swatch and template catalogs")
	flag.BoolVar(&dryRunFlag, "dry-run", false, "validate the catalogs without writing to the database")
	flag.Parse()

	catalogPath := strings.TrimSpace(catalogFlag)
	templatesPath := strings.TrimSpace(templatesFlag)
	if catalogPath == "" && templatesPath == "" && !defaultsFlag {
		exitWithError(errors.New("one of -catalog, -templates or -defaults must be provided"))
	}

	swatches, templates, err := loadCatalogs(catalogPath, templatesPath, defaultsFlag)
	if err != nil {
		exitWithError(err)
	}
	fmt.Printf("loaded %d swatches and %d vehicle templates\n", len(swatches), len(templates))
	if dryRunFlag {
		return
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli").With().Str("cmd", "swatchimport").Logger()
	runner := infra.NewSQLRunner(pool, logger)

	swatchRepo := repo.NewSwatchRepository(runner)
	for _, p := range swatches {
		if err := swatchRepo.Upsert(ctx, p); err != nil {
			exitWithError(fmt.Errorf("failed to upsert swatch %s %s: %w", p.Manufacturer, p.ColorName, err))
		}
	}
	templateRepo := repo.NewTemplateRepository(runner)
	for _, t := range templates {
		if err := templateRepo.Upsert(ctx, t); err != nil {
			exitWithError(fmt.Errorf("failed to upsert template %s: %w", t.Key, err))
		}
	}
	fmt.Printf("imported %d swatches and %d vehicle templates\n", len(swatches), len(templates))
}

func loadCatalogs(catalogPath, templatesPath string, defaults bool) ([]domain.ColorProfile, []domain.VehicleTemplate, error) {
	var (
		swatches  []domain.ColorProfile
		templates []domain.VehicleTemplate
	)
	if defaults {
		cat, err := swatch.DefaultCatalog()
		if err != nil {
			return nil, nil, fmt.Errorf("built-in swatch catalog: %w", err)
		}
		swatches = append(swatches, cat.Profiles()...)
		set, err := placement.DefaultTemplates()
		if err != nil {
			return nil, nil, fmt.Errorf("built-in template catalog: %w", err)
		}
		templates = append(templates, set.Templates()...)
	}
	if catalogPath != "" {
		cat, err := swatch.LoadFile(catalogPath)
		if err != nil {
			return nil, nil, err
		}
		swatches = append(swatches, cat.Profiles()...)
	}
	if templatesPath != "" {
		loaded, err := placement.LoadTemplateFile(templatesPath)
		if err != nil {
			return nil, nil, err
		}
		if _, err := placement.NewTemplateSet(loaded); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", templatesPath, err)
		}
		templates = append(templates, loaded...)
	}
	return swatches, templates, nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
