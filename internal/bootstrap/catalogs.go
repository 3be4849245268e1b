// Package bootstrap assembles the swatch catalog and vehicle templates the
// api and worker processes share.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"wrapstudio/internal/domain"
	"wrapstudio/internal/infra"
	"wrapstudio/internal/placement"
	"wrapstudio/internal/swatch"
)

// Catalogs layers swatches as database, then SWATCH_CATALOG_PATH, then the
// built-in catalog; the first match wins on lookup. Templates are layered the
// other way round since later templates replace earlier keys. Either
// repository may be nil.
func Catalogs(ctx context.Context, cfg *infra.Config, swatches domain.SwatchRepository, templates domain.TemplateRepository, logger zerolog.Logger) (*swatch.Catalog, *placement.TemplateSet, error) {
	var profiles []domain.ColorProfile
	if swatches != nil {
		stored, err := swatches.ListAll(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load swatches: %w", err)
		}
		profiles = append(profiles, stored...)
	}
	if path := catalogPath(cfg, true); path != "" {
		cat, err := swatch.LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		profiles = append(profiles, cat.Profiles()...)
	}
	builtin, err := swatch.DefaultCatalog()
	if err != nil {
		return nil, nil, fmt.Errorf("built-in swatch catalog: %w", err)
	}
	profiles = append(profiles, builtin.Profiles()...)
	catalog := swatch.NewCatalog(profiles)

	set, err := placement.DefaultTemplates()
	if err != nil {
		return nil, nil, fmt.Errorf("built-in template catalog: %w", err)
	}
	var extra []domain.VehicleTemplate
	if path := catalogPath(cfg, false); path != "" {
		loaded, err := placement.LoadTemplateFile(path)
		if err != nil {
			return nil, nil, err
		}
		extra = append(extra, loaded...)
	}
	if templates != nil {
		stored, err := templates.ListAll(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load vehicle templates: %w", err)
		}
		extra = append(extra, stored...)
	}
	if len(extra) > 0 {
		if set, err = set.Merge(extra); err != nil {
			return nil, nil, err
		}
	}

	logger.Info().
		Int("swatches", catalog.Len()).
		Int("templates", len(set.Templates())).
		Msg("catalogs loaded")
	return catalog, set, nil
}

func catalogPath(cfg *infra.Config, swatches bool) string {
	if cfg == nil {
		return ""
	}
	if swatches {
		return strings.TrimSpace(cfg.SwatchCatalogPath)
	}
	return strings.TrimSpace(cfg.TemplateCatalogPath)
}
