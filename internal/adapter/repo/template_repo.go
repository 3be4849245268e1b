package repo

import (
	"context"
	"fmt"

	"wrapstudio/internal/domain"
	"wrapstudio/internal/infra"
	"wrapstudio/internal/sqlinline"
)

// TemplateRepositoryPG implements domain.TemplateRepository.
type TemplateRepositoryPG struct {
	db infra.SQLExecutor
}

// NewTemplateRepository constructs the repository.
func NewTemplateRepository(db infra.SQLExecutor) *TemplateRepositoryPG {
	return &TemplateRepositoryPG{db: db}
}

// ListAll groups the panel rows into templates, ordered by key.
func (r *TemplateRepositoryPG) ListAll(ctx context.Context) ([]domain.VehicleTemplate, error) {
	rows, err := r.db.Query(ctx, sqlinline.QTemplatePanelsListAll)
	if err != nil {
		return nil, fmt.Errorf("list template panels: %w", err)
	}
	defer rows.Close()

	var out []domain.VehicleTemplate
	for rows.Next() {
		var (
			key, panel string
			box        domain.PanelBox
		)
		if err := rows.Scan(&key, &panel, &box.X, &box.Y, &box.Width, &box.Height); err != nil {
			return nil, fmt.Errorf("scan template panel: %w", err)
		}
		if n := len(out); n == 0 || out[n-1].Key != key {
			out = append(out, domain.VehicleTemplate{Key: key, Panels: map[string]domain.PanelBox{}})
		}
		out[len(out)-1].Panels[panel] = box
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template panels: %w", err)
	}
	return out, nil
}

// Upsert stores every panel of t.
func (r *TemplateRepositoryPG) Upsert(ctx context.Context, t domain.VehicleTemplate) error {
	for panel, box := range t.Panels {
		if _, err := r.db.Exec(ctx, sqlinline.QTemplatePanelUpsert, t.Key, panel, box.X, box.Y, box.Width, box.Height); err != nil {
			return fmt.Errorf("upsert template %s panel %s: %w", t.Key, panel, err)
		}
	}
	return nil
}

var _ domain.TemplateRepository = (*TemplateRepositoryPG)(nil)
