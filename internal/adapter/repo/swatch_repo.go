package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"wrapstudio/internal/domain"
	"wrapstudio/internal/infra"
	"wrapstudio/internal/sqlinline"
)

// SwatchRepositoryPG implements domain.SwatchRepository.
type SwatchRepositoryPG struct {
	db infra.SQLExecutor
}

// NewSwatchRepository constructs the repository.
func NewSwatchRepository(db infra.SQLExecutor) *SwatchRepositoryPG {
	return &SwatchRepositoryPG{db: db}
}

// ListAll loads every swatch as a validated profile.
func (r *SwatchRepositoryPG) ListAll(ctx context.Context) ([]domain.ColorProfile, error) {
	rows, err := r.db.Query(ctx, sqlinline.QSwatchListAll)
	if err != nil {
		return nil, fmt.Errorf("list swatches: %w", err)
	}
	defer rows.Close()

	var out []domain.ColorProfile
	for rows.Next() {
		var (
			p             domain.ColorProfile
			finish        string
			finishProfile []byte
			l, a, b       *float64
		)
		if err := rows.Scan(
			&p.Manufacturer,
			&p.ColorName,
			&p.ProductCode,
			&p.Hex,
			&l, &a, &b,
			&finish,
			&finishProfile,
			&p.Reflectivity,
			&p.MetallicFlake,
			&p.Variant,
		); err != nil {
			return nil, fmt.Errorf("scan swatch: %w", err)
		}
		p.Finish = domain.NormalizeFinish(finish)
		p.FinishProfile = domain.DefaultFinishProfile(p.Finish)
		if len(finishProfile) > 0 {
			if err := json.Unmarshal(finishProfile, &p.FinishProfile); err != nil {
				return nil, fmt.Errorf("decode finish profile of %s %s: %w", p.Manufacturer, p.ColorName, err)
			}
		}
		if l != nil && a != nil && b != nil {
			p.LAB = &domain.LAB{L: *l, A: *a, B: *b}
		}
		p.MaterialValidated = true
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate swatches: %w", err)
	}
	return out, nil
}

// Upsert inserts or replaces a swatch keyed by manufacturer, name and finish.
func (r *SwatchRepositoryPG) Upsert(ctx context.Context, p domain.ColorProfile) error {
	var l, a, b *float64
	if p.LAB != nil {
		l, a, b = &p.LAB.L, &p.LAB.A, &p.LAB.B
	}
	variant := p.Variant
	if variant == "" {
		variant = domain.FinishProfileSolid
	}
	finishProfile, err := json.Marshal(p.FinishProfile)
	if err != nil {
		return fmt.Errorf("encode finish profile: %w", err)
	}
	_, err = r.db.Exec(ctx, sqlinline.QSwatchUpsert,
		p.Manufacturer,
		p.ColorName,
		p.ProductCode,
		p.Hex,
		l, a, b,
		string(p.Finish),
		finishProfile,
		p.Reflectivity,
		p.MetallicFlake,
		variant,
	)
	if err != nil {
		return fmt.Errorf("upsert swatch %s %s: %w", p.Manufacturer, p.ColorName, err)
	}
	return nil
}

var _ domain.SwatchRepository = (*SwatchRepositoryPG)(nil)
