package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"wrapstudio/internal/domain"
	"wrapstudio/internal/infra"
	"wrapstudio/internal/sqlinline"
)

// RenderRepositoryPG implements domain.RenderRepository.
type RenderRepositoryPG struct {
	db     infra.SQLExecutor
	logger zerolog.Logger
}

// NewRenderRepository constructs the repository.
func NewRenderRepository(db infra.SQLExecutor, logger zerolog.Logger) *RenderRepositoryPG {
	return &RenderRepositoryPG{db: db, logger: logger}
}

// Create inserts a QUEUED render. An empty ID is filled with a new UUID.
func (r *RenderRepositoryPG) Create(ctx context.Context, render *domain.Render) error {
	if render == nil {
		return fmt.Errorf("render is required")
	}
	if render.ID == "" {
		render.ID = uuid.NewString()
	}
	render.Status = domain.RenderStatusQueued
	err := r.db.QueryRow(ctx, sqlinline.QRenderInsert,
		render.ID,
		nullableString(render.ParentID),
		string(render.Mode),
		render.Vehicle,
		render.RequestJSON,
	).Scan(&render.CreatedAt, &render.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert render: %w", err)
	}
	r.logger.Info().Str("render_id", render.ID).Str("parent_id", render.ParentID).Msg("render queued")
	return nil
}

// GetByID returns domain.ErrNotFound for an unknown or malformed id.
func (r *RenderRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Render, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	render, err := scanRender(r.db.QueryRow(ctx, sqlinline.QRenderGetByID, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get render %s: %w", id, err)
	}
	return render, nil
}

// ClaimNext moves the oldest QUEUED render to RUNNING. It returns nil when
// the queue is empty.
func (r *RenderRepositoryPG) ClaimNext(ctx context.Context) (*domain.Render, error) {
	render, err := scanRender(r.db.QueryRow(ctx, sqlinline.QRenderClaimNext))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("claim render: %w", err)
	}
	return render, nil
}

// UpdateStatus sets the status and error. An empty prompt keeps the stored one.
func (r *RenderRepositoryPG) UpdateStatus(ctx context.Context, id string, status domain.RenderStatus, prompt string, errMsg string) error {
	tag, err := r.db.Exec(ctx, sqlinline.QRenderUpdateStatus, id, string(status), prompt, errMsg)
	if err != nil {
		return fmt.Errorf("update render %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveAssets upserts assets by (render, label), assigning missing IDs.
func (r *RenderRepositoryPG) SaveAssets(ctx context.Context, renderID string, assets []domain.RenderAsset) error {
	for i := range assets {
		a := &assets[i]
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		a.RenderID = renderID
		if _, err := r.db.Exec(ctx, sqlinline.QRenderAssetInsert,
			a.ID,
			renderID,
			a.Label,
			a.StorageKey,
			a.URL,
			a.MIME,
			a.Width,
			a.Height,
			a.Bytes,
			a.Prompt,
		); err != nil {
			return fmt.Errorf("save asset %s/%s: %w", renderID, a.Label, err)
		}
	}
	return nil
}

// ListAssets returns a render's assets in creation order.
func (r *RenderRepositoryPG) ListAssets(ctx context.Context, renderID string) ([]domain.RenderAsset, error) {
	rows, err := r.db.Query(ctx, sqlinline.QRenderAssetsList, renderID)
	if err != nil {
		return nil, fmt.Errorf("list assets %s: %w", renderID, err)
	}
	defer rows.Close()

	var out []domain.RenderAsset
	for rows.Next() {
		var a domain.RenderAsset
		if err := rows.Scan(
			&a.ID,
			&a.RenderID,
			&a.Label,
			&a.StorageKey,
			&a.URL,
			&a.MIME,
			&a.Width,
			&a.Height,
			&a.Bytes,
			&a.Prompt,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assets: %w", err)
	}
	return out, nil
}

func scanRender(row pgx.Row) (*domain.Render, error) {
	var (
		render   domain.Render
		parentID *string
		status   string
		mode     string
	)
	if err := row.Scan(
		&render.ID,
		&parentID,
		&status,
		&mode,
		&render.Vehicle,
		&render.RequestJSON,
		&render.Prompt,
		&render.Error,
		&render.CreatedAt,
		&render.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if parentID != nil {
		render.ParentID = *parentID
	}
	render.Status = domain.RenderStatus(status)
	render.Mode = domain.ToolMode(mode)
	return &render, nil
}

func nullableString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

var _ domain.RenderRepository = (*RenderRepositoryPG)(nil)
