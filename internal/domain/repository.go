package domain

import "context"

// SwatchRepository loads the swatch catalog snapshot.
type SwatchRepository interface {
	ListAll(ctx context.Context) ([]ColorProfile, error)
	Upsert(ctx context.Context, profile ColorProfile) error
}

// TemplateRepository loads vehicle panel templates.
type TemplateRepository interface {
	ListAll(ctx context.Context) ([]VehicleTemplate, error)
}

// RenderRepository persists render requests and their generated assets.
type RenderRepository interface {
	Create(ctx context.Context, render *Render) error
	GetByID(ctx context.Context, id string) (*Render, error)
	ClaimNext(ctx context.Context) (*Render, error)
	UpdateStatus(ctx context.Context, id string, status RenderStatus, prompt string, errMsg string) error
	SaveAssets(ctx context.Context, renderID string, assets []RenderAsset) error
	ListAssets(ctx context.Context, renderID string) ([]RenderAsset, error)
}
