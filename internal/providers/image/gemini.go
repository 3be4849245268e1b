package image

import (
	"context"
	"fmt"

	"wrapstudio/internal/domain"
	"wrapstudio/internal/providers/genai"
)

type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (Asset, error) {
	asset, err := g.client.GenerateImage(ctx, genai.ImageRequest{
		Prompt:        req.Prompt,
		Width:         req.Width,
		Height:        req.Height,
		ReferenceURLs: req.ReferenceURLs,
		RequestID:     req.RequestID,
	})
	if err != nil {
		if ctx.Err() != nil {
			return Asset{}, err
		}
		return Asset{}, fmt.Errorf("%w: gemini %s: %v", domain.ErrProviderFailure, req.Label, err)
	}
	return Asset{
		Label:  req.Label,
		URL:    asset.URL,
		Format: asset.Format,
		Width:  asset.Width,
		Height: asset.Height,
		Data:   asset.Data,
	}, nil
}

var _ Generator = (*GeminiGenerator)(nil)
