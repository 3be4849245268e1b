package image

import (
	"context"
	"strings"
)

// GenerateRequest is one compiled prompt rendered at an explicit 16:9 size.
type GenerateRequest struct {
	Prompt        string
	Label         string
	Width         int
	Height        int
	ReferenceURLs []string
	RequestID     string
}

// Asset is a generated image.
type Asset struct {
	Label  string
	URL    string
	Format string
	Width  int
	Height int
	Data   []byte
}

// Generator is the contract implemented by image providers. One call
// renders exactly one image.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (Asset, error)
}

// Extension maps an image MIME type to a file extension.
func Extension(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/webp":
		return "webp"
	default:
		return "png"
	}
}
