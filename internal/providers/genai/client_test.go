package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateImageRemote(t *testing.T) {
	data := pngBytes(t, 32, 18)
	var got geminiGenerateContentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "secret" {
			t.Errorf("api key header = %q", r.Header.Get("x-goog-api-key"))
		}
		if !strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent") {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		resp := geminiGenerateContentResponse{Candidates: []geminiCandidate{{
			Content: geminiContent{Parts: []geminiPart{
				{Text: "here you go"},
				{InlineData: &geminiInlineData{MimeType: "image/png", Data: base64.StdEncoding.EncodeToString(data)}},
			}},
		}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, err := NewClient(Options{APIKey: "secret", BaseURL: srv.URL, Model: "test-model"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	asset, err := c.GenerateImage(context.Background(), ImageRequest{
		Prompt:        "ASPECT RATIO (HARD LOCK)",
		Width:         1792,
		Height:        1008,
		ReferenceURLs: []string{"https://cdn.example/ref.jpg", ""},
	})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if asset.Width != 32 || asset.Height != 18 || asset.Format != "image/png" {
		t.Fatalf("asset = %+v", asset)
	}

	parts := got.Contents[0].Parts
	if len(parts) != 2 || !strings.Contains(parts[0].Text, "1792x1008") {
		t.Fatalf("parts = %+v", parts)
	}
	if parts[1].FileData == nil || parts[1].FileData.MimeType != "image/jpeg" {
		t.Fatalf("reference part = %+v", parts[1])
	}
	if got.GenerationConfig.ImageConfig.AspectRatio != "16:9" {
		t.Fatalf("aspect = %q", got.GenerationConfig.ImageConfig.AspectRatio)
	}
}

func TestGenerateImageSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	c, _ := NewClient(Options{APIKey: "secret", BaseURL: srv.URL})
	_, err := c.GenerateImage(context.Background(), ImageRequest{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("err = %v", err)
	}
}

func TestGenerateImageNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"sorry"}]}}]}`))
	}))
	defer srv.Close()

	c, _ := NewClient(Options{APIKey: "secret", BaseURL: srv.URL})
	if _, err := c.GenerateImage(context.Background(), ImageRequest{Prompt: "x"}); err == nil {
		t.Fatal("expected error for a response without image parts")
	}
}

func TestSyntheticImageIsDeterministic(t *testing.T) {
	c, _ := NewClient(Options{})
	if !c.Synthetic() || c.Model() != DefaultModel {
		t.Fatalf("defaults: synthetic=%v model=%q", c.Synthetic(), c.Model())
	}
	req := ImageRequest{Prompt: "p", Width: 64, Height: 36, RequestID: "r1"}
	a, err := c.GenerateImage(context.Background(), req)
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	b, _ := c.GenerateImage(context.Background(), req)
	if !bytes.Equal(a.Data, b.Data) {
		t.Fatal("synthetic output should be deterministic")
	}
	w, h := decodeImageDimensions(a.Data)
	if w != 64 || h != 36 {
		t.Fatalf("dimensions = %dx%d", w, h)
	}
}

func TestGenerateImageHonoursCancelledContext(t *testing.T) {
	c, _ := NewClient(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.GenerateImage(ctx, ImageRequest{}); err == nil {
		t.Fatal("expected context error")
	}
}
