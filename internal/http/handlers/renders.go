package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"wrapstudio/internal/domain"
	"wrapstudio/internal/domain/jsoncfg"
	"wrapstudio/internal/middleware"
	"wrapstudio/internal/render"
	"wrapstudio/internal/revision"
	"wrapstudio/pkg/zip"
)

type renderAccepted struct {
	RenderID string              `json:"render_id"`
	ParentID string              `json:"parent_id,omitempty"`
	Status   domain.RenderStatus `json:"status"`
	Views    []string            `json:"views"`
	Change   string              `json:"change,omitempty"`
}

type renderResponse struct {
	*domain.Render
	Request json.RawMessage      `json:"request"`
	Assets  []domain.RenderAsset `json:"assets"`
}

// CreateRender validates and enqueues a render for the worker.
func (a *App) CreateRender(w http.ResponseWriter, r *http.Request) {
	if err := a.persistence(); err != nil {
		a.fail(w, r, err)
		return
	}
	req, err := a.decodeRenderRequest(w, r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	res := a.Render.Compile(req)
	rec := &domain.Render{
		Mode:        domain.ToolMode(req.Mode),
		Vehicle:     req.Vehicle,
		RequestJSON: jsoncfg.MustMarshal(req),
	}
	if err := a.Renders.Create(r.Context(), rec); err != nil {
		a.fail(w, r, err)
		return
	}
	a.Logger.Info().
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("render_id", rec.ID).
		Int("views", len(res.Prompts)).
		Msg("render enqueued")
	a.json(w, http.StatusAccepted, renderAccepted{RenderID: rec.ID, Status: rec.Status, Views: labels(res)})
}

// GetRender returns a render's status and its assets.
func (a *App) GetRender(w http.ResponseWriter, r *http.Request) {
	if err := a.persistence(); err != nil {
		a.fail(w, r, err)
		return
	}
	rec, assets, err := a.loadRender(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, renderResponse{Render: rec, Request: rec.RequestJSON, Assets: assets})
}

// RenderArchive streams a zip of the render's images plus prompt.txt.
func (a *App) RenderArchive(w http.ResponseWriter, r *http.Request) {
	if err := a.persistence(); err != nil {
		a.fail(w, r, err)
		return
	}
	rec, assets, err := a.loadRender(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if rec.Status != domain.RenderStatusSucceeded {
		a.error(w, http.StatusConflict, "not_ready", fmt.Sprintf("render is %s", rec.Status))
		return
	}
	files := make([]zip.Asset, 0, len(assets))
	for _, asset := range assets {
		data, err := a.Store.Read(r.Context(), asset.StorageKey)
		if err != nil {
			a.fail(w, r, fmt.Errorf("read asset %s: %w", asset.StorageKey, err))
			return
		}
		files = append(files, zip.Asset{Filename: path.Base(asset.StorageKey), MIME: asset.MIME, Data: data})
	}
	archive, err := zip.ArchiveAssets(files, rec.Prompt, rec.UpdatedAt)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=render-%s.zip", rec.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

type revisionRequest struct {
	Change string          `json:"change,omitempty"`
	Patch  *revision.Patch `json:"patch,omitempty"`
}

// CreateRevision applies one change to a finished render and enqueues the
// child. Invalid revisions answer 422 with the reason.
func (a *App) CreateRevision(w http.ResponseWriter, r *http.Request) {
	if err := a.persistence(); err != nil {
		a.fail(w, r, err)
		return
	}
	var body revisionRequest
	if err := decode(w, r, &body); err != nil {
		a.fail(w, r, err)
		return
	}
	var patch revision.Patch
	switch {
	case body.Patch != nil:
		patch = *body.Patch
	case strings.TrimSpace(body.Change) != "":
		patch = revision.ParseChange(body.Change)
	default:
		a.fail(w, r, fmt.Errorf("%w: change or patch is required", domain.ErrInvalidRequest))
		return
	}

	parent, err := a.Renders.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	parentReq, err := jsoncfg.Decode(parent.RequestJSON, a.imageSize())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	child, res, err := a.Render.Revise(parentReq, patch)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	rec := &domain.Render{
		ParentID:    parent.ID,
		Mode:        domain.ToolMode(child.Mode),
		Vehicle:     child.Vehicle,
		RequestJSON: jsoncfg.MustMarshal(child),
	}
	if err := a.Renders.Create(r.Context(), rec); err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusAccepted, renderAccepted{
		RenderID: rec.ID,
		ParentID: parent.ID,
		Status:   rec.Status,
		Views:    labels(res),
		Change:   child.Revision,
	})
}

func (a *App) loadRender(r *http.Request) (*domain.Render, []domain.RenderAsset, error) {
	rec, err := a.Renders.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return nil, nil, err
	}
	assets, err := a.Renders.ListAssets(r.Context(), rec.ID)
	if err != nil {
		return nil, nil, err
	}
	if assets == nil {
		assets = []domain.RenderAsset{}
	}
	for i := range assets {
		if assets[i].URL == "" {
			assets[i].URL = a.Store.URL(assets[i].StorageKey)
		}
	}
	return rec, assets, nil
}

func labels(res render.Result) []string {
	out := make([]string, len(res.Prompts))
	for i, p := range res.Prompts {
		out[i] = p.Label
	}
	return out
}
