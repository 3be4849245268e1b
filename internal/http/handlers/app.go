package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"wrapstudio/internal/domain"
	"wrapstudio/internal/infra"
	"wrapstudio/internal/middleware"
	"wrapstudio/internal/render"
	"wrapstudio/internal/storage"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// App holds the dependencies shared by every handler. Renders and Store are
// nil when persistence is disabled; the render endpoints then answer 503.
type App struct {
	Config  *infra.Config
	Logger  zerolog.Logger
	Render  *render.Service
	Renders domain.RenderRepository
	Store   *storage.FileStore
}

func NewApp(cfg *infra.Config, logger zerolog.Logger, svc *render.Service, renders domain.RenderRepository, store *storage.FileStore) *App {
	return &App{Config: cfg, Logger: logger, Render: svc, Renders: renders, Store: store}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}

// fail maps domain errors onto HTTP statuses. Anything unrecognised is a 500
// and is logged.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		a.error(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domain.ErrInvalidRevision):
		a.error(w, http.StatusUnprocessableEntity, "invalid_revision", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, domain.ErrPersistenceDisabled):
		a.error(w, http.StatusServiceUnavailable, "persistence_disabled", "renders need a configured database")
	case errors.Is(err, domain.ErrProviderFailure):
		a.error(w, http.StatusBadGateway, "provider_failure", err.Error())
	default:
		a.Logger.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// decode reads a JSON body into v, rejecting unknown fields and trailing data.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", domain.ErrInvalidRequest, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: body must contain a single JSON object", domain.ErrInvalidRequest)
	}
	return nil
}

func (a *App) persistence() error {
	if a.Renders == nil || a.Store == nil {
		return domain.ErrPersistenceDisabled
	}
	return nil
}

func (a *App) imageSize() string {
	if a.Config == nil {
		return ""
	}
	return a.Config.ImageSize
}
