// Package worker drains the render queue: it claims one queued render at a
// time, compiles its prompts, renders every view and stores the images.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wrapstudio/internal/domain"
	"wrapstudio/internal/domain/jsoncfg"
	"wrapstudio/internal/providers/image"
	"wrapstudio/internal/render"
	"wrapstudio/internal/storage"
)

const DefaultPollInterval = 2 * time.Second

// Options wires a Worker. PollInterval defaults to DefaultPollInterval.
type Options struct {
	Renders      domain.RenderRepository
	Service      *render.Service
	Generator    image.Generator
	Store        *storage.FileStore
	Logger       zerolog.Logger
	PollInterval time.Duration
	ImageSize    string
}

type Worker struct {
	renders   domain.RenderRepository
	svc       *render.Service
	gen       image.Generator
	store     *storage.FileStore
	logger    zerolog.Logger
	poll      time.Duration
	imageSize string
}

func New(opts Options) (*Worker, error) {
	switch {
	case opts.Renders == nil:
		return nil, errors.New("worker: render repository is required")
	case opts.Service == nil:
		return nil, errors.New("worker: render service is required")
	case opts.Generator == nil:
		return nil, errors.New("worker: image generator is required")
	case opts.Store == nil:
		return nil, errors.New("worker: file store is required")
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Worker{
		renders:   opts.Renders,
		svc:       opts.Service,
		gen:       opts.Generator,
		store:     opts.Store,
		logger:    opts.Logger,
		poll:      poll,
		imageSize: opts.ImageSize,
	}, nil
}

// Run processes renders until ctx is cancelled. Claim errors are logged and
// retried after the poll interval.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info().Dur("poll", w.poll).Msg("worker: started")
	for {
		processed, err := w.ProcessNext(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			w.logger.Error().Err(err).Msg("worker: failed to claim render")
		}
		if processed && err == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.poll):
		}
	}
}

// ProcessNext claims and processes one render. It reports false when the
// queue was empty. A failed render is marked FAILED and is not an error.
func (w *Worker) ProcessNext(ctx context.Context) (bool, error) {
	rec, err := w.renders.ClaimNext(ctx)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}
	log := w.logger.With().Str("render_id", rec.ID).Logger()
	log.Info().Str("mode", string(rec.Mode)).Str("vehicle", rec.Vehicle).Msg("worker: picked render")

	started := time.Now()
	manifest, err := w.process(ctx, rec)
	status, errMsg := domain.RenderStatusSucceeded, ""
	if err != nil {
		status, errMsg = domain.RenderStatusFailed, err.Error()
		log.Error().Err(err).Msg("worker: render failed")
	} else {
		log.Info().Dur("took", time.Since(started)).Msg("worker: render succeeded")
	}

	// The status write must land even when shutdown cancelled the render.
	updateCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := w.renders.UpdateStatus(updateCtx, rec.ID, status, manifest, errMsg); err != nil {
		log.Error().Err(err).Msg("worker: update status failed")
	}
	return true, nil
}

func (w *Worker) process(ctx context.Context, rec *domain.Render) (manifest string, err error) {
	req, err := jsoncfg.Decode(rec.RequestJSON, w.imageSize)
	if err != nil {
		return "", err
	}
	res := w.svc.Compile(req)
	assets, err := w.svc.Render(ctx, res, w.gen, rec.ID)
	if err != nil {
		return res.Manifest(), err
	}

	stored := make([]domain.RenderAsset, 0, len(assets))
	defer func() {
		if err != nil {
			w.discard(ctx, rec.ID, stored)
		}
	}()
	for i, a := range assets {
		if len(a.Data) == 0 {
			return res.Manifest(), fmt.Errorf("%w: %s returned no image data", domain.ErrProviderFailure, a.Label)
		}
		key, err := w.store.Write(ctx, storage.RenderKey(rec.ID, a.Label, image.Extension(a.Format)), a.Data)
		if err != nil {
			return res.Manifest(), fmt.Errorf("store %s: %w", a.Label, err)
		}
		stored = append(stored, domain.RenderAsset{
			ID:         uuid.NewString(),
			RenderID:   rec.ID,
			Label:      a.Label,
			StorageKey: key,
			URL:        w.store.URL(key),
			MIME:       a.Format,
			Width:      a.Width,
			Height:     a.Height,
			Bytes:      int64(len(a.Data)),
			Prompt:     res.Prompts[i].Prompt,
		})
	}
	if err := w.renders.SaveAssets(ctx, rec.ID, stored); err != nil {
		return res.Manifest(), fmt.Errorf("save assets: %w", err)
	}
	return res.Manifest(), nil
}

// discard removes the images already written for a render that failed.
func (w *Worker) discard(ctx context.Context, renderID string, assets []domain.RenderAsset) {
	if len(assets) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	for _, a := range assets {
		if err := w.store.Delete(ctx, a.StorageKey); err != nil {
			w.logger.Warn().Err(err).Str("render_id", renderID).Str("key", a.StorageKey).Msg("worker: discard partial image failed")
		}
	}
}
