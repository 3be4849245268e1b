package handlers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"wrapstudio/internal/camera"
	"wrapstudio/internal/domain"
	"wrapstudio/internal/domain/jsoncfg"
	"wrapstudio/internal/interpreter"
	"wrapstudio/internal/placement"
	"wrapstudio/internal/render"
)

type interpretRequest struct {
	Text string `json:"text"`
}

type interpretResponse struct {
	Zones     []domain.ZoneSpec     `json:"zones"`
	Detection interpreter.Detection `json:"detection"`
}

// Interpret turns free text into zone specs.
func (a *App) Interpret(w http.ResponseWriter, r *http.Request) {
	var req interpretRequest
	if err := decode(w, r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	zones := interpreter.Interpret(req.Text)
	if zones == nil {
		zones = []domain.ZoneSpec{}
	}
	a.json(w, http.StatusOK, interpretResponse{Zones: zones, Detection: interpreter.Detect(req.Text)})
}

type estimateRequest struct {
	Vehicle      string            `json:"vehicle"`
	Text         string            `json:"text,omitempty"`
	Zones        []domain.ZoneSpec `json:"zones,omitempty"`
	Color        string            `json:"color,omitempty"`
	Finish       string            `json:"finish,omitempty"`
	Manufacturer string            `json:"manufacturer,omitempty"`
}

type estimateResponse struct {
	Vehicle    domain.VehicleDescriptor  `json:"vehicle"`
	Estimates  []domain.MaterialEstimate `json:"estimates"`
	TotalSqft  float64                   `json:"total_sqft"`
	TotalYards int                       `json:"total_yards"`
}

// Estimates sizes the film for each zone.
func (a *App) Estimates(w http.ResponseWriter, r *http.Request) {
	var body estimateRequest
	if err := decode(w, r, &body); err != nil {
		a.fail(w, r, err)
		return
	}
	req := jsoncfg.RenderRequest{
		Vehicle:      body.Vehicle,
		Text:         body.Text,
		Zones:        body.Zones,
		Color:        body.Color,
		Finish:       body.Finish,
		Manufacturer: body.Manufacturer,
	}
	req.Normalize(a.imageSize())
	if err := req.Validate(); err != nil {
		a.fail(w, r, err)
		return
	}
	prepared := a.Render.Prepare(req)
	estimates, sqft, yards := render.Estimates(prepared)
	a.json(w, http.StatusOK, estimateResponse{Vehicle: prepared.Vehicle, Estimates: estimates, TotalSqft: sqft, TotalYards: yards})
}

type anglesResponse struct {
	Views  []domain.ViewType    `json:"views,omitempty"`
	Angles []domain.CameraAngle `json:"angles"`
}

// Angles lists the preset angles a tool renders. variant selects the
// ColorPro material class: solid, pearl or color_flip.
func (a *App) Angles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode, ok := domain.ParseToolMode(q.Get("tool"))
	if !ok && q.Get("tool") != "" {
		a.fail(w, r, fmt.Errorf("%w: unknown tool %q", domain.ErrInvalidRequest, q.Get("tool")))
		return
	}
	var material *domain.ColorProfile
	if v := strings.TrimSpace(q.Get("variant")); v != "" {
		material = &domain.ColorProfile{Variant: strings.ToLower(v)}
	}
	a.json(w, http.StatusOK, anglesResponse{
		Views:  camera.ViewsForTool(mode, material),
		Angles: camera.AnglesForTool(mode, material),
	})
}

// SpinAngles returns a turntable sequence.
func (a *App) SpinAngles(w http.ResponseWriter, r *http.Request) {
	count := camera.DefaultSpinCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > jsoncfg.MaxSpin {
			a.fail(w, r, fmt.Errorf("%w: count must be between 1 and %d", domain.ErrInvalidRequest, jsoncfg.MaxSpin))
			return
		}
		count = n
	}
	a.json(w, http.StatusOK, anglesResponse{Angles: camera.SpinAngles(count)})
}

// AngleByView returns one preset. Unknown views resolve to hero.
func (a *App) AngleByView(w http.ResponseWriter, r *http.Request) {
	view := domain.ParseViewType(chi.URLParam(r, "view"))
	a.json(w, http.StatusOK, map[string]any{
		"view":        view,
		"known":       camera.Known(view),
		"angle":       camera.AngleByViewType(view),
		"description": camera.Describe(camera.AngleByViewType(view)),
	})
}

type placementsRequest struct {
	Vehicle string                         `json:"vehicle"`
	Panels  map[string]jsoncfg.PanelDesign `json:"panels"`
}

type placementsResponse struct {
	Template     string                            `json:"template"`
	Placements   map[string]domain.MappedPlacement `json:"placements"`
	Skipped      []string                          `json:"skipped,omitempty"`
	Instructions string                            `json:"instructions"`
}

// Placements fits uploaded designs onto the vehicle's panel template.
func (a *App) Placements(w http.ResponseWriter, r *http.Request) {
	var body placementsRequest
	if err := decode(w, r, &body); err != nil {
		a.fail(w, r, err)
		return
	}
	if len(body.Panels) == 0 {
		a.fail(w, r, fmt.Errorf("%w: panels is required", domain.ErrInvalidRequest))
		return
	}
	designs := make(map[string]placement.Design, len(body.Panels))
	for name, p := range body.Panels {
		if strings.TrimSpace(p.URL) == "" {
			a.fail(w, r, fmt.Errorf("%w: panels.%s.url is required", domain.ErrInvalidRequest, name))
			return
		}
		designs[name] = placement.Design{URL: p.URL, Width: p.Width, Height: p.Height, Anchor: p.Anchor, Scale: p.Scale}
	}
	tmpl := a.Render.Templates().Template(domain.ParseVehicle(body.Vehicle))
	profiles := placement.BuildDesignProfiles(designs)
	mapped := placement.ApplyToVehicle(profiles, tmpl)

	var skipped []string
	for key := range profiles {
		if _, ok := mapped[key]; !ok {
			skipped = append(skipped, key)
		}
	}
	sort.Strings(skipped)
	a.json(w, http.StatusOK, placementsResponse{
		Template:     tmpl.Key,
		Placements:   mapped,
		Skipped:      skipped,
		Instructions: placement.Instructions(mapped),
	})
}

// Prompts compiles a render request without rendering it.
func (a *App) Prompts(w http.ResponseWriter, r *http.Request) {
	req, err := a.decodeRenderRequest(w, r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, a.Render.Compile(req))
}

func (a *App) decodeRenderRequest(w http.ResponseWriter, r *http.Request) (jsoncfg.RenderRequest, error) {
	var req jsoncfg.RenderRequest
	if err := decode(w, r, &req); err != nil {
		return req, err
	}
	// Revision notes are only set on child renders.
	req.Revision = ""
	req.Normalize(a.imageSize())
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}
