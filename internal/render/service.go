// Package render wires the core components along the request data flow:
// interpret, resolve, estimate, place, compile and finally dispatch one
// image call per camera angle.
package render

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wrapstudio/internal/camera"
	"wrapstudio/internal/compiler"
	"wrapstudio/internal/domain"
	"wrapstudio/internal/domain/jsoncfg"
	"wrapstudio/internal/estimator"
	"wrapstudio/internal/interpreter"
	"wrapstudio/internal/placement"
	"wrapstudio/internal/providers/image"
	"wrapstudio/internal/revision"
	"wrapstudio/internal/swatch"
)

// DefaultConcurrency bounds parallel image calls per render.
const DefaultConcurrency = 4

// Options configures a Service. A nil Store resolves every color to the
// fallback profile; nil Templates uses the embedded template set.
type Options struct {
	Store       swatch.ColorStore
	Templates   *placement.TemplateSet
	Logger      zerolog.Logger
	Concurrency int
}

// Service is safe for concurrent use: it holds only immutable snapshots.
type Service struct {
	resolver    *swatch.Resolver
	templates   *placement.TemplateSet
	log         zerolog.Logger
	concurrency int
}

func NewService(opts Options) (*Service, error) {
	templates := opts.Templates
	if templates == nil {
		var err error
		templates, err = placement.DefaultTemplates()
		if err != nil {
			return nil, fmt.Errorf("load default templates: %w", err)
		}
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Service{
		resolver:    swatch.NewResolver(opts.Store),
		templates:   templates,
		log:         opts.Logger,
		concurrency: concurrency,
	}, nil
}

// NewNopService is NewService with a discarding logger and default stores.
func NewNopService() *Service {
	s, err := NewService(Options{Logger: zerolog.New(io.Discard)})
	if err != nil {
		panic(err)
	}
	return s
}

// Resolver exposes the profile resolver so revisions re-resolve against the
// same catalog snapshot.
func (s *Service) Resolver() *swatch.Resolver {
	return s.resolver
}

// Templates returns the vehicle template snapshot.
func (s *Service) Templates() *placement.TemplateSet {
	return s.templates
}

// ViewPrompt is the compiled prompt for one camera angle.
type ViewPrompt struct {
	Label    string             `json:"label"`
	Angle    domain.CameraAngle `json:"angle"`
	Prompt   string             `json:"prompt"`
	Sections []string           `json:"sections"`
}

// Result is everything the caller needs to render and persist a request.
type Result struct {
	Request    domain.PromptRequest              `json:"request"`
	Prompts    []ViewPrompt                      `json:"prompts"`
	Estimates  []domain.MaterialEstimate         `json:"estimates"`
	TotalSqft  float64                           `json:"total_sqft"`
	TotalYards int                               `json:"total_yards"`
	Placements map[string]domain.MappedPlacement `json:"placements,omitempty"`
	Width      int                               `json:"width"`
	Height     int                               `json:"height"`
}

// References lists every image URL the generator should see: the design,
// the pattern tile, panel designs and the user's references.
func (r Result) References() []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" {
			return
		}
		if _, dup := seen[u]; dup {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	add(r.Request.DesignImageURL)
	add(r.Request.Pattern.URL)
	for _, name := range sortedKeys(r.Placements) {
		add(r.Placements[name].SourceURL)
	}
	for _, u := range r.Request.ReferenceURLs {
		add(u)
	}
	return out
}

// Manifest is the prompt text of every view, used for archives and the
// stored render prompt.
func (r Result) Manifest() string {
	var b strings.Builder
	for i, p := range r.Prompts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "===== %s =====\n%s", p.Label, p.Prompt)
	}
	return b.String()
}

// Prepare turns a normalized wire request into the aggregate consumed by
// the compiler. Free text is interpreted only when no explicit zones are
// given.
func (s *Service) Prepare(r jsoncfg.RenderRequest) domain.PromptRequest {
	mode, _ := domain.ParseToolMode(r.Mode)
	req := domain.PromptRequest{
		Mode:           mode,
		Vehicle:        domain.ParseVehicle(r.Vehicle),
		Color:          r.Color,
		Manufacturer:   strings.TrimSpace(r.Manufacturer),
		Resolution:     r.Resolution(),
		StudioOverride: r.Studio,
		DesignImageURL: r.DesignImageURL,
		ReferenceURLs:  append([]string(nil), r.References...),
		Fade: domain.FadeOptions{
			Style:          domain.ParseFadeStyle(r.Fade.Style),
			Direction:      domain.ParseGradientDirection(r.Fade.Direction),
			SecondaryColor: r.Fade.SecondaryColor,
			InkFusion:      r.Fade.InkFusion,
			UIHex:          r.Fade.UIHex,
			RenderHex:      r.Fade.RenderHex,
		},
		Pattern:         domain.PatternOptions{Name: r.Pattern.Name, URL: r.Pattern.URL, Scale: r.Pattern.Scale},
		Panels:          r.AddPanels,
		HardEnforcement: r.Enforced(),
		Notes:           r.Notes,
		ViewType:        domain.ViewHero,
	}
	if r.Finish != "" {
		req.Finish = domain.NormalizeFinish(r.Finish)
	}
	if len(r.Views) > 0 {
		req.ViewType = domain.ParseViewType(r.Views[0])
	}

	switch {
	case len(r.Zones) > 0:
		req.Zones = make([]domain.ZoneSpec, len(r.Zones))
		for i, z := range r.Zones {
			req.Zones[i] = normalizeZone(z)
		}
	case r.Text != "":
		req.Zones = interpreter.Interpret(r.Text)
		if len(req.Zones) == 0 {
			s.log.Debug().Str("text", r.Text).Msg("render: no zones recognised in free text")
		}
	}

	if len(req.Zones) > 0 {
		req.Profiles = make([]domain.ColorProfile, len(req.Zones))
		for i, z := range req.Zones {
			req.Profiles[i] = s.resolve(z)
		}
	} else if c := strings.TrimSpace(r.Color); c != "" {
		req.Profiles = []domain.ColorProfile{s.resolve(domain.ZoneSpec{
			ZoneName:     "full",
			Color:        c,
			Finish:       string(req.PrimaryFinish()),
			Manufacturer: req.Manufacturer,
		})}
	}

	if len(r.Panels) > 0 {
		designs := make(map[string]placement.Design, len(r.Panels))
		for name, p := range r.Panels {
			designs[name] = placement.Design{URL: p.URL, Width: p.Width, Height: p.Height, Anchor: p.Anchor, Scale: p.Scale}
		}
		tmpl := s.templates.Template(req.Vehicle)
		req.Placements = placement.ApplyToVehicle(placement.BuildDesignProfiles(designs), tmpl)
		if len(req.Placements) < len(designs) {
			s.log.Debug().
				Str("template", tmpl.Key).
				Int("requested", len(designs)).
				Int("mapped", len(req.Placements)).
				Msg("render: some panels are not on the vehicle template")
		}
	}
	return req
}

func (s *Service) resolve(z domain.ZoneSpec) domain.ColorProfile {
	p, step := s.resolver.ResolveStep(z)
	if step == swatch.StepFallback {
		s.log.Debug().
			Str("zone", z.ZoneName).
			Str("color", z.Color).
			Str("finish", z.Finish).
			Str("manufacturer", z.Manufacturer).
			Msg("render: swatch lookup miss, using fallback profile")
	}
	return p
}

func normalizeZone(z domain.ZoneSpec) domain.ZoneSpec {
	z = z.Clone()
	z.ZoneName = strings.ToLower(strings.TrimSpace(z.ZoneName))
	z.Color = strings.TrimSpace(z.Color)
	if strings.TrimSpace(z.Finish) == "" {
		z.Finish = string(domain.FinishGloss)
	} else {
		z.Finish = string(domain.NormalizeFinish(z.Finish))
	}
	if strings.TrimSpace(z.Manufacturer) == "" {
		z.Manufacturer = domain.ManufacturerCustom
	}
	if z.FinishProfile == "" {
		z.FinishProfile = domain.FinishProfileSolid
	}
	return z
}

// Angles picks the camera angles for a request: spin frames, explicit
// views, or the tool's default view set.
func (s *Service) Angles(r jsoncfg.RenderRequest, req domain.PromptRequest) []domain.CameraAngle {
	if r.Spin > 0 {
		return camera.SpinAngles(r.Spin)
	}
	if len(r.Views) > 0 {
		out := make([]domain.CameraAngle, 0, len(r.Views))
		for _, v := range r.Views {
			vt := domain.ParseViewType(v)
			if !camera.Known(vt) {
				s.log.Debug().Str("view", v).Msg("render: unknown view type, using hero")
			}
			out = append(out, camera.AngleByViewType(vt))
		}
		return out
	}
	var material *domain.ColorProfile
	if p, ok := req.ProfileFor(0); ok {
		material = &p
	}
	return camera.AnglesForTool(req.Mode, material)
}

// Compile prepares r and compiles one prompt per camera angle. A child
// render's revision note is prepended to every prompt.
func (s *Service) Compile(r jsoncfg.RenderRequest) Result {
	req := s.Prepare(r)
	return s.CompilePrepared(r, req)
}

// CompilePrepared compiles an already prepared request.
func (s *Service) CompilePrepared(r jsoncfg.RenderRequest, req domain.PromptRequest) Result {
	angles := s.Angles(r, req)
	res := Result{
		Request:    req,
		Prompts:    make([]ViewPrompt, 0, len(angles)),
		Placements: req.Placements,
	}
	out := compilerResolution(req.Resolution)
	res.Width, res.Height = out.Width, out.Height

	for _, a := range angles {
		view := req
		view.Camera = a
		view.ViewType = domain.ViewType(a.Label)
		p := compiler.Build(view)
		if r.Revision != "" {
			p = p.Prepend(revision.PreambleSection(r.Revision))
		}
		res.Prompts = append(res.Prompts, ViewPrompt{
			Label:    a.Label,
			Angle:    a,
			Prompt:   p.String(),
			Sections: p.Names(),
		})
	}

	res.Estimates, res.TotalSqft, res.TotalYards = Estimates(req)
	return res
}

// Estimates sizes the film for every zone of a prepared request. A request
// colored as a whole is estimated as one "full" zone.
func Estimates(req domain.PromptRequest) ([]domain.MaterialEstimate, float64, int) {
	zones := req.Zones
	if len(zones) == 0 && len(req.Profiles) > 0 {
		zones = []domain.ZoneSpec{{ZoneName: "full", Color: req.Color, Finish: string(req.PrimaryFinish())}}
	}
	estimates := estimator.EstimateAll(req.Vehicle, zones, req.Profiles)
	sqft, yards := estimator.Totals(estimates)
	return estimates, sqft, yards
}

func compilerResolution(r domain.Resolution) domain.Resolution {
	if r == domain.Resolution1792 {
		return r
	}
	return domain.Resolution1920
}

// Revise applies a patch to a parent request and returns the child wire
// request plus its compiled result. The child carries explicit zones and
// the parent's resolved views, so nothing is re-derived from free text.
func (s *Service) Revise(parent jsoncfg.RenderRequest, p revision.Patch) (jsoncfg.RenderRequest, Result, error) {
	prev := s.Prepare(parent)
	rev, err := revision.BuildRevisionPrompt(prev, p, s.resolver)
	if err != nil {
		return jsoncfg.RenderRequest{}, Result{}, err
	}

	child := parent
	child.Text = ""
	child.Zones = append([]domain.ZoneSpec(nil), rev.Request.Zones...)
	child.Color = rev.Request.Color
	child.Manufacturer = rev.Request.Manufacturer
	if rev.Request.Finish != "" {
		child.Finish = string(rev.Request.Finish)
	}
	child.Fade.UIHex = rev.Request.Fade.UIHex
	child.Fade.RenderHex = rev.Request.Fade.RenderHex
	child.Revision = rev.Change
	if child.Spin == 0 && len(child.Views) == 0 {
		for _, a := range s.Angles(parent, prev) {
			child.Views = append(child.Views, a.Label)
		}
	}

	req := rev.Request
	req.ViewType = prev.ViewType
	return child, s.CompilePrepared(child, req), nil
}

// Render dispatches one image call per prompt, at most Concurrency at a
// time. Assets come back in prompt order. The first failure cancels the
// remaining calls.
func (s *Service) Render(ctx context.Context, res Result, gen image.Generator, requestID string) ([]image.Asset, error) {
	assets := make([]image.Asset, len(res.Prompts))
	refs := res.References()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, p := range res.Prompts {
		i, p := i, p
		g.Go(func() error {
			start := time.Now()
			asset, err := gen.Generate(gctx, image.GenerateRequest{
				Prompt:        p.Prompt,
				Label:         p.Label,
				Width:         res.Width,
				Height:        res.Height,
				ReferenceURLs: refs,
				RequestID:     requestID,
			})
			if err != nil {
				return fmt.Errorf("render %s: %w", p.Label, err)
			}
			if asset.Label == "" {
				asset.Label = p.Label
			}
			assets[i] = asset
			s.log.Info().
				Str("request_id", requestID).
				Str("view", p.Label).
				Dur("took", time.Since(start)).
				Msg("render: view generated")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assets, nil
}

func sortedKeys(m map[string]domain.MappedPlacement) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
