package jsoncfg

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"wrapstudio/internal/domain"
)

// PanelDesign is one uploaded design image placed on a named panel.
type PanelDesign struct {
	URL    string  `json:"url"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Anchor string  `json:"anchor,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

type FadeConfig struct {
	Style          string `json:"style"`
	Direction      string `json:"direction"`
	SecondaryColor string `json:"secondary_color,omitempty"`
	InkFusion      bool   `json:"ink_fusion"`
	UIHex          string `json:"ui_hex,omitempty"`
	RenderHex      string `json:"render_hex,omitempty"`
}

type PatternConfig struct {
	Name  string  `json:"name"`
	URL   string  `json:"url"`
	Scale float64 `json:"scale"`
}

// RenderRequest is the wire contract accepted by the API and stored with
// every render so the worker and revisions can rebuild the same request.
type RenderRequest struct {
	Version         string                 `json:"version"`
	Mode            string                 `json:"mode"`
	Vehicle         string                 `json:"vehicle"`
	Text            string                 `json:"text,omitempty"`
	Zones           []domain.ZoneSpec      `json:"zones,omitempty"`
	Color           string                 `json:"color,omitempty"`
	Finish          string                 `json:"finish,omitempty"`
	Manufacturer    string                 `json:"manufacturer,omitempty"`
	Views           []string               `json:"views,omitempty"`
	Spin            int                    `json:"spin,omitempty"`
	Size            string                 `json:"size"`
	Studio          string                 `json:"studio,omitempty"`
	HardEnforcement *bool                  `json:"hard_enforcement,omitempty"`
	DesignImageURL  string                 `json:"design_image_url,omitempty"`
	References      []string               `json:"references,omitempty"`
	Panels          map[string]PanelDesign `json:"panels,omitempty"`
	Fade            FadeConfig             `json:"fade"`
	Pattern         PatternConfig          `json:"pattern"`
	AddPanels       domain.PanelToggles    `json:"add_panels"`
	Notes           string                 `json:"notes,omitempty"`
	// Revision is set on child renders and names the single applied change.
	Revision        string                 `json:"revision,omitempty"`
}

const (
	// DefaultRenderVersion is the schema version persisted with each request.
	DefaultRenderVersion = "2026-01"
	// DefaultRenderSize is used when neither the request nor the server picks a size.
	DefaultRenderSize = "1920x1080"
	// MaxViews caps the explicit view list of one render.
	MaxViews = 8
	// MaxSpin caps the number of turntable frames.
	MaxSpin = 72
	// MaxReferences caps the reference image list.
	MaxReferences = 6
)

// Normalize applies defaults and canonicalizes enums. defaultSize is the
// server's configured output size.
func (r *RenderRequest) Normalize(defaultSize string) {
	if r == nil {
		return
	}
	if r.Version == "" {
		r.Version = DefaultRenderVersion
	}
	mode, _ := domain.ParseToolMode(r.Mode)
	r.Mode = string(mode)
	r.Vehicle = strings.Join(strings.Fields(r.Vehicle), " ")
	r.Text = strings.TrimSpace(r.Text)
	r.Color = strings.TrimSpace(r.Color)
	r.Finish = strings.ToLower(strings.TrimSpace(r.Finish))
	r.Manufacturer = strings.TrimSpace(r.Manufacturer)
	r.DesignImageURL = strings.TrimSpace(r.DesignImageURL)

	size := strings.TrimSpace(r.Size)
	if size == "" {
		size = defaultSize
	}
	if size == "" {
		size = DefaultRenderSize
	}
	r.Size = strings.ToLower(strings.ReplaceAll(size, "*", "x"))

	seen := map[string]struct{}{}
	views := r.Views[:0]
	for _, v := range r.Views {
		if strings.TrimSpace(v) == "" {
			continue
		}
		vt := string(domain.ParseViewType(v))
		if _, dup := seen[vt]; dup {
			continue
		}
		seen[vt] = struct{}{}
		views = append(views, vt)
	}
	if len(views) == 0 {
		views = nil
	}
	r.Views = views

	if r.Spin < 0 {
		r.Spin = 0
	}
	if r.Spin > MaxSpin {
		r.Spin = MaxSpin
	}

	refs := r.References[:0]
	for _, u := range r.References {
		if u = strings.TrimSpace(u); u != "" {
			refs = append(refs, u)
		}
	}
	if len(refs) == 0 {
		refs = nil
	}
	r.References = refs

	if r.HardEnforcement == nil {
		on := true
		r.HardEnforcement = &on
	}
	if mode == domain.ModeFadeWraps {
		r.Fade.Style = string(domain.ParseFadeStyle(r.Fade.Style))
		r.Fade.Direction = string(domain.ParseGradientDirection(r.Fade.Direction))
	}
}

// Validate reports the first contract violation, wrapped in
// domain.ErrInvalidRequest.
func (r RenderRequest) Validate() error {
	if strings.TrimSpace(r.Vehicle) == "" {
		return invalid("vehicle is required")
	}
	mode, ok := domain.ParseToolMode(r.Mode)
	if !ok {
		return invalid("mode must be one of colorpro, fadewraps, designpanelpro, patternpro, approve")
	}
	switch mode {
	case domain.ModeColorPro, domain.ModeFadeWraps:
		if r.Text == "" && len(r.Zones) == 0 && r.Color == "" && r.Fade.UIHex == "" {
			return invalid("one of text, zones or color is required")
		}
	case domain.ModeDesignPanelPro, domain.ModeApprove:
		if r.DesignImageURL == "" && len(r.Panels) == 0 {
			return invalid("design_image_url or panels is required")
		}
	case domain.ModePatternPro:
		if strings.TrimSpace(r.Pattern.URL) == "" && strings.TrimSpace(r.Pattern.Name) == "" {
			return invalid("pattern.url or pattern.name is required")
		}
		if r.Pattern.Scale < 0 {
			return invalid("pattern.scale must not be negative")
		}
	}
	for i, z := range r.Zones {
		if strings.TrimSpace(z.ZoneName) == "" || strings.TrimSpace(z.Color) == "" {
			return invalid(fmt.Sprintf("zones[%d] needs a zone and a color", i))
		}
	}
	if len(r.Views) > MaxViews {
		return invalid(fmt.Sprintf("at most %d views are allowed", MaxViews))
	}
	if r.Spin < 0 || r.Spin > MaxSpin {
		return invalid(fmt.Sprintf("spin must be between 0 and %d", MaxSpin))
	}
	if r.Size != domain.Resolution1920.String() && r.Size != domain.Resolution1792.String() {
		return invalid("size must be 1920x1080 or 1792x1008")
	}
	if len(r.References) > MaxReferences {
		return invalid(fmt.Sprintf("at most %d references are allowed", MaxReferences))
	}
	urls := append([]string{r.DesignImageURL, r.Pattern.URL}, r.References...)
	for name, p := range r.Panels {
		if strings.TrimSpace(p.URL) == "" {
			return invalid(fmt.Sprintf("panels.%s.url is required", name))
		}
		if p.Scale < 0 || p.Width < 0 || p.Height < 0 {
			return invalid(fmt.Sprintf("panels.%s dimensions must not be negative", name))
		}
		urls = append(urls, p.URL)
	}
	for _, u := range urls {
		if err := checkURL(u); err != nil {
			return err
		}
	}
	return nil
}

func checkURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid(fmt.Sprintf("%q is not an http(s) URL", raw))
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, msg)
}

// Decode parses a stored request and normalizes it.
func Decode(raw []byte, defaultSize string) (RenderRequest, error) {
	var r RenderRequest
	if err := json.Unmarshal(raw, &r); err != nil {
		return RenderRequest{}, fmt.Errorf("decode render request: %w", err)
	}
	r.Normalize(defaultSize)
	return r, nil
}

func MustMarshal(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("json marshal: %w", err))
	}
	return b
}

// Resolution is the parsed output size.
func (r RenderRequest) Resolution() domain.Resolution {
	return domain.ParseResolution(r.Size)
}

// Enforced reports whether the hard-enforcement block is requested. It
// defaults to true.
func (r RenderRequest) Enforced() bool {
	return r.HardEnforcement == nil || *r.HardEnforcement
}
