package domain

import (
	"fmt"
	"strings"
)

// ToolMode selects the prompt builder.
type ToolMode string

const (
	ModeColorPro       ToolMode = "colorpro"
	ModeFadeWraps      ToolMode = "fadewraps"
	ModeDesignPanelPro ToolMode = "designpanelpro"
	ModePatternPro     ToolMode = "patternpro"
	ModeApprove        ToolMode = "approve"
)

// ToolModes lists every mode.
var ToolModes = []ToolMode{ModeColorPro, ModeFadeWraps, ModeDesignPanelPro, ModePatternPro, ModeApprove}

// ParseToolMode sanitizes free-form input into a supported mode. The second
// return is false for unknown input, in which case ColorPro is assumed.
func ParseToolMode(s string) (ToolMode, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
	switch s {
	case "colorpro", "color", "colorchange":
		return ModeColorPro, true
	case "fadewraps", "fade", "fadewrap", "ombre":
		return ModeFadeWraps, true
	case "designpanelpro", "designpanel", "design":
		return ModeDesignPanelPro, true
	case "patternpro", "pattern", "wbty":
		return ModePatternPro, true
	case "approve", "approvemode":
		return ModeApprove, true
	default:
		return ModeColorPro, false
	}
}

// FadeStyle selects the family of gradient instruction blocks.
type FadeStyle string

const (
	FadeStyleDefault         FadeStyle = "default"
	FadeStyleCrossfade       FadeStyle = "crossfade"
	FadeStyleRearPerformance FadeStyle = "rear_performance"
	FadeStyleFrontBack       FadeStyle = "front_back"
	FadeStyleTopBottom       FadeStyle = "top_bottom"
	FadeStyleDiagonal        FadeStyle = "diagonal"
)

// FadeStyles lists every style.
var FadeStyles = []FadeStyle{
	FadeStyleDefault,
	FadeStyleCrossfade,
	FadeStyleRearPerformance,
	FadeStyleFrontBack,
	FadeStyleTopBottom,
	FadeStyleDiagonal,
}

// GradientDirection is always expressed in vehicle space.
type GradientDirection string

const (
	GradientTopToBottom   GradientDirection = "top-to-bottom"
	GradientBottomToTop   GradientDirection = "bottom-to-top"
	GradientBackToFront   GradientDirection = "back-to-front"
	GradientFrontToBack   GradientDirection = "front-to-back"
	GradientDiagonalFront GradientDirection = "diagonal-front"
	GradientDiagonalRear  GradientDirection = "diagonal-rear"
)

// GradientDirections lists every direction.
var GradientDirections = []GradientDirection{
	GradientTopToBottom,
	GradientBottomToTop,
	GradientBackToFront,
	GradientFrontToBack,
	GradientDiagonalFront,
	GradientDiagonalRear,
}

// ParseFadeStyle falls back to FadeStyleDefault.
func ParseFadeStyle(s string) FadeStyle {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	for _, fs := range FadeStyles {
		if string(fs) == s {
			return fs
		}
	}
	return FadeStyleDefault
}

// ParseGradientDirection falls back to front-to-back.
func ParseGradientDirection(s string) GradientDirection {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", "-", " ", "-").Replace(s)
	for _, d := range GradientDirections {
		if string(d) == s {
			return d
		}
	}
	return GradientFrontToBack
}

// FadeOptions carries the FadeWraps-specific inputs.
type FadeOptions struct {
	Style          FadeStyle         `json:"style"`
	Direction      GradientDirection `json:"direction"`
	SecondaryColor string            `json:"secondary_color,omitempty"`
	InkFusion      bool              `json:"ink_fusion"`
	UIHex          string            `json:"ui_hex,omitempty"`
	RenderHex      string            `json:"render_hex,omitempty"`
}

// PatternOptions carries the PatternPro inputs.
type PatternOptions struct {
	Name  string  `json:"name"`
	URL   string  `json:"url"`
	Scale float64 `json:"scale"`
}

// PanelToggles lists optional panels a mode may add to its coverage.
type PanelToggles struct {
	Hood        bool `json:"add_hood"`
	Roof        bool `json:"add_roof"`
	Trunk       bool `json:"add_trunk"`
	FrontBumper bool `json:"add_front_bumper"`
	RearBumper  bool `json:"add_rear_bumper"`
	Mirrors     bool `json:"add_mirrors"`
	Spoiler     bool `json:"add_spoiler"`
}

// Names returns the enabled panels in a fixed order.
func (p PanelToggles) Names() []string {
	var out []string
	add := func(on bool, name string) {
		if on {
			out = append(out, name)
		}
	}
	add(p.Hood, "hood")
	add(p.Roof, "roof")
	add(p.Trunk, "trunk")
	add(p.FrontBumper, "front bumper")
	add(p.RearBumper, "rear bumper")
	add(p.Mirrors, "mirror caps")
	add(p.Spoiler, "spoiler")
	return out
}

// Resolution is one of the two 16:9 output sizes the image service accepts.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

var (
	Resolution1920 = Resolution{Width: 1920, Height: 1080}
	Resolution1792 = Resolution{Width: 1792, Height: 1008}
)

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// ParseResolution accepts "1792x1008" (or "1792*1008"); anything else is 1920x1080.
func ParseResolution(s string) Resolution {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "*", "x")
	if s == Resolution1792.String() {
		return Resolution1792
	}
	return Resolution1920
}

// PromptRequest is the aggregate consumed once by the prompt compiler.
// Profiles is index-aligned with Zones.
type PromptRequest struct {
	Mode            ToolMode                   `json:"mode"`
	Vehicle         VehicleDescriptor          `json:"vehicle"`
	Zones           []ZoneSpec                 `json:"zones"`
	Profiles        []ColorProfile             `json:"profiles"`
	Color           string                     `json:"color,omitempty"`
	Manufacturer    string                     `json:"manufacturer,omitempty"`
	Finish          Finish                     `json:"finish"`
	ViewType        ViewType                   `json:"view_type"`
	Camera          CameraAngle                `json:"camera"`
	Resolution      Resolution                 `json:"resolution"`
	StudioOverride  string                     `json:"studio_override,omitempty"`
	DesignImageURL  string                     `json:"design_image_url,omitempty"`
	ReferenceURLs   []string                   `json:"reference_urls,omitempty"`
	Placements      map[string]MappedPlacement `json:"placements,omitempty"`
	Fade            FadeOptions                `json:"fade"`
	Pattern         PatternOptions             `json:"pattern"`
	Panels          PanelToggles               `json:"panels"`
	HardEnforcement bool                       `json:"hard_enforcement"`
	Notes           string                     `json:"notes,omitempty"`
}

// Clone deep-copies the slices and maps so a revision overlay cannot
// mutate the request it was derived from.
func (r PromptRequest) Clone() PromptRequest {
	out := r
	out.Zones = make([]ZoneSpec, len(r.Zones))
	for i, z := range r.Zones {
		out.Zones[i] = z.Clone()
	}
	out.Profiles = append([]ColorProfile(nil), r.Profiles...)
	out.ReferenceURLs = append([]string(nil), r.ReferenceURLs...)
	if r.Placements != nil {
		out.Placements = make(map[string]MappedPlacement, len(r.Placements))
		for k, v := range r.Placements {
			out.Placements[k] = v
		}
	}
	return out
}

// ProfileFor returns the resolved profile for zone index i.
func (r PromptRequest) ProfileFor(i int) (ColorProfile, bool) {
	if i < 0 || i >= len(r.Profiles) {
		return ColorProfile{}, false
	}
	return r.Profiles[i], true
}

// PrimaryFinish is the finish driving studio selection: the explicit
// request finish, else the first zone's.
func (r PromptRequest) PrimaryFinish() Finish {
	if r.Finish != "" {
		return r.Finish
	}
	if len(r.Zones) > 0 {
		return NormalizeFinish(r.Zones[0].Finish)
	}
	return FinishGloss
}
