// Package placement fits uploaded design images onto vehicle panels.
package placement

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wrapstudio/internal/domain"
)

// Design image defaults when no metadata is available.
const (
	DefaultWidth  = 1920.0
	DefaultHeight = 1080.0
	DefaultAnchor = "center"
	DefaultScale  = 1.0
)

// LockDirective closes every placement instruction block.
const LockDirective = "STRICT: Do NOT move, resize, rotate, crop, mirror or recolor any placed design. Each design stays exactly where it is specified above."

// Design is an uploaded panel image with optional known metadata.
type Design struct {
	URL    string  `json:"url"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Anchor string  `json:"anchor,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
}

// BuildProfiles turns panel→URL pairs into profiles using the 1920×1080
// default, since image dimensions are not probed.
func BuildProfiles(panels map[string]string) map[string]domain.PlacementProfile {
	designs := make(map[string]Design, len(panels))
	for name, url := range panels {
		designs[name] = Design{URL: url}
	}
	return BuildDesignProfiles(designs)
}

// BuildDesignProfiles builds profiles from designs, filling defaults for any
// missing dimension, anchor or scale.
func BuildDesignProfiles(designs map[string]Design) map[string]domain.PlacementProfile {
	out := make(map[string]domain.PlacementProfile, len(designs))
	for name, d := range designs {
		name = PanelKey(name)
		if name == "" {
			continue
		}
		w, h := d.Width, d.Height
		if w <= 0 || h <= 0 {
			w, h = DefaultWidth, DefaultHeight
		}
		anchor := strings.ToLower(strings.TrimSpace(d.Anchor))
		if anchor == "" {
			anchor = DefaultAnchor
		}
		scale := d.Scale
		if scale <= 0 {
			scale = DefaultScale
		}
		out[name] = domain.PlacementProfile{
			PanelName:           name,
			SourceURL:           strings.TrimSpace(d.URL),
			Width:               w,
			Height:              h,
			Aspect:              w / h,
			Anchor:              anchor,
			Scale:               scale,
			PreserveProportions: true,
		}
	}
	return out
}

// ApplyToVehicle fits each profile into its template panel with an
// aspect-preserving contain fit. Panels the template lacks are skipped.
func ApplyToVehicle(profiles map[string]domain.PlacementProfile, tmpl domain.VehicleTemplate) map[string]domain.MappedPlacement {
	out := make(map[string]domain.MappedPlacement, len(profiles))
	for name, p := range profiles {
		box, ok := tmpl.Panels[name]
		if !ok || box.Width <= 0 || box.Height <= 0 || p.Width <= 0 || p.Height <= 0 {
			continue
		}
		out[name] = fit(p, box)
	}
	return out
}

func fit(p domain.PlacementProfile, box domain.PanelBox) domain.MappedPlacement {
	scale := math.Min(box.Width/p.Width, box.Height/p.Height)
	// A user scale can only shrink the design inside its box.
	if p.Scale > 0 && p.Scale < 1 {
		scale *= p.Scale
	}
	w, h := p.Width*scale, p.Height*scale

	x := box.X + (box.Width-w)/2
	y := box.Y + (box.Height-h)/2
	anchor := p.Anchor
	if strings.Contains(anchor, "left") {
		x = box.X
	} else if strings.Contains(anchor, "right") {
		x = box.X + box.Width - w
	}
	if strings.Contains(anchor, "top") {
		y = box.Y
	} else if strings.Contains(anchor, "bottom") {
		y = box.Y + box.Height - h
	}
	x = clamp(x+p.OffsetX, box.X, box.X+box.Width-w)
	y = clamp(y+p.OffsetY, box.Y, box.Y+box.Height-h)

	return domain.MappedPlacement{
		PlacementProfile: p,
		Box:              box,
		FinalScale:       scale,
		FinalOffsetX:     x,
		FinalOffsetY:     y,
	}
}

// Instructions renders one line per mapped panel in name order followed by
// LockDirective. An empty map yields an empty string.
func Instructions(mapped map[string]domain.MappedPlacement) string {
	if len(mapped) == 0 {
		return ""
	}
	names := make([]string, 0, len(mapped))
	for n := range mapped {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("DESIGN PLACEMENT:\n")
	for _, n := range names {
		m := mapped[n]
		fmt.Fprintf(&b, "- %s: design", PanelLabel(n))
		if m.SourceURL != "" {
			fmt.Fprintf(&b, " %s", m.SourceURL)
		}
		fmt.Fprintf(&b,
			" at scale %.4f (anchor %s), top-left at x=%.2f%%, y=%.2f%%, covering %.2f%% × %.2f%% of the panel frame.\n",
			m.FinalScale, m.Anchor, m.FinalOffsetX, m.FinalOffsetY, m.Width*m.FinalScale, m.Height*m.FinalScale,
		)
	}
	b.WriteString(LockDirective)
	return b.String()
}

// PanelKey canonicalises a panel name: lowercase with underscores.
func PanelKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
}

// PanelLabel is the uppercase display form, e.g. "DRIVER SIDE".
func PanelLabel(name string) string {
	return cases.Upper(language.English).String(strings.ReplaceAll(name, "_", " "))
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
