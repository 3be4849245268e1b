package compiler

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Ink-density model constants.
const (
	InkDarken          = 0.20
	InkCurveK          = 3.0
	InkMidpointBoost   = 1.3
	InkTerminalHex     = "#000000"
	inkMidpoint        = 0.5
	inkRampStopsPerEnd = 4
)

// InkStop is one sampled point of the fade ramp.
type InkStop struct {
	T       float64 `json:"t"`
	Density float64 `json:"density"`
	Hex     string  `json:"hex"`
}

// InkModel is the printed-ink correction for fused fades: the rendered
// color is darker than the UI swatch and falls off non-linearly to black.
type InkModel struct {
	UIHex     string    `json:"ui_hex"`
	RenderHex string    `json:"render_hex"`
	Stops     []InkStop `json:"stops"`
}

// InkDensity is the remaining ink density at position t in [0,1]:
// (e^-kt - e^-k) / (1 - e^-k). It is 1 at t=0 and 0 at t=1.
func InkDensity(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	ek := math.Exp(-InkCurveK)
	return (math.Exp(-InkCurveK*t) - ek) / (1 - ek)
}

// RenderHexFor darkens a UI hex by InkDarken. Invalid input returns "".
func RenderHexFor(uiHex string) string {
	c, err := colorful.Hex(normalizeHex(uiHex))
	if err != nil {
		return ""
	}
	f := 1 - InkDarken
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}.Clamped().Hex()
}

// NewInkModel builds the ramp from the render hex, deriving it from the UI
// hex when renderHex is empty. The second return is false when neither
// value parses.
func NewInkModel(uiHex, renderHex string) (InkModel, bool) {
	m := InkModel{UIHex: normalizeHex(uiHex), RenderHex: normalizeHex(renderHex)}
	if _, err := colorful.Hex(m.RenderHex); err != nil {
		m.RenderHex = RenderHexFor(uiHex)
	}
	base, err := colorful.Hex(m.RenderHex)
	if err != nil {
		return InkModel{}, false
	}
	if _, err := colorful.Hex(m.UIHex); err != nil {
		m.UIHex = ""
	}

	for i := 0; i <= inkRampStopsPerEnd; i++ {
		t := float64(i) / float64(inkRampStopsPerEnd)
		m.Stops = append(m.Stops, InkStop{T: t, Density: round3(InkDensity(t)), Hex: inkColorAt(base, t)})
	}
	return m, true
}

func inkColorAt(base colorful.Color, t float64) string {
	if t >= 1 {
		return InkTerminalHex
	}
	d := InkDensity(t)
	c := colorful.Color{R: base.R * d, G: base.G * d, B: base.B * d}
	if t == inkMidpoint {
		h, s, l := c.Hsl()
		c = colorful.Hsl(h, math.Min(1, s*InkMidpointBoost), l)
	}
	return c.Clamped().Hex()
}

func inkSection(m InkModel) string {
	lines := []string{"INK-DENSITY COLOR MODEL (INK FUSION):"}
	if m.UIHex != "" {
		lines = append(lines, fmt.Sprintf("The UI swatch %s is NOT the rendered color. Render the full-color end as %s (printed ink reads %d%% darker on film).",
			strings.ToUpper(m.UIHex), strings.ToUpper(m.RenderHex), int(InkDarken*100)))
	} else {
		lines = append(lines, fmt.Sprintf("Render the full-color end as %s.", strings.ToUpper(m.RenderHex)))
	}
	lines = append(lines, "Ink density falls off non-linearly along the fade, dense at the color end and thinning quickly toward black:")
	for _, s := range m.Stops {
		lines = append(lines, fmt.Sprintf("- %3.0f%% along the fade: density %.3f, color %s", s.T*100, s.Density, strings.ToUpper(s.Hex)))
	}
	lines = append(lines,
		fmt.Sprintf("At the midpoint saturation is boosted %.1f× so the color does not turn muddy.", InkMidpointBoost),
		"The terminal end is pure black #000000 with zero color bleed.",
	)
	return strings.Join(lines, "\n")
}

func inkSectionNoHex() string {
	return "INK-DENSITY COLOR MODEL (INK FUSION):\nThe UI swatch is NOT the rendered color: render the full-color end 20% darker than the swatch. Ink density falls off non-linearly toward black, saturation is boosted 1.3× at the midpoint, and the terminal end is pure black #000000 with zero color bleed."
}

func normalizeHex(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s != "" && !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return s
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
