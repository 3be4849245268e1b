package interpreter

import (
	"strings"

	"wrapstudio/internal/domain"
)

// Detection is what a single phrase names explicitly. Unlike Interpret it
// applies no defaults: an unnamed finish stays empty instead of gloss.
type Detection struct {
	Zones         []string            `json:"zones,omitempty"`
	Colors        []string            `json:"colors,omitempty"`
	Finishes      []string            `json:"finishes,omitempty"`
	Manufacturer  string              `json:"manufacturer,omitempty"`
	FinishProfile string              `json:"finish_profile,omitempty"`
	Graphic       *domain.GraphicSpec `json:"graphic,omitempty"`
}

// Detect scans one phrase with the same rule tables as Interpret. When the
// phrase describes a graphic its colors belong to the graphic and Colors is
// left empty.
func Detect(text string) Detection {
	s := strings.ToLower(strings.TrimSpace(text))
	var d Detection
	if s == "" {
		return d
	}
	if g, ok := detectGraphic(s); ok {
		d.Graphic = &g
		d.Zones, _ = extract(s, zoneRules)
		if f, ok := firstToken(s, finishRules); ok {
			d.Finishes = []string{f}
		}
		return d
	}

	var rest string
	d.Zones, rest = extract(s, zoneRules)
	if m, ok := firstToken(rest, manufacturerRules); ok {
		d.Manufacturer = m
	}
	if p, ok := firstToken(rest, finishProfileRules); ok {
		d.FinishProfile = p
	}
	d.Finishes, rest = extract(rest, finishRules)
	d.Colors, _ = extract(rest, colorRules)
	return d
}

// IsZero reports a phrase that named nothing.
func (d Detection) IsZero() bool {
	return len(d.Zones) == 0 && len(d.Colors) == 0 && len(d.Finishes) == 0 &&
		d.Manufacturer == "" && d.FinishProfile == "" && d.Graphic == nil
}
