// Package revision applies a single targeted change to a previously compiled
// render request. Camera geometry, framing, placements and every zone the
// change does not name are carried over untouched.
package revision

import (
	"fmt"
	"regexp"
	"strings"

	"wrapstudio/internal/domain"
	"wrapstudio/internal/interpreter"
)

// Patch is a field-level overlay on one zone. The fields under "fixed" are
// never applied: they exist so a request that tries to move the camera or
// swap the vehicle can be named and rejected.
type Patch struct {
	Zone          string              `json:"zone,omitempty"`
	Color         *string             `json:"color,omitempty"`
	Finish        *string             `json:"finish,omitempty"`
	Manufacturer  *string             `json:"manufacturer,omitempty"`
	Graphic       *domain.GraphicSpec `json:"graphic,omitempty"`
	RemoveGraphic bool                `json:"remove_graphic,omitempty"`

	// fixed
	Camera      *domain.CameraAngle `json:"camera,omitempty"`
	ViewType    string              `json:"view_type,omitempty"`
	AspectRatio string              `json:"aspect_ratio,omitempty"`
	Resolution  *domain.Resolution  `json:"resolution,omitempty"`
	Vehicle     string              `json:"vehicle,omitempty"`
}

// Changes reports whether the patch alters any zone attribute.
func (p Patch) Changes() bool {
	return p.Color != nil || p.Finish != nil || p.Manufacturer != nil || p.Graphic != nil || p.RemoveGraphic
}

// Describe renders the change as one line, e.g. "ROOF: finish satin".
func (p Patch) Describe() string {
	var parts []string
	if p.Color != nil {
		parts = append(parts, "color "+strings.TrimSpace(*p.Color))
	}
	if p.Finish != nil {
		parts = append(parts, "finish "+string(domain.NormalizeFinish(*p.Finish)))
	}
	if p.Manufacturer != nil {
		parts = append(parts, "film manufacturer "+strings.TrimSpace(*p.Manufacturer))
	}
	if p.Graphic != nil {
		g := "add " + string(p.Graphic.Width) + " graphic"
		if len(p.Graphic.Colors) > 0 {
			g += " in " + strings.Join(p.Graphic.Colors, " and ")
		}
		parts = append(parts, g)
	}
	if p.RemoveGraphic {
		parts = append(parts, "remove the graphic")
	}
	target := zoneKey(p.Zone)
	if target == "" {
		target = "full"
	}
	return fmt.Sprintf("%s: %s", strings.ToUpper(strings.ReplaceAll(target, "_", " ")), strings.Join(parts, ", "))
}

var (
	insteadOf    = regexp.MustCompile(`(?i)\s*\b(?:instead\s+of|rather\s+than|not)\b.*$`)
	cameraWords  = regexp.MustCompile(`(?i)\b(?:camera|angle|zoom(?:\s+(?:in|out))?|rotate|perspective|lens|closer|further)\b`)
	viewWords    = regexp.MustCompile(`(?i)\b(?:(front|side|rear|back|top|hero|detail)\s+view|from\s+the\s+(front|side|rear|back|top|above))\b`)
	aspectWords  = regexp.MustCompile(`(?i)\b(?:crop|aspect(?:\s+ratio)?|square|portrait|vertical\s+format|resolution|widescreen)\b`)
	vehicleWords = regexp.MustCompile(`(?i)\b(?:(?:different|another|other)\s+(?:vehicle|car|truck|model)|swap\s+the\s+(?:vehicle|car)|change\s+the\s+(?:vehicle|car|model))\b`)
	removeWords  = regexp.MustCompile(`(?i)\b(?:remove|delete|drop|lose|no|without)\b.*\b(?:pin[\s-]?stripes?|stripes?|graphics?|decals?|accents?)\b`)
)

// ParseChange builds a patch from a short instruction such as "make the
// roof satin instead of gloss". Whatever follows "instead of" describes the
// old state and is ignored. Camera, view, crop and vehicle wording fill the
// fixed fields so validation can reject the change.
func ParseChange(text string) Patch {
	s := strings.ToLower(strings.TrimSpace(text))
	var p Patch

	if m := cameraWords.FindString(s); m != "" {
		p.Camera = &domain.CameraAngle{Label: m}
	}
	if m := viewWords.FindStringSubmatch(s); m != nil {
		view := m[1]
		if view == "" {
			view = m[2]
		}
		switch view {
		case "back":
			view = string(domain.ViewRear)
		case "above":
			view = string(domain.ViewTop)
		}
		p.ViewType = view
	}
	if m := aspectWords.FindString(s); m != "" {
		p.AspectRatio = m
	}
	if m := vehicleWords.FindString(s); m != "" {
		p.Vehicle = m
	}

	main := insteadOf.ReplaceAllString(s, "")
	if removeWords.MatchString(main) {
		p.RemoveGraphic = true
		if zones := interpreter.Detect(main).Zones; len(zones) > 0 {
			p.Zone = zones[0]
		}
		return p
	}

	d := interpreter.Detect(main)
	if len(d.Zones) > 0 {
		p.Zone = d.Zones[0]
	}
	if d.Graphic != nil {
		g := *d.Graphic
		p.Graphic = &g
		if p.Zone == "hood_graphic" || p.Zone == "roof_graphic" {
			p.Zone = strings.TrimSuffix(p.Zone, "_graphic")
		}
		return p
	}
	if len(d.Colors) > 0 {
		c := d.Colors[0]
		p.Color = &c
	}
	if len(d.Finishes) > 0 {
		f := d.Finishes[0]
		p.Finish = &f
	}
	if d.Manufacturer != "" {
		m := d.Manufacturer
		p.Manufacturer = &m
	}
	return p
}

func zoneKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "-", " ")), "_")
}
