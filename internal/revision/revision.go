package revision

import (
	"fmt"
	"strings"

	"wrapstudio/internal/compiler"
	"wrapstudio/internal/domain"
	"wrapstudio/internal/swatch"
)

// SectionRevision is the name of the preamble section.
const SectionRevision = "revision"

// Validation is the outcome of ValidateRevisionRequest.
type Validation struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Err wraps the reason in domain.ErrInvalidRevision, or returns nil.
func (v Validation) Err() error {
	if v.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidRevision, v.Reason)
}

func reject(format string, args ...any) Validation {
	return Validation{Reason: fmt.Sprintf(format, args...)}
}

// ValidateRevisionRequest checks that p changes exactly one existing zone
// and leaves camera, framing and vehicle alone.
func ValidateRevisionRequest(original domain.PromptRequest, p Patch) Validation {
	if p.Camera != nil && *p.Camera != original.Camera {
		return reject("camera angle changes need a new render, not a revision")
	}
	if v := strings.TrimSpace(p.ViewType); v != "" && domain.ParseViewType(v) != domain.ParseViewType(string(original.ViewType)) {
		return reject("switching to the %s view needs a new render, not a revision", domain.ParseViewType(v))
	}
	if a := strings.TrimSpace(p.AspectRatio); a != "" && a != "16:9" {
		return reject("the crop and aspect ratio are locked to 16:9 for revisions")
	}
	if p.Resolution != nil && *p.Resolution != original.Resolution {
		return reject("the output resolution is locked for revisions")
	}
	if v := strings.TrimSpace(p.Vehicle); v != "" && domain.ParseVehicle(v).Key() != original.Vehicle.Key() {
		return reject("changing the vehicle needs a new render, not a revision")
	}
	if !p.Changes() {
		return reject("the revision does not name a color, finish, manufacturer or graphic change")
	}
	if p.Graphic != nil && p.RemoveGraphic {
		return reject("a revision cannot add and remove a graphic at once")
	}
	if p.Finish != nil {
		if _, ok := domain.ParseFinish(*p.Finish); !ok {
			return reject("unknown finish %q", *p.Finish)
		}
	}
	if p.Color != nil && strings.TrimSpace(*p.Color) == "" {
		return reject("the new color is empty")
	}

	i, ok := targetIndex(original, p.Zone)
	if !ok {
		if strings.TrimSpace(p.Zone) == "" {
			return reject("the revision must name one of the zones: %s", strings.Join(zoneNames(original), ", "))
		}
		return reject("zone %q is not part of the original render", p.Zone)
	}
	if p.RemoveGraphic && (i < 0 || original.Zones[i].Graphic == nil) {
		return reject("zone %q has no graphic to remove", zoneOrFull(p.Zone))
	}
	return Validation{Valid: true}
}

// targetIndex resolves the zone a patch names. -1 addresses the request
// level color and finish when the original has no zones.
func targetIndex(req domain.PromptRequest, zone string) (int, bool) {
	key := zoneKey(zone)
	if len(req.Zones) == 0 {
		return -1, key == "" || key == "full" || key == "body"
	}
	if key == "" {
		return 0, len(req.Zones) == 1
	}
	for i, z := range req.Zones {
		if zoneKey(z.ZoneName) == key {
			return i, true
		}
	}
	return 0, false
}

func zoneNames(req domain.PromptRequest) []string {
	names := make([]string, len(req.Zones))
	for i, z := range req.Zones {
		names[i] = z.ZoneName
	}
	return names
}

func zoneOrFull(z string) string {
	if strings.TrimSpace(z) == "" {
		return "full"
	}
	return z
}

// ApplyPatch returns a copy of original with p applied and the index of the
// patched zone (-1 for the request level). The original is not modified. p
// must have passed validation.
func ApplyPatch(original domain.PromptRequest, p Patch) (domain.PromptRequest, int) {
	out := original.Clone()
	i, _ := targetIndex(out, p.Zone)

	if i < 0 {
		if p.Color != nil {
			out.Color = strings.TrimSpace(*p.Color)
		}
		if p.Finish != nil {
			out.Finish = domain.NormalizeFinish(*p.Finish)
		}
		if p.Manufacturer != nil {
			out.Manufacturer = manufacturerOr(p.Manufacturer)
		}
		if p.Graphic != nil {
			g := *p.Graphic
			out.Zones = []domain.ZoneSpec{{
				ZoneName:      "full",
				Color:         out.Color,
				Finish:        string(out.PrimaryFinish()),
				Manufacturer:  manufacturerOr(&out.Manufacturer),
				FinishProfile: domain.FinishProfileSolid,
				Graphic:       &g,
			}}
			out.Profiles = nil
			i = 0
		}
	} else {
		z := &out.Zones[i]
		if p.Color != nil {
			z.Color = strings.TrimSpace(*p.Color)
		}
		if p.Finish != nil {
			z.Finish = string(domain.NormalizeFinish(*p.Finish))
			if i == 0 && out.Finish != "" {
				out.Finish = domain.Finish(z.Finish)
			}
		}
		if p.Manufacturer != nil {
			z.Manufacturer = manufacturerOr(p.Manufacturer)
		}
		if p.Graphic != nil {
			g := *p.Graphic
			g.Colors = append([]string(nil), p.Graphic.Colors...)
			if g.Type == "" {
				g.Type = domain.GraphicTypeCutVinyl
			}
			z.Graphic = &g
		}
		if p.RemoveGraphic {
			z.Graphic = nil
		}
	}

	// The ink hexes describe the old primary color.
	if p.Color != nil && i <= 0 {
		out.Fade.UIHex = ""
		out.Fade.RenderHex = ""
	}
	return out, i
}

func manufacturerOr(m *string) string {
	if m == nil || strings.TrimSpace(*m) == "" {
		return domain.ManufacturerCustom
	}
	return strings.TrimSpace(*m)
}

// Revision is a recompiled request with its REVISION preamble.
type Revision struct {
	Request domain.PromptRequest `json:"request"`
	Patch   Patch                `json:"patch"`
	Change  string               `json:"change"`
	Prompt  compiler.Prompt      `json:"prompt"`
}

// Text is the full prompt string.
func (r Revision) Text() string {
	return r.Prompt.String()
}

// BuildRevisionPrompt validates p against the previous request, applies it,
// re-resolves only the patched zone and recompiles. The error wraps
// domain.ErrInvalidRevision when validation fails.
func BuildRevisionPrompt(previous domain.PromptRequest, p Patch, resolver *swatch.Resolver) (Revision, error) {
	if v := ValidateRevisionRequest(previous, p); !v.Valid {
		return Revision{}, v.Err()
	}
	req, i := ApplyPatch(previous, p)
	if resolver == nil {
		resolver = swatch.NewResolver(nil)
	}
	if p.Color != nil || p.Finish != nil || p.Manufacturer != nil {
		req.Profiles = reresolve(req, i, resolver)
	}

	change := p.Describe()
	prompt := compiler.Build(req).Prepend(PreambleSection(change))
	return Revision{Request: req, Patch: p, Change: change, Prompt: prompt}, nil
}

func reresolve(req domain.PromptRequest, i int, resolver *swatch.Resolver) []domain.ColorProfile {
	profiles := req.Profiles
	switch {
	case i < 0:
		if len(profiles) > 0 {
			manufacturer := req.Manufacturer
			if manufacturer == "" {
				manufacturer = profiles[0].Manufacturer
			}
			profiles[0] = resolver.Resolve(domain.ZoneSpec{
				ZoneName:     "full",
				Color:        req.Color,
				Finish:       string(req.PrimaryFinish()),
				Manufacturer: manufacturer,
			})
		}
	case i < len(profiles):
		profiles[i] = resolver.Resolve(req.Zones[i])
	}
	return profiles
}

// PreambleSection is the REVISION block placed ahead of a recompiled prompt.
func PreambleSection(change string) compiler.Section {
	return compiler.Section{Name: SectionRevision, Body: preamble(change)}
}

func preamble(change string) string {
	return "REVISION OF THE PREVIOUS RENDER: apply exactly one change.\n" +
		"CHANGE: " + change + "\n" +
		"Keep the camera position, lens, framing, crop, lighting, vehicle and every other zone and panel identical to the previous render. Only the attribute named above may differ."
}
