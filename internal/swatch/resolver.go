package swatch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wrapstudio/internal/domain"
)

// compoundTerms name colors that contain a plain color word ("Rose Gold",
// "Champagne Gold"). They are skipped by the first lookup step unless the
// request names them.
var compoundTerms = []string{"rose", "champagne"}

// Step identifies which lookup step produced a profile.
type Step int

const (
	StepFallback Step = iota
	StepFinishColor
	StepColorFinish
	StepColor
	StepManufacturerColor
)

func (s Step) String() string {
	switch s {
	case StepFinishColor:
		return "finish_color"
	case StepColorFinish:
		return "color_finish"
	case StepColor:
		return "color"
	case StepManufacturerColor:
		return "manufacturer_color"
	default:
		return "fallback"
	}
}

// Resolver maps zones onto swatches. It never writes to the store.
type Resolver struct {
	store ColorStore
}

// NewResolver builds a resolver over store. A nil store resolves every zone
// to a fallback profile.
func NewResolver(store ColorStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the profile for one zone.
func (r *Resolver) Resolve(z domain.ZoneSpec) domain.ColorProfile {
	p, _ := r.ResolveStep(z)
	return p
}

// ResolveAll resolves zones index-aligned.
func (r *Resolver) ResolveAll(zones []domain.ZoneSpec) []domain.ColorProfile {
	out := make([]domain.ColorProfile, len(zones))
	for i, z := range zones {
		out[i] = r.Resolve(z)
	}
	return out
}

// ResolveStep is Resolve plus the lookup step that matched. The steps run in
// order and the first hit wins: "{finish} {color}" without compound colors,
// "{color} {finish}", the bare color, then the manufacturer's swatches whose
// name carries every word of the color in any order.
func (r *Resolver) ResolveStep(z domain.ZoneSpec) (domain.ColorProfile, Step) {
	color := strings.TrimSpace(z.Color)
	finish := strings.TrimSpace(z.Finish)
	manufacturer := strings.TrimSpace(z.Manufacturer)
	if r.store == nil || color == "" {
		return Fallback(z), StepFallback
	}

	steps := []struct {
		step Step
		q    Query
	}{
		{StepFinishColor, Query{Manufacturer: manufacturer, Name: join(finish, color), Exclude: excludedTerms(color)}},
		{StepColorFinish, Query{Manufacturer: manufacturer, Name: join(color, finish)}},
		{StepColor, Query{Manufacturer: manufacturer, Name: color}},
	}
	if manufacturer != "" && !strings.EqualFold(manufacturer, domain.ManufacturerCustom) {
		steps = append(steps, struct {
			step Step
			q    Query
		}{StepManufacturerColor, Query{Manufacturer: manufacturer, Name: color, Strict: true, AnyOrder: true}})
	}

	for _, s := range steps {
		if finish == "" && (s.step == StepFinishColor || s.step == StepColorFinish) {
			continue
		}
		if p, ok := r.store.Find(s.q); ok {
			return clone(p), s.step
		}
	}
	return Fallback(z), StepFallback
}

// Fallback synthesizes the display-only profile used after a lookup miss.
// It is deterministic: the same zone always yields an identical profile.
func Fallback(z domain.ZoneSpec) domain.ColorProfile {
	finish := domain.NormalizeFinish(z.Finish)
	manufacturer := strings.TrimSpace(z.Manufacturer)
	if manufacturer == "" {
		manufacturer = domain.ManufacturerCustom
	}
	variant := strings.TrimSpace(z.FinishProfile)
	if variant == "" {
		variant = domain.FinishProfileSolid
	}
	name := join(strings.TrimSpace(z.Finish), strings.TrimSpace(z.Color))
	if name == "" {
		name = string(finish)
	}
	return domain.ColorProfile{
		Manufacturer:  manufacturer,
		ColorName:     cases.Title(language.English).String(name),
		Hex:           domain.FallbackHex,
		Finish:        finish,
		FinishProfile: domain.DefaultFinishProfile(finish),
		Fallback:      true,
		Variant:       variant,
	}
}

func excludedTerms(color string) []string {
	lower := strings.ToLower(color)
	var out []string
	for _, t := range compoundTerms {
		if !strings.Contains(lower, t) {
			out = append(out, t)
		}
	}
	return out
}

func join(a, b string) string {
	return strings.TrimSpace(a + " " + b)
}

func clone(p domain.ColorProfile) domain.ColorProfile {
	if p.LAB != nil {
		lab := *p.LAB
		p.LAB = &lab
	}
	if p.Reflectivity != nil {
		v := *p.Reflectivity
		p.Reflectivity = &v
	}
	if p.MetallicFlake != nil {
		v := *p.MetallicFlake
		p.MetallicFlake = &v
	}
	return p
}
