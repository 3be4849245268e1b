package domain

import "strings"

// FallbackHex is the sentinel hex carried by synthesized profiles. It is
// never a real swatch value and must not be printed as one.
const FallbackHex = "#888888"

// LAB holds CIE L*a*b* values.
type LAB struct {
	L float64 `json:"l" yaml:"l"`
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
}

// ColorProfile is a resolved film swatch. When MaterialValidated is false
// the LAB, Reflectivity and MetallicFlake fields may be nil.
type ColorProfile struct {
	Manufacturer      string        `json:"manufacturer"`
	ColorName         string        `json:"color_name"`
	ProductCode       string        `json:"product_code,omitempty"`
	Hex               string        `json:"hex"`
	LAB               *LAB          `json:"lab,omitempty"`
	Finish            Finish        `json:"finish"`
	FinishProfile     FinishProfile `json:"finish_profile"`
	Reflectivity      *float64      `json:"reflectivity,omitempty"`
	MetallicFlake     *float64      `json:"metallic_flake,omitempty"`
	MaterialValidated bool          `json:"material_validated"`
	// Fallback is set on profiles synthesized after a lookup miss.
	Fallback bool   `json:"fallback"`
	Variant  string `json:"variant,omitempty"`
}

// DisplayName is "Manufacturer ColorName", used as the film name.
func (c ColorProfile) DisplayName() string {
	name := strings.TrimSpace(c.ColorName)
	m := strings.TrimSpace(c.Manufacturer)
	if m == "" || m == ManufacturerCustom {
		return name
	}
	return m + " " + name
}

// HasHex reports whether Hex is a real swatch value rather than the sentinel.
func (c ColorProfile) HasHex() bool {
	return c.Hex != "" && !(c.Fallback && strings.EqualFold(c.Hex, FallbackHex))
}

// IsFlipFilm reports a color-shift film.
func (c ColorProfile) IsFlipFilm() bool {
	return c.Variant == FinishProfileColorFlip ||
		containsAny(strings.ToLower(c.ColorName), "flip", "shift", "chameleon", "psychedelic")
}

// IsPearl reports a pearlescent film.
func (c ColorProfile) IsPearl() bool {
	return c.Variant == FinishProfilePearl || strings.Contains(strings.ToLower(c.ColorName), "pearl")
}

// IsMetallic reports a metallic-flake film.
func (c ColorProfile) IsMetallic() bool {
	if c.Finish == FinishMetallic || c.Variant == FinishProfileMetallic {
		return true
	}
	return c.MetallicFlake != nil && *c.MetallicFlake >= 0.4
}

// IsChrome reports a mirror-finish film.
func (c ColorProfile) IsChrome() bool {
	return c.Finish == FinishChrome
}

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
