package domain

import "strings"

// Finish is the optical surface property of an applied film.
type Finish string

const (
	FinishGloss    Finish = "gloss"
	FinishSatin    Finish = "satin"
	FinishMatte    Finish = "matte"
	FinishChrome   Finish = "chrome"
	FinishBrushed  Finish = "brushed"
	FinishCarbon   Finish = "carbon"
	FinishMetallic Finish = "metallic"
	FinishSparkle  Finish = "sparkle"
)

// Finishes lists every finish in presentation order.
var Finishes = []Finish{
	FinishGloss,
	FinishSatin,
	FinishMatte,
	FinishChrome,
	FinishBrushed,
	FinishCarbon,
	FinishMetallic,
	FinishSparkle,
}

var finishAliases = []struct {
	token  string
	finish Finish
}{
	{"chrome", FinishChrome},
	{"brushed", FinishBrushed},
	{"carbon", FinishCarbon},
	{"metallic", FinishMetallic},
	{"sparkle", FinishSparkle},
	{"glitter", FinishSparkle},
	{"satin", FinishSatin},
	{"matte", FinishMatte},
	{"matt", FinishMatte},
	{"flat", FinishMatte},
	{"gloss", FinishGloss},
}

// ParseFinish maps a free-form finish string onto the enum. The second
// return is false when nothing matched and gloss was assumed.
func ParseFinish(s string) (Finish, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range finishAliases {
		if strings.Contains(s, a.token) {
			return a.finish, true
		}
	}
	return FinishGloss, false
}

// NormalizeFinish is ParseFinish without the match flag.
func NormalizeFinish(s string) Finish {
	f, _ := ParseFinish(s)
	return f
}

// FinishProfile captures how a film's surface shapes highlights and shadows.
type FinishProfile struct {
	HighlightSoftness       float64 `json:"highlight_softness" yaml:"highlight_softness"`
	ShadowSaturationFalloff float64 `json:"shadow_saturation_falloff" yaml:"shadow_saturation_falloff"`
	Anisotropy              float64 `json:"anisotropy" yaml:"anisotropy"`
	Texture                 string  `json:"texture" yaml:"texture"`
}

var defaultFinishProfiles = map[Finish]FinishProfile{
	FinishGloss:    {HighlightSoftness: 0.2, ShadowSaturationFalloff: 0.1, Texture: "smooth"},
	FinishSatin:    {HighlightSoftness: 0.5, ShadowSaturationFalloff: 0.3, Texture: "smooth"},
	FinishMatte:    {HighlightSoftness: 0.9, ShadowSaturationFalloff: 0.5, Texture: "flat"},
	FinishChrome:   {HighlightSoftness: 0.05, ShadowSaturationFalloff: 0.05, Texture: "mirror"},
	FinishBrushed:  {HighlightSoftness: 0.4, ShadowSaturationFalloff: 0.2, Anisotropy: 0.8, Texture: "brushed"},
	FinishCarbon:   {HighlightSoftness: 0.3, ShadowSaturationFalloff: 0.2, Anisotropy: 0.6, Texture: "woven"},
	FinishMetallic: {HighlightSoftness: 0.3, ShadowSaturationFalloff: 0.2, Anisotropy: 0.1, Texture: "flake"},
	FinishSparkle:  {HighlightSoftness: 0.25, ShadowSaturationFalloff: 0.15, Anisotropy: 0.1, Texture: "glitter"},
}

// DefaultFinishProfile returns the stock surface profile for a finish.
func DefaultFinishProfile(f Finish) FinishProfile {
	if p, ok := defaultFinishProfiles[f]; ok {
		return p
	}
	return defaultFinishProfiles[FinishGloss]
}
