// Package enforcement builds the hard-lock blocks appended to prompts when
// a render must not drift from the resolved material.
package enforcement

import (
	"fmt"
	"strings"

	"wrapstudio/internal/bands"
	"wrapstudio/internal/domain"
)

// Banner delimiters around the composite block.
const (
	BannerStart = "══════════ HARD ENFORCEMENT: BEGIN ══════════"
	BannerEnd   = "══════════ HARD ENFORCEMENT: END ══════════"
)

// Surface is a part of the vehicle that film never covers by default.
type Surface struct {
	Key   string
	Label string
}

// Never-wrap surface keys.
const (
	SurfaceGlass      = "glass"
	SurfaceLights     = "lights"
	SurfaceWheels     = "wheels"
	SurfaceChromeTrim = "chrome_trim"
	SurfaceBadges     = "badges"
)

// NeverWrap lists the surfaces no mode may cover with film.
var NeverWrap = []Surface{
	{SurfaceGlass, "glass (windshield, side and rear windows, sunroof)"},
	{SurfaceLights, "lights (headlights, taillights, fog lights, indicators)"},
	{SurfaceWheels, "wheels and tires"},
	{SurfaceChromeTrim, "chrome trim"},
	{SurfaceBadges, "badges and emblems"},
}

// Params carries the enum and numeric inputs of the lock blocks.
type Params struct {
	ColorName     string
	Hex           string
	LAB           *domain.LAB
	Finish        domain.Finish
	Reflectivity  *float64
	MetallicFlake *float64
	Chrome        bool
	Metallic      bool
	Pearl         bool
	Flip          bool
	Validated     bool
}

// FromProfile derives lock parameters from a resolved profile. A fallback
// profile never exposes its sentinel hex.
func FromProfile(p domain.ColorProfile) Params {
	params := Params{
		ColorName:     p.DisplayName(),
		LAB:           p.LAB,
		Finish:        p.Finish,
		Reflectivity:  p.Reflectivity,
		MetallicFlake: p.MetallicFlake,
		Chrome:        p.IsChrome(),
		Metallic:      p.IsMetallic(),
		Pearl:         p.IsPearl(),
		Flip:          p.IsFlipFilm(),
		Validated:     p.MaterialValidated,
	}
	if p.HasHex() {
		params.Hex = p.Hex
	}
	if params.Finish == "" {
		params.Finish = domain.FinishGloss
	}
	return params
}

// BuildColorLock pins the hue. Without a validated swatch it falls back to
// name-only language.
func BuildColorLock(p Params) string {
	name := strings.TrimSpace(p.ColorName)
	if name == "" {
		name = "the requested color"
	}
	lines := []string{"[COLOR LOCK]"}
	if !p.Validated || p.Hex == "" {
		lines = append(lines,
			fmt.Sprintf("Film color: %s. No measured swatch is on file; render it as the standard automotive vinyl interpretation of this color name.", name),
			"Keep the same color on every wrapped panel. Do not invent a hex value, do not drift toward a neighbouring hue.",
		)
		return strings.Join(lines, "\n")
	}
	lines = append(lines, fmt.Sprintf("Film color: %s, hex %s. This hex is the exact color of the film in neutral light.", name, strings.ToUpper(p.Hex)))
	if p.LAB != nil {
		lines = append(lines, "Measured: "+bands.DescribeLAB(p.LAB.L, p.LAB.A, p.LAB.B)+".")
	}
	lines = append(lines, "Do not lighten, darken, saturate or shift the hue for artistic effect. Studio light may create highlights and shadows but the base color must read as this hex.")
	return strings.Join(lines, "\n")
}

// BuildFinishLock pins the surface finish and its reflectivity band.
func BuildFinishLock(p Params) string {
	finish := p.Finish
	if finish == "" {
		finish = domain.FinishGloss
	}
	lines := []string{
		"[FINISH LOCK]",
		fmt.Sprintf("Finish: %s.", strings.ToUpper(string(finish))),
	}
	if p.Reflectivity != nil {
		lines = append(lines, "Reflectivity: "+bands.DescribeReflectivity(*p.Reflectivity)+".")
	}
	switch {
	case p.Chrome:
		lines = append(lines, "Mirror finish: the film must show sharp, legible reflections of the studio environment. A chrome film rendered as flat paint is a failure.")
	case finish == domain.FinishMatte:
		lines = append(lines, "No specular highlights, no clear-coat shine, no reflections of the environment.")
	case finish == domain.FinishSatin:
		lines = append(lines, "Soft, broad highlights only. No mirror reflections and no dead-flat look.")
	default:
		lines = append(lines, "Crisp clear-coat highlights that follow the body lines.")
	}
	if p.Metallic {
		lines = append(lines, "Metallic flake must be visible where light hits the panel.")
	}
	if p.Pearl {
		lines = append(lines, "Pearlescent sheen: a subtle secondary tint appears on highlight edges, never a second color.")
	}
	if p.Flip {
		lines = append(lines, "Color-shift film: hue travels with viewing angle across curved panels; flat areas facing the camera show the primary hue.")
	}
	return strings.Join(lines, "\n")
}

// BuildPanelLock is the fixed never-wrap list.
func BuildPanelLock() string {
	lines := []string{"[PANEL LOCK]", "NEVER wrap or recolor:"}
	for _, item := range NeverWrap {
		lines = append(lines, "- "+item.Label)
	}
	lines = append(lines, "These surfaces keep their factory appearance in every view.")
	return strings.Join(lines, "\n")
}

// BuildTextureLock pins the micro surface texture.
func BuildTextureLock(p Params) string {
	lines := []string{"[TEXTURE LOCK]"}
	switch p.Finish {
	case domain.FinishCarbon:
		lines = append(lines, "Visible 2x2 twill carbon weave at realistic scale, aligned with each panel's long axis.")
	case domain.FinishBrushed:
		lines = append(lines, "Fine linear brushed grain running front to back along every panel.")
	case domain.FinishSparkle:
		lines = append(lines, "Dense glitter particles that sparkle individually under direct light.")
	case domain.FinishMatte:
		lines = append(lines, "Uniform flat surface with no orange peel, no gloss patches.")
	case domain.FinishChrome:
		lines = append(lines, "Perfectly smooth mirror surface with no grain, no haze.")
	default:
		lines = append(lines, "Smooth cast-film surface with no visible texture, seams or bubbles.")
	}
	if p.MetallicFlake != nil {
		lines = append(lines, "Flake density: "+bands.DescribeFlake(*p.MetallicFlake)+".")
	}
	return strings.Join(lines, "\n")
}

// BuildCompleteHardEnforcement joins color, finish, panel and texture locks
// in that order between the banners.
func BuildCompleteHardEnforcement(p Params) string {
	return strings.Join([]string{
		BannerStart,
		BuildColorLock(p),
		BuildFinishLock(p),
		BuildPanelLock(),
		BuildTextureLock(p),
		BannerEnd,
	}, "\n\n")
}
