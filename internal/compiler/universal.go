package compiler

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wrapstudio/internal/domain"
	"wrapstudio/internal/enforcement"
)

// Studio is a lighting environment preset.
type Studio string

const (
	StudioHardLight Studio = "hard_light"
	StudioSoft      Studio = "soft_diffusion"
	StudioCinematic Studio = "cinematic"
)

// SelectStudio picks the studio for a finish. The cinematic override wins.
func SelectStudio(f domain.Finish, override string) Studio {
	if strings.EqualFold(strings.TrimSpace(override), string(StudioCinematic)) {
		return StudioCinematic
	}
	switch f {
	case domain.FinishChrome, domain.FinishBrushed, domain.FinishMetallic, domain.FinishCarbon:
		return StudioHardLight
	default:
		return StudioSoft
	}
}

var studioText = map[Studio]string{
	StudioHardLight: "STUDIO: hard-light automotive studio. Dark seamless cyclorama, large strip softboxes with crisp edges placed to create long readable reflections along the body. Reflections of the light strips must be visible on the film.",
	StudioSoft:      "STUDIO: soft-diffusion automotive studio. Light grey seamless cyclorama, overhead diffusion scrim, even wrap-around light with gentle gradients across the panels. No harsh specular hot spots.",
	StudioCinematic: "STUDIO: cinematic set. Low-key moody lighting, wet reflective floor, rim light tracing the silhouette, subtle haze. The film color must still read accurately.",
}

// selectStudioFor lights a multi-finish wrap for the most demanding finish:
// hard light wins when any zone needs it.
func selectStudioFor(groups []finishGroup, override string) Studio {
	studio := SelectStudio(groups[0].finish, override)
	for _, g := range groups[1:] {
		if s := SelectStudio(g.finish, override); s == StudioHardLight {
			return s
		}
	}
	return studio
}

func studioSection(s Studio) string {
	return studioText[s]
}

type finishRule struct {
	required   string
	prohibited string
}

var finishRules = map[domain.Finish]finishRule{
	domain.FinishGloss: {
		required:   "deep clear-coat shine, sharp highlights that follow body lines, reflections of the studio softened only by panel curvature",
		prohibited: "matte patches, texture, orange peel, metallic flake",
	},
	domain.FinishSatin: {
		required:   "soft sheen, wide diffused highlights, color stays rich in shadow areas",
		prohibited: "mirror reflections, wet look, dead-flat chalky look",
	},
	domain.FinishMatte: {
		required:   "completely flat surface, no specular highlights, uniform color across curved panels",
		prohibited: "shine, clear-coat reflections, gloss spots, sheen",
	},
	domain.FinishChrome: {
		required:   "true mirror surface, sharp legible reflections of the studio and floor, tinted by the film color",
		prohibited: "painted look, flat color, blurred or missing reflections",
	},
	domain.FinishBrushed: {
		required:   "directional metallic grain running front to back, anisotropic streaked highlights",
		prohibited: "mirror reflections, smooth paint look, random grain direction",
	},
	domain.FinishCarbon: {
		required:   "visible carbon fiber weave at real-world scale, subtle depth under a clear top layer",
		prohibited: "oversized or blurry weave, printed-pattern look, flat grey",
	},
	domain.FinishMetallic: {
		required:   "fine metallic flake that glitters in highlights, color shifts lighter on lit faces",
		prohibited: "flat solid paint, chrome mirror, coarse glitter",
	},
	domain.FinishSparkle: {
		required:   "dense glitter particles that catch light individually, depth in the color layer",
		prohibited: "smooth solid color, fine metallic haze only, chrome mirror",
	},
}

// FinishParagraph returns the rendering requirements for a finish.
func FinishParagraph(f domain.Finish) string {
	return finishParagraph(f, nil)
}

func finishParagraph(f domain.Finish, zones []string) string {
	rule, ok := finishRules[f]
	if !ok {
		f = domain.FinishGloss
		rule = finishRules[f]
	}
	head := strings.ToUpper(string(f)) + " FINISH"
	if len(zones) > 0 {
		head += " (" + strings.ToUpper(strings.Join(zones, ", ")) + ")"
	}
	return fmt.Sprintf("%s: REQUIRED: %s. PROHIBITED: %s.", head, rule.required, rule.prohibited)
}

// finishGroup is one finish and the zones wrapped in it, in zone order.
type finishGroup struct {
	finish domain.Finish
	zones  []string
}

// finishGroups collects the distinct zone finishes. A request whose zones
// share one finish, or that has no zones, yields the primary finish alone.
func finishGroups(req domain.PromptRequest) []finishGroup {
	var groups []finishGroup
	index := map[domain.Finish]int{}
	for i, z := range req.Zones {
		f := domain.NormalizeFinish(z.Finish)
		if p, ok := req.ProfileFor(i); ok && p.Finish != "" {
			f = p.Finish
		}
		n, ok := index[f]
		if !ok {
			n = len(groups)
			index[f] = n
			groups = append(groups, finishGroup{finish: f})
		}
		groups[n].zones = append(groups[n].zones, zoneLabel(z.ZoneName))
	}
	if len(groups) < 2 {
		return []finishGroup{{finish: req.PrimaryFinish()}}
	}
	return groups
}

func finishSection(groups []finishGroup) string {
	if len(groups) == 1 {
		return "FINISH RENDERING REQUIREMENTS:\n" + finishParagraph(groups[0].finish, nil)
	}
	lines := []string{"FINISH RENDERING REQUIREMENTS (per zone; no single finish covers the whole vehicle):"}
	for _, g := range groups {
		lines = append(lines, finishParagraph(g.finish, g.zones))
	}
	return strings.Join(lines, "\n")
}

func aspectSection(r domain.Resolution) string {
	return fmt.Sprintf("ASPECT RATIO (HARD LOCK): 16:9 landscape, exactly %d×%d pixels. Never square, never portrait, no letterboxing.", r.Width, r.Height)
}

func photorealismSection() string {
	return "PHOTOREALISM: the result must be indistinguishable from a professional automotive studio photograph of a real vinyl-wrapped vehicle. No CGI look, no illustration, no painterly style. Accurate panel gaps, real tire sidewalls, physically correct reflections."
}

func forbiddenTextSection() string {
	return "NO TEXT: do not add any text, watermark, logo, caption, label, signature or license plate characters. Leave the plate blank."
}

func outputSection(r domain.Resolution) string {
	return fmt.Sprintf("OUTPUT: a single photorealistic 16:9 image at %d×%d of the vehicle exactly as specified above.", r.Width, r.Height)
}

// coverageSection lists what gets film and what never does. A trim-delete
// zone moves chrome trim (and badges for the badges zone) into the include
// list.
func coverageSection(req domain.PromptRequest) string {
	include := coverageIncludes(req)
	exempt := map[string]bool{}
	for _, z := range req.Zones {
		if !domain.IsTrimDeleteZone(z.ZoneName) {
			continue
		}
		exempt[enforcement.SurfaceChromeTrim] = true
		if z.ZoneName == "badges" {
			exempt[enforcement.SurfaceBadges] = true
		}
	}
	if exempt[enforcement.SurfaceChromeTrim] {
		include = append(include, "chrome trim (chrome delete: wrapped in the zone color)")
	}
	if exempt[enforcement.SurfaceBadges] {
		include = append(include, "badges and emblems (chrome delete)")
	}
	if len(include) == 0 {
		include = append(include, "the zones listed above")
	}

	var exclude []string
	for _, s := range enforcement.NeverWrap {
		if !exempt[s.Key] {
			exclude = append(exclude, s.Label)
		}
	}

	lines := []string{"PANEL COVERAGE:", "WRAP: " + strings.Join(include, "; ") + "."}
	lines = append(lines, "NEVER WRAP: "+strings.Join(exclude, "; ")+".")
	return strings.Join(lines, "\n")
}

func coverageIncludes(req domain.PromptRequest) []string {
	var include []string
	switch req.Mode {
	case domain.ModeColorPro:
		seen := map[string]bool{}
		for _, z := range req.Zones {
			if domain.IsTrimDeleteZone(z.ZoneName) {
				continue
			}
			label := zoneLabel(z.ZoneName)
			if !seen[label] {
				seen[label] = true
				include = append(include, label)
			}
		}
		if len(include) == 0 && len(req.Zones) == 0 {
			include = append(include, "all painted body panels")
		}
	case domain.ModeDesignPanelPro, domain.ModeApprove:
		for _, name := range sortedPlacementNames(req.Placements) {
			include = append(include, zoneLabel(name))
		}
		if len(include) == 0 {
			include = append(include, "all painted body panels")
		}
	default:
		include = append(include, "all painted body panels")
	}
	return append(include, req.Panels.Names()...)
}

func zoneLabel(zone string) string {
	return cases.Lower(language.English).String(strings.ReplaceAll(zone, "_", " "))
}
