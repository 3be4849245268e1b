package compiler

import (
	"fmt"
	"strings"

	"wrapstudio/internal/bands"
	"wrapstudio/internal/domain"
)

// Two-tone split failure conditions a reviewer checks the render against.
const (
	FailureSolidColor = "FAILURE CONDITION 1: the vehicle renders as one solid color. This is wrong."
	FailureRoofOnly   = "FAILURE CONDITION 2: only the roof differs in color while every other panel shares one color. This is wrong."
)

const caliperParagraph = "CALIPERS: paint only the brake calipers in this color. They must be clearly visible through the wheel spokes in every view; do not hide them behind solid wheel faces and do not recolor rotors, hubs or wheels."

const trimDeleteParagraph = "CHROME DELETE: replace the factory chrome on this trim with the film color. Only the trim pieces change; the body color is unaffected and every painted panel stays exactly as specified elsewhere."

const twoToneParagraph = `TWO-TONE SPLIT (MANDATORY):
The split line is the BELTLINE: the horizontal line running along the bottom edge of the side windows, continued around the front and rear.
TOP HALF = roof, A/B/C pillars, upper door skins above the beltline, hood top surface, trunk lid, mirror housings.
BOTTOM HALF = lower door skins below the beltline, front and rear fenders, quarter panels, rocker panels, front and rear bumpers.
Both halves must be clearly different colors as specified per zone, with a crisp straight split at the beltline.`

func colorProBody(req domain.PromptRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "COLORPRO WRAP: photograph %s wrapped in color-change vinyl film.", vehicleName(req.Vehicle))

	if len(req.Zones) == 0 {
		b.WriteString("\n\n")
		b.WriteString(singleZoneFallback(req))
		return b.String()
	}

	for i, z := range req.Zones {
		b.WriteString("\n\n")
		b.WriteString(zoneBlock(i+1, z, req.Profiles, i))
	}
	if len(req.Zones) >= 2 {
		b.WriteString("\n\n")
		b.WriteString(twoToneParagraph)
		b.WriteString("\n")
		b.WriteString(FailureSolidColor)
		b.WriteString("\n")
		b.WriteString(FailureRoofOnly)
	}
	return b.String()
}

func singleZoneFallback(req domain.PromptRequest) string {
	color := strings.TrimSpace(req.Color)
	if p, ok := req.ProfileFor(0); ok {
		color = p.DisplayName()
	}
	if color == "" {
		color = "the requested color"
	}
	finish := req.PrimaryFinish()
	return fmt.Sprintf("SINGLE ZONE: wrap every painted body panel in %s with a %s finish. One uniform color over the whole body.\n%s",
		color, finish, FinishParagraph(finish))
}

// zoneBlock prints only the fields the resolved profile actually has.
func zoneBlock(n int, z domain.ZoneSpec, profiles []domain.ColorProfile, i int) string {
	finish := domain.NormalizeFinish(z.Finish)
	lines := []string{fmt.Sprintf("ZONE %d: %s", n, strings.ToUpper(zoneLabel(z.ZoneName)))}

	var p domain.ColorProfile
	hasProfile := i < len(profiles)
	if hasProfile {
		p = profiles[i]
		if p.Finish != "" {
			finish = p.Finish
		}
	}

	switch {
	case hasProfile && !p.Fallback:
		if m := strings.TrimSpace(p.Manufacturer); m != "" && m != domain.ManufacturerCustom {
			lines = append(lines, "- Manufacturer: "+m)
		}
		lines = append(lines, "- Color: "+p.ColorName)
		if p.ProductCode != "" {
			lines = append(lines, "- Product code: "+p.ProductCode)
		}
		if p.HasHex() {
			lines = append(lines, "- Hex: "+strings.ToUpper(p.Hex))
		}
		if p.LAB != nil {
			lines = append(lines, "- LAB: "+bands.DescribeLAB(p.LAB.L, p.LAB.A, p.LAB.B))
		}
		if p.Reflectivity != nil {
			lines = append(lines, "- Reflectivity: "+bands.DescribeReflectivity(*p.Reflectivity))
		}
		if p.MetallicFlake != nil {
			lines = append(lines, "- Metallic flake: "+bands.DescribeFlake(*p.MetallicFlake))
		}
	case hasProfile:
		if m := strings.TrimSpace(p.Manufacturer); m != "" && m != domain.ManufacturerCustom {
			lines = append(lines, "- Manufacturer: "+m)
		}
		lines = append(lines, "- Color: "+p.ColorName+" (no measured swatch on file: match the color by name, no hex value is available)")
	default:
		if m := strings.TrimSpace(z.Manufacturer); m != "" && m != domain.ManufacturerCustom {
			lines = append(lines, "- Manufacturer: "+m)
		}
		lines = append(lines, "- Color: "+strings.TrimSpace(z.Color))
	}
	lines = append(lines, "- "+FinishParagraph(finish))

	switch {
	case strings.Contains(z.ZoneName, "caliper"):
		lines = append(lines, caliperParagraph)
	case domain.IsTrimDeleteZone(z.ZoneName):
		lines = append(lines, trimDeleteParagraph)
	}
	if z.Graphic != nil {
		lines = append(lines, GraphicParagraph(*z.Graphic, z.Color))
	}
	return strings.Join(lines, "\n")
}
