// Package interpreter turns free-text styling instructions into ordered
// zone descriptors. Matching is keyword based and deliberately permissive:
// zone words outside the canonical vocabulary pass through as-is.
package interpreter

import (
	"regexp"
	"strings"

	"wrapstudio/internal/domain"
)

var (
	clauseSeparators = regexp.MustCompile(`(?i)[,;\n]+|\s+then\s+|\.\s+`)
	andSeparator     = regexp.MustCompile(`(?i)\s+and\s+`)
	withSeparator    = regexp.MustCompile(`(?i)\s+with\s+`)
	wordPattern      = regexp.MustCompile(`[a-z0-9]+`)
)

// Interpret parses free text into zone specs in the order they appear. It
// never fails; text without any recognisable zone or color yields nil.
func Interpret(text string) []domain.ZoneSpec {
	var zones []domain.ZoneSpec
	for _, clause := range splitClauses(text) {
		zones = append(zones, parseClause(clause)...)
	}
	return zones
}

func splitClauses(text string) []string {
	var out []string
	for _, part := range clauseSeparators.Split(text, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, splitOnAnd(part)...)
	}
	return out
}

// splitOnAnd breaks "top gloss black and bottom satin red" into two clauses
// but keeps "hood and roof in black" together: a split only happens when
// both sides carry their own color.
func splitOnAnd(clause string) []string {
	pieces := andSeparator.Split(clause, -1)
	if len(pieces) == 1 {
		return pieces
	}
	var out []string
	current := pieces[0]
	for _, next := range pieces[1:] {
		_, hasZone := firstToken(next, zoneRules)
		_, leftColor := firstToken(mainPart(current), colorRules)
		if hasZone && leftColor {
			out = append(out, current)
			current = next
			continue
		}
		current = current + " and " + next
	}
	return append(out, current)
}

func mainPart(clause string) string {
	parts := withSeparator.Split(clause, 2)
	return parts[0]
}

func parseClause(clause string) []domain.ZoneSpec {
	parts := withSeparator.Split(clause, 2)
	main := strings.ToLower(parts[0])
	var extra string
	if len(parts) == 2 {
		extra = strings.ToLower(parts[1])
	}

	if g, ok := detectGraphic(main); ok {
		return graphicOnly(main, g)
	}

	zoneTokens, rest := extract(main, zoneRules)
	manufacturer := domain.ManufacturerCustom
	makers, rest := extract(rest, manufacturerRules)
	if len(makers) > 0 {
		manufacturer = makers[0]
	}
	profile := domain.FinishProfileSolid
	if p, ok := firstToken(rest, finishProfileRules); ok {
		profile = p
	}
	finishTokens, rest := extract(rest, finishRules)
	finish := string(domain.FinishGloss)
	if len(finishTokens) > 0 {
		finish = finishTokens[0]
	}
	// "metallic" is both a finish and a profile, so profile words are
	// blanked only after finishes have been read.
	_, rest = extract(rest, finishProfileRules)
	colors, rest := extract(rest, colorRules)

	if len(zoneTokens) == 0 {
		zoneTokens = []string{passThroughZone(rest)}
	}

	var graphic *domain.GraphicSpec
	if extra != "" {
		if g, ok := detectGraphic(extra); ok {
			graphic = &g
		}
	}

	var out []domain.ZoneSpec
	for _, zone := range zoneTokens {
		color := ""
		if len(colors) > 0 {
			color = colors[0]
		} else if domain.IsTrimDeleteZone(zone) {
			color = "black"
		}
		if color == "" {
			continue
		}
		z := domain.ZoneSpec{
			ZoneName:      zone,
			Color:         color,
			Finish:        finish,
			Manufacturer:  manufacturer,
			FinishProfile: profile,
		}
		if graphic != nil {
			g := *graphic
			g.Colors = append([]string(nil), graphic.Colors...)
			z.Graphic = &g
		}
		out = append(out, z)
	}
	return out
}

// graphicOnly handles clauses such as "white dual racing stripes over the
// hood": the clause describes a cut vinyl graphic rather than a base color.
func graphicOnly(main string, g domain.GraphicSpec) []domain.ZoneSpec {
	if len(g.Colors) == 0 {
		return nil
	}
	zone := "stripe"
	zoneTokens, _ := extract(main, zoneRules)
	switch {
	case g.Placement == "hood" || contains(zoneTokens, "hood_graphic"):
		zone = "hood_graphic"
	case g.Placement == "roof" || contains(zoneTokens, "roof_graphic"):
		zone = "roof_graphic"
	}
	finish := string(domain.FinishGloss)
	if f, ok := firstToken(main, finishRules); ok {
		finish = f
	}
	manufacturer := domain.ManufacturerCustom
	if m, ok := firstToken(main, manufacturerRules); ok {
		manufacturer = m
	}
	return []domain.ZoneSpec{{
		ZoneName:      zone,
		Color:         g.Colors[0],
		Finish:        finish,
		Manufacturer:  manufacturer,
		FinishProfile: domain.FinishProfileSolid,
		Graphic:       &g,
	}}
}

func detectGraphic(s string) (domain.GraphicSpec, bool) {
	tokens, _ := extract(s, graphicRules)
	if len(tokens) == 0 {
		return domain.GraphicSpec{}, false
	}
	width, layers := classifyGraphic(s)
	g := domain.GraphicSpec{
		Type:    domain.GraphicTypeCutVinyl,
		Keyword: tokens[0],
		Layers:  layers,
		Width:   width,
	}
	if p, ok := firstToken(s, placementRules); ok {
		g.Placement = p
	}
	_, rest := extract(s, zoneRules)
	g.Colors, _ = extract(rest, colorRules)
	return g, true
}

func passThroughZone(rest string) string {
	var words []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(rest), -1) {
		if _, skip := fillerWords[w]; skip {
			continue
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return "full"
	}
	return strings.Join(words, "_")
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
