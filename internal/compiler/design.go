package compiler

import (
	"fmt"
	"sort"
	"strings"

	"wrapstudio/internal/domain"
	"wrapstudio/internal/placement"
)

func designPanelBody(req domain.PromptRequest) string {
	lines := []string{
		fmt.Sprintf("DESIGNPANELPRO WRAP: photograph %s wrapped with the supplied 2D panel artwork printed on vinyl.", vehicleName(req.Vehicle)),
	}
	if u := strings.TrimSpace(req.DesignImageURL); u != "" {
		lines = append(lines, "Design image: "+u)
	}
	if instr := placement.Instructions(req.Placements); instr != "" {
		lines = append(lines, instr)
	} else {
		lines = append(lines, "Apply the design across all painted body panels, keeping its composition centered on each side of the vehicle.")
	}
	lines = append(lines,
		"The artwork follows the body like printed film: it bends over panel curvature, breaks only at panel gaps and keeps its proportions. No stretching, no perspective re-drawing, no added elements.",
	)
	lines = append(lines, referenceLines(req.ReferenceURLs)...)
	if g := graphicsParagraph(req.Zones); g != "" {
		lines = append(lines, g)
	}
	return strings.Join(lines, "\n")
}

func patternBody(req domain.PromptRequest) string {
	name := strings.TrimSpace(req.Pattern.Name)
	if name == "" {
		name = "the supplied pattern"
	}
	scale := req.Pattern.Scale
	if scale <= 0 {
		scale = 1
	}
	lines := []string{
		fmt.Sprintf("PATTERNPRO WRAP: photograph %s wrapped in a printed repeating pattern film: %s.", vehicleName(req.Vehicle), name),
	}
	if u := strings.TrimSpace(req.Pattern.URL); u != "" {
		lines = append(lines, "Pattern tile: "+u)
	}
	lines = append(lines,
		fmt.Sprintf("TILE SCALE: %.2f× (one repeat is about %.0f cm on the body at 1.00×).", scale, 30*scale),
		"The tile is seamless: no visible seams, borders or mirrored joins between repeats.",
		"The pattern keeps one scale on every panel and continues across panel gaps as if printed on one sheet, aligned with the vehicle length.",
		"Do not recolor, simplify or redraw the pattern motifs.",
	)
	lines = append(lines, referenceLines(req.ReferenceURLs)...)
	if g := graphicsParagraph(req.Zones); g != "" {
		lines = append(lines, g)
	}
	return strings.Join(lines, "\n")
}

func approveBody(req domain.PromptRequest) string {
	lines := []string{
		fmt.Sprintf("APPROVE MODE: EXACT 2D PROOF REPROJECTION onto %s.", vehicleName(req.Vehicle)),
	}
	if u := strings.TrimSpace(req.DesignImageURL); u != "" {
		lines = append(lines, "Proof: "+u)
	}
	lines = append(lines,
		"Reproduce the approved proof exactly: same colors, same shapes, same positions and proportions. Do not reinterpret, embellish, simplify or complete missing areas.",
		"Everything that is not on the proof stays factory paint.",
	)
	if instr := placement.Instructions(req.Placements); instr != "" {
		lines = append(lines, instr)
	}
	lines = append(lines, referenceLines(req.ReferenceURLs)...)
	return strings.Join(lines, "\n")
}

func referenceLines(urls []string) []string {
	var refs []string
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			refs = append(refs, u)
		}
	}
	if len(refs) == 0 {
		return nil
	}
	return []string{"Reference images (match vehicle geometry only): " + strings.Join(refs, "; ")}
}

func sortedPlacementNames(m map[string]domain.MappedPlacement) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
