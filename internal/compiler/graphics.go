package compiler

import (
	"fmt"
	"strings"

	"wrapstudio/internal/domain"
)

// GraphicInvariant is repeated on every graphic.
const GraphicInvariant = "Cut vinyl, hard edges, no gradients."

var placementText = map[string]string{
	"beltline": "along the beltline on both sides",
	"center":   "down the vehicle centerline from the front bumper over the hood, roof and trunk",
	"rocker":   "along the rocker panels on both sides",
	"side":     "along both body sides",
	"hood":     "over the hood",
	"roof":     "over the roof",
}

// GraphicParagraph describes one cut vinyl graphic. baseColor is used when
// the graphic names no color of its own.
func GraphicParagraph(g domain.GraphicSpec, baseColor string) string {
	color := strings.Join(g.Colors, " and ")
	if color == "" {
		color = strings.TrimSpace(baseColor)
	}
	if color == "" {
		color = "a contrasting color"
	}
	where := placementText[g.Placement]
	layers := g.Layers
	if layers < 1 {
		layers = 1
	}

	var desc string
	switch g.Width {
	case domain.GraphicWidthPinstripe:
		if where == "" {
			where = "along the beltline on both sides"
		}
		desc = fmt.Sprintf("GRAPHIC: %s pinstripe, 3–6mm wide, %s.", color, where)
	case domain.GraphicWidthRacing:
		if where == "" {
			where = "running front to back over the hood, roof and trunk"
		}
		stripes := "a single stripe"
		if layers > 1 {
			stripes = fmt.Sprintf("%d parallel stripes with equal gaps", layers)
		}
		desc = fmt.Sprintf("GRAPHIC: %s racing stripes, each 10–30cm wide, %s, %s.", color, stripes, where)
	default:
		if where == "" {
			where = "as a restrained accent along the body sides"
		}
		desc = fmt.Sprintf("GRAPHIC: %s accent stripe, %s, sized in proportion to the panel.", color, where)
	}
	return desc + " " + GraphicInvariant
}

func graphicsParagraph(zones []domain.ZoneSpec) string {
	var lines []string
	for _, z := range zones {
		if z.Graphic != nil {
			lines = append(lines, GraphicParagraph(*z.Graphic, z.Color))
		}
	}
	return strings.Join(lines, "\n")
}
