package compiler

import (
	"fmt"
	"strings"

	"wrapstudio/internal/domain"
)

// FadeBlock names one of the mutually exclusive gradient instruction blocks.
type FadeBlock string

const (
	FadeFrontToBack         FadeBlock = "front_to_back"
	FadeBackToFront         FadeBlock = "back_to_front"
	FadeRearPerformance     FadeBlock = "rear_performance"
	FadeTopToBottom         FadeBlock = "top_to_bottom"
	FadeBottomToTop         FadeBlock = "bottom_to_top"
	FadeDiagonalFront       FadeBlock = "diagonal_front"
	FadeDiagonalRear        FadeBlock = "diagonal_rear"
	FadeCrossfadeHorizontal FadeBlock = "crossfade_horizontal"
	FadeCrossfadeVertical   FadeBlock = "crossfade_vertical"
	FadeCrossfadeDiagonal   FadeBlock = "crossfade_diagonal"
)

// TransitionRule is repeated in every fade block.
const TransitionRule = "TRANSITION RULE: the blend must span at least 40% of the vehicle length, measured along the fade axis. No hard edge, no visible line, no banding."

// VehicleAxisLock is injected whenever a fade is active.
const VehicleAxisLock = "VEHICLE-AXIS LOCK: the gradient is painted on the vehicle body, not on the image. The same point on the vehicle has the same fade color regardless of camera angle. Never re-orient the fade to the frame and never mirror it between views."

type fadeAxis int

const (
	axisLength fadeAxis = iota
	axisHeight
	axisDiagonal
)

type fadeSpec struct {
	title string
	axis  fadeAxis
	// colorFirst puts the color end at the front (length, diagonal) or the top (height).
	colorFirst bool
	crossfade  bool
	extra      string
}

var fadeSpecs = map[FadeBlock]fadeSpec{
	FadeFrontToBack:     {title: "FRONT-TO-BACK FADE", axis: axisLength, colorFirst: true},
	FadeBackToFront:     {title: "BACK-TO-FRONT FADE", axis: axisLength},
	FadeRearPerformance: {title: "REAR PERFORMANCE FADE", axis: axisLength, extra: "Concentrate the color on the rear quarter panels, rear bumper, diffuser and spoiler; the color should feel like it is pushing out of the rear wheel arches. Start the blend no earlier than the B-pillar."},
	FadeTopToBottom:     {title: "TOP-TO-BOTTOM FADE", axis: axisHeight, colorFirst: true},
	FadeBottomToTop:     {title: "BOTTOM-TO-TOP FADE", axis: axisHeight},
	FadeDiagonalFront:   {title: "DIAGONAL FADE (FRONT)", axis: axisDiagonal, colorFirst: true},
	FadeDiagonalRear:    {title: "DIAGONAL FADE (REAR)", axis: axisDiagonal},
	FadeCrossfadeHorizontal: {
		title: "HORIZONTAL CROSSFADE", axis: axisLength, colorFirst: true, crossfade: true,
	},
	FadeCrossfadeVertical: {
		title: "VERTICAL CROSSFADE", axis: axisHeight, colorFirst: true, crossfade: true,
	},
	FadeCrossfadeDiagonal: {
		title: "DIAGONAL CROSSFADE", axis: axisDiagonal, colorFirst: true, crossfade: true,
	},
}

// FadeBlocks lists every block.
var FadeBlocks = []FadeBlock{
	FadeFrontToBack, FadeBackToFront, FadeRearPerformance,
	FadeTopToBottom, FadeBottomToTop, FadeDiagonalFront, FadeDiagonalRear,
	FadeCrossfadeHorizontal, FadeCrossfadeVertical, FadeCrossfadeDiagonal,
}

// ResolveFadeBlock maps a style and direction onto a block. Styles that fix
// an axis only read the direction to pick which end carries the color.
func ResolveFadeBlock(style domain.FadeStyle, dir domain.GradientDirection) FadeBlock {
	switch style {
	case domain.FadeStyleRearPerformance:
		return FadeRearPerformance
	case domain.FadeStyleFrontBack:
		if dir == domain.GradientBackToFront {
			return FadeBackToFront
		}
		return FadeFrontToBack
	case domain.FadeStyleTopBottom:
		if dir == domain.GradientBottomToTop {
			return FadeBottomToTop
		}
		return FadeTopToBottom
	case domain.FadeStyleDiagonal:
		if dir == domain.GradientDiagonalRear {
			return FadeDiagonalRear
		}
		return FadeDiagonalFront
	case domain.FadeStyleCrossfade:
		switch dir {
		case domain.GradientTopToBottom, domain.GradientBottomToTop:
			return FadeCrossfadeVertical
		case domain.GradientDiagonalFront, domain.GradientDiagonalRear:
			return FadeCrossfadeDiagonal
		default:
			return FadeCrossfadeHorizontal
		}
	}
	switch dir {
	case domain.GradientTopToBottom:
		return FadeTopToBottom
	case domain.GradientBottomToTop:
		return FadeBottomToTop
	case domain.GradientBackToFront:
		return FadeBackToFront
	case domain.GradientDiagonalFront:
		return FadeDiagonalFront
	case domain.GradientDiagonalRear:
		return FadeDiagonalRear
	default:
		return FadeFrontToBack
	}
}

func fadeBody(req domain.PromptRequest) string {
	style := domain.ParseFadeStyle(string(req.Fade.Style))
	dir := domain.ParseGradientDirection(string(req.Fade.Direction))
	block := ResolveFadeBlock(style, dir)
	spec := fadeSpecs[block]

	primary := fadePrimaryColor(req)
	secondary := "black"
	colorWord, endWord := "COLOR", "BLACK"
	if spec.crossfade {
		if s := strings.TrimSpace(req.Fade.SecondaryColor); s != "" {
			secondary = s
		}
		colorWord, endWord = "PRIMARY COLOR", "SECONDARY COLOR"
	}

	lines := []string{
		fmt.Sprintf("FADEWRAPS GRADIENT WRAP: photograph %s wrapped in a printed gradient film.", vehicleName(req.Vehicle)),
		fmt.Sprintf("%s: primary color %s, fading to %s.", spec.title, primary, secondary),
	}
	first, second := fadeEnds(spec.axis)
	colorEnd, blackEnd := first, second
	if !spec.colorFirst {
		colorEnd, blackEnd = second, first
	}
	lines = append(lines,
		fmt.Sprintf("FULL %s: %s.", colorWord, colorEnd),
		fmt.Sprintf("FULL %s: %s.", endWord, blackEnd),
	)
	if spec.crossfade {
		lines = append(lines, fmt.Sprintf("PRIMARY COLOR = %s, SECONDARY COLOR = %s. The two colors blend through each other, never through grey.", primary, secondary))
	}
	if spec.extra != "" {
		lines = append(lines, spec.extra)
	}
	lines = append(lines, TransitionRule)
	lines = append(lines, viewRestatement(spec, domain.ParseViewType(string(req.ViewType)), colorWord, endWord))
	lines = append(lines, VehicleAxisLock)

	if req.Fade.InkFusion {
		lines = append(lines, fadeInkSection(req))
	}
	if g := graphicsParagraph(req.Zones); g != "" {
		lines = append(lines, g)
	}
	return strings.Join(lines, "\n")
}

func fadePrimaryColor(req domain.PromptRequest) string {
	if p, ok := req.ProfileFor(0); ok && strings.TrimSpace(p.ColorName) != "" {
		if p.HasHex() {
			return fmt.Sprintf("%s (%s)", p.DisplayName(), strings.ToUpper(p.Hex))
		}
		return p.DisplayName()
	}
	if c := strings.TrimSpace(req.Color); c != "" {
		return c
	}
	if len(req.Zones) > 0 && strings.TrimSpace(req.Zones[0].Color) != "" {
		return req.Zones[0].Color
	}
	if h := strings.TrimSpace(req.Fade.UIHex); h != "" {
		return strings.ToUpper(normalizeHex(h))
	}
	return "the requested color"
}

func fadeInkSection(req domain.PromptRequest) string {
	ui := req.Fade.UIHex
	if ui == "" {
		if p, ok := req.ProfileFor(0); ok && p.HasHex() {
			ui = p.Hex
		}
	}
	if m, ok := NewInkModel(ui, req.Fade.RenderHex); ok {
		return inkSection(m)
	}
	return inkSectionNoHex()
}

func fadeEnds(axis fadeAxis) (string, string) {
	switch axis {
	case axisHeight:
		return "roof, pillars and the upper body above the beltline",
			"rocker panels, lower door skins and the lower bumpers"
	case axisDiagonal:
		return "the front lower corner (front bumper and lower front fenders)",
			"the rear upper corner (rear roof edge, trunk lid and upper quarter panels)"
	default:
		return "front bumper, hood and front fenders",
			"rear bumper, trunk lid and rear quarter panels"
	}
}

// viewRestatement repeats the block for the requested camera only. Frame
// left/right language appears in the side view alone.
func viewRestatement(spec fadeSpec, view domain.ViewType, c, e string) string {
	front, rear := c, e
	if !spec.colorFirst {
		front, rear = e, c
	}
	switch spec.axis {
	case axisHeight:
		top, bottom := front, rear
		switch view {
		case domain.ViewFront:
			return fmt.Sprintf("FRONT VIEW: the hood and windshield frame are FULL %s; the lower bumper and air intakes are FULL %s.", top, bottom)
		case domain.ViewSide:
			return fmt.Sprintf("SIDE VIEW: the roofline is FULL %s and the rocker panels are FULL %s. The blend runs level across the doors from the left edge of the car to the right edge, never tilted.", top, bottom)
		case domain.ViewRear:
			return fmt.Sprintf("REAR VIEW: the roof spoiler and trunk lid are FULL %s; the rear bumper and diffuser are FULL %s.", top, bottom)
		case domain.ViewTop:
			return fmt.Sprintf("TOP VIEW: the HOOD (top of frame), roof and TRUNK (bottom of frame) face upward and read FULL %s; only the body flanks at the outer edges show the blend toward %s.", top, bottom)
		default:
			return fmt.Sprintf("HERO VIEW: the roof and upper body are FULL %s; the rocker panels and lower bumpers are FULL %s; the blend crosses the doors at mid height.", top, bottom)
		}
	case axisDiagonal:
		switch view {
		case domain.ViewFront:
			return fmt.Sprintf("FRONT VIEW: the lower front bumper is FULL %s; the hood shades toward %s as it rises to the windshield.", front, rear)
		case domain.ViewSide:
			return fmt.Sprintf("SIDE VIEW: the blend runs on a diagonal from the front lower corner (FULL %s) to the rear upper corner (FULL %s). With the nose at the left of the frame the diagonal rises to the right; with the nose at the right it rises to the left.", front, rear)
		case domain.ViewRear:
			return fmt.Sprintf("REAR VIEW: the upper trunk lid and rear roof edge are FULL %s; the lower rear bumper carries the blend toward %s.", rear, front)
		case domain.ViewTop:
			return fmt.Sprintf("TOP VIEW: the HOOD (top of frame) is FULL %s and the TRUNK (bottom of frame) is FULL %s; the roof carries the diagonal blend.", front, rear)
		default:
			return fmt.Sprintf("HERO VIEW: the front lower corner is FULL %s and the rear upper corner is FULL %s; the blend crosses the doors on a diagonal.", front, rear)
		}
	default:
		switch view {
		case domain.ViewFront:
			return fmt.Sprintf("FRONT VIEW: the front bumper, hood and front fenders facing the camera are FULL %s.", front)
		case domain.ViewSide:
			return fmt.Sprintf("SIDE VIEW: the front of the vehicle is FULL %s and the rear is FULL %s. With the nose at the left of the frame the fade runs left to right; with the nose at the right it runs right to left.", front, rear)
		case domain.ViewRear:
			return fmt.Sprintf("REAR VIEW: the rear bumper, trunk lid and taillight surround are FULL %s.", rear)
		case domain.ViewTop:
			return fmt.Sprintf("TOP VIEW: the HOOD (top of frame) is FULL %s, the roof carries the transition, the TRUNK (bottom of frame) is FULL %s.", front, rear)
		default:
			return fmt.Sprintf("HERO VIEW: the front bumper and hood are FULL %s, the doors carry the transition, the rear quarter panels and rear bumper are FULL %s.", front, rear)
		}
	}
}
