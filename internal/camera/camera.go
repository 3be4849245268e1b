// Package camera holds the fixed camera presets and the per-tool angle sets.
package camera

import (
	"fmt"

	"wrapstudio/internal/domain"
)

// DefaultSpinCount is used when SpinAngles is asked for zero or fewer frames.
const DefaultSpinCount = 24

// Spin frame constants.
const (
	SpinPitch       = 10.0
	SpinDistance    = 1.25
	SpinFOV         = 30.0
	SpinLightOffset = 25.0
	SpinLightPitch  = 45.0
)

var presets = map[domain.ViewType]domain.CameraAngle{
	domain.ViewHero:             {Yaw: 35, Pitch: 12, Distance: 1.3, LightYaw: 60, LightPitch: 45, FOV: 30, Label: "hero"},
	domain.ViewFront:            {Yaw: 0, Pitch: 8, Distance: 1.25, LightYaw: 25, LightPitch: 40, FOV: 30, Label: "front"},
	domain.ViewSide:             {Yaw: 90, Pitch: 5, Distance: 1.35, LightYaw: 115, LightPitch: 40, FOV: 28, Label: "side"},
	domain.ViewRear:             {Yaw: 180, Pitch: 8, Distance: 1.25, LightYaw: 205, LightPitch: 40, FOV: 30, Label: "rear"},
	domain.ViewTop:              {Yaw: 0, Pitch: 75, Distance: 1.6, LightYaw: 25, LightPitch: 80, FOV: 35, Label: "top"},
	domain.ViewRearThreeQuarter: {Yaw: 145, Pitch: 12, Distance: 1.3, LightYaw: 170, LightPitch: 45, FOV: 30, Label: "rear_three_quarter"},
	domain.ViewDetail:           {Yaw: 60, Pitch: 6, Distance: 0.6, LightYaw: 85, LightPitch: 35, FOV: 22, Label: "detail"},
}

var (
	approveViews   = []domain.ViewType{domain.ViewHero, domain.ViewFront, domain.ViewSide, domain.ViewRear, domain.ViewTop}
	flipViews      = []domain.ViewType{domain.ViewHero, domain.ViewSide, domain.ViewRearThreeQuarter}
	pearlViews     = []domain.ViewType{domain.ViewHero, domain.ViewSide}
	solidViews     = []domain.ViewType{domain.ViewHero}
	threeViewSet   = []domain.ViewType{domain.ViewHero, domain.ViewSide, domain.ViewRear}
	patternViewSet = []domain.ViewType{domain.ViewHero, domain.ViewSide}
)

// AngleByViewType returns the preset for view. Unknown views get hero.
func AngleByViewType(view domain.ViewType) domain.CameraAngle {
	if a, ok := presets[domain.ParseViewType(string(view))]; ok {
		return a
	}
	return presets[domain.ViewHero]
}

// Known reports whether view has its own preset.
func Known(view domain.ViewType) bool {
	_, ok := presets[domain.ParseViewType(string(view))]
	return ok
}

// ViewsForTool lists the preset views a tool renders. For ColorPro the
// material decides: flip film gets three views, pearl two, anything else one.
// A nil material is treated as solid.
func ViewsForTool(mode domain.ToolMode, material *domain.ColorProfile) []domain.ViewType {
	var views []domain.ViewType
	switch mode {
	case domain.ModeApprove:
		views = approveViews
	case domain.ModeColorPro:
		switch {
		case material == nil:
			views = solidViews
		case material.IsFlipFilm():
			views = flipViews
		case material.IsPearl():
			views = pearlViews
		default:
			views = solidViews
		}
	case domain.ModeFadeWraps, domain.ModeDesignPanelPro:
		views = threeViewSet
	case domain.ModePatternPro:
		views = patternViewSet
	default:
		views = solidViews
	}
	return append([]domain.ViewType(nil), views...)
}

// AnglesForTool resolves ViewsForTool into camera angles.
func AnglesForTool(mode domain.ToolMode, material *domain.ColorProfile) []domain.CameraAngle {
	views := ViewsForTool(mode, material)
	out := make([]domain.CameraAngle, len(views))
	for i, v := range views {
		out[i] = AngleByViewType(v)
	}
	return out
}

// SpinAngles returns count frames evenly spaced in yaw. The light follows
// the camera at a fixed offset and is not wrapped at 360.
func SpinAngles(count int) []domain.CameraAngle {
	if count <= 0 {
		count = DefaultSpinCount
	}
	step := 360.0 / float64(count)
	out := make([]domain.CameraAngle, count)
	for i := range out {
		yaw := step * float64(i)
		out[i] = domain.CameraAngle{
			Yaw:        yaw,
			Pitch:      SpinPitch,
			Distance:   SpinDistance,
			LightYaw:   yaw + SpinLightOffset,
			LightPitch: SpinLightPitch,
			FOV:        SpinFOV,
			Label:      fmt.Sprintf("spin_%03d", i),
		}
	}
	return out
}

// Describe renders an angle as a single camera instruction line.
func Describe(a domain.CameraAngle) string {
	return fmt.Sprintf(
		"CAMERA (%s): yaw %.0f°, pitch %.0f°, distance %.2f× vehicle length, %.0f° field of view; key light at yaw %.0f°, elevation %.0f°.",
		a.Label, a.Yaw, a.Pitch, a.Distance, a.FOV, a.LightYaw, a.LightPitch,
	)
}
