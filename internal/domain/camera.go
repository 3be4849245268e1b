package domain

import "strings"

// ViewType names a camera preset.
type ViewType string

const (
	ViewHero             ViewType = "hero"
	ViewFront            ViewType = "front"
	ViewSide             ViewType = "side"
	ViewRear             ViewType = "rear"
	ViewTop              ViewType = "top"
	ViewRearThreeQuarter ViewType = "rear_three_quarter"
	ViewDetail           ViewType = "detail"
)

// ParseViewType lowercases and canonicalises separators. Unknown values are
// returned as-is; the angle engine falls back to hero for them.
func ParseViewType(s string) ViewType {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	if s == "" {
		return ViewHero
	}
	return ViewType(s)
}

// CameraAngle is a pure value object from the preset table. Angles are in
// degrees, Distance is a multiple of vehicle length.
type CameraAngle struct {
	Yaw        float64 `json:"yaw"`
	Pitch      float64 `json:"pitch"`
	Distance   float64 `json:"distance"`
	LightYaw   float64 `json:"light_yaw"`
	LightPitch float64 `json:"light_pitch"`
	FOV        float64 `json:"fov"`
	Label      string  `json:"label"`
}

// IsZero reports an unset angle.
func (c CameraAngle) IsZero() bool {
	return c == CameraAngle{}
}
