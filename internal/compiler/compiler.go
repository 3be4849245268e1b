// Package compiler assembles the final image prompt from a PromptRequest.
// Build is a pure function: each section is produced by a small builder and
// sections are always emitted in the same order.
package compiler

import (
	"strings"

	"wrapstudio/internal/camera"
	"wrapstudio/internal/domain"
	"wrapstudio/internal/enforcement"
)

// Section names in emission order.
const (
	SectionAspect       = "aspect"
	SectionPhotorealism = "photorealism"
	SectionForbidden    = "forbidden_text"
	SectionBody         = "body"
	SectionCamera       = "camera"
	SectionEnforcement  = "hard_enforcement"
	SectionStudio       = "studio"
	SectionFinish       = "finish"
	SectionCoverage     = "coverage"
	SectionOutput       = "output"
)

// Section is one titled block of prompt text.
type Section struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// Prompt is an ordered list of sections.
type Prompt struct {
	Sections []Section `json:"sections"`
}

// String joins the section bodies with blank lines.
func (p Prompt) String() string {
	parts := make([]string, 0, len(p.Sections))
	for _, s := range p.Sections {
		if body := strings.TrimSpace(s.Body); body != "" {
			parts = append(parts, body)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Section returns the named section.
func (p Prompt) Section(name string) (Section, bool) {
	for _, s := range p.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Has reports whether the named section is present.
func (p Prompt) Has(name string) bool {
	_, ok := p.Section(name)
	return ok
}

// Names lists section names in order.
func (p Prompt) Names() []string {
	out := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		out[i] = s.Name
	}
	return out
}

// Prepend returns a copy of p with s placed first.
func (p Prompt) Prepend(s Section) Prompt {
	out := Prompt{Sections: make([]Section, 0, len(p.Sections)+1)}
	out.Sections = append(out.Sections, s)
	out.Sections = append(out.Sections, p.Sections...)
	return out
}

type bodyBuilder func(req domain.PromptRequest) string

var modeBodies = map[domain.ToolMode]bodyBuilder{
	domain.ModeColorPro:       colorProBody,
	domain.ModeFadeWraps:      fadeBody,
	domain.ModeDesignPanelPro: designPanelBody,
	domain.ModePatternPro:     patternBody,
	domain.ModeApprove:        approveBody,
}

// Build compiles req. Unknown modes compile as ColorPro.
func Build(req domain.PromptRequest) Prompt {
	mode, _ := domain.ParseToolMode(string(req.Mode))
	req.Mode = mode
	res := outputResolution(req.Resolution)

	sections := []Section{
		{SectionAspect, aspectSection(res)},
		{SectionPhotorealism, photorealismSection()},
		{SectionForbidden, forbiddenTextSection()},
		{SectionBody, modeBodies[mode](req)},
		{SectionCamera, cameraSection(req)},
	}
	if req.HardEnforcement {
		sections = append(sections, Section{SectionEnforcement, enforcement.BuildCompleteHardEnforcement(enforcementParams(req))})
	}
	groups := finishGroups(req)
	sections = append(sections,
		Section{SectionStudio, studioSection(selectStudioFor(groups, req.StudioOverride))},
		Section{SectionFinish, finishSection(groups)},
		Section{SectionCoverage, coverageSection(req)},
		Section{SectionOutput, outputSection(res)},
	)
	return Prompt{Sections: sections}
}

// BuildString is Build(req).String().
func BuildString(req domain.PromptRequest) string {
	return Build(req).String()
}

func outputResolution(r domain.Resolution) domain.Resolution {
	if r == domain.Resolution1792 {
		return r
	}
	return domain.Resolution1920
}

func cameraAngle(req domain.PromptRequest) domain.CameraAngle {
	if !req.Camera.IsZero() {
		return req.Camera
	}
	return camera.AngleByViewType(req.ViewType)
}

func cameraSection(req domain.PromptRequest) string {
	return camera.Describe(cameraAngle(req)) +
		"\nKeep this exact framing: the whole vehicle is in frame, centered, with the ground plane visible. Do not change the angle, crop or lens."
}

func enforcementParams(req domain.PromptRequest) enforcement.Params {
	if p, ok := req.ProfileFor(0); ok {
		return enforcement.FromProfile(p)
	}
	name := strings.TrimSpace(req.Color)
	if name == "" && len(req.Zones) > 0 {
		name = req.Zones[0].Color
	}
	return enforcement.Params{ColorName: name, Finish: req.PrimaryFinish()}
}

func vehicleName(v domain.VehicleDescriptor) string {
	if v.IsZero() {
		return "the vehicle"
	}
	return "a " + v.String()
}
