package revision

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wrapstudio/internal/camera"
	"wrapstudio/internal/compiler"
	"wrapstudio/internal/domain"
	"wrapstudio/internal/interpreter"
	"wrapstudio/internal/swatch"
)

func strp(s string) *string { return &s }

func original(t *testing.T) domain.PromptRequest {
	t.Helper()
	zones := interpreter.Interpret("roof gloss black; hood carbon black with white racing stripes; mirrors gloss black")
	if len(zones) != 3 {
		t.Fatalf("fixture zones = %+v", zones)
	}
	return domain.PromptRequest{
		Mode:       domain.ModeColorPro,
		Vehicle:    domain.ParseVehicle("2024 Tesla Model Y"),
		Zones:      zones,
		Profiles:   swatch.NewResolver(nil).ResolveAll(zones),
		ViewType:   domain.ViewSide,
		Camera:     camera.AngleByViewType(domain.ViewSide),
		Resolution: domain.Resolution1792,
	}
}

func TestParseChange(t *testing.T) {
	cases := []struct {
		text string
		want Patch
	}{
		{"make the roof satin instead of gloss", Patch{Zone: "roof", Finish: strp("satin")}},
		{"hood in red", Patch{Zone: "hood", Color: strp("red")}},
		{"mirrors 3M matte white, not black", Patch{Zone: "mirrors", Color: strp("white"), Finish: strp("matte"), Manufacturer: strp("3M")}},
		{"remove the stripes from the hood", Patch{Zone: "hood", RemoveGraphic: true}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, ParseChange(tc.text)); diff != "" {
			t.Fatalf("ParseChange(%q) (-want +got):\n%s", tc.text, diff)
		}
	}

	p := ParseChange("add a gold pinstripe to the roof")
	if p.Zone != "roof" || p.Graphic == nil || p.Graphic.Width != domain.GraphicWidthPinstripe || p.Color != nil {
		t.Fatalf("graphic patch = %+v", p)
	}
}

func TestParseChangeFlagsFixedFields(t *testing.T) {
	cases := map[string]func(Patch) bool{
		"zoom in on the hood":            func(p Patch) bool { return p.Camera != nil },
		"show it from the top":           func(p Patch) bool { return p.ViewType == "top" },
		"make it square":                 func(p Patch) bool { return p.AspectRatio == "square" },
		"same wrap on a different truck": func(p Patch) bool { return p.Vehicle != "" },
	}
	for text, check := range cases {
		p := ParseChange(text)
		if !check(p) {
			t.Fatalf("ParseChange(%q) = %+v", text, p)
		}
	}
}

func TestValidateRevisionRequest(t *testing.T) {
	orig := original(t)
	cases := []struct {
		name  string
		patch Patch
		valid bool
	}{
		{"finish change", Patch{Zone: "roof", Finish: strp("satin")}, true},
		{"zone name is case insensitive", Patch{Zone: "Mirrors", Color: strp("red")}, true},
		{"camera change", Patch{Zone: "roof", Finish: strp("satin"), Camera: &domain.CameraAngle{Yaw: 90}}, false},
		{"same camera is fine", Patch{Zone: "roof", Finish: strp("satin"), Camera: &orig.Camera}, true},
		{"view change", Patch{Zone: "roof", Color: strp("red"), ViewType: "front"}, false},
		{"same view is fine", Patch{Zone: "roof", Color: strp("red"), ViewType: "side"}, true},
		{"aspect change", Patch{Zone: "roof", Color: strp("red"), AspectRatio: "1:1"}, false},
		{"resolution change", Patch{Zone: "roof", Color: strp("red"), Resolution: &domain.Resolution1920}, false},
		{"vehicle change", Patch{Zone: "roof", Color: strp("red"), Vehicle: "2023 Ford F-150"}, false},
		{"same vehicle is fine", Patch{Zone: "roof", Color: strp("red"), Vehicle: "2024 tesla model y"}, true},
		{"empty patch", Patch{Zone: "roof"}, false},
		{"unknown zone", Patch{Zone: "spoiler", Color: strp("red")}, false},
		{"ambiguous zone", Patch{Color: strp("red")}, false},
		{"unknown finish", Patch{Zone: "roof", Finish: strp("velvet")}, false},
		{"remove missing graphic", Patch{Zone: "roof", RemoveGraphic: true}, false},
		{"remove graphic", Patch{Zone: "hood", RemoveGraphic: true}, true},
	}
	for _, tc := range cases {
		v := ValidateRevisionRequest(orig, tc.patch)
		if v.Valid != tc.valid {
			t.Fatalf("%s: valid = %v (%s)", tc.name, v.Valid, v.Reason)
		}
		if !v.Valid {
			if v.Reason == "" {
				t.Fatalf("%s: rejection without reason", tc.name)
			}
			if !errors.Is(v.Err(), domain.ErrInvalidRevision) {
				t.Fatalf("%s: err = %v", tc.name, v.Err())
			}
		} else if v.Err() != nil {
			t.Fatalf("%s: valid result returned an error", tc.name)
		}
	}
}

func TestApplyPatchTouchesOnlyTargetZone(t *testing.T) {
	orig := original(t)
	before := orig.Clone()

	got, i := ApplyPatch(orig, Patch{Zone: "roof", Finish: strp("satin")})
	if i != 0 {
		t.Fatalf("index = %d", i)
	}
	if diff := cmp.Diff(before, orig); diff != "" {
		t.Fatalf("original mutated (-before +after):\n%s", diff)
	}
	if got.Zones[0].Finish != "satin" || got.Zones[0].Color != "black" {
		t.Fatalf("roof = %+v", got.Zones[0])
	}
	if diff := cmp.Diff(orig.Zones[1:], got.Zones[1:]); diff != "" {
		t.Fatalf("other zones changed (-want +got):\n%s", diff)
	}
	if got.Camera != orig.Camera || got.ViewType != orig.ViewType || got.Resolution != orig.Resolution || got.Vehicle != orig.Vehicle {
		t.Fatal("geometry changed")
	}

	got, _ = ApplyPatch(orig, Patch{Zone: "hood", RemoveGraphic: true})
	if got.Zones[1].Graphic != nil || orig.Zones[1].Graphic == nil {
		t.Fatal("graphic removal must only affect the copy")
	}
}

func TestApplyPatchRequestLevel(t *testing.T) {
	req := domain.PromptRequest{Mode: domain.ModeFadeWraps, Color: "red", Fade: domain.FadeOptions{InkFusion: true, UIHex: "#ff0000"}}
	got, i := ApplyPatch(req, Patch{Color: strp("blue")})
	if i != -1 || got.Color != "blue" {
		t.Fatalf("request level patch: %d %+v", i, got)
	}
	if got.Fade.UIHex != "" || req.Fade.UIHex == "" {
		t.Fatal("stale ink hex should be cleared on the copy only")
	}
}

func TestBuildRevisionPromptManufacturerWithoutZones(t *testing.T) {
	resolver := swatch.NewResolver(swatch.NewCatalog([]domain.ColorProfile{
		{Manufacturer: "3M", ColorName: "Gloss Black", Hex: "#0d0d0f", Finish: domain.FinishGloss, MaterialValidated: true},
		{Manufacturer: "Avery Dennison", ColorName: "Gloss Black", Hex: "#111111", Finish: domain.FinishGloss, MaterialValidated: true},
	}))
	prev := domain.PromptRequest{
		Mode:         domain.ModeColorPro,
		Vehicle:      domain.ParseVehicle("2022 Porsche 911"),
		Color:        "black",
		Finish:       domain.FinishGloss,
		Manufacturer: "3M",
		ViewType:     domain.ViewHero,
	}
	prev.Profiles = []domain.ColorProfile{resolver.Resolve(domain.ZoneSpec{ZoneName: "full", Color: "black", Finish: "gloss", Manufacturer: "3M"})}
	if prev.Profiles[0].DisplayName() != "3M Gloss Black" {
		t.Fatalf("fixture profile = %+v", prev.Profiles[0])
	}

	rev, err := BuildRevisionPrompt(prev, Patch{Manufacturer: strp("Avery Dennison")}, resolver)
	if err != nil {
		t.Fatalf("BuildRevisionPrompt: %v", err)
	}
	if rev.Request.Manufacturer != "Avery Dennison" {
		t.Fatalf("request manufacturer = %q", rev.Request.Manufacturer)
	}
	if got := rev.Request.Profiles[0].DisplayName(); got != "Avery Dennison Gloss Black" {
		t.Fatalf("profile after revision = %q", got)
	}
	if prev.Profiles[0].DisplayName() != "3M Gloss Black" || prev.Manufacturer != "3M" {
		t.Fatal("previous request was mutated")
	}
}

func TestBuildRevisionPrompt(t *testing.T) {
	orig := original(t)
	rev, err := BuildRevisionPrompt(orig, ParseChange("make the roof satin instead of gloss"), nil)
	if err != nil {
		t.Fatalf("BuildRevisionPrompt: %v", err)
	}
	if rev.Prompt.Names()[0] != SectionRevision {
		t.Fatalf("sections = %v", rev.Prompt.Names())
	}
	text := rev.Text()
	if !strings.HasPrefix(text, "REVISION OF THE PREVIOUS RENDER") || !strings.Contains(text, "CHANGE: ROOF: finish satin") {
		t.Fatalf("preamble:\n%s", text)
	}

	origCam, _ := compiler.Build(orig).Section(compiler.SectionCamera)
	revCam, _ := rev.Prompt.Section(compiler.SectionCamera)
	if origCam != revCam {
		t.Fatal("camera section drifted across the revision")
	}
	origAspect, _ := compiler.Build(orig).Section(compiler.SectionAspect)
	revAspect, _ := rev.Prompt.Section(compiler.SectionAspect)
	if origAspect != revAspect {
		t.Fatal("aspect section drifted across the revision")
	}
	if !strings.Contains(text, "ZONE 1: ROOF") || !strings.Contains(text, "SATIN FINISH") {
		t.Fatalf("patched zone not recompiled:\n%s", text)
	}
	if rev.Request.Profiles[0].Finish != domain.FinishSatin {
		t.Fatalf("patched zone not re-resolved: %+v", rev.Request.Profiles[0])
	}
	if diff := cmp.Diff(orig.Profiles[1:], rev.Request.Profiles[1:]); diff != "" {
		t.Fatalf("untouched profiles re-resolved (-want +got):\n%s", diff)
	}
}

func TestBuildRevisionPromptRejects(t *testing.T) {
	orig := original(t)
	for _, text := range []string{"change the camera angle", "show it from the front", "put this on a different car", "crop it square", "something nice"} {
		_, err := BuildRevisionPrompt(orig, ParseChange(text), nil)
		if !errors.Is(err, domain.ErrInvalidRevision) {
			t.Fatalf("%q: err = %v", text, err)
		}
	}
}

func TestRevisionChainKeepsGeometry(t *testing.T) {
	req := original(t)
	cam := req.Camera
	for _, change := range []string{"make the roof satin", "mirrors in red", "hood matte instead of carbon"} {
		rev, err := BuildRevisionPrompt(req, ParseChange(change), swatch.NewResolver(nil))
		if err != nil {
			t.Fatalf("%q: %v", change, err)
		}
		req = rev.Request
	}
	if req.Camera != cam || req.ViewType != domain.ViewSide {
		t.Fatalf("geometry drifted: %+v", req.Camera)
	}
	got := []string{req.Zones[0].Finish, req.Zones[1].Finish, req.Zones[2].Color}
	if diff := cmp.Diff([]string{"satin", "matte", "red"}, got); diff != "" {
		t.Fatalf("chained result (-want +got):\n%s", diff)
	}
	if req.Zones[1].Graphic == nil {
		t.Fatal("untouched graphic lost")
	}
}
