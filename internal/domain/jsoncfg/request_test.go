package jsoncfg

import (
	"errors"
	"strings"
	"testing"

	"wrapstudio/internal/domain"
)

func TestRenderRequestNormalizeDefaults(t *testing.T) {
	r := &RenderRequest{Vehicle: "  2024   Tesla Model Y ", Mode: "Fade-Wraps", Views: []string{"Top", "top", " ", "rear three quarter"}}
	r.Normalize("")

	if r.Version != DefaultRenderVersion {
		t.Fatalf("Version = %q, want %q", r.Version, DefaultRenderVersion)
	}
	if r.Mode != string(domain.ModeFadeWraps) {
		t.Fatalf("Mode = %q", r.Mode)
	}
	if r.Vehicle != "2024 Tesla Model Y" {
		t.Fatalf("Vehicle = %q", r.Vehicle)
	}
	if r.Size != DefaultRenderSize {
		t.Fatalf("Size = %q, want %q", r.Size, DefaultRenderSize)
	}
	if strings.Join(r.Views, ",") != "top,rear_three_quarter" {
		t.Fatalf("Views = %v", r.Views)
	}
	if !r.Enforced() {
		t.Fatal("hard enforcement should default to on")
	}
	if r.Fade.Style != string(domain.FadeStyleDefault) || r.Fade.Direction != string(domain.GradientFrontToBack) {
		t.Fatalf("Fade = %+v", r.Fade)
	}
}

func TestRenderRequestNormalizeServerSizeAndClamp(t *testing.T) {
	off := false
	r := &RenderRequest{Spin: 500, HardEnforcement: &off, References: []string{" ", "https://cdn.example/a.jpg"}}
	r.Normalize("1792*1008")

	if r.Resolution() != domain.Resolution1792 {
		t.Fatalf("Resolution = %v", r.Resolution())
	}
	if r.Spin != MaxSpin {
		t.Fatalf("Spin clamp = %d, want %d", r.Spin, MaxSpin)
	}
	if r.Enforced() {
		t.Fatal("explicit false must be kept")
	}
	if len(r.References) != 1 {
		t.Fatalf("References = %v", r.References)
	}
	if r.Mode != string(domain.ModeColorPro) {
		t.Fatalf("empty mode should default to colorpro, got %q", r.Mode)
	}
}

func TestRenderRequestValidate(t *testing.T) {
	valid := func() RenderRequest {
		r := RenderRequest{Vehicle: "2024 Tesla Model Y", Text: "full gloss black"}
		r.Normalize("")
		return r
	}
	cases := []struct {
		name   string
		mutate func(*RenderRequest)
		want   string
	}{
		{"valid", func(*RenderRequest) {}, ""},
		{"vehicle", func(r *RenderRequest) { r.Vehicle = "" }, "vehicle is required"},
		{"color source", func(r *RenderRequest) { r.Text = "" }, "one of text, zones or color"},
		{"design source", func(r *RenderRequest) { r.Mode = "designpanelpro" }, "design_image_url or panels"},
		{"pattern source", func(r *RenderRequest) { r.Mode = "patternpro" }, "pattern.url or pattern.name"},
		{"size", func(r *RenderRequest) { r.Size = "1024x1024" }, "size must be"},
		{"views", func(r *RenderRequest) { r.Views = make([]string, MaxViews+1) }, "views are allowed"},
		{"zone", func(r *RenderRequest) { r.Zones = []domain.ZoneSpec{{ZoneName: "hood"}} }, "zones[0]"},
		{"url", func(r *RenderRequest) { r.References = []string{"ftp://x/y.png"} }, "not an http(s) URL"},
		{"panel url", func(r *RenderRequest) {
			r.Mode = "designpanelpro"
			r.Panels = map[string]PanelDesign{"hood": {}}
		}, "panels.hood.url"},
		{"panel ok", func(r *RenderRequest) {
			r.Mode = "designpanelpro"
			r.Panels = map[string]PanelDesign{"hood": {URL: "https://cdn.example/h.png", Scale: 0.5}}
		}, ""},
	}
	for _, tc := range cases {
		r := valid()
		tc.mutate(&r)
		err := r.Validate()
		if tc.want == "" {
			if err != nil {
				t.Fatalf("%s: unexpected error %v", tc.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: err = %v, want %q", tc.name, err, tc.want)
		}
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Fatalf("%s: error should wrap ErrInvalidRequest", tc.name)
		}
	}
}

func TestDecodeNormalizes(t *testing.T) {
	raw := MustMarshal(RenderRequest{Vehicle: "2024 Tesla Model Y", Mode: "ombre", Color: "red"})
	r, err := Decode(raw, "1792x1008")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.Mode != string(domain.ModeFadeWraps) || r.Size != "1792x1008" {
		t.Fatalf("decoded = %+v", r)
	}
	if _, err := Decode([]byte("{"), ""); err == nil {
		t.Fatal("expected decode error")
	}
}
