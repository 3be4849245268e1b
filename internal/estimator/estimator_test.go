package estimator

import (
	"math"
	"strings"
	"testing"

	"wrapstudio/internal/domain"
)

func TestEstimateCalipersMinimumOrder(t *testing.T) {
	got := Estimate("calipers", "2024 Tesla Model Y", "gloss", "Avery SW900 Red")
	if got.Sqft != 0.8 || got.Yards != 1 {
		t.Fatalf("unexpected estimate: %+v", got)
	}
	if got.FilmName != "Avery SW900 Red" {
		t.Fatalf("film name mismatch: %q", got.FilmName)
	}
}

func TestEstimateFullBodyChrome(t *testing.T) {
	got := Estimate("full", "2024 Tesla Model X", "chrome", "X")
	if got.Sqft != 490 {
		t.Fatalf("sqft = %v, want 490", got.Sqft)
	}
	if got.Yards != 19 {
		t.Fatalf("yards = %d, want 19", got.Yards)
	}
}

func TestMicroComponentsAlwaysOneYard(t *testing.T) {
	vehicles := []string{"2024 Tesla Model X", "2019 Ford F-150", "unknown"}
	finishes := []string{"gloss", "chrome", "matte", "satin", ""}
	for _, e := range microComponents {
		for _, v := range vehicles {
			for _, f := range finishes {
				got := Estimate(e.key, v, f, "film")
				if got.Yards != 1 {
					t.Fatalf("Estimate(%q,%q,%q).Yards = %d, want 1", e.key, v, f, got.Yards)
				}
			}
		}
	}
}

func TestNonMicroYardsRounding(t *testing.T) {
	zones := []string{"full", "body", "top", "bottom", "hood", "roof", "fender", "bumper_front", "bumper_rear", "door", "quarter"}
	finishes := []string{"gloss", "chrome", "matte", "satin", "carbon"}
	for _, z := range zones {
		for _, f := range finishes {
			got := Estimate(z, "2022 Honda Civic", f, "film")
			want := int(math.Ceil(got.Sqft / SqftPerYard))
			if got.Yards != want {
				t.Fatalf("%s/%s: yards = %d, want ceil(%v/27) = %d", z, f, got.Yards, got.Sqft, want)
			}
			if got.Yards < 1 {
				t.Fatalf("%s/%s: yards must be positive, got %d", z, f, got.Yards)
			}
		}
	}
}

func TestOversizeMultipliers(t *testing.T) {
	if OversizeMultiplier("chrome") != 1.40 {
		t.Fatal("chrome multiplier must be 1.40")
	}
	if OversizeMultiplier("Matte Black") != 1.20 {
		t.Fatal("matte multiplier must be 1.20")
	}
	for _, f := range []string{"gloss", "satin", "standard", ""} {
		if OversizeMultiplier(f) != 1.10 {
			t.Fatalf("%q multiplier must be 1.10", f)
		}
	}
	chrome := Estimate("hood", "x", "chrome", "f").Sqft
	gloss := Estimate("hood", "x", "gloss", "f").Sqft
	matte := Estimate("hood", "x", "matte", "f").Sqft
	if !(chrome > matte && matte > gloss) {
		t.Fatalf("expected chrome > matte > gloss, got %v %v %v", chrome, matte, gloss)
	}
}

func TestTopBottomRatio(t *testing.T) {
	for _, v := range []string{"2024 Tesla Model Y", "1999 Mystery Car"} {
		top := Estimate("top", v, "satin", "f").Sqft
		bottom := Estimate("bottom", v, "satin", "f").Sqft
		if math.Abs(top/bottom-0.45/0.55) > 1e-3 {
			t.Fatalf("%s: top/bottom = %v, want %v", v, top/bottom, 0.45/0.55)
		}
	}
}

func TestUnknownVehicleUsesDefault(t *testing.T) {
	if got := VehicleBaseSqft("1987 DeLorean DMC-12"); got != DefaultVehicleSqft {
		t.Fatalf("VehicleBaseSqft = %v", got)
	}
	got := Estimate("full", "1987 DeLorean DMC-12", "gloss", "f")
	if got.Sqft != 330 || got.Yards != 13 {
		t.Fatalf("unexpected default estimate %+v", got)
	}
}

func TestFallbackTier(t *testing.T) {
	got := Estimate("tailgate", "2024 Tesla Model 3", "gloss", "f")
	if got.Sqft != FallbackSqft || got.Yards != 1 {
		t.Fatalf("unexpected fallback %+v", got)
	}
	if !strings.Contains(got.Notes, "tailgate") {
		t.Fatalf("fallback note should name the zone: %q", got.Notes)
	}
}

func TestEstimateAllUsesProfileNames(t *testing.T) {
	zones := []domain.ZoneSpec{
		{ZoneName: "hood", Color: "black", Finish: "gloss"},
		{ZoneName: "calipers", Color: "red", Finish: "gloss"},
	}
	profiles := []domain.ColorProfile{
		{Manufacturer: "3M", ColorName: "Gloss Black"},
		{Manufacturer: domain.ManufacturerCustom, ColorName: "Gloss Red"},
	}
	got := EstimateAll(domain.ParseVehicle("2024 Tesla Model Y"), zones, profiles)
	if len(got) != 2 {
		t.Fatalf("expected 2 estimates, got %d", len(got))
	}
	if got[0].FilmName != "3M Gloss Black" || got[1].FilmName != "Gloss Red" {
		t.Fatalf("unexpected film names: %q %q", got[0].FilmName, got[1].FilmName)
	}
	sqft, yards := Totals(got)
	if sqft != 33.8 || yards != 3 {
		t.Fatalf("Totals = %v, %d", sqft, yards)
	}
}

func TestTrimDeleteZonesAreMicroComponents(t *testing.T) {
	want := map[string]float64{
		"mirror_caps":   3,
		"badges":        1,
		"grille":        6,
		"spoiler":       8,
		"chrome_delete": 12,
		"window_trim":   12,
		"door_handles":  1.5,
	}
	for zone, sqft := range want {
		got := Estimate(zone, "2024 Tesla Model Y", "gloss", "f")
		if got.Sqft != sqft || got.Yards != MinimumYards {
			t.Errorf("%s: got %+v, want %v sq ft at the minimum order", zone, got, sqft)
		}
	}
}
