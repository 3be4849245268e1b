package enforcement

import (
	"strings"
	"testing"

	"wrapstudio/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func chromeGold() domain.ColorProfile {
	return domain.ColorProfile{
		Manufacturer:      "Avery Dennison",
		ColorName:         "Chrome Gold",
		Hex:               "#c9a449",
		LAB:               &domain.LAB{L: 69.5, A: 4.8, B: 50.2},
		Finish:            domain.FinishChrome,
		Reflectivity:      ptr(0.95),
		MetallicFlake:     ptr(0),
		MaterialValidated: true,
	}
}

func TestCompositeOrder(t *testing.T) {
	s := BuildCompleteHardEnforcement(FromProfile(chromeGold()))
	order := []string{BannerStart, "[COLOR LOCK]", "[FINISH LOCK]", "[PANEL LOCK]", "[TEXTURE LOCK]", BannerEnd}
	last := -1
	for _, marker := range order {
		i := strings.Index(s, marker)
		if i < 0 {
			t.Fatalf("missing %q", marker)
		}
		if i <= last {
			t.Fatalf("%q out of order", marker)
		}
		last = i
	}
}

func TestColorLockValidated(t *testing.T) {
	s := BuildColorLock(FromProfile(chromeGold()))
	for _, want := range []string{"Avery Dennison Chrome Gold", "#C9A449", "LIGHT"} {
		if !strings.Contains(s, want) {
			t.Fatalf("color lock missing %q:\n%s", want, s)
		}
	}
}

func TestColorLockFallbackIsNameOnly(t *testing.T) {
	p := domain.ColorProfile{
		Manufacturer: domain.ManufacturerCustom,
		ColorName:    "Satin Unobtainium",
		Hex:          domain.FallbackHex,
		Finish:       domain.FinishSatin,
		Fallback:     true,
	}
	s := BuildColorLock(FromProfile(p))
	if strings.Contains(s, "#") {
		t.Fatalf("fallback color lock must not print a hex:\n%s", s)
	}
	if !strings.Contains(s, "Satin Unobtainium") || !strings.Contains(s, "No measured swatch") {
		t.Fatalf("unexpected fallback lock:\n%s", s)
	}
}

func TestBandsAreConsistent(t *testing.T) {
	s := BuildCompleteHardEnforcement(FromProfile(chromeGold()))
	if !strings.Contains(s, "0.95 (CHROME band)") {
		t.Fatalf("reflectivity band missing:\n%s", s)
	}
	if strings.Contains(s, "SATIN band") || strings.Contains(s, "GLOSS band") {
		t.Fatalf("contradictory band labels:\n%s", s)
	}
	if !strings.Contains(s, "0.00 (NONE flake)") {
		t.Fatalf("flake band missing:\n%s", s)
	}
}

func TestPanelLockIsFixed(t *testing.T) {
	a := BuildPanelLock()
	if a != BuildPanelLock() {
		t.Fatal("panel lock must be constant")
	}
	for _, item := range NeverWrap {
		if !strings.Contains(a, item.Label) {
			t.Fatalf("panel lock missing %q", item.Label)
		}
	}
}

func TestFinishLockFlags(t *testing.T) {
	pearl := BuildFinishLock(Params{Finish: domain.FinishSatin, Pearl: true})
	if !strings.Contains(pearl, "Pearlescent") || !strings.Contains(pearl, "SATIN") {
		t.Fatalf("pearl finish lock:\n%s", pearl)
	}
	metallic := BuildFinishLock(Params{Finish: domain.FinishMetallic, Metallic: true})
	if !strings.Contains(metallic, "flake") {
		t.Fatalf("metallic finish lock:\n%s", metallic)
	}
	chrome := BuildFinishLock(FromProfile(chromeGold()))
	if !strings.Contains(chrome, "Mirror finish") {
		t.Fatalf("chrome finish lock:\n%s", chrome)
	}
	if !strings.Contains(BuildFinishLock(Params{}), "GLOSS") {
		t.Fatal("empty finish should default to gloss")
	}
}

func TestTextureLockPerFinish(t *testing.T) {
	want := map[domain.Finish]string{
		domain.FinishCarbon:  "carbon weave",
		domain.FinishBrushed: "brushed grain",
		domain.FinishSparkle: "glitter",
		domain.FinishMatte:   "flat surface",
		domain.FinishChrome:  "mirror surface",
		domain.FinishGloss:   "cast-film",
	}
	for f, phrase := range want {
		if s := BuildTextureLock(Params{Finish: f}); !strings.Contains(s, phrase) {
			t.Fatalf("%s texture lock missing %q:\n%s", f, phrase, s)
		}
	}
}
