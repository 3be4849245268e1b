package swatch

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wrapstudio/internal/domain"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("embedded catalog is empty")
	}
	return c
}

func TestDefaultCatalogNormalisesRecords(t *testing.T) {
	c := mustDefault(t)
	for _, p := range c.Profiles() {
		if !p.MaterialValidated || p.Fallback {
			t.Fatalf("%s: catalog swatches must be validated", p.ColorName)
		}
		if len(p.Hex) != 7 || p.Hex != strings.ToLower(p.Hex) {
			t.Fatalf("%s: hex not normalised: %q", p.ColorName, p.Hex)
		}
		if p.Variant == "" {
			t.Fatalf("%s: variant must default to solid", p.ColorName)
		}
	}
}

func TestResolveFinishColorOrder(t *testing.T) {
	r := NewResolver(mustDefault(t))
	p, step := r.ResolveStep(domain.ZoneSpec{ZoneName: "full", Color: "gold", Finish: "chrome", Manufacturer: domain.ManufacturerCustom})
	if step != StepFinishColor {
		t.Fatalf("step = %v", step)
	}
	if p.ColorName != "Chrome Gold" || p.Hex != "#c9a449" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.Reflectivity == nil || *p.Reflectivity != 0.95 {
		t.Fatalf("reflectivity not carried over: %+v", p.Reflectivity)
	}
}

func TestResolveExcludesCompoundColors(t *testing.T) {
	store := NewCatalog([]domain.ColorProfile{
		{Manufacturer: "A", ColorName: "Chrome Gold Rose Tint", Hex: "#c98f83", MaterialValidated: true},
		{Manufacturer: "B", ColorName: "Chrome Gold", Hex: "#c9a449", MaterialValidated: true},
	})
	r := NewResolver(store)

	p := r.Resolve(domain.ZoneSpec{Color: "gold", Finish: "chrome"})
	if p.ColorName != "Chrome Gold" {
		t.Fatalf("plain gold request matched %q", p.ColorName)
	}

	p = r.Resolve(domain.ZoneSpec{Color: "gold rose", Finish: "chrome"})
	if p.ColorName != "Chrome Gold Rose Tint" {
		t.Fatalf("a request naming rose should keep rose swatches, got %q", p.ColorName)
	}
}

func TestResolveReorderedAndBareColor(t *testing.T) {
	r := NewResolver(mustDefault(t))

	p, step := r.ResolveStep(domain.ZoneSpec{Color: "gold", Finish: "metallic"})
	if step != StepColorFinish || p.ColorName != "Gloss Gold Metallic" {
		t.Fatalf("got %q via %v", p.ColorName, step)
	}

	p, step = r.ResolveStep(domain.ZoneSpec{Color: "nardo gray", Finish: "satin"})
	if step != StepColor || p.Manufacturer != "Inozetek" {
		t.Fatalf("got %+v via %v", p, step)
	}
}

func TestResolveManufacturerPreference(t *testing.T) {
	store := NewCatalog([]domain.ColorProfile{
		{Manufacturer: "3M", ColorName: "Gloss Black", Hex: "#0d0d0f", MaterialValidated: true},
		{Manufacturer: "Avery Dennison", ColorName: "Gloss Black", Hex: "#111111", MaterialValidated: true},
	})
	r := NewResolver(store)
	if got := r.Resolve(domain.ZoneSpec{Color: "black", Finish: "gloss"}).Manufacturer; got != "3M" {
		t.Fatalf("without a manufacturer the first record wins, got %q", got)
	}
	if got := r.Resolve(domain.ZoneSpec{Color: "black", Finish: "gloss", Manufacturer: "Avery Dennison"}).Manufacturer; got != "Avery Dennison" {
		t.Fatalf("manufacturer preference ignored, got %q", got)
	}
}

func TestResolveManufacturerWordsAnyOrder(t *testing.T) {
	r := NewResolver(mustDefault(t))
	p, step := r.ResolveStep(domain.ZoneSpec{Color: "blue metallic", Manufacturer: "Avery Dennison"})
	if step != StepManufacturerColor {
		t.Fatalf("step = %v", step)
	}
	if p.ColorName != "Gloss Metallic Blue" {
		t.Fatalf("unexpected profile %q", p.ColorName)
	}

	_, step = r.ResolveStep(domain.ZoneSpec{Color: "blue metallic", Manufacturer: domain.ManufacturerCustom})
	if step != StepFallback {
		t.Fatalf("custom manufacturer must not trigger the manufacturer step, got %v", step)
	}
}

func TestResolveFallbackIsDeterministic(t *testing.T) {
	r := NewResolver(mustDefault(t))
	z := domain.ZoneSpec{ZoneName: "hood", Color: "unobtainium teal", Finish: "satin", Manufacturer: "Hexis"}
	first := r.Resolve(z)
	second := r.Resolve(z)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("fallback not deterministic (-first +second):\n%s", diff)
	}
	want := domain.ColorProfile{
		Manufacturer:  "Hexis",
		ColorName:     "Satin Unobtainium Teal",
		Hex:           domain.FallbackHex,
		Finish:        domain.FinishSatin,
		FinishProfile: domain.DefaultFinishProfile(domain.FinishSatin),
		Fallback:      true,
		Variant:       domain.FinishProfileSolid,
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Fatalf("fallback mismatch (-want +got):\n%s", diff)
	}
	if first.HasHex() {
		t.Fatal("fallback sentinel must not count as a real hex")
	}
}

func TestResolveNilStoreAndEmptyColor(t *testing.T) {
	p := NewResolver(nil).Resolve(domain.ZoneSpec{Color: "red", Finish: "gloss"})
	if !p.Fallback || p.MaterialValidated {
		t.Fatalf("nil store must fall back: %+v", p)
	}
	p = NewResolver(mustDefault(t)).Resolve(domain.ZoneSpec{Finish: "matte"})
	if !p.Fallback || p.ColorName != "Matte" {
		t.Fatalf("empty color must fall back: %+v", p)
	}
}

func TestResolveDoesNotAliasCatalog(t *testing.T) {
	c := mustDefault(t)
	r := NewResolver(c)
	p := r.Resolve(domain.ZoneSpec{Color: "gold", Finish: "chrome"})
	*p.Reflectivity = 0
	again := r.Resolve(domain.ZoneSpec{Color: "gold", Finish: "chrome"})
	if *again.Reflectivity != 0.95 {
		t.Fatalf("catalog mutated through resolved profile: %v", *again.Reflectivity)
	}
}

func TestLoadProfilesRejectsBadHex(t *testing.T) {
	_, err := LoadProfiles(strings.NewReader("swatches:\n  - name: Broken\n    hex: nothex\n"))
	if err == nil {
		t.Fatal("expected error for invalid hex")
	}
	profiles, err := LoadProfiles(strings.NewReader(""))
	if err != nil || len(profiles) != 0 {
		t.Fatalf("empty catalog: %v %v", profiles, err)
	}
}

func TestFindByCode(t *testing.T) {
	p, ok := mustDefault(t).Find(Query{Code: "sw900-435"})
	if !ok || p.ColorName != "Gloss Carmine Red" {
		t.Fatalf("find by code: %+v %v", p, ok)
	}
	if _, ok := mustDefault(t).Find(Query{}); ok {
		t.Fatal("empty query must not match")
	}
}
