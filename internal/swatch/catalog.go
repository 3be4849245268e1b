// Package swatch holds the read-only film swatch catalog and the resolver
// that maps interpreted zones onto concrete color profiles.
package swatch

import (
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"wrapstudio/internal/domain"
)

//go:embed data/catalog.yaml
var dataFS embed.FS

const defaultCatalogPath = "data/catalog.yaml"

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Query selects at most one swatch. Name and Code are matched as
// case-insensitive substrings; with AnyOrder every word of Name must appear
// somewhere in the record name instead. Records whose name contains an
// Exclude term are skipped. Manufacturer is a preference unless Strict is set.
type Query struct {
	Manufacturer string
	Name         string
	Code         string
	Exclude      []string
	Strict       bool
	AnyOrder     bool
}

// ColorStore is the read-only swatch lookup the resolver depends on.
type ColorStore interface {
	Find(q Query) (domain.ColorProfile, bool)
}

// Record is the on-disk shape of one swatch.
type Record struct {
	Manufacturer  string                `yaml:"manufacturer"`
	Name          string                `yaml:"name"`
	Code          string                `yaml:"code"`
	Hex           string                `yaml:"hex"`
	LAB           *domain.LAB           `yaml:"lab"`
	Finish        string                `yaml:"finish"`
	Variant       string                `yaml:"variant"`
	Reflectivity  *float64              `yaml:"reflectivity"`
	MetallicFlake *float64              `yaml:"metallic_flake"`
	FinishProfile *domain.FinishProfile `yaml:"finish_profile"`
}

type catalogFile struct {
	Swatches []Record `yaml:"swatches"`
}

type entry struct {
	profile      domain.ColorProfile
	name         string
	code         string
	manufacturer string
}

// Catalog is an immutable in-memory ColorStore. Records keep their load
// order, which is also the tie-break order for lookups.
type Catalog struct {
	entries []entry
}

// NewCatalog snapshots the given profiles.
func NewCatalog(profiles []domain.ColorProfile) *Catalog {
	c := &Catalog{entries: make([]entry, 0, len(profiles))}
	for _, p := range profiles {
		c.entries = append(c.entries, entry{
			profile:      p,
			name:         normalizeName(p.ColorName),
			code:         strings.ToLower(p.ProductCode),
			manufacturer: strings.ToLower(p.Manufacturer),
		})
	}
	return c
}

// DefaultCatalog returns the embedded catalog, parsed once.
func DefaultCatalog() (*Catalog, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultCatalogPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		profiles, err := LoadProfiles(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog = NewCatalog(profiles)
	})
	return defaultCatalog, defaultErr
}

// LoadFile reads a catalog from a YAML file path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("swatch: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	profiles, err := LoadProfiles(f)
	if err != nil {
		return nil, fmt.Errorf("swatch: %s: %w", path, err)
	}
	return NewCatalog(profiles), nil
}

// LoadProfiles decodes a YAML catalog into validated profiles.
func LoadProfiles(r io.Reader) ([]domain.ColorProfile, error) {
	if r == nil {
		return nil, fmt.Errorf("swatch: missing reader")
	}
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]domain.ColorProfile, 0, len(file.Swatches))
	for i, rec := range file.Swatches {
		p, err := rec.Profile()
		if err != nil {
			return nil, fmt.Errorf("swatch %d (%s): %w", i, rec.Name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Profile converts a record into a validated ColorProfile. The hex value is
// normalised to lowercase #rrggbb.
func (r Record) Profile() (domain.ColorProfile, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return domain.ColorProfile{}, fmt.Errorf("name is required")
	}
	c, err := colorful.Hex(strings.TrimSpace(r.Hex))
	if err != nil {
		return domain.ColorProfile{}, fmt.Errorf("hex %q: %w", r.Hex, err)
	}
	finish := domain.NormalizeFinish(r.Finish)
	fp := domain.DefaultFinishProfile(finish)
	if r.FinishProfile != nil {
		fp = *r.FinishProfile
	}
	variant := strings.TrimSpace(r.Variant)
	if variant == "" {
		variant = domain.FinishProfileSolid
	}
	manufacturer := strings.TrimSpace(r.Manufacturer)
	if manufacturer == "" {
		manufacturer = domain.ManufacturerCustom
	}
	return domain.ColorProfile{
		Manufacturer:      manufacturer,
		ColorName:         name,
		ProductCode:       strings.TrimSpace(r.Code),
		Hex:               c.Hex(),
		LAB:               r.LAB,
		Finish:            finish,
		FinishProfile:     fp,
		Reflectivity:      r.Reflectivity,
		MetallicFlake:     r.MetallicFlake,
		MaterialValidated: true,
		Variant:           variant,
	}, nil
}

// Len returns the number of swatches.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Profiles returns a copy of every swatch in load order.
func (c *Catalog) Profiles() []domain.ColorProfile {
	out := make([]domain.ColorProfile, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.profile
	}
	return out
}

// Find returns the first record matching q. With a non-strict manufacturer
// preference, a match from that manufacturer beats an earlier match from
// another one.
func (c *Catalog) Find(q Query) (domain.ColorProfile, bool) {
	name := normalizeName(q.Name)
	code := strings.ToLower(strings.TrimSpace(q.Code))
	if name == "" && code == "" {
		return domain.ColorProfile{}, false
	}
	manufacturer := strings.ToLower(strings.TrimSpace(q.Manufacturer))
	if manufacturer == strings.ToLower(domain.ManufacturerCustom) {
		manufacturer = ""
	}
	var words []string
	if q.AnyOrder {
		words = strings.Fields(name)
	}
	exclude := make([]string, 0, len(q.Exclude))
	for _, term := range q.Exclude {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			exclude = append(exclude, term)
		}
	}

	var fallback *entry
	for i := range c.entries {
		e := &c.entries[i]
		if name != "" && !matchName(e.name, name, words) {
			continue
		}
		if code != "" && !strings.Contains(e.code, code) {
			continue
		}
		if containsAny(e.name, exclude) {
			continue
		}
		if manufacturer == "" || strings.Contains(e.manufacturer, manufacturer) {
			return e.profile, true
		}
		if !q.Strict && fallback == nil {
			fallback = e
		}
	}
	if fallback != nil {
		return fallback.profile, true
	}
	return domain.ColorProfile{}, false
}

func matchName(recordName, name string, words []string) bool {
	if len(words) == 0 {
		return strings.Contains(recordName, name)
	}
	for _, w := range words {
		if !strings.Contains(recordName, w) {
			return false
		}
	}
	return true
}

var spellings = strings.NewReplacer("grey", "gray", "colour", "color")

func normalizeName(s string) string {
	return spellings.Replace(strings.Join(strings.Fields(strings.ToLower(s)), " "))
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
