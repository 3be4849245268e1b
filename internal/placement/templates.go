package placement

import (
	"embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"wrapstudio/internal/domain"
)

//go:embed data/templates.yaml
var dataFS embed.FS

const defaultTemplatesPath = "data/templates.yaml"

// GenericKey names the fallback template every set carries.
const GenericKey = "generic"

// GenericPanels lists the panels the generic template must define.
var GenericPanels = []string{
	"hood", "roof", "trunk", "driver_side", "passenger_side",
	"front_bumper", "rear_bumper", "doors", "quarter_panels", "fenders",
}

var (
	defaultOnce sync.Once
	defaultSet  *TemplateSet
	defaultErr  error
)

type templateFile struct {
	Templates []domain.VehicleTemplate `yaml:"templates"`
}

// TemplateSet resolves vehicles to panel templates. It always has a generic
// template to fall back on.
type TemplateSet struct {
	generic domain.VehicleTemplate
	byKey   map[string]domain.VehicleTemplate
	keys    []string
}

// NewTemplateSet indexes templates by lowercase key. Later templates replace
// earlier ones with the same key. An error is returned when no generic
// template is present or it lacks one of GenericPanels.
func NewTemplateSet(templates []domain.VehicleTemplate) (*TemplateSet, error) {
	s := &TemplateSet{byKey: make(map[string]domain.VehicleTemplate, len(templates))}
	for _, t := range templates {
		key := strings.ToLower(strings.TrimSpace(t.Key))
		if key == "" {
			return nil, fmt.Errorf("placement: template without key")
		}
		t.Key = key
		if key == GenericKey {
			s.generic = t
			continue
		}
		s.byKey[key] = t
	}
	if s.generic.Key == "" {
		return nil, fmt.Errorf("placement: missing %q template", GenericKey)
	}
	for _, p := range GenericPanels {
		if _, ok := s.generic.Panels[p]; !ok {
			return nil, fmt.Errorf("placement: generic template missing panel %q", p)
		}
	}
	for k := range s.byKey {
		s.keys = append(s.keys, k)
	}
	// Longest key first so "tesla model y performance" beats "tesla model y".
	sort.Slice(s.keys, func(i, j int) bool {
		if len(s.keys[i]) != len(s.keys[j]) {
			return len(s.keys[i]) > len(s.keys[j])
		}
		return s.keys[i] < s.keys[j]
	})
	return s, nil
}

// DefaultTemplates returns the embedded template set, parsed once.
func DefaultTemplates() (*TemplateSet, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultTemplatesPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		templates, err := LoadTemplates(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultSet, defaultErr = NewTemplateSet(templates)
	})
	return defaultSet, defaultErr
}

// LoadTemplateFile reads templates from a YAML file path.
func LoadTemplateFile(path string) ([]domain.VehicleTemplate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("placement: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return LoadTemplates(f)
}

// LoadTemplates decodes a YAML template document.
func LoadTemplates(r io.Reader) ([]domain.VehicleTemplate, error) {
	var file templateFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("placement: decode templates: %w", err)
	}
	return file.Templates, nil
}

// Merge returns a new set with extra layered over the receiver's templates.
func (s *TemplateSet) Merge(extra []domain.VehicleTemplate) (*TemplateSet, error) {
	all := s.Templates()
	all = append(all, extra...)
	return NewTemplateSet(all)
}

// Templates lists the generic template first, then the rest by key.
func (s *TemplateSet) Templates() []domain.VehicleTemplate {
	out := []domain.VehicleTemplate{s.generic}
	keys := append([]string(nil), s.keys...)
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, s.byKey[k])
	}
	return out
}

// Template returns the vehicle's template, matched by key substring against
// "year make model", or the generic template.
func (s *TemplateSet) Template(v domain.VehicleDescriptor) domain.VehicleTemplate {
	vk := v.Key()
	if vk != "" {
		for _, k := range s.keys {
			if strings.Contains(vk, k) {
				return s.byKey[k]
			}
		}
	}
	return s.generic
}
