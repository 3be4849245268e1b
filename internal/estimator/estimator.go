// Package estimator converts wrap zones into vinyl square footage and yardage.
package estimator

import (
	"fmt"
	"math"
	"strings"

	"wrapstudio/internal/domain"
)

const (
	// DefaultVehicleSqft is the body area assumed for vehicles missing from the table.
	DefaultVehicleSqft = 300.0
	// SqftPerYard divides square footage into billable yards.
	SqftPerYard = 27.0
	// FallbackSqft is charged for zones no tier recognises.
	FallbackSqft = 10.0
	// MinimumYards is the minimum order for small parts and cut vinyl.
	MinimumYards = 1
)

// Finish oversize multipliers model trim and overlap waste.
const (
	OversizeChrome   = 1.40
	OversizeMatte    = 1.20
	OversizeStandard = 1.10
)

type areaEntry struct {
	key  string
	sqft float64
}

// microComponents always bill the minimum order regardless of area.
var microComponents = []areaEntry{
	{"calipers", 0.8},
	{"mirrors", 4},
	{"handles", 1.5},
	{"pillars", 6},
	{"mirror_caps", 3},
	{"badges", 1},
	{"grille", 6},
	{"spoiler", 8},
	{"chrome_delete", 12},
	{"trim", 12},
	{"stripe", 15},
	{"hood_graphic", 10},
	{"roof_graphic", 10},
}

var largePanels = []areaEntry{
	{"hood", 30},
	{"roof", 35},
	{"fender", 15},
	{"bumper_front", 25},
	{"bumper_rear", 25},
	{"door", 25},
	{"quarter", 30},
}

// vehicleAreas is matched by substring against the lowercase "year make model".
var vehicleAreas = []areaEntry{
	{"model x", 350},
	{"model y", 320},
	{"model s", 300},
	{"model 3", 280},
	{"cybertruck", 380},
	{"f-150", 420},
	{"silverado", 420},
	{"tacoma", 360},
	{"wrangler", 330},
	{"tahoe", 400},
	{"suburban", 440},
	{"mustang", 290},
	{"camaro", 290},
	{"corvette", 260},
	{"911", 250},
	{"civic", 260},
	{"camry", 280},
	{"g-class", 370},
	{"range rover", 380},
}

var bodyTokens = []string{"full", "body", "top", "bottom"}

// Estimate returns the material estimate for one zone. It is total: any
// input yields a result with a positive yard count.
func Estimate(zoneName, vehicle, finish, filmName string) domain.MaterialEstimate {
	zone := strings.ToLower(strings.TrimSpace(zoneName))
	est := domain.MaterialEstimate{Zone: zoneName, FilmName: filmName}

	if e, ok := match(zone, microComponents); ok {
		est.Sqft = e.sqft
		est.Yards = MinimumYards
		est.Notes = "Minimum order of 1 yard applies to small parts and cut vinyl."
		return est
	}

	multiplier := OversizeMultiplier(finish)

	if containsAny(zone, bodyTokens) {
		base := VehicleBaseSqft(vehicle)
		est.Sqft = round2(base * ZoneFraction(zone) * multiplier)
		est.Yards = yardsFor(est.Sqft)
		est.Notes = fmt.Sprintf("Base body area %.0f sq ft, includes %.0f%% finish oversize.", base, (multiplier-1)*100)
		return est
	}

	if e, ok := match(zone, largePanels); ok {
		est.Sqft = round2(e.sqft * multiplier)
		est.Yards = yardsFor(est.Sqft)
		est.Notes = fmt.Sprintf("Panel area %.0f sq ft, includes %.0f%% finish oversize.", e.sqft, (multiplier-1)*100)
		return est
	}

	est.Sqft = FallbackSqft
	est.Yards = MinimumYards
	est.Notes = fmt.Sprintf("Zone %q is not in the area tables; using a %.0f sq ft allowance.", zoneName, FallbackSqft)
	return est
}

// EstimateAll estimates every zone, naming the film after its resolved profile.
func EstimateAll(vehicle domain.VehicleDescriptor, zones []domain.ZoneSpec, profiles []domain.ColorProfile) []domain.MaterialEstimate {
	out := make([]domain.MaterialEstimate, 0, len(zones))
	for i, z := range zones {
		film := strings.TrimSpace(z.Color)
		if i < len(profiles) {
			film = profiles[i].DisplayName()
		}
		out = append(out, Estimate(z.ZoneName, vehicle.String(), z.Finish, film))
	}
	return out
}

// Totals sums square footage and yards across estimates.
func Totals(estimates []domain.MaterialEstimate) (float64, int) {
	var sqft float64
	var yards int
	for _, e := range estimates {
		sqft += e.Sqft
		yards += e.Yards
	}
	return round2(sqft), yards
}

// OversizeMultiplier returns the waste multiplier for a finish name.
func OversizeMultiplier(finish string) float64 {
	f := strings.ToLower(finish)
	switch {
	case strings.Contains(f, "chrome"):
		return OversizeChrome
	case strings.Contains(f, "matte"):
		return OversizeMatte
	default:
		return OversizeStandard
	}
}

// ZoneFraction is the share of the body a full-body zone covers.
func ZoneFraction(zone string) float64 {
	switch {
	case strings.Contains(zone, "top"):
		return 0.45
	case strings.Contains(zone, "bottom"):
		return 0.55
	default:
		return 1.0
	}
}

// VehicleBaseSqft looks up the body area, defaulting to DefaultVehicleSqft.
func VehicleBaseSqft(vehicle string) float64 {
	if e, ok := match(strings.ToLower(vehicle), vehicleAreas); ok {
		return e.sqft
	}
	return DefaultVehicleSqft
}

func yardsFor(sqft float64) int {
	y := int(math.Ceil(sqft / SqftPerYard))
	if y < MinimumYards {
		return MinimumYards
	}
	return y
}

func match(s string, table []areaEntry) (areaEntry, bool) {
	for _, e := range table {
		if strings.Contains(s, e.key) {
			return e, true
		}
	}
	return areaEntry{}, false
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
