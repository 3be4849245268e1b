package domain

import (
	"strings"
	"unicode"
)

// VehicleDescriptor identifies the vehicle a render is requested for.
type VehicleDescriptor struct {
	Year  string `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

// String renders the descriptor as "year make model", skipping empty parts.
func (v VehicleDescriptor) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{v.Year, v.Make, v.Model} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Key is the lowercase form used for case-insensitive table lookups.
func (v VehicleDescriptor) Key() string {
	return strings.ToLower(v.String())
}

// IsZero reports whether no part of the descriptor is set.
func (v VehicleDescriptor) IsZero() bool {
	return strings.TrimSpace(v.String()) == ""
}

// ParseVehicle splits a free-form "2024 Tesla Model Y" string. A leading
// four digit token is the year, the next token the make, the rest the model.
func ParseVehicle(s string) VehicleDescriptor {
	fields := strings.Fields(s)
	var v VehicleDescriptor
	if len(fields) > 0 && len(fields[0]) == 4 && isDigits(fields[0]) {
		v.Year = fields[0]
		fields = fields[1:]
	}
	if len(fields) > 0 {
		v.Make = fields[0]
		fields = fields[1:]
	}
	v.Model = strings.Join(fields, " ")
	return v
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
