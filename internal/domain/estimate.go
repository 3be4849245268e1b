package domain

// MaterialEstimate is the derived film requirement for one wrap zone.
type MaterialEstimate struct {
	Zone     string  `json:"zone"`
	FilmName string  `json:"film_name"`
	Sqft     float64 `json:"sqft"`
	Yards    int     `json:"yards"`
	Notes    string  `json:"notes,omitempty"`
}
