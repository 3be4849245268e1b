package domain

// PanelBox is a panel bounding box in percentage space (0-100, origin top-left).
type PanelBox struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// VehicleTemplate maps named panels to their bounding boxes.
type VehicleTemplate struct {
	Key    string              `json:"key" yaml:"key"`
	Panels map[string]PanelBox `json:"panels" yaml:"panels"`
}

// PlacementProfile describes how one uploaded design image sits on a panel.
type PlacementProfile struct {
	PanelName           string  `json:"panel"`
	SourceURL           string  `json:"source_url,omitempty"`
	Width               float64 `json:"width"`
	Height              float64 `json:"height"`
	Aspect              float64 `json:"aspect"`
	Anchor              string  `json:"anchor"`
	Scale               float64 `json:"scale"`
	OffsetX             float64 `json:"offset_x"`
	OffsetY             float64 `json:"offset_y"`
	PreserveProportions bool    `json:"preserve_proportions"`
}

// MappedPlacement is a PlacementProfile fitted to a template panel.
type MappedPlacement struct {
	PlacementProfile
	Box          PanelBox `json:"box"`
	FinalScale   float64  `json:"final_scale"`
	FinalOffsetX float64  `json:"final_offset_x"`
	FinalOffsetY float64  `json:"final_offset_y"`
}
