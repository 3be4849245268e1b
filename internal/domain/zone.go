package domain

// ManufacturerCustom marks a zone whose film manufacturer was not named.
const ManufacturerCustom = "Custom"

// GraphicTypeCutVinyl is the only graphic type the interpreter produces.
const GraphicTypeCutVinyl = "cut_vinyl"

// GraphicWidth classifies how wide a cut vinyl graphic is rendered.
type GraphicWidth string

const (
	GraphicWidthPinstripe GraphicWidth = "pinstripe"
	GraphicWidthStripe    GraphicWidth = "stripe"
	GraphicWidthRacing    GraphicWidth = "racing"
)

// Finish profiles detected from free text. They select camera variants and
// rendering language for iridescent or flaked films.
const (
	FinishProfileSolid     = "solid"
	FinishProfileMetallic  = "metallic"
	FinishProfilePearl     = "pearl"
	FinishProfileColorFlip = "color_flip"
)

// GraphicSpec describes a cut vinyl accent layered over a zone's base color.
type GraphicSpec struct {
	Type      string       `json:"type"`
	Keyword   string       `json:"keyword"`
	Layers    int          `json:"layers"`
	Placement string       `json:"placement,omitempty"`
	Colors    []string     `json:"colors,omitempty"`
	Width     GraphicWidth `json:"width,omitempty"`
}

// ZoneSpec is one wrap zone. ZoneName is canonical when the interpreter
// recognised it and a pass-through token otherwise.
type ZoneSpec struct {
	ZoneName      string       `json:"zone"`
	Color         string       `json:"color"`
	Finish        string       `json:"finish"`
	Manufacturer  string       `json:"manufacturer"`
	FinishProfile string       `json:"finish_profile"`
	Graphic       *GraphicSpec `json:"graphic,omitempty"`
}

// Clone returns a deep copy so patches never alias the original graphic.
func (z ZoneSpec) Clone() ZoneSpec {
	out := z
	if z.Graphic != nil {
		g := *z.Graphic
		g.Colors = append([]string(nil), z.Graphic.Colors...)
		out.Graphic = &g
	}
	return out
}

// trimDeleteZones replace chrome brightwork without touching body color.
var trimDeleteZones = map[string]struct{}{
	"chrome_delete": {},
	"window_trim":   {},
	"grille":        {},
	"badges":        {},
	"door_handles":  {},
	"mirror_caps":   {},
}

// IsTrimDeleteZone reports whether zone belongs to the chrome-delete family.
func IsTrimDeleteZone(zone string) bool {
	_, ok := trimDeleteZones[zone]
	return ok
}
