package dto

// PositionRequest identifies a place by coordinate pair or free-text
// address. Exactly one form must be supplied.
type PositionRequest struct {
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Address string   `json:"address,omitempty"`
}

type LocationResponse struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
}

type RouteRequest struct {
	Start PositionRequest `json:"start"`
	End   PositionRequest `json:"end"`
	// Vias are intermediate stops in driving order.
	Vias      []PositionRequest `json:"vias,omitempty"`
	Translate bool              `json:"translate,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
}

type RouteResponse struct {
	DistanceKm   float64  `json:"distance_km"`
	DistanceM    float64  `json:"distance_m"`
	DurationSec  float64  `json:"duration_sec"`
	DurationMin  float64  `json:"duration_min"`
	GeodesicKm   float64  `json:"geodesic_km"`
	Instructions []string `json:"instructions"`
}
