package ports

import (
	"context"
	"geo-route-service/internal/domain"
)

// LocationResult is the resolved form of a position: its coordinate plus the
// provider's formatted address.
type LocationResult struct {
	Coordinate       domain.Coordinate
	FormattedAddress string
}

// RouteResult is the resolved form of a driving route between ordered stops.
type RouteResult struct {
	DistanceKm         float64
	DurationTrafficSec float64
	// Instructions holds the itinerary texts of the first route leg, in
	// driving order.
	Instructions []string
}

// ImageOptions parameterizes a static map render.
type ImageOptions struct {
	Width  int
	Height int
	Zoom   int
	// Params is merged verbatim into the imagery query.
	Params map[string]string
}

// ImageHandle references a fetched static map. Data holds the raw image
// bytes; persistence is an ImageStore concern.
type ImageHandle struct {
	URL  string
	Data []byte
}

// Geocoder is the capability the open-data tier offers: turning a position
// into a location result. A provider with nothing to report returns an error
// wrapping domain.ErrNoResult.
type Geocoder interface {
	ResolveLocation(ctx context.Context, pos domain.Position, params map[string]string) (LocationResult, error)
}

// MapProvider is the full capability set of a map service: geocoding,
// driving routes between ordered stop tokens, and static imagery for a
// position or a route.
type MapProvider interface {
	Geocoder
	ResolveRoute(ctx context.Context, stops []string, params map[string]string) (RouteResult, error)
	LocationImage(ctx context.Context, pos domain.Position, opts ImageOptions) (ImageHandle, error)
	RouteImage(ctx context.Context, stops []string, opts ImageOptions) (ImageHandle, error)
}
