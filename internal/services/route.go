package services

import (
	"context"
	"errors"
	"fmt"

	"geo-route-service/internal/domain"
	"geo-route-service/internal/ports"
)

// Route is a lazily resolved driving route between two locations, with an
// ordered list of intermediate stops. Like Location it resolves at most
// once; every derived accessor (distances, times, instructions, imagery)
// triggers that single resolution on first use and reads the memoized
// payload afterwards.
//
// Route is not safe for concurrent use.
type Route struct {
	provider   ports.MapProvider
	translator ports.Translator

	start  *Location
	end    *Location
	vias   []*Location
	params map[string]string

	state      domain.ResolutionState
	payload    *ports.RouteResult
	resolveErr error
	image      *ports.ImageHandle
}

type RouteOption func(*Route)

// WithVias sets the intermediate stops. Insertion order defines stop order.
func WithVias(vias ...*Location) RouteOption {
	return func(r *Route) { r.vias = vias }
}

// WithParams merges extra query parameters into every routing call.
func WithParams(params map[string]string) RouteOption {
	return func(r *Route) { r.params = params }
}

// WithTranslator enables translated instructions.
func WithTranslator(t ports.Translator) RouteOption {
	return func(r *Route) { r.translator = t }
}

func NewRoute(provider ports.MapProvider, start, end *Location, opts ...RouteOption) (*Route, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: provider is nil", domain.ErrInvalidInput)
	}
	if start == nil || end == nil {
		return nil, fmt.Errorf("%w: start and end locations are required", domain.ErrInvalidInput)
	}

	r := &Route{provider: provider, start: start, end: end}
	for _, opt := range opts {
		opt(r)
	}

	for i, via := range r.vias {
		if via == nil {
			return nil, fmt.Errorf("%w: via %d is nil", domain.ErrInvalidInput, i)
		}
	}

	return r, nil
}

func (r *Route) State() domain.ResolutionState { return r.state }

// Resolve queries the routing service through the ordered waypoint list.
// Start and end must carry a construction-known coordinate or address;
// intermediate stops are coordinate-resolved on demand, which may trigger
// their own location resolution. At most one attempt is made.
func (r *Route) Resolve(ctx context.Context) error {
	if r.state != domain.StateUnresolved {
		return fmt.Errorf("route: %w", domain.ErrAlreadyResolved)
	}

	startTok, err := r.start.knownToken()
	if err != nil {
		return fmt.Errorf("route start: %w", err)
	}
	endTok, err := r.end.knownToken()
	if err != nil {
		return fmt.Errorf("route end: %w", err)
	}

	stops := make([]string, 0, len(r.vias)+2)
	stops = append(stops, startTok)
	for i, via := range r.vias {
		coord, err := via.Coordinate(ctx)
		if err != nil {
			return r.fail(fmt.Errorf("via %d: %w", i, err))
		}
		stops = append(stops, coord.Token())
	}
	stops = append(stops, endTok)

	res, err := r.provider.ResolveRoute(ctx, stops, r.params)
	if err != nil {
		return r.fail(err)
	}

	r.state = domain.StateResolved
	r.payload = &res
	return nil
}

// RouteDistanceKm is the driving distance reported by the routing service.
func (r *Route) RouteDistanceKm(ctx context.Context) (float64, error) {
	if err := r.ensureResolved(ctx); err != nil {
		return 0, err
	}
	return r.payload.DistanceKm, nil
}

func (r *Route) RouteDistanceM(ctx context.Context) (float64, error) {
	km, err := r.RouteDistanceKm(ctx)
	if err != nil {
		return 0, err
	}
	return km * 1000, nil
}

// TravelTimeSec is the traffic-aware driving duration in seconds.
func (r *Route) TravelTimeSec(ctx context.Context) (float64, error) {
	if err := r.ensureResolved(ctx); err != nil {
		return 0, err
	}
	return r.payload.DurationTrafficSec, nil
}

func (r *Route) TravelTimeMin(ctx context.Context) (float64, error) {
	sec, err := r.TravelTimeSec(ctx)
	if err != nil {
		return 0, err
	}
	return sec / 60, nil
}

// GeodesicDistanceKm is the great-circle distance between start and end. It
// needs their coordinates, resolving the locations if necessary, but never
// touches the routing service.
func (r *Route) GeodesicDistanceKm(ctx context.Context) (float64, error) {
	a, err := r.start.Coordinate(ctx)
	if err != nil {
		return 0, fmt.Errorf("route start: %w", err)
	}
	b, err := r.end.Coordinate(ctx)
	if err != nil {
		return 0, fmt.Errorf("route end: %w", err)
	}
	return domain.GeodesicKm(a, b), nil
}

// TravelMinutesAtConstantSpeed is a pure computation, independent of any
// resolved route data.
func (r *Route) TravelMinutesAtConstantSpeed(distanceKm, speedKmh float64) (float64, error) {
	return domain.MinutesAtConstantSpeed(distanceKm, speedKmh)
}

// Instructions returns the itinerary texts in driving order. With translate
// set, each text runs through the configured translator; a translation
// failure surfaces domain.ErrTranslationFailed and leaves the memoized
// route payload intact.
func (r *Route) Instructions(ctx context.Context, translate bool) ([]string, error) {
	if err := r.ensureResolved(ctx); err != nil {
		return nil, err
	}

	out := make([]string, len(r.payload.Instructions))
	copy(out, r.payload.Instructions)

	if !translate {
		return out, nil
	}
	if r.translator == nil {
		return nil, fmt.Errorf("%w: no translator configured", domain.ErrTranslationFailed)
	}

	for i, text := range out {
		translated, err := r.translator.Translate(ctx, text)
		if err != nil {
			if errors.Is(err, domain.ErrTranslationFailed) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrTranslationFailed, err)
		}
		out[i] = translated
	}

	return out, nil
}

// Image fetches a static map of the driving route. All stops, anchors
// included, must expose coordinates, resolving their locations if needed.
// The handle is memoized; repeated calls do not re-fetch.
func (r *Route) Image(ctx context.Context, opts ports.ImageOptions) (ports.ImageHandle, error) {
	if r.image != nil {
		return *r.image, nil
	}

	locs := make([]*Location, 0, len(r.vias)+2)
	locs = append(locs, r.start)
	locs = append(locs, r.vias...)
	locs = append(locs, r.end)

	stops := make([]string, 0, len(locs))
	for _, loc := range locs {
		coord, err := loc.Coordinate(ctx)
		if err != nil {
			return ports.ImageHandle{}, fmt.Errorf("route image: %w", err)
		}
		stops = append(stops, coord.Token())
	}

	img, err := r.provider.RouteImage(ctx, stops, opts)
	if err != nil {
		return ports.ImageHandle{}, fmt.Errorf("route image: %w", err)
	}

	r.image = &img
	return img, nil
}

func (r *Route) fail(err error) error {
	r.state = domain.StateFailed
	r.resolveErr = &domain.ResolutionError{Op: "route", Err: err}
	return r.resolveErr
}

func (r *Route) ensureResolved(ctx context.Context) error {
	switch r.state {
	case domain.StateResolved:
		return nil
	case domain.StateFailed:
		return r.resolveErr
	default:
		return r.Resolve(ctx)
	}
}
