package maps

import (
	"context"
	"errors"
	"fmt"

	"geo-route-service/internal/domain"
	"geo-route-service/internal/ports"
)

// CompositeResolver chains the open-data geocoder in front of the commercial
// provider. Geocoding tries the primary first and only falls through on a
// legitimate empty answer; the open tier is free and accurate enough for
// most inputs, so the billed tier is reserved for what it cannot resolve.
// Routing and imagery have no open-data tier and always go to the fallback.
//
// The fallback may be nil, in which case geocoding runs on the primary alone
// and routing/imagery requests fail with domain.ErrProviderUnavailable.
type CompositeResolver struct {
	primary  ports.Geocoder
	fallback ports.MapProvider
}

func NewCompositeResolver(primary ports.Geocoder, fallback ports.MapProvider) (*CompositeResolver, error) {
	if primary == nil {
		return nil, errors.New("composite resolver: primary geocoder is nil")
	}
	return &CompositeResolver{primary: primary, fallback: fallback}, nil
}

// ResolveLocation resolves pos on the primary tier, falling through to the
// fallback only when the primary legitimately found nothing. A malformed or
// failed primary response is a hard failure: masking a broken primary behind
// the billed provider would hide outages.
func (c *CompositeResolver) ResolveLocation(
	ctx context.Context,
	pos domain.Position,
	params map[string]string,
) (ports.LocationResult, error) {
	res, err := c.primary.ResolveLocation(ctx, pos, params)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, domain.ErrNoResult) {
		return ports.LocationResult{}, fmt.Errorf("primary geocoder: %w", err)
	}

	if c.fallback == nil {
		return ports.LocationResult{}, fmt.Errorf("%q: %w", pos.Token(), domain.ErrLocationNotFound)
	}

	res, err = c.fallback.ResolveLocation(ctx, pos, params)
	if err != nil {
		if errors.Is(err, domain.ErrNoResult) {
			return ports.LocationResult{}, fmt.Errorf("%q: %w", pos.Token(), domain.ErrLocationNotFound)
		}
		return ports.LocationResult{}, fmt.Errorf("fallback geocoder: %w", err)
	}

	return res, nil
}

func (c *CompositeResolver) ResolveRoute(
	ctx context.Context,
	stops []string,
	params map[string]string,
) (ports.RouteResult, error) {
	if c.fallback == nil {
		return ports.RouteResult{}, fmt.Errorf("routing: %w", domain.ErrProviderUnavailable)
	}
	return c.fallback.ResolveRoute(ctx, stops, params)
}

func (c *CompositeResolver) LocationImage(
	ctx context.Context,
	pos domain.Position,
	opts ports.ImageOptions,
) (ports.ImageHandle, error) {
	if c.fallback == nil {
		return ports.ImageHandle{}, fmt.Errorf("imagery: %w", domain.ErrProviderUnavailable)
	}
	return c.fallback.LocationImage(ctx, pos, opts)
}

func (c *CompositeResolver) RouteImage(
	ctx context.Context,
	stops []string,
	opts ports.ImageOptions,
) (ports.ImageHandle, error) {
	if c.fallback == nil {
		return ports.ImageHandle{}, fmt.Errorf("imagery: %w", domain.ErrProviderUnavailable)
	}
	return c.fallback.RouteImage(ctx, stops, opts)
}
