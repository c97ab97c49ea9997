package maps

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"geo-route-service/internal/domain"
	"geo-route-service/internal/ports"
)

// fakeGeocoder scripts the primary tier: a result, a "nothing found", or a
// hard failure.
type fakeGeocoder struct {
	result ports.LocationResult
	err    error
	calls  int
}

func (f *fakeGeocoder) ResolveLocation(ctx context.Context, pos domain.Position, params map[string]string) (ports.LocationResult, error) {
	f.calls++
	if f.err != nil {
		return ports.LocationResult{}, f.err
	}
	return f.result, nil
}

func mustAddress(t *testing.T, s string) domain.Position {
	t.Helper()
	pos, err := domain.AddressPosition(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return pos
}

func TestCompositePrimaryHitSkipsFallback(t *testing.T) {
	coord, _ := domain.NewCoordinate(4.60971, -74.08175)
	primary := &fakeGeocoder{result: ports.LocationResult{Coordinate: coord, FormattedAddress: "Bogotá, Colombia"}}
	fallback := NewMockProvider()

	c, err := NewCompositeResolver(primary, fallback)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := c.ResolveLocation(context.Background(), mustAddress(t, "Bogotá, Colombia"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Coordinate != coord {
		t.Fatalf("coordinate = %+v", res.Coordinate)
	}
	if fallback.LocationCalls != 0 {
		t.Fatalf("fallback was called %d times for a primary hit", fallback.LocationCalls)
	}
}

func TestCompositeFallsThroughOnNoResult(t *testing.T) {
	primary := &fakeGeocoder{err: fmt.Errorf("nothing: %w", domain.ErrNoResult)}
	coord, _ := domain.NewCoordinate(10.0, 10.0)
	fallback := NewMockProvider()
	fallback.Locations["misspelled place"] = ports.LocationResult{Coordinate: coord, FormattedAddress: "Misspelled Place"}

	c, _ := NewCompositeResolver(primary, fallback)

	res, err := c.ResolveLocation(context.Background(), mustAddress(t, "misspelled place"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Coordinate.Lat != 10.0 || res.Coordinate.Lng != 10.0 {
		t.Fatalf("coordinate = %+v", res.Coordinate)
	}
	if primary.calls != 1 || fallback.LocationCalls != 1 {
		t.Fatalf("calls primary=%d fallback=%d, want 1/1", primary.calls, fallback.LocationCalls)
	}
}

func TestCompositeBothEmptyIsNotFound(t *testing.T) {
	primary := &fakeGeocoder{err: fmt.Errorf("nothing: %w", domain.ErrNoResult)}
	fallback := NewMockProvider()

	c, _ := NewCompositeResolver(primary, fallback)

	_, err := c.ResolveLocation(context.Background(), mustAddress(t, "nowhere"), nil)
	if !errors.Is(err, domain.ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}

func TestCompositePrimaryHardFailureDoesNotFallThrough(t *testing.T) {
	primary := &fakeGeocoder{err: errors.New("connection refused")}
	fallback := NewMockProvider()
	coord, _ := domain.NewCoordinate(1, 1)
	fallback.Locations["x"] = ports.LocationResult{Coordinate: coord}

	c, _ := NewCompositeResolver(primary, fallback)

	_, err := c.ResolveLocation(context.Background(), mustAddress(t, "x"), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, domain.ErrLocationNotFound) {
		t.Fatalf("a transport failure must not read as not-found: %v", err)
	}
	if fallback.LocationCalls != 0 {
		t.Fatal("fallback must not be consulted after a primary hard failure")
	}
}

func TestCompositeWithoutFallback(t *testing.T) {
	primary := &fakeGeocoder{err: fmt.Errorf("nothing: %w", domain.ErrNoResult)}
	c, err := NewCompositeResolver(primary, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := c.ResolveLocation(context.Background(), mustAddress(t, "y"), nil); !errors.Is(err, domain.ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}

	if _, err := c.ResolveRoute(context.Background(), []string{"a", "b"}, nil); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}

	pos := mustAddress(t, "y")
	if _, err := c.LocationImage(context.Background(), pos, ports.ImageOptions{}); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if _, err := c.RouteImage(context.Background(), []string{"a", "b"}, ports.ImageOptions{}); !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestCompositeRoutingDelegatesToFallback(t *testing.T) {
	primary := &fakeGeocoder{}
	fallback := NewMockProvider()
	fallback.Routes["a|b"] = ports.RouteResult{DistanceKm: 5}

	c, _ := NewCompositeResolver(primary, fallback)

	res, err := c.ResolveRoute(context.Background(), []string{"a", "b"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DistanceKm != 5 {
		t.Fatalf("distance = %v", res.DistanceKm)
	}
	if primary.calls != 0 {
		t.Fatal("routing must never touch the primary geocoder")
	}
}

func TestNewCompositeResolverRequiresPrimary(t *testing.T) {
	if _, err := NewCompositeResolver(nil, NewMockProvider()); err == nil {
		t.Fatal("expected error for nil primary")
	}
}
