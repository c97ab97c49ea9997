package maps

import (
	"context"
	"fmt"

	"geo-route-service/internal/domain"
	"geo-route-service/internal/ports"
)

// MockProvider is a scripted MapProvider for tests. Results are keyed by
// position token (locations) or joined stop tokens (routes); anything not
// scripted fails. Call counters let tests assert how often each capability
// was exercised.
type MockProvider struct {
	Locations map[string]ports.LocationResult
	Routes    map[string]ports.RouteResult
	Images    map[string]ports.ImageHandle

	LocationCalls int
	RouteCalls    int
	ImageCalls    int
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		Locations: make(map[string]ports.LocationResult),
		Routes:    make(map[string]ports.RouteResult),
		Images:    make(map[string]ports.ImageHandle),
	}
}

func routeKey(stops []string) string {
	key := ""
	for i, s := range stops {
		if i > 0 {
			key += "|"
		}
		key += s
	}
	return key
}

func (m *MockProvider) ResolveLocation(ctx context.Context, pos domain.Position, params map[string]string) (ports.LocationResult, error) {
	m.LocationCalls++
	res, ok := m.Locations[pos.Token()]
	if !ok {
		return ports.LocationResult{}, fmt.Errorf("mock location %q: %w", pos.Token(), domain.ErrNoResult)
	}
	return res, nil
}

func (m *MockProvider) ResolveRoute(ctx context.Context, stops []string, params map[string]string) (ports.RouteResult, error) {
	m.RouteCalls++
	res, ok := m.Routes[routeKey(stops)]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("mock route %q: %w", routeKey(stops), domain.ErrNoResult)
	}
	return res, nil
}

func (m *MockProvider) LocationImage(ctx context.Context, pos domain.Position, opts ports.ImageOptions) (ports.ImageHandle, error) {
	m.ImageCalls++
	img, ok := m.Images[pos.Token()]
	if !ok {
		return ports.ImageHandle{}, fmt.Errorf("mock image %q: %w", pos.Token(), domain.ErrNoResult)
	}
	return img, nil
}

func (m *MockProvider) RouteImage(ctx context.Context, stops []string, opts ports.ImageOptions) (ports.ImageHandle, error) {
	m.ImageCalls++
	img, ok := m.Images[routeKey(stops)]
	if !ok {
		return ports.ImageHandle{}, fmt.Errorf("mock image %q: %w", routeKey(stops), domain.ErrNoResult)
	}
	return img, nil
}
