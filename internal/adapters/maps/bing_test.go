package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"geo-route-service/internal/domain"
	"geo-route-service/internal/ports"
)

func newTestBing(t *testing.T, handler http.HandlerFunc) *BingProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewBingProvider("test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.baseURL = srv.URL
	return p
}

const bingLocationBody = `{
	"resourceSets": [{
		"resources": [{
			"point": {"coordinates": [10.0, 10.0]},
			"address": {"formattedAddress": "Somewhere, CO"}
		}]
	}]
}`

func TestBingResolveLocationByAddress(t *testing.T) {
	p := newTestBing(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Locations" {
			t.Errorf("path = %q, want /Locations", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "Somewhere, CO" {
			t.Errorf("query = %q", q.Get("query"))
		}
		if q.Get("key") != "test-key" {
			t.Errorf("key = %q", q.Get("key"))
		}
		if q.Get("culture") != "es" {
			t.Errorf("extra param culture = %q, want merged", q.Get("culture"))
		}
		w.Write([]byte(bingLocationBody))
	})

	pos, _ := domain.AddressPosition("Somewhere, CO")
	res, err := p.ResolveLocation(context.Background(), pos, map[string]string{"culture": "es"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Coordinate.Lat != 10.0 || res.Coordinate.Lng != 10.0 {
		t.Fatalf("coordinate = %+v", res.Coordinate)
	}
	if res.FormattedAddress != "Somewhere, CO" {
		t.Fatalf("address = %q", res.FormattedAddress)
	}
}

func TestBingResolveLocationByCoordinateUsesPath(t *testing.T) {
	p := newTestBing(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Locations/4.6,-74.1" {
			t.Errorf("path = %q, want coordinate embedded", r.URL.Path)
		}
		if r.URL.Query().Get("query") != "" {
			t.Error("reverse lookup must not carry a query parameter")
		}
		w.Write([]byte(bingLocationBody))
	})

	coord, _ := domain.NewCoordinate(4.6, -74.1)
	pos, _ := domain.CoordinatePosition(coord)
	if _, err := p.ResolveLocation(context.Background(), pos, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBingResolveLocationEmptyResources(t *testing.T) {
	p := newTestBing(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"resourceSets": [{"resources": []}]}`))
	})

	pos, _ := domain.AddressPosition("nowhere")
	_, err := p.ResolveLocation(context.Background(), pos, nil)
	if !errors.Is(err, domain.ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}

func TestBingResolveRoute(t *testing.T) {
	p := newTestBing(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Routes/Driving" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("wayPoint.1") != "4.6,-74.1" {
			t.Errorf("wayPoint.1 = %q", q.Get("wayPoint.1"))
		}
		if q.Get("viaWayPoint.2") != "4.65,-74.05" {
			t.Errorf("viaWayPoint.2 = %q", q.Get("viaWayPoint.2"))
		}
		if q.Get("wayPoint.3") != "4.7,-74.0" {
			t.Errorf("wayPoint.3 = %q", q.Get("wayPoint.3"))
		}
		w.Write([]byte(`{
			"resourceSets": [{
				"resources": [{
					"travelDistance": 15.2,
					"travelDurationTraffic": 1200,
					"routeLegs": [{
						"itineraryItems": [
							{"instruction": {"text": "Head north"}},
							{"instruction": {"text": "Turn left"}}
						]
					}]
				}]
			}]
		}`))
	})

	res, err := p.ResolveRoute(context.Background(), []string{"4.6,-74.1", "4.65,-74.05", "4.7,-74.0"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.DistanceKm != 15.2 {
		t.Fatalf("distance = %v, want 15.2", res.DistanceKm)
	}
	if res.DurationTrafficSec != 1200 {
		t.Fatalf("duration = %v, want 1200", res.DurationTrafficSec)
	}
	if len(res.Instructions) != 2 || res.Instructions[0] != "Head north" || res.Instructions[1] != "Turn left" {
		t.Fatalf("instructions = %v", res.Instructions)
	}
}

func TestBingLocationImage(t *testing.T) {
	p := newTestBing(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Imagery/Map/Road/4.6,-74.1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("mapSize") != "640,480" {
			t.Errorf("mapSize = %q", q.Get("mapSize"))
		}
		if q.Get("dpi") != "Large" {
			t.Errorf("dpi = %q", q.Get("dpi"))
		}
		if q.Get("zoomLevel") != "12" {
			t.Errorf("zoomLevel = %q", q.Get("zoomLevel"))
		}
		if q.Get("pushpin") != "4.6,-74.1;66" {
			t.Errorf("pushpin = %q", q.Get("pushpin"))
		}
		w.Write([]byte("png-bytes"))
	})

	coord, _ := domain.NewCoordinate(4.6, -74.1)
	pos, _ := domain.CoordinatePosition(coord)
	img, err := p.LocationImage(context.Background(), pos, ports.ImageOptions{Width: 640, Height: 480, Zoom: 12})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(img.Data) != "png-bytes" {
		t.Fatalf("data = %q", img.Data)
	}
	if img.URL == "" {
		t.Fatal("handle should carry the fetched URL")
	}
}

func TestBingRouteImage(t *testing.T) {
	p := newTestBing(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Imagery/Map/Road/Routes/Driving" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("wayPoint.1") != "a" || q.Get("wayPoint.2") != "b" {
			t.Errorf("waypoints = %q, %q", q.Get("wayPoint.1"), q.Get("wayPoint.2"))
		}
		w.Write([]byte("route-png"))
	})

	img, err := p.RouteImage(context.Background(), []string{"a", "b"}, ports.ImageOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(img.Data) != "route-png" {
		t.Fatalf("data = %q", img.Data)
	}
}

func TestNewBingProviderRequiresKey(t *testing.T) {
	if _, err := NewBingProvider(""); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
