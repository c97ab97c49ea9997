package maps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"geo-route-service/internal/domain"
	"geo-route-service/internal/platform/obs"
	"geo-route-service/internal/ports"
)

// NominatimProvider geocodes against the Nominatim open-data API. It offers
// forward (address) and reverse (coordinate) lookups only; routing and
// imagery belong to the commercial tier.
//
// Nominatim's usage policy requires an identifying User-Agent on every call.
type NominatimProvider struct {
	client    *http.Client
	userAgent string
	// baseURL is overrideable in tests.
	baseURL string
}

func NewNominatimProvider(userAgent string) (*NominatimProvider, error) {
	if userAgent == "" {
		return nil, errors.New("nominatim user agent is empty")
	}

	return &NominatimProvider{
		client:    &http.Client{Timeout: 10 * time.Second},
		userAgent: userAgent,
		baseURL:   "https://nominatim.openstreetmap.org",
	}, nil
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	// Error is populated by /reverse when no place covers the coordinate.
	Error string `json:"error"`
}

// ResolveLocation geocodes pos. An empty Nominatim answer is not a transport
// failure: it returns an error wrapping domain.ErrNoResult so the caller can
// decide to try another tier.
func (p *NominatimProvider) ResolveLocation(
	ctx context.Context,
	pos domain.Position,
	params map[string]string,
) (_ ports.LocationResult, err error) {
	defer obs.Time(ctx, "nominatim.resolveLocation")(&err)

	if coord, ok := pos.Coordinate(); ok {
		return p.reverse(ctx, coord, params)
	}
	return p.forward(ctx, pos.Token(), params)
}

func (p *NominatimProvider) forward(
	ctx context.Context,
	address string,
	params map[string]string,
) (ports.LocationResult, error) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")

	var places []nominatimPlace
	if err := getJSON(ctx, p.client, p.baseURL+"/search?"+q.Encode(), p.header(), &places); err != nil {
		return ports.LocationResult{}, fmt.Errorf("nominatim search: %w", err)
	}

	if len(places) == 0 {
		return ports.LocationResult{}, fmt.Errorf("nominatim search %q: %w", address, domain.ErrNoResult)
	}

	return placeToResult(places[0])
}

func (p *NominatimProvider) reverse(
	ctx context.Context,
	coord domain.Coordinate,
	params map[string]string,
) (ports.LocationResult, error) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(coord.Lng, 'f', -1, 64))
	q.Set("format", "jsonv2")

	var place nominatimPlace
	if err := getJSON(ctx, p.client, p.baseURL+"/reverse?"+q.Encode(), p.header(), &place); err != nil {
		return ports.LocationResult{}, fmt.Errorf("nominatim reverse: %w", err)
	}

	if place.Error != "" || (place.Lat == "" && place.Lon == "") {
		return ports.LocationResult{}, fmt.Errorf("nominatim reverse %s: %w", coord.Token(), domain.ErrNoResult)
	}

	return placeToResult(place)
}

func (p *NominatimProvider) header() http.Header {
	h := http.Header{}
	h.Set("User-Agent", p.userAgent)
	h.Set("Accept", "application/json")
	return h
}

func placeToResult(place nominatimPlace) (ports.LocationResult, error) {
	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return ports.LocationResult{}, fmt.Errorf("nominatim: parse lat %q: %w", place.Lat, err)
	}
	lng, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return ports.LocationResult{}, fmt.Errorf("nominatim: parse lon %q: %w", place.Lon, err)
	}

	coord, err := domain.NewCoordinate(lat, lng)
	if err != nil {
		return ports.LocationResult{}, fmt.Errorf("nominatim: %w", err)
	}

	return ports.LocationResult{
		Coordinate:       coord,
		FormattedAddress: place.DisplayName,
	}, nil
}
