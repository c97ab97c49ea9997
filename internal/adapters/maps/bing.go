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

// BingProvider implements the full MapProvider capability set against the
// Bing Maps REST family: location search, reverse lookup, driving routes and
// static imagery. Every query carries the account API key.
type BingProvider struct {
	client *http.Client
	apiKey string
	// baseURL is overrideable in tests.
	baseURL string
}

func NewBingProvider(apiKey string) (*BingProvider, error) {
	if apiKey == "" {
		return nil, errors.New("bing maps api key is empty")
	}

	return &BingProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://dev.virtualearth.net/REST/v1",
	}, nil
}

// Response envelope shared by the Locations and Routes endpoints.
type bingResponse struct {
	ResourceSets []struct {
		Resources []bingResource `json:"resources"`
	} `json:"resourceSets"`
}

type bingResource struct {
	Point struct {
		// Coordinates is [lat, lng].
		Coordinates []float64 `json:"coordinates"`
	} `json:"point"`
	Address struct {
		FormattedAddress string `json:"formattedAddress"`
	} `json:"address"`

	TravelDistance        float64 `json:"travelDistance"`
	TravelDurationTraffic float64 `json:"travelDurationTraffic"`
	RouteLegs             []struct {
		ItineraryItems []struct {
			Instruction struct {
				Text string `json:"text"`
			} `json:"instruction"`
		} `json:"itineraryItems"`
	} `json:"routeLegs"`
}

// firstResource unwraps the resourceSets[0].resources[0] nesting every Bing
// endpoint shares. An empty set maps to domain.ErrNoResult.
func (r bingResponse) firstResource() (bingResource, error) {
	if len(r.ResourceSets) == 0 || len(r.ResourceSets[0].Resources) == 0 {
		return bingResource{}, domain.ErrNoResult
	}
	return r.ResourceSets[0].Resources[0], nil
}

// ResolveLocation geocodes pos: addresses go through the query parameter,
// coordinates are embedded in the path for a reverse lookup.
func (p *BingProvider) ResolveLocation(
	ctx context.Context,
	pos domain.Position,
	params map[string]string,
) (_ ports.LocationResult, err error) {
	defer obs.Time(ctx, "bing.resolveLocation")(&err)

	q := p.query(params)

	endpoint := p.baseURL + "/Locations"
	if coord, ok := pos.Coordinate(); ok {
		endpoint += "/" + url.PathEscape(coord.Token())
	} else {
		q.Set("query", pos.Token())
	}

	var decoded bingResponse
	if err := getJSON(ctx, p.client, endpoint+"?"+q.Encode(), nil, &decoded); err != nil {
		return ports.LocationResult{}, fmt.Errorf("bing locations: %w", err)
	}

	res, err := decoded.firstResource()
	if err != nil {
		return ports.LocationResult{}, fmt.Errorf("bing locations %q: %w", pos.Token(), err)
	}

	if len(res.Point.Coordinates) != 2 {
		return ports.LocationResult{}, fmt.Errorf("bing locations %q: malformed point %v", pos.Token(), res.Point.Coordinates)
	}

	coord, err := domain.NewCoordinate(res.Point.Coordinates[0], res.Point.Coordinates[1])
	if err != nil {
		return ports.LocationResult{}, fmt.Errorf("bing locations %q: %w", pos.Token(), err)
	}

	return ports.LocationResult{
		Coordinate:       coord,
		FormattedAddress: res.Address.FormattedAddress,
	}, nil
}

// ResolveRoute computes a driving route through the ordered stop tokens.
func (p *BingProvider) ResolveRoute(
	ctx context.Context,
	stops []string,
	params map[string]string,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "bing.resolveRoute")(&err)

	waypoints, err := domain.WaypointParams(stops)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("bing routes: %w", err)
	}

	q := p.query(params)
	for k, v := range waypoints {
		q.Set(k, v)
	}

	var decoded bingResponse
	if err := getJSON(ctx, p.client, p.baseURL+"/Routes/Driving?"+q.Encode(), nil, &decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("bing routes: %w", err)
	}

	res, err := decoded.firstResource()
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("bing routes: %w", err)
	}

	result := ports.RouteResult{
		DistanceKm:         res.TravelDistance,
		DurationTrafficSec: res.TravelDurationTraffic,
	}
	if len(res.RouteLegs) > 0 {
		for _, item := range res.RouteLegs[0].ItineraryItems {
			result.Instructions = append(result.Instructions, item.Instruction.Text)
		}
	}

	return result, nil
}

// LocationImage fetches a static road map centered on pos. Coordinate
// positions get a pushpin marker at the point itself.
func (p *BingProvider) LocationImage(
	ctx context.Context,
	pos domain.Position,
	opts ports.ImageOptions,
) (_ ports.ImageHandle, err error) {
	defer obs.Time(ctx, "bing.locationImage")(&err)

	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = 16
	}

	q := p.imageQuery(opts)
	q.Set("zoomLevel", strconv.Itoa(zoom))
	if coord, ok := pos.Coordinate(); ok {
		q.Set("pushpin", coord.Token()+";66")
	}

	endpoint := p.baseURL + "/Imagery/Map/Road/" + url.PathEscape(pos.Token())
	return p.fetchImage(ctx, endpoint+"?"+q.Encode())
}

// RouteImage fetches a static road map of the driving route through the
// ordered stop tokens.
func (p *BingProvider) RouteImage(
	ctx context.Context,
	stops []string,
	opts ports.ImageOptions,
) (_ ports.ImageHandle, err error) {
	defer obs.Time(ctx, "bing.routeImage")(&err)

	waypoints, err := domain.WaypointParams(stops)
	if err != nil {
		return ports.ImageHandle{}, fmt.Errorf("bing route image: %w", err)
	}

	q := p.imageQuery(opts)
	for k, v := range waypoints {
		q.Set(k, v)
	}

	return p.fetchImage(ctx, p.baseURL+"/Imagery/Map/Road/Routes/Driving?"+q.Encode())
}

func (p *BingProvider) fetchImage(ctx context.Context, imageURL string) (ports.ImageHandle, error) {
	data, err := getBytes(ctx, p.client, imageURL, nil)
	if err != nil {
		return ports.ImageHandle{}, fmt.Errorf("bing imagery: %w", err)
	}
	return ports.ImageHandle{URL: imageURL, Data: data}, nil
}

func (p *BingProvider) query(params map[string]string) url.Values {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	q.Set("key", p.apiKey)
	return q
}

func (p *BingProvider) imageQuery(opts ports.ImageOptions) url.Values {
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 500
	}
	if height <= 0 {
		height = 500
	}

	q := p.query(opts.Params)
	q.Set("mapSize", strconv.Itoa(width)+","+strconv.Itoa(height))
	q.Set("dpi", "Large")
	return q
}
