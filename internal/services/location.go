package services

import (
	"context"
	"fmt"
	"log"

	"geo-route-service/internal/domain"
	"geo-route-service/internal/ports"
)

// Location is a lazily resolved place. It is constructed from a coordinate,
// an address, or both, and calls its provider at most once: the first
// accessor that needs the missing half triggers resolution, and the payload
// is memoized for the lifetime of the value.
//
// Location is not safe for concurrent use. The resolve-once guard assumes
// single-threaded access.
type Location struct {
	provider ports.MapProvider

	coord      domain.Coordinate
	hasCoord   bool
	address    string
	hasAddress bool
	params     map[string]string

	state      domain.ResolutionState
	payload    *ports.LocationResult
	resolveErr error
	image      *ports.ImageHandle
}

// LocationFromCoordinate builds a location whose address is looked up on
// demand. The coordinate is range-checked here, before any network attempt.
func LocationFromCoordinate(provider ports.MapProvider, coord domain.Coordinate, params map[string]string) (*Location, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: provider is nil", domain.ErrInvalidInput)
	}
	if err := coord.Validate(); err != nil {
		return nil, err
	}

	return &Location{
		provider: provider,
		coord:    coord,
		hasCoord: true,
		params:   params,
	}, nil
}

// LocationFromAddress builds a location whose coordinate is looked up on
// demand.
func LocationFromAddress(provider ports.MapProvider, address string, params map[string]string) (*Location, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: provider is nil", domain.ErrInvalidInput)
	}
	if address == "" {
		return nil, fmt.Errorf("%w: address must be non-empty", domain.ErrInvalidInput)
	}

	return &Location{
		provider:   provider,
		address:    address,
		hasAddress: true,
		params:     params,
	}, nil
}

// PreresolvedLocation builds a location with both halves already known, so
// no provider call is ever issued for it. The pair is trusted as given; a
// warning is logged because nothing checks that the coordinate and the
// address actually describe the same place.
func PreresolvedLocation(provider ports.MapProvider, coord domain.Coordinate, address string, params map[string]string) (*Location, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: provider is nil", domain.ErrInvalidInput)
	}
	if err := coord.Validate(); err != nil {
		return nil, err
	}
	if address == "" {
		return nil, fmt.Errorf("%w: address must be non-empty", domain.ErrInvalidInput)
	}

	log.Printf("location: trusting unverified pair coord=%s address=%q", coord.Token(), address)

	return &Location{
		provider:   provider,
		coord:      coord,
		hasCoord:   true,
		address:    address,
		hasAddress: true,
		params:     params,
		state:      domain.StateResolved,
	}, nil
}

func (l *Location) State() domain.ResolutionState { return l.state }

// Resolve calls the provider with the stored position. It succeeds at most
// once: any second call fails with domain.ErrAlreadyResolved, and a failed
// attempt is terminal for this value.
func (l *Location) Resolve(ctx context.Context) error {
	if l.state != domain.StateUnresolved {
		return fmt.Errorf("location: %w", domain.ErrAlreadyResolved)
	}

	pos, err := l.position()
	if err != nil {
		return err
	}

	res, err := l.provider.ResolveLocation(ctx, pos, l.params)
	if err != nil {
		l.state = domain.StateFailed
		l.resolveErr = &domain.ResolutionError{Op: "location " + pos.Token(), Err: err}
		return l.resolveErr
	}

	l.state = domain.StateResolved
	l.payload = &res
	return nil
}

// Coordinate returns the known coordinate, resolving the location first if
// only an address was supplied.
func (l *Location) Coordinate(ctx context.Context) (domain.Coordinate, error) {
	if l.hasCoord {
		return l.coord, nil
	}
	if err := l.ensureResolved(ctx); err != nil {
		return domain.Coordinate{}, err
	}
	return l.payload.Coordinate, nil
}

// Address returns the known address, resolving the location first if only a
// coordinate was supplied.
func (l *Location) Address(ctx context.Context) (string, error) {
	if l.hasAddress {
		return l.address, nil
	}
	if err := l.ensureResolved(ctx); err != nil {
		return "", err
	}
	return l.payload.FormattedAddress, nil
}

// Image fetches a static map of the location, resolving the coordinate
// first if needed. The handle is memoized; repeated calls do not re-fetch.
func (l *Location) Image(ctx context.Context, opts ports.ImageOptions) (ports.ImageHandle, error) {
	if l.image != nil {
		return *l.image, nil
	}

	coord, err := l.Coordinate(ctx)
	if err != nil {
		return ports.ImageHandle{}, err
	}
	pos, err := domain.CoordinatePosition(coord)
	if err != nil {
		return ports.ImageHandle{}, err
	}

	img, err := l.provider.LocationImage(ctx, pos, opts)
	if err != nil {
		return ports.ImageHandle{}, fmt.Errorf("location image: %w", err)
	}

	l.image = &img
	return img, nil
}

// ensureResolved triggers resolution on first use. Once failed, every later
// access reports the original resolution error.
func (l *Location) ensureResolved(ctx context.Context) error {
	switch l.state {
	case domain.StateResolved:
		if l.payload == nil {
			return fmt.Errorf("location: %w: no payload for preresolved value", domain.ErrInvalidInput)
		}
		return nil
	case domain.StateFailed:
		return l.resolveErr
	default:
		return l.Resolve(ctx)
	}
}

func (l *Location) position() (domain.Position, error) {
	if l.hasCoord {
		return domain.CoordinatePosition(l.coord)
	}
	if l.hasAddress {
		return domain.AddressPosition(l.address)
	}
	return domain.Position{}, fmt.Errorf("location: %w", domain.ErrDependencyUnresolved)
}

// knownToken renders the construction-time position without forcing a
// resolve. Routes anchor their start and end on it.
func (l *Location) knownToken() (string, error) {
	if l.hasCoord {
		return l.coord.Token(), nil
	}
	if l.hasAddress {
		return l.address, nil
	}
	return "", domain.ErrDependencyUnresolved
}
