package domain

import (
	"fmt"
	"strconv"
)

// Immutable geographic coordinate (latitude, longitude).
type Coordinate struct {
	Lat float64
	Lng float64
}

// NewCoordinate validates the WGS84 ranges before any provider call is built.
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	c := Coordinate{Lat: lat, Lng: lng}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of [-90,90]", ErrInvalidPosition, c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of [-180,180]", ErrInvalidPosition, c.Lng)
	}
	return nil
}

// Token renders the coordinate as the "{lat},{lng}" form the map services
// accept in paths and waypoint parameters. No rounding is applied.
func (c Coordinate) Token() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// Position identifies a place either by coordinate or by free-text address.
// Exactly one variant is populated; construction enforces it.
type Position struct {
	coord   Coordinate
	address string
	isCoord bool
}

func CoordinatePosition(c Coordinate) (Position, error) {
	if err := c.Validate(); err != nil {
		return Position{}, err
	}
	return Position{coord: c, isCoord: true}, nil
}

func AddressPosition(address string) (Position, error) {
	if address == "" {
		return Position{}, fmt.Errorf("%w: address must be non-empty", ErrInvalidInput)
	}
	return Position{address: address}, nil
}

func (p Position) IsCoordinate() bool { return p.isCoord }

func (p Position) Coordinate() (Coordinate, bool) {
	if !p.isCoord {
		return Coordinate{}, false
	}
	return p.coord, true
}

func (p Position) Address() (string, bool) {
	if p.isCoord {
		return "", false
	}
	return p.address, true
}

// Token is the provider-agnostic query form of the position: a coordinate
// token or the literal address text. Percent-encoding happens at final URL
// assembly, not here.
func (p Position) Token() string {
	if p.isCoord {
		return p.coord.Token()
	}
	return p.address
}
