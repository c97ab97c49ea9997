package handlers

import (
	"fmt"
	"net/http"

	"geo-route-service/internal/api/dto"
	"geo-route-service/internal/domain"
	"geo-route-service/internal/ports"
	"geo-route-service/internal/services"
)

type LocationHandler struct {
	Provider ports.MapProvider
}

// Resolve geocodes a single position: an address gains a coordinate, a
// coordinate gains a formatted address. The fallback chain behind the
// provider port decides which tier answers.
func (h *LocationHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PositionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	loc, err := locationFromRequest(h.Provider, req, nil)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	ctx := r.Context()
	coord, err := loc.Coordinate(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	address, err := loc.Address(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LocationResponse{
		Lat:              coord.Lat,
		Lng:              coord.Lng,
		FormattedAddress: address,
	})
}

// locationFromRequest builds the lazy entity for a request position.
// Requests carrying both halves are rejected rather than trusted: the
// pre-seeded shortcut is for library callers who accept the risk, not for
// arbitrary HTTP input.
func locationFromRequest(provider ports.MapProvider, req dto.PositionRequest, params map[string]string) (*services.Location, error) {
	hasCoord := req.Lat != nil && req.Lng != nil

	switch {
	case hasCoord && req.Address != "":
		return nil, fmt.Errorf("%w: supply lat/lng or address, not both", domain.ErrInvalidInput)
	case hasCoord:
		coord, err := domain.NewCoordinate(*req.Lat, *req.Lng)
		if err != nil {
			return nil, err
		}
		return services.LocationFromCoordinate(provider, coord, params)
	case req.Lat != nil || req.Lng != nil:
		return nil, fmt.Errorf("%w: lat and lng must be supplied together", domain.ErrInvalidInput)
	case req.Address != "":
		return services.LocationFromAddress(provider, req.Address, params)
	default:
		return nil, fmt.Errorf("%w: lat/lng or address is required", domain.ErrInvalidInput)
	}
}
