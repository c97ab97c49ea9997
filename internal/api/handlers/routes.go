package handlers

import (
	"net/http"

	"geo-route-service/internal/api/dto"
	"geo-route-service/internal/ports"
	"geo-route-service/internal/services"
)

type RouteHandler struct {
	Provider   ports.MapProvider
	Translator ports.Translator
}

// Resolve computes a driving route between a start and an end position with
// optional intermediate stops, returning distance, duration, the geodesic
// baseline and the itinerary instructions.
func (h *RouteHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	start, err := locationFromRequest(h.Provider, req.Start, nil)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	end, err := locationFromRequest(h.Provider, req.End, nil)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	vias := make([]*services.Location, 0, len(req.Vias))
	for _, v := range req.Vias {
		via, err := locationFromRequest(h.Provider, v, nil)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		vias = append(vias, via)
	}

	route, err := services.NewRoute(h.Provider, start, end,
		services.WithVias(vias...),
		services.WithParams(req.Params),
		services.WithTranslator(h.Translator),
	)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	ctx := r.Context()

	distKm, err := route.RouteDistanceKm(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	distM, err := route.RouteDistanceM(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	durSec, err := route.TravelTimeSec(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	durMin, err := route.TravelTimeMin(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	geodesicKm, err := route.GeodesicDistanceKm(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	instructions, err := route.Instructions(ctx, req.Translate)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RouteResponse{
		DistanceKm:   distKm,
		DistanceM:    distM,
		DurationSec:  durSec,
		DurationMin:  durMin,
		GeodesicKm:   geodesicKm,
		Instructions: instructions,
	})
}
