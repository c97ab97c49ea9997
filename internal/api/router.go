package api

import (
	"net/http"

	"geo-route-service/internal/api/handlers"
	"geo-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. Handlers stay unaware of which concrete providers sit
// behind the ports.
func NewRouter(provider ports.MapProvider, translator ports.Translator) http.Handler {
	mux := http.NewServeMux()

	locationHandler := &handlers.LocationHandler{Provider: provider}
	routeHandler := &handlers.RouteHandler{Provider: provider, Translator: translator}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/locations", locationHandler.Resolve)
	mux.HandleFunc("/routes", routeHandler.Resolve)

	return requestIDMiddleware(loggingMiddleware(mux))
}
