package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"geo-route-service/internal/adapters/maps"
	"geo-route-service/internal/adapters/translate"
	"geo-route-service/internal/api"
	"geo-route-service/internal/ports"
)

// main is the application composition root. It wires the open-data geocoder
// in front of the commercial provider and exposes the resolver over HTTP.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	userAgent := getEnv("GEOCODER_USER_AGENT", "geo-route-service")
	port := getEnv("PORT", "8080")

	primary, err := maps.NewNominatimProvider(userAgent)
	if err != nil {
		log.Fatal(err)
	}

	// Without a commercial key the service still geocodes on the open tier;
	// routing and imagery requests report the missing capability.
	var fallback ports.MapProvider
	if key := strings.TrimSpace(os.Getenv("BING_MAPS_KEY")); key != "" {
		bing, err := maps.NewBingProvider(key)
		if err != nil {
			log.Fatal(err)
		}
		fallback = bing
	} else {
		log.Println("BING_MAPS_KEY not set: routing and imagery are disabled")
	}

	resolver, err := maps.NewCompositeResolver(primary, fallback)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(resolver, translate.NewInstructionTranslator())

	// Timeouts account for cold resolutions fanning out to external APIs.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
