package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"geo-route-service/internal/adapters/imagestore"
	"geo-route-service/internal/adapters/maps"
	"geo-route-service/internal/adapters/translate"
	"geo-route-service/internal/ports"
	"geo-route-service/internal/services"
)

// geotool resolves a location or a route from the command line and prints
// the derived values. With -image it also saves the static map PNG.
//
//	geotool -at "Bogotá, Colombia"
//	geotool -from "Bogotá, Colombia" -to "Medellín, Colombia" -translate -image
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	at := flag.String("at", "", "address to resolve as a single location")
	from := flag.String("from", "", "route start address")
	to := flag.String("to", "", "route end address")
	via := flag.String("via", "", "comma-separated intermediate stop addresses")
	translateFlag := flag.Bool("translate", false, "translate route instructions")
	image := flag.Bool("image", false, "save the static map image")
	imageDir := flag.String("image-dir", "images", "directory for saved images")
	flag.Parse()

	resolver := buildResolver()
	ctx := context.Background()

	switch {
	case *at != "":
		if err := showLocation(ctx, resolver, *at, *image, *imageDir); err != nil {
			log.Fatal(err)
		}
	case *from != "" && *to != "":
		if err := showRoute(ctx, resolver, *from, *to, *via, *translateFlag, *image, *imageDir); err != nil {
			log.Fatal(err)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func buildResolver() *maps.CompositeResolver {
	userAgent := getEnv("GEOCODER_USER_AGENT", "geo-route-service")

	primary, err := maps.NewNominatimProvider(userAgent)
	if err != nil {
		log.Fatal(err)
	}

	var fallback ports.MapProvider
	if key := strings.TrimSpace(os.Getenv("BING_MAPS_KEY")); key != "" {
		bing, err := maps.NewBingProvider(key)
		if err != nil {
			log.Fatal(err)
		}
		fallback = bing
	}

	resolver, err := maps.NewCompositeResolver(primary, fallback)
	if err != nil {
		log.Fatal(err)
	}
	return resolver
}

func showLocation(ctx context.Context, resolver ports.MapProvider, address string, saveImage bool, imageDir string) error {
	loc, err := services.LocationFromAddress(resolver, address, nil)
	if err != nil {
		return err
	}

	coord, err := loc.Coordinate(ctx)
	if err != nil {
		return err
	}
	formatted, err := loc.Address(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("coordinate: %s\n", coord.Token())
	fmt.Printf("address:    %s\n", formatted)

	if !saveImage {
		return nil
	}

	img, err := loc.Image(ctx, ports.ImageOptions{})
	if err != nil {
		return err
	}
	return saveHandle(imageDir, "location("+coord.Token()+")", img)
}

func showRoute(ctx context.Context, resolver ports.MapProvider, from, to, via string, translateInstructions, saveImage bool, imageDir string) error {
	start, err := services.LocationFromAddress(resolver, from, nil)
	if err != nil {
		return err
	}
	end, err := services.LocationFromAddress(resolver, to, nil)
	if err != nil {
		return err
	}

	var vias []*services.Location
	for _, stop := range strings.Split(via, ",") {
		stop = strings.TrimSpace(stop)
		if stop == "" {
			continue
		}
		v, err := services.LocationFromAddress(resolver, stop, nil)
		if err != nil {
			return err
		}
		vias = append(vias, v)
	}

	route, err := services.NewRoute(resolver, start, end,
		services.WithVias(vias...),
		services.WithTranslator(translate.NewInstructionTranslator()),
	)
	if err != nil {
		return err
	}

	distKm, err := route.RouteDistanceKm(ctx)
	if err != nil {
		return err
	}
	durMin, err := route.TravelTimeMin(ctx)
	if err != nil {
		return err
	}
	geodesicKm, err := route.GeodesicDistanceKm(ctx)
	if err != nil {
		return err
	}
	instructions, err := route.Instructions(ctx, translateInstructions)
	if err != nil {
		return err
	}

	fmt.Printf("driving distance: %.2f km\n", distKm)
	fmt.Printf("travel time:      %.1f min\n", durMin)
	fmt.Printf("geodesic:         %.2f km\n", geodesicKm)
	fmt.Println("instructions:")
	for i, text := range instructions {
		fmt.Printf("  %2d. %s\n", i+1, text)
	}

	if !saveImage {
		return nil
	}

	img, err := route.Image(ctx, ports.ImageOptions{})
	if err != nil {
		return err
	}

	a, err := start.Coordinate(ctx)
	if err != nil {
		return err
	}
	b, err := end.Coordinate(ctx)
	if err != nil {
		return err
	}
	return saveHandle(imageDir, "route("+a.Token()+")("+b.Token()+")", img)
}

func saveHandle(dir, name string, img ports.ImageHandle) error {
	store, err := imagestore.NewDirStore(dir)
	if err != nil {
		return err
	}
	path, err := store.Save(name, img.Data)
	if err != nil {
		return err
	}
	fmt.Printf("image saved: %s\n", path)
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
