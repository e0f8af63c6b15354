package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"fuel-route-service/internal/apperrors"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

// PlannerConfig carries the vehicle model and cache tuning for trip planning.
type PlannerConfig struct {
	MaxRangeMiles         float64
	MilesPerGallon        float64
	DefaultPricePerGallon float64
	StationCacheTTL       time.Duration
}

type PlanTripRequest struct {
	Start string
	End   string
}

// PlanTrip runs the full planning pipeline for one request: resolve both
// addresses concurrently, fetch the driving route, locate candidate stations
// in the corridor, choose refuel stops, and price the trip.
//
// The two geocode lookups are independently cancellable; the first
// resolution failure cancels the other and fails the request before any
// downstream stage runs. Every later stage consumes exactly the previous
// stage's output, in order.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	stations ports.StationRepository,
	cache ports.Cache,
	cfg PlannerConfig,
) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "services.PlanTrip")(&err)

	start := strings.TrimSpace(req.Start)
	end := strings.TrimSpace(req.End)
	if start == "" {
		return nil, apperrors.Validation("start address is required")
	}
	if end == "" {
		return nil, apperrors.Validation("end address is required")
	}

	var startCoord, endCoord domain.Coordinates

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, rerr := geocoder.Resolve(gctx, start)
		if errors.Is(rerr, ports.ErrNotFound) {
			return apperrors.Validation(fmt.Sprintf("could not geocode: %s", start))
		}
		if rerr != nil {
			return fmt.Errorf("plan trip: geocode start: %w", rerr)
		}
		startCoord = c
		return nil
	})
	g.Go(func() error {
		c, rerr := geocoder.Resolve(gctx, end)
		if errors.Is(rerr, ports.ErrNotFound) {
			return apperrors.Validation(fmt.Sprintf("could not geocode: %s", end))
		}
		if rerr != nil {
			return fmt.Errorf("plan trip: geocode end: %w", rerr)
		}
		endCoord = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	route, err := routes.FetchRoute(ctx, startCoord, endCoord)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, apperrors.NotFound("route not found")
	}
	if err != nil {
		return nil, fmt.Errorf("plan trip: fetch route: %w", err)
	}

	candidates := LocateStations(ctx, route, stations, cache, cfg.StationCacheTTL)
	stops := OptimizeStops(candidates, route.DistanceMiles, cfg.MaxRangeMiles)
	cost := FuelCost(stops, route.DistanceMiles, cfg.MilesPerGallon, cfg.DefaultPricePerGallon)
	geoMap := BuildGeoMap(route.Polyline, stops, startCoord, endCoord, start, end)

	return &domain.TripPlan{
		Start:              start,
		End:                end,
		TotalDistanceMiles: domain.RoundMiles(route.DistanceMiles),
		TotalFuelCostUSD:   cost,
		Stops:              stops,
		Map:                geoMap,
	}, nil
}
