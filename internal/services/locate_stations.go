package services

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// LocateStations finds candidate fuel stations within the fixed corridor of
// the route and tags each with its mile marker.
//
// The returned set is always sorted ascending by mile marker with every
// marker inside [0, route.DistanceMiles]; the optimizer's binary search
// depends on this. A failed corridor query degrades the trip to "no stops
// found" rather than failing route planning, so errors are logged and
// swallowed into an empty set.
func LocateStations(
	ctx context.Context,
	route domain.Route,
	repo ports.StationRepository,
	cache ports.Cache,
	ttl time.Duration,
) []domain.CandidateStation {
	wkt := route.WKT()

	// The truncated WKT plus coarse distance is enough to identify a route
	// for caching purposes without hashing megabytes of geometry.
	prefix := wkt
	if len(prefix) > 100 {
		prefix = prefix[:100]
	}
	roundedMiles := strconv.FormatFloat(round1(route.DistanceMiles), 'f', 1, 64)
	key := ports.CacheKey("stations", prefix, roundedMiles)

	if cache != nil {
		if cached, err := cache.Get(ctx, key); err == nil {
			var stations []domain.CandidateStation
			if err := json.Unmarshal(cached, &stations); err == nil {
				log.Info().Int("count", len(stations)).Msg("stations cache hit")
				return stations
			}
		}
	}

	found, err := repo.FindAlongRoute(ctx, wkt, route.DistanceMiles)
	if err != nil {
		log.Error().Err(err).Msg("station corridor search failed, degrading to zero candidates")
		return []domain.CandidateStation{}
	}

	stations := make([]domain.CandidateStation, 0, len(found))
	for _, st := range found {
		if st.MileMarker < 0 || st.MileMarker > route.DistanceMiles {
			continue
		}
		stations = append(stations, st)
	}

	sort.SliceStable(stations, func(i, j int) bool {
		return stations[i].MileMarker < stations[j].MileMarker
	})

	if cache != nil {
		if payload, err := json.Marshal(stations); err == nil {
			if err := cache.Set(ctx, key, payload, ttl); err != nil {
				log.Warn().Err(err).Msg("stations cache write failed")
			}
		}
	}

	log.Info().Int("count", len(stations)).Msg("stations located along route")
	return stations
}
