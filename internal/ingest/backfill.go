package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fuel-route-service/internal/ports"
)

// Backfill resolves coordinates for stations that arrived without one.
//
// Geocoding happens per (city, state) pair rather than per station: the
// upstream price list shares addresses across many rows, and city-level
// precision is all the corridor search needs. Pairs that fail to resolve are
// skipped and retried on a later sweep.
type Backfill struct {
	stations ports.StationIngestRepository
	geocoder ports.Geocoder
	batch    int
	interval time.Duration
	wake     chan struct{}
}

func NewBackfill(
	stations ports.StationIngestRepository,
	geocoder ports.Geocoder,
	batch int,
	interval time.Duration,
) *Backfill {
	return &Backfill{
		stations: stations,
		geocoder: geocoder,
		batch:    batch,
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

// Wake nudges the backfill without waiting for the next tick. Non-blocking.
func (b *Backfill) Wake() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Run geocodes ungeocoded places until ctx is cancelled.
func (b *Backfill) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-b.wake:
		}
		b.sweep(ctx)
	}
}

func (b *Backfill) sweep(ctx context.Context) {
	places, err := b.stations.ListUngeocodedPlaces(ctx, b.batch)
	if err != nil {
		log.Error().Err(err).Msg("list ungeocoded places failed")
		return
	}

	resolved := 0
	for _, place := range places {
		if ctx.Err() != nil {
			return
		}

		address := fmt.Sprintf("%s, %s", place.City, place.State)
		coord, err := b.geocoder.Resolve(ctx, address)
		if errors.Is(err, ports.ErrNotFound) {
			log.Warn().Str("place", address).Msg("place did not geocode, skipping")
			continue
		}
		if err != nil {
			log.Error().Err(err).Str("place", address).Msg("geocode failed, skipping")
			continue
		}

		updated, err := b.stations.SetPlaceLocation(ctx, place, coord)
		if err != nil {
			log.Error().Err(err).Str("place", address).Msg("location update failed")
			continue
		}
		resolved++
		log.Debug().Str("place", address).Int64("stations", updated).Msg("place geocoded")
	}

	if len(places) > 0 {
		log.Info().Int("places", len(places)).Int("resolved", resolved).Msg("geocode backfill sweep done")
	}
}
