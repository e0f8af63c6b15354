package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// Port: read side of the station corpus used by the planning pipeline.
// The pipeline never writes stations; ingestion owns that.
type StationRepository interface {
	// FindAlongRoute returns stations with a positive price within the fixed
	// lateral corridor of the route line, each tagged with its mile marker
	// (projection fraction along the line times totalMiles). Stations whose
	// projection is undefined are omitted.
	FindAlongRoute(ctx context.Context, routeWKT string, totalMiles float64) ([]domain.CandidateStation, error)
}

// Port: write side of the station corpus, used only by ingestion and the
// geocode backfill worker.
type StationIngestRepository interface {
	// InsertBatch stores stations, ignoring rows that conflict on the
	// external station id. Returns the number of rows actually inserted.
	InsertBatch(ctx context.Context, stations []domain.Station) (int, error)

	// ListUngeocodedPlaces returns distinct (city, state) pairs of stations
	// that have no stored location yet.
	ListUngeocodedPlaces(ctx context.Context, limit int) ([]domain.Place, error)

	// SetPlaceLocation writes a coordinate to every ungeocoded station in the
	// given city/state. Returns the number of rows updated.
	SetPlaceLocation(ctx context.Context, place domain.Place, coord domain.Coordinates) (int64, error)
}
