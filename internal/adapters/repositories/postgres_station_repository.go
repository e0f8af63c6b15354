package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
)

// corridorMeters is the fixed lateral search distance around the route line
// (5 miles).
const corridorMeters = 8046

var dialect = goqu.Dialect("postgres")

// Postgres/PostGIS-backed implementation of the StationRepository and
// StationIngestRepository ports.
type PostgresStationRepository struct{ DB *sql.DB }

func NewPostgresStationRepository(db *sql.DB) *PostgresStationRepository {
	return &PostgresStationRepository{DB: db}
}

// FindAlongRoute runs the corridor search: stations with a positive price
// within corridorMeters of the route line, each projected onto the line to
// obtain its mile marker. Stations without a defined projection are skipped.
func (s *PostgresStationRepository) FindAlongRoute(
	ctx context.Context,
	routeWKT string,
	totalMiles float64,
) (_ []domain.CandidateStation, err error) {
	defer obs.Time(ctx, "stations.FindAlongRoute")(&err)

	if s.DB == nil {
		return nil, errors.New("station repository: DB is nil")
	}

	ds := dialect.
		From(goqu.T("fuel_stations").As("fs")).
		Select(
			goqu.I("fs.id"),
			goqu.I("fs.truckstop_name"),
			goqu.I("fs.retail_price"),
			goqu.L("ST_LineLocatePoint(ST_GeomFromText(?, 4326), fs.location::geometry) * ?",
				routeWKT, totalMiles).As("mile_marker"),
			goqu.L("ST_Y(fs.location::geometry)").As("lat"),
			goqu.L("ST_X(fs.location::geometry)").As("lng"),
		).
		Where(
			goqu.I("fs.location").IsNotNull(),
			goqu.I("fs.retail_price").Gt(0),
			goqu.L("ST_DWithin(fs.location, ST_GeogFromText(?), ?)", routeWKT, corridorMeters),
		).
		Order(goqu.I("mile_marker").Asc())

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("find stations along route: build query: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find stations along route: query fuel_stations: %w", err)
	}
	defer rows.Close()

	stations := make([]domain.CandidateStation, 0, 64)
	for rows.Next() {
		var (
			st     domain.CandidateStation
			marker sql.NullFloat64
		)
		if err := rows.Scan(&st.ID, &st.Name, &st.RetailPrice, &marker, &st.Lat, &st.Lon); err != nil {
			return nil, fmt.Errorf("find stations along route: scan row: %w", err)
		}
		if !marker.Valid {
			continue
		}
		st.MileMarker = marker.Float64
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find stations along route: row iteration: %w", err)
	}

	return stations, nil
}

// InsertBatch stores stations from an ingested price list, ignoring rows
// whose opis_id already exists.
func (s *PostgresStationRepository) InsertBatch(ctx context.Context, stations []domain.Station) (int, error) {
	if s.DB == nil {
		return 0, errors.New("station repository: DB is nil")
	}
	if len(stations) == 0 {
		return 0, nil
	}

	records := make([]any, 0, len(stations))
	for _, st := range stations {
		records = append(records, goqu.Record{
			"opis_id":        st.OpisID,
			"truckstop_name": st.Name,
			"address":        st.Address,
			"city":           st.City,
			"state":          st.State,
			"rack_id":        st.RackID,
			"retail_price":   st.RetailPrice,
		})
	}

	ds := dialect.
		Insert("fuel_stations").
		Rows(records...).
		OnConflict(goqu.DoNothing())

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("insert stations: build query: %w", err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert stations: exec: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("insert stations: rows affected: %w", err)
	}

	return int(inserted), nil
}

// ListUngeocodedPlaces returns distinct (city, state) pairs that still have
// stations without a stored location.
func (s *PostgresStationRepository) ListUngeocodedPlaces(ctx context.Context, limit int) ([]domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("station repository: DB is nil")
	}

	ds := dialect.
		From("fuel_stations").
		Select(goqu.C("city"), goqu.C("state")).
		Distinct().
		Where(goqu.C("location").IsNull()).
		Order(goqu.C("city").Asc(), goqu.C("state").Asc()).
		Limit(uint(limit))

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("list ungeocoded places: build query: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ungeocoded places: query: %w", err)
	}
	defer rows.Close()

	places := make([]domain.Place, 0, limit)
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(&p.City, &p.State); err != nil {
			return nil, fmt.Errorf("list ungeocoded places: scan row: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ungeocoded places: row iteration: %w", err)
	}

	return places, nil
}

// SetPlaceLocation resolves every still-ungeocoded station in the given
// city/state to a single coordinate.
func (s *PostgresStationRepository) SetPlaceLocation(
	ctx context.Context,
	place domain.Place,
	coord domain.Coordinates,
) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("station repository: DB is nil")
	}

	ds := dialect.
		Update("fuel_stations").
		Set(goqu.Record{
			"location":    goqu.L("ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography", coord.Lon, coord.Lat),
			"geocoded_at": goqu.L("NOW()"),
			"updated_at":  goqu.L("NOW()"),
		}).
		Where(
			goqu.C("city").Eq(place.City),
			goqu.C("state").Eq(place.State),
			goqu.C("location").IsNull(),
		)

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("set place location: build query: %w", err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("set place location %s, %s: exec: %w", place.City, place.State, err)
	}

	return result.RowsAffected()
}
