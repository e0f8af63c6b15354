package domain

import "time"

// Represents a fuel station row in the corpus, as delivered by the
// price-list ingestion pipeline. Location is resolved later by the geocode
// backfill worker; stations without a location are invisible to the
// corridor search until then.
type Station struct {
	ID          int64
	OpisID      int
	Name        string
	Address     string
	City        string
	State       string
	RackID      *int
	RetailPrice float64
	Location    *Coordinates
	GeocodedAt  *time.Time
}

// A station projected onto a specific route.
// MileMarker is the distance in miles along the route from its origin to the
// station's projection onto the route line.
type CandidateStation struct {
	ID          int64   `json:"id"`
	Name        string  `json:"truckstop_name"`
	RetailPrice float64 `json:"retail_price"`
	MileMarker  float64 `json:"mile_marker"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lng"`
}

// A (city, state) pair whose stations still await geocoding.
type Place struct {
	City  string
	State string
}
