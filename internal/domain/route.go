package domain

import (
	"math"
	"strconv"
	"strings"
)

// MaxPolylinePoints bounds the size of route geometry handed to the spatial
// query layer. Longer polylines are downsampled before use.
const MaxPolylinePoints = 200

const metersPerMile = 1609.34

// Represents a driving route between two coordinates.
// The polyline is ordered origin -> destination and holds at most
// MaxPolylinePoints points once produced by a RouteProvider.
// A Route is immutable planning data and is only persisted inside a
// bounded-lifetime cache entry.
type Route struct {
	Polyline      []Coordinates `json:"polyline"`
	DistanceMiles float64       `json:"distance_miles"`
}

// MilesFromMeters converts a routing-service distance to miles.
func MilesFromMeters(meters float64) float64 {
	return meters / metersPerMile
}

// DownsamplePolyline reduces a polyline to exactly MaxPolylinePoints points
// by even index spacing, preserving the first and last points.
// Shorter polylines are returned unchanged. The selection is by index, not
// arc length: this is a deliberate lossy simplification.
func DownsamplePolyline(points []Coordinates) []Coordinates {
	n := len(points)
	if n <= MaxPolylinePoints {
		return points
	}

	out := make([]Coordinates, MaxPolylinePoints)
	for i := 0; i < MaxPolylinePoints; i++ {
		idx := int(float64(i) * float64(n-1) / float64(MaxPolylinePoints-1))
		out[i] = points[idx]
	}
	return out
}

// WKT renders the polyline as a LINESTRING in lon/lat order, suitable for
// PostGIS ST_GeomFromText / ST_GeogFromText.
func (r Route) WKT() string {
	var b strings.Builder
	b.WriteString("LINESTRING(")
	for i, p := range r.Polyline {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(p.Lon, 'f', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(p.Lat, 'f', -1, 64))
	}
	b.WriteString(")")
	return b.String()
}

// RoundMiles rounds a mileage figure to two decimal places for presentation.
func RoundMiles(miles float64) float64 {
	return math.Round(miles*100) / 100
}
