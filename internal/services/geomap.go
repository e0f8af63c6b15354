package services

import (
	"fuel-route-service/internal/domain"
)

// BuildGeoMap packages the route geometry, endpoints and chosen stops into a
// single GeoJSON feature collection for visualization.
//
// Pure formatting: no caching, no failure modes. Coordinates follow GeoJSON
// lon/lat order throughout.
func BuildGeoMap(
	polyline []domain.Coordinates,
	stops []domain.CandidateStation,
	start, end domain.Coordinates,
	startLabel, endLabel string,
) domain.GeoMap {
	line := make([][]float64, 0, len(polyline))
	for _, p := range polyline {
		line = append(line, p.LonLat())
	}

	features := []domain.Feature{
		{
			Type:       "Feature",
			Geometry:   domain.Geometry{Type: "LineString", Coordinates: line},
			Properties: map[string]any{"type": "route", "color": "#0066CC"},
		},
		{
			Type:       "Feature",
			Geometry:   domain.Geometry{Type: "Point", Coordinates: start.LonLat()},
			Properties: map[string]any{"type": "start", "label": startLabel},
		},
		{
			Type:       "Feature",
			Geometry:   domain.Geometry{Type: "Point", Coordinates: end.LonLat()},
			Properties: map[string]any{"type": "end", "label": endLabel},
		},
	}

	for i, stop := range stops {
		features = append(features, domain.Feature{
			Type: "Feature",
			Geometry: domain.Geometry{
				Type:        "Point",
				Coordinates: []float64{stop.Lon, stop.Lat},
			},
			Properties: map[string]any{
				"type":             "fuel_stop",
				"stop_number":      i + 1,
				"name":             stop.Name,
				"price_per_gallon": stop.RetailPrice,
				"mile_marker":      round1(stop.MileMarker),
			},
		})
	}

	return domain.GeoMap{Type: "FeatureCollection", Features: features}
}
