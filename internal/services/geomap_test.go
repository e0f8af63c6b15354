package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuel-route-service/internal/domain"
)

func TestBuildGeoMapFeatureLayout(t *testing.T) {
	polyline := []domain.Coordinates{
		{Lat: 39.74, Lon: -104.99},
		{Lat: 40.00, Lon: -100.00},
		{Lat: 41.88, Lon: -87.63},
	}
	stops := []domain.CandidateStation{
		{ID: 1, Name: "FLYING J", RetailPrice: 3.45, MileMarker: 210.44, Lat: 39.9, Lon: -101.2},
		{ID: 2, Name: "PILOT", RetailPrice: 3.60, MileMarker: 688.01, Lat: 41.1, Lon: -90.5},
	}

	m := BuildGeoMap(polyline, stops,
		domain.Coordinates{Lat: 39.74, Lon: -104.99},
		domain.Coordinates{Lat: 41.88, Lon: -87.63},
		"Denver, CO", "Chicago, IL")

	assert.Equal(t, "FeatureCollection", m.Type)
	require.Len(t, m.Features, 5)

	routeFeature := m.Features[0]
	assert.Equal(t, "LineString", routeFeature.Geometry.Type)
	line, ok := routeFeature.Geometry.Coordinates.([][]float64)
	require.True(t, ok)
	require.Len(t, line, 3)
	assert.Equal(t, []float64{-104.99, 39.74}, line[0], "coordinates must be lon/lat")

	assert.Equal(t, "start", m.Features[1].Properties["type"])
	assert.Equal(t, "Denver, CO", m.Features[1].Properties["label"])
	assert.Equal(t, "end", m.Features[2].Properties["type"])
	assert.Equal(t, "Chicago, IL", m.Features[2].Properties["label"])

	first := m.Features[3]
	assert.Equal(t, "fuel_stop", first.Properties["type"])
	assert.Equal(t, 1, first.Properties["stop_number"])
	assert.Equal(t, "FLYING J", first.Properties["name"])
	assert.Equal(t, 3.45, first.Properties["price_per_gallon"])
	assert.Equal(t, 210.4, first.Properties["mile_marker"])
	assert.Equal(t, []float64{-101.2, 39.9}, first.Geometry.Coordinates)

	second := m.Features[4]
	assert.Equal(t, 2, second.Properties["stop_number"])
	assert.Equal(t, 688.0, second.Properties["mile_marker"])
}

func TestBuildGeoMapNoStops(t *testing.T) {
	m := BuildGeoMap(
		[]domain.Coordinates{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}},
		nil,
		domain.Coordinates{Lat: 1, Lon: 2},
		domain.Coordinates{Lat: 3, Lon: 4},
		"A", "B")

	assert.Len(t, m.Features, 3)
}
