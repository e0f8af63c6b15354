package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fuel-route-service/internal/domain"
)

func TestFuelCostNoStopsUsesDefaultPrice(t *testing.T) {
	cost := FuelCost(nil, 500, 10, 3.5)
	assert.Equal(t, 175.0, cost)
}

func TestFuelCostSinglePriceCollapsesToUniformRate(t *testing.T) {
	stops := []domain.CandidateStation{
		{MileMarker: 100, RetailPrice: 3.0},
	}
	cost := FuelCost(stops, 300, 10, 3.5)
	assert.Equal(t, 90.0, cost)
}

func TestFuelCostPricesSegmentsForward(t *testing.T) {
	stops := []domain.CandidateStation{
		{MileMarker: 300, RetailPrice: 3.5},
		{MileMarker: 600, RetailPrice: 3.6},
	}
	// 300 mi @ 3.5 + 300 mi @ 3.6 + trailing 100 mi @ 3.6, at 10 mpg.
	cost := FuelCost(stops, 700, 10, 9.99)
	assert.Equal(t, 249.0, cost)
}

func TestFuelCostNoTrailingSegment(t *testing.T) {
	stops := []domain.CandidateStation{
		{MileMarker: 500, RetailPrice: 3.0},
	}
	cost := FuelCost(stops, 500, 10, 3.5)
	assert.Equal(t, 150.0, cost)
}

func TestFuelCostRoundsToTwoDecimals(t *testing.T) {
	stops := []domain.CandidateStation{
		{MileMarker: 100, RetailPrice: 3.333},
	}
	// 33.33 gallons-worth of arithmetic lands on a repeating fraction.
	cost := FuelCost(stops, 100, 3, 3.5)
	assert.Equal(t, 111.1, cost)
}
