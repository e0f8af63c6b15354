package services

import (
	"math"

	"fuel-route-service/internal/domain"
)

// FuelCost integrates fuel price over the distance segments defined by the
// chosen stops.
//
// Each segment ending at a stop is costed at that stop's price, and the
// trailing segment to the destination at the last stop's price. With no
// stops at all the whole trip is costed at defaultPrice. Rounded to 2
// decimals.
func FuelCost(stops []domain.CandidateStation, totalMiles, milesPerGallon, defaultPrice float64) float64 {
	if len(stops) == 0 {
		return round2((totalMiles / milesPerGallon) * defaultPrice)
	}

	total := 0.0
	prev := 0.0

	for _, stop := range stops {
		segment := stop.MileMarker - prev
		total += (segment / milesPerGallon) * stop.RetailPrice
		prev = stop.MileMarker
	}

	if remaining := totalMiles - prev; remaining > 0 {
		total += (remaining / milesPerGallon) * stops[len(stops)-1].RetailPrice
	}

	return round2(total)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
