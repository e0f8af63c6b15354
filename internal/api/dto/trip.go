package dto

import "fuel-route-service/internal/domain"

type TripRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type StopResponse struct {
	Name           string  `json:"truckstop_name"`
	PricePerGallon float64 `json:"retail_price"`
	MileMarker     float64 `json:"mile_marker"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lng"`
}

type TripResponse struct {
	Start              string         `json:"start"`
	End                string         `json:"end"`
	TotalDistanceMiles float64        `json:"total_distance_miles"`
	TotalFuelCostUSD   float64        `json:"total_fuel_cost_usd"`
	OptimizedStops     []StopResponse `json:"optimized_stops"`
	Map                domain.GeoMap  `json:"map"`
}
