package domain

// Represents the planned fuel strategy for a single trip.
// A TripPlan is the output of the planning pipeline: the driving route, the
// ordered refuel stops chosen along it, and the projected fuel spend.
// It is immutable planning data and contains no side effects.
type TripPlan struct {
	Start              string
	End                string
	TotalDistanceMiles float64
	TotalFuelCostUSD   float64
	Stops              []CandidateStation
	Map                GeoMap
}
