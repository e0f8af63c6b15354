package services

import (
	"sort"

	"fuel-route-service/internal/domain"
)

// OptimizeStops selects refuel stops along a route using a windowed greedy
// heuristic.
//
// Starting from mile 0, each step looks at the reachable window
// (current, current+maxRange] and picks the cheapest station in it; ties go
// to the earliest station in marker order. When the window is empty, the
// nearest station behind current serves as a forced fallback, provided
// stations remain farther along the route to anchor one. The loop stops as
// soon as the destination is within maxRange of the last chosen stop.
//
// The result is feasible-and-cheap-per-window, not globally optimal; this
// trade-off is intentional and callers depend on its exact behavior. In
// sparse topologies the fallback can terminate with trailing distance
// uncovered; that is returned as-is rather than reported as an error.
//
// The input must be sorted ascending by mile marker. Returns the chosen
// stops in travel order; an empty plan means either no stations were given
// or no feasible stop exists.
func OptimizeStops(stations []domain.CandidateStation, totalMiles, maxRange float64) []domain.CandidateStation {
	plan := []domain.CandidateStation{}
	if len(stations) == 0 {
		return plan
	}

	markers := make([]float64, len(stations))
	for i, s := range stations {
		markers[i] = s.MileMarker
	}

	current := 0.0

	for current < totalMiles {
		remaining := totalMiles - current
		windowEnd := current + maxRange

		// Index of the first station strictly past current, and one past the
		// last station inside the window. O(log n) per step.
		left := sort.Search(len(markers), func(i int) bool { return markers[i] > current })
		right := sort.Search(len(markers), func(i int) bool { return markers[i] > windowEnd })

		var best domain.CandidateStation
		if left < right {
			best = stations[left]
			for _, s := range stations[left+1 : right] {
				if s.RetailPrice < best.RetailPrice {
					best = s
				}
			}
		} else {
			if right >= len(stations) {
				// Nothing farther along the route to anchor a fallback; the
				// vehicle proceeds on whatever range remains.
				break
			}
			if left == 0 {
				break
			}
			best = stations[left-1]
		}

		// Guards against re-selecting the current position or stepping
		// backwards forever.
		if best.MileMarker <= current {
			break
		}

		plan = append(plan, best)
		current = best.MileMarker

		// remaining was measured from the previous position on purpose.
		if remaining <= maxRange {
			break
		}
	}

	return plan
}
