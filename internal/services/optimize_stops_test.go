package services

import (
	"reflect"
	"testing"

	"fuel-route-service/internal/domain"
)

func station(id int64, marker, price float64) domain.CandidateStation {
	return domain.CandidateStation{ID: id, MileMarker: marker, RetailPrice: price}
}

func markersOf(stops []domain.CandidateStation) []float64 {
	out := make([]float64, 0, len(stops))
	for _, s := range stops {
		out = append(out, s.MileMarker)
	}
	return out
}

func TestOptimizeStopsPicksCheapestInWindow(t *testing.T) {
	stations := []domain.CandidateStation{
		station(1, 50, 3.80),
		station(2, 300, 3.50),
		station(3, 600, 3.60),
	}

	plan := OptimizeStops(stations, 700, 500)

	want := []float64{300, 600}
	if got := markersOf(plan); !reflect.DeepEqual(got, want) {
		t.Fatalf("plan markers = %v, want %v", got, want)
	}
}

func TestOptimizeStopsEmptyInput(t *testing.T) {
	plan := OptimizeStops(nil, 400, 500)
	if len(plan) != 0 {
		t.Fatalf("expected empty plan, got %v", markersOf(plan))
	}
}

func TestOptimizeStopsRespectsRangeOnHappyPath(t *testing.T) {
	prices := map[float64]float64{
		100: 3.10, 200: 3.00, 300: 3.20, 400: 2.90, 500: 3.30,
		600: 3.00, 700: 3.40, 800: 3.05, 900: 3.50,
	}
	stations := make([]domain.CandidateStation, 0, len(prices))
	for m := 100.0; m <= 900; m += 100 {
		stations = append(stations, station(int64(m), m, prices[m]))
	}

	const totalMiles, maxRange = 1000.0, 300.0
	plan := OptimizeStops(stations, totalMiles, maxRange)

	if len(plan) == 0 {
		t.Fatal("expected a non-empty plan")
	}

	prev := 0.0
	for i, s := range plan {
		if s.MileMarker <= prev {
			t.Fatalf("stop %d not strictly increasing: %f after %f", i, s.MileMarker, prev)
		}
		if gap := s.MileMarker - prev; gap > maxRange {
			t.Fatalf("stop %d gap %f exceeds max range %f", i, gap, maxRange)
		}
		prev = s.MileMarker
	}
	if gap := totalMiles - prev; gap > maxRange {
		t.Fatalf("final leg %f exceeds max range %f", gap, maxRange)
	}
}

func TestOptimizeStopsDeterministic(t *testing.T) {
	stations := []domain.CandidateStation{
		station(1, 120, 3.40),
		station(2, 260, 3.15),
		station(3, 410, 3.15),
		station(4, 650, 3.90),
	}

	first := OptimizeStops(stations, 900, 400)
	second := OptimizeStops(stations, 900, 400)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("plans differ across identical calls: %v vs %v", markersOf(first), markersOf(second))
	}
}

func TestOptimizeStopsTieGoesToEarlierStation(t *testing.T) {
	stations := []domain.CandidateStation{
		station(1, 100, 3.00),
		station(2, 200, 3.00),
	}

	plan := OptimizeStops(stations, 400, 500)

	if len(plan) != 1 || plan[0].ID != 1 {
		t.Fatalf("expected the earlier of equally priced stations, got %v", markersOf(plan))
	}
}

func TestOptimizeStopsUnreachableFirstLeg(t *testing.T) {
	// The only station sits beyond the first window; no feasible stop exists.
	stations := []domain.CandidateStation{station(1, 600, 3.20)}

	plan := OptimizeStops(stations, 1000, 500)

	if len(plan) != 0 {
		t.Fatalf("expected empty plan, got %v", markersOf(plan))
	}
}

func TestOptimizeStopsTerminatesWhenCoverageRunsOut(t *testing.T) {
	// Station coverage ends at mile 200 of a 1200-mile trip. The planner
	// stops rather than erroring, leaving the trailing distance unresolved.
	stations := []domain.CandidateStation{
		station(1, 100, 3.00),
		station(2, 200, 3.50),
	}

	plan := OptimizeStops(stations, 1200, 500)

	want := []float64{100, 200}
	if got := markersOf(plan); !reflect.DeepEqual(got, want) {
		t.Fatalf("plan markers = %v, want %v", got, want)
	}
}
