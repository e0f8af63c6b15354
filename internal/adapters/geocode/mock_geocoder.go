package geocode

import (
	"context"
	"strings"
	"sync"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// MockGeocoder resolves addresses from a fixed table and counts calls.
// Safe for concurrent use; the planner resolves addresses in parallel.
type MockGeocoder struct {
	Known map[string]domain.Coordinates

	mu    sync.Mutex
	calls int
}

func NewMockGeocoder(known map[string]domain.Coordinates) *MockGeocoder {
	return &MockGeocoder{Known: known}
}

func (m *MockGeocoder) Resolve(_ context.Context, address string) (domain.Coordinates, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	coord, ok := m.Known[strings.ToLower(strings.TrimSpace(address))]
	if !ok {
		return domain.Coordinates{}, ports.ErrNotFound
	}
	return coord, nil
}

func (m *MockGeocoder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ ports.Geocoder = (*MockGeocoder)(nil)
