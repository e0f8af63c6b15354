package route

import (
	"context"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// MockRouteProvider returns a fixed route and counts calls.
type MockRouteProvider struct {
	Route domain.Route
	Err   error
	Calls int
}

func (m *MockRouteProvider) FetchRoute(_ context.Context, _, _ domain.Coordinates) (domain.Route, error) {
	m.Calls++
	if m.Err != nil {
		return domain.Route{}, m.Err
	}
	return m.Route, nil
}

var _ ports.RouteProvider = (*MockRouteProvider)(nil)
