package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// Port: obtains a driving route between two coordinates.
type RouteProvider interface {
	// FetchRoute returns the driving route from origin to destination, with
	// its polyline already downsampled, or ErrNotFound when the routing
	// service has no usable route.
	FetchRoute(ctx context.Context, origin, destination domain.Coordinates) (domain.Route, error)
}
