package ports

import (
	"context"
	"errors"

	"fuel-route-service/internal/domain"
)

// ErrNotFound signals that an external lookup produced no usable result.
// Adapters convert every transport or parse failure into this sentinel after
// reporting it; callers never see raw external errors.
var ErrNotFound = errors.New("not found")

// Port: resolves a free-text address to a coordinate.
type Geocoder interface {
	// Resolve returns the coordinate for an address, or ErrNotFound.
	Resolve(ctx context.Context, address string) (domain.Coordinates, error)
}
