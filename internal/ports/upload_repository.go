package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// Port: persistence for fuel price upload tracking rows.
type UploadRepository interface {
	Create(ctx context.Context, upload *domain.PriceUpload) error
	GetByID(ctx context.Context, id string) (*domain.PriceUpload, error)
	// ListPending returns uploads awaiting processing, oldest first.
	ListPending(ctx context.Context, limit int) ([]*domain.PriceUpload, error)
	MarkProcessing(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string, total, inserted int) error
	MarkFailed(ctx context.Context, id string, message string) error
}
