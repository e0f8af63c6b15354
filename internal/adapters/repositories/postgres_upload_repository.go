package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// Postgres-backed implementation of the UploadRepository port.
type PostgresUploadRepository struct{ DB *sql.DB }

func NewPostgresUploadRepository(db *sql.DB) *PostgresUploadRepository {
	return &PostgresUploadRepository{DB: db}
}

func (r *PostgresUploadRepository) Create(ctx context.Context, upload *domain.PriceUpload) error {
	if r.DB == nil {
		return errors.New("upload repository: DB is nil")
	}

	query := `
	INSERT INTO fuel_price_uploads (id, filename, status)
	VALUES ($1, $2, $3);
	`
	if _, err := r.DB.ExecContext(ctx, query, upload.ID, upload.Filename, upload.Status); err != nil {
		return fmt.Errorf("create upload %q: %w", upload.ID, err)
	}
	return nil
}

func (r *PostgresUploadRepository) GetByID(ctx context.Context, id string) (*domain.PriceUpload, error) {
	if r.DB == nil {
		return nil, errors.New("upload repository: DB is nil")
	}

	query := `
	SELECT id, filename, status, total_records, inserted_records,
		COALESCE(error_message, ''), uploaded_at, processed_at
	FROM fuel_price_uploads
	WHERE id = $1;
	`

	up := &domain.PriceUpload{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&up.ID,
		&up.Filename,
		&up.Status,
		&up.TotalRecords,
		&up.InsertedRecords,
		&up.ErrorMessage,
		&up.UploadedAt,
		&up.ProcessedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get upload %q: %w", id, err)
	}

	return up, nil
}

func (r *PostgresUploadRepository) ListPending(ctx context.Context, limit int) ([]*domain.PriceUpload, error) {
	if r.DB == nil {
		return nil, errors.New("upload repository: DB is nil")
	}

	query := `
	SELECT id, filename, status, total_records, inserted_records,
		COALESCE(error_message, ''), uploaded_at, processed_at
	FROM fuel_price_uploads
	WHERE status = $1
	ORDER BY uploaded_at
	LIMIT $2;
	`

	rows, err := r.DB.QueryContext(ctx, query, domain.UploadPending, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending uploads: query: %w", err)
	}
	defer rows.Close()

	uploads := make([]*domain.PriceUpload, 0, limit)
	for rows.Next() {
		up := &domain.PriceUpload{}
		if err := rows.Scan(
			&up.ID,
			&up.Filename,
			&up.Status,
			&up.TotalRecords,
			&up.InsertedRecords,
			&up.ErrorMessage,
			&up.UploadedAt,
			&up.ProcessedAt,
		); err != nil {
			return nil, fmt.Errorf("list pending uploads: scan row: %w", err)
		}
		uploads = append(uploads, up)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending uploads: row iteration: %w", err)
	}

	return uploads, nil
}

func (r *PostgresUploadRepository) MarkProcessing(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, `
	UPDATE fuel_price_uploads
	SET status = $2
	WHERE id = $1;
	`, domain.UploadProcessing)
}

func (r *PostgresUploadRepository) MarkCompleted(ctx context.Context, id string, total, inserted int) error {
	if r.DB == nil {
		return errors.New("upload repository: DB is nil")
	}

	query := `
	UPDATE fuel_price_uploads
	SET status = $2, total_records = $3, inserted_records = $4, processed_at = NOW()
	WHERE id = $1;
	`
	if _, err := r.DB.ExecContext(ctx, query, id, domain.UploadCompleted, total, inserted); err != nil {
		return fmt.Errorf("mark upload %q completed: %w", id, err)
	}
	return nil
}

func (r *PostgresUploadRepository) MarkFailed(ctx context.Context, id string, message string) error {
	if r.DB == nil {
		return errors.New("upload repository: DB is nil")
	}

	query := `
	UPDATE fuel_price_uploads
	SET status = $2, error_message = $3, processed_at = NOW()
	WHERE id = $1;
	`
	if _, err := r.DB.ExecContext(ctx, query, id, domain.UploadFailed, message); err != nil {
		return fmt.Errorf("mark upload %q failed: %w", id, err)
	}
	return nil
}

func (r *PostgresUploadRepository) setStatus(ctx context.Context, id, query string, status domain.UploadStatus) error {
	if r.DB == nil {
		return errors.New("upload repository: DB is nil")
	}
	if _, err := r.DB.ExecContext(ctx, query, id, status); err != nil {
		return fmt.Errorf("set upload %q status %s: %w", id, status, err)
	}
	return nil
}
