package domain

import "time"

type UploadStatus string

const (
	UploadPending    UploadStatus = "PENDING"
	UploadProcessing UploadStatus = "PROCESSING"
	UploadCompleted  UploadStatus = "COMPLETED"
	UploadFailed     UploadStatus = "FAILED"
)

// Tracks one uploaded fuel price list through ingestion.
type PriceUpload struct {
	ID              string
	Filename        string
	Status          UploadStatus
	TotalRecords    int
	InsertedRecords int
	ErrorMessage    string
	UploadedAt      time.Time
	ProcessedAt     *time.Time
}
