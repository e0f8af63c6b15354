package dto

import "time"

type UploadAcceptedResponse struct {
	UploadID string `json:"upload_id"`
	Status   string `json:"status"`
}

type UploadStatusResponse struct {
	UploadID        string     `json:"upload_id"`
	Filename        string     `json:"filename"`
	Status          string     `json:"status"`
	TotalRecords    int        `json:"total_records"`
	InsertedRecords int        `json:"inserted_records"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	UploadedAt      time.Time  `json:"uploaded_at"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
}
