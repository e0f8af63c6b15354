package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

const maxUploadBytes = 64 << 20

type UploadHandler struct {
	Uploads ports.UploadRepository
	Dir     string
	// Wake nudges the background processor after a file is accepted.
	Wake func()
}

// Create accepts a fuel price list CSV and queues it for ingestion.
// The file is persisted first; processing happens asynchronously and the
// caller polls the returned upload id for the outcome.
func (h *UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		writeError(w, r, http.StatusBadRequest, "only .csv files are accepted")
		return
	}

	id := uuid.NewString()
	filename := id + ".csv"

	if err := h.saveFile(filename, file); err != nil {
		log.Error().Err(err).Str("upload_id", id).Msg("persist upload failed")
		writeError(w, r, http.StatusInternalServerError, "could not store upload")
		return
	}

	upload := &domain.PriceUpload{
		ID:         id,
		Filename:   filename,
		Status:     domain.UploadPending,
		UploadedAt: time.Now().UTC(),
	}
	if err := h.Uploads.Create(r.Context(), upload); err != nil {
		log.Error().Err(err).Str("upload_id", id).Msg("record upload failed")
		writeError(w, r, http.StatusInternalServerError, "could not record upload")
		return
	}

	if h.Wake != nil {
		h.Wake()
	}

	writeJSON(w, r, http.StatusAccepted, dto.UploadAcceptedResponse{
		UploadID: id,
		Status:   string(upload.Status),
	})
}

// Get reports the processing status of one upload.
func (h *UploadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	upload, err := h.Uploads.GetByID(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "upload not found")
		return
	}
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.UploadStatusResponse{
		UploadID:        upload.ID,
		Filename:        upload.Filename,
		Status:          string(upload.Status),
		TotalRecords:    upload.TotalRecords,
		InsertedRecords: upload.InsertedRecords,
		ErrorMessage:    upload.ErrorMessage,
		UploadedAt:      upload.UploadedAt,
		ProcessedAt:     upload.ProcessedAt,
	})
}

func (h *UploadHandler) saveFile(filename string, src io.Reader) error {
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(filepath.Join(h.Dir, filename))
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write upload file: %w", err)
	}
	return dst.Close()
}
