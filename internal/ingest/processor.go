package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/retry"
	"fuel-route-service/internal/ports"
)

const insertChunkSize = 500

// Processor drains pending price uploads in the background: parse the stored
// CSV, bulk-insert the stations, record the outcome on the upload row.
//
// Uploads are picked up either on the poll ticker or immediately via Wake
// after the HTTP handler accepts a file.
type Processor struct {
	uploads  ports.UploadRepository
	stations ports.StationIngestRepository
	backfill *Backfill
	dir      string
	interval time.Duration
	retry    retry.Config
	wake     chan struct{}
}

func NewProcessor(
	uploads ports.UploadRepository,
	stations ports.StationIngestRepository,
	backfill *Backfill,
	dir string,
	interval time.Duration,
) *Processor {
	return &Processor{
		uploads:  uploads,
		stations: stations,
		backfill: backfill,
		dir:      dir,
		interval: interval,
		retry:    retry.DefaultConfig(),
		wake:     make(chan struct{}, 1),
	}
}

// Wake nudges the processor without waiting for the next poll tick.
// Non-blocking; a pending nudge is enough.
func (p *Processor) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Run processes pending uploads until ctx is cancelled.
func (p *Processor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.wake:
		}
		p.sweep(ctx)
	}
}

func (p *Processor) sweep(ctx context.Context) {
	pending, err := p.uploads.ListPending(ctx, 10)
	if err != nil {
		log.Error().Err(err).Msg("list pending uploads failed")
		return
	}

	for _, upload := range pending {
		if ctx.Err() != nil {
			return
		}
		if err := p.Process(ctx, upload); err != nil {
			log.Error().Err(err).Str("upload_id", upload.ID).Msg("upload processing failed")
		}
	}
}

// Process runs one upload through parse and insert, marking the row
// COMPLETED or FAILED. A failure is recorded on the row and returned.
func (p *Processor) Process(ctx context.Context, upload *domain.PriceUpload) error {
	if err := p.uploads.MarkProcessing(ctx, upload.ID); err != nil {
		return fmt.Errorf("process upload %s: %w", upload.ID, err)
	}

	stations, err := p.parseFile(upload.Filename)
	if err != nil {
		p.fail(ctx, upload.ID, err)
		return err
	}

	inserted := 0
	for start := 0; start < len(stations); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(stations) {
			end = len(stations)
		}
		batch := stations[start:end]

		err := retry.Do(ctx, p.retry, func() error {
			n, ierr := p.stations.InsertBatch(ctx, batch)
			if ierr != nil {
				return ierr
			}
			inserted += n
			return nil
		})
		if err != nil {
			p.fail(ctx, upload.ID, err)
			return fmt.Errorf("process upload %s: %w", upload.ID, err)
		}
	}

	if err := p.uploads.MarkCompleted(ctx, upload.ID, len(stations), inserted); err != nil {
		return fmt.Errorf("process upload %s: mark completed: %w", upload.ID, err)
	}

	log.Info().
		Str("upload_id", upload.ID).
		Int("total", len(stations)).
		Int("inserted", inserted).
		Msg("upload processed")

	// New rows arrive without coordinates; get the backfill moving.
	if p.backfill != nil {
		p.backfill.Wake()
	}
	return nil
}

func (p *Processor) parseFile(filename string) ([]domain.Station, error) {
	f, err := os.Open(filepath.Join(p.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("open upload file: %w", err)
	}
	defer f.Close()
	return ParseStations(f)
}

func (p *Processor) fail(ctx context.Context, id string, cause error) {
	if err := p.uploads.MarkFailed(ctx, id, cause.Error()); err != nil {
		log.Error().Err(err).Str("upload_id", id).Msg("mark upload failed errored")
	}
}
