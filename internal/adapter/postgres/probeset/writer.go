package probeset

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexprobe/internal/dataset"
)

// RecordStore is the part of Repo a Writer needs.
type RecordStore interface {
	StartRun(ctx context.Context, run *dataset.Run) error
	InsertRecords(ctx context.Context, runID uuid.UUID, records []dataset.Record) (int, error)
	FinishRun(ctx context.Context, run *dataset.Run) error
}

var _ dataset.Sink = (*Writer)(nil)

// Writer is a dataset.Sink that stores the records of one run in batches.
type Writer struct {
	store     RecordStore
	run       *dataset.Run
	batchSize int
	buf       []dataset.Record
	inserted  int
}

// Open registers run with store and returns a Writer for its records.
func Open(ctx context.Context, store RecordStore, run *dataset.Run, batchSize int) (*Writer, error) {
	if err := store.StartRun(ctx, run); err != nil {
		return nil, fmt.Errorf("start run: %w", err)
	}
	batchSize = max(batchSize, 1)
	return &Writer{
		store:     store,
		run:       run,
		batchSize: batchSize,
		buf:       make([]dataset.Record, 0, batchSize),
	}, nil
}

// Write implements dataset.Sink.
func (w *Writer) Write(ctx context.Context, r dataset.Record) error {
	w.buf = append(w.buf, r)
	if len(w.buf) >= w.batchSize {
		return w.Flush(ctx)
	}
	return nil
}

// Flush stores the buffered records.
func (w *Writer) Flush(ctx context.Context) error {
	if len(w.buf) == 0 {
		return nil
	}
	n, err := w.store.InsertRecords(ctx, w.run.ID, w.buf)
	if err != nil {
		return fmt.Errorf("flush %d records: %w", len(w.buf), err)
	}
	w.inserted += n
	w.buf = w.buf[:0]
	return nil
}

// Inserted returns the number of rows stored so far.
func (w *Writer) Inserted() int { return w.inserted }

// Close implements dataset.Sink: it flushes and records the run's end time
// and stats.
func (w *Writer) Close(ctx context.Context) error {
	if err := w.Flush(ctx); err != nil {
		return err
	}
	if w.run.FinishedAt.IsZero() {
		w.run.Finish()
	}
	if err := w.store.FinishRun(ctx, w.run); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}
