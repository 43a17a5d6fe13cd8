package dataset

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// Sink receives records in id order. Close is called once after the last
// record.
type Sink interface {
	Write(ctx context.Context, r Record) error
	Close(ctx context.Context) error
}

// TSVSink writes one FormatLine per record.
type TSVSink struct {
	w      *bufio.Writer
	closer io.Closer
	lines  int
}

// CreateTSV creates (or truncates) the file at path.
func CreateTSV(path string) (*TSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return &TSVSink{w: bufio.NewWriter(f), closer: f}, nil
}

// NewTSVWriter writes to w. Close flushes but does not close w.
func NewTSVWriter(w io.Writer) *TSVSink {
	return &TSVSink{w: bufio.NewWriter(w)}
}

// Write implements Sink.
func (s *TSVSink) Write(_ context.Context, r Record) error {
	if _, err := s.w.WriteString(FormatLine(r)); err != nil {
		return fmt.Errorf("write record %d: %w", r.ID, err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write record %d: %w", r.ID, err)
	}
	s.lines++
	return nil
}

// Lines returns the number of records written.
func (s *TSVSink) Lines() int { return s.lines }

// Close implements Sink.
func (s *TSVSink) Close(_ context.Context) error {
	err := s.w.Flush()
	if s.closer != nil {
		err = errors.Join(err, s.closer.Close())
	}
	if err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

// MultiSink fans records out to every sink in order.
type MultiSink []Sink

// Write implements Sink. It stops at the first failing sink.
func (m MultiSink) Write(ctx context.Context, r Record) error {
	for _, s := range m {
		if err := s.Write(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// Close implements Sink. Every sink is closed even if some fail.
func (m MultiSink) Close(ctx context.Context) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.Close(ctx))
	}
	return errors.Join(errs...)
}

// CountingSink discards records and counts them. Dry runs use it.
type CountingSink struct {
	Records int
}

// Write implements Sink.
func (c *CountingSink) Write(context.Context, Record) error {
	c.Records++
	return nil
}

// Close implements Sink.
func (c *CountingSink) Close(context.Context) error { return nil }
