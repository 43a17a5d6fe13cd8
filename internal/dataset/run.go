package dataset

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexprobe/internal/domain"
)

// Run identifies one dataset build.
type Run struct {
	ID         uuid.UUID
	Seed       int64
	StartedAt  time.Time
	FinishedAt time.Time
	Stats      Stats
}

// NewRun starts a run with a fresh id.
func NewRun(seed int64) *Run {
	return &Run{
		ID:        uuid.New(),
		Seed:      seed,
		StartedAt: time.Now().UTC(),
		Stats:     NewStats(),
	}
}

// Finish stamps the end time.
func (r *Run) Finish() {
	r.FinishedAt = time.Now().UTC()
}

// Stats counts words and records of a run.
type Stats struct {
	Words        int                     `json:"words"`
	WordsEmitted int                     `json:"words_emitted"`
	NoAnchor     int                     `json:"no_anchor"`
	Records      map[domain.Relation]int `json:"records"`
	Skipped      map[domain.Relation]int `json:"skipped"`
}

// NewStats returns zeroed stats.
func NewStats() Stats {
	return Stats{
		Records: make(map[domain.Relation]int),
		Skipped: make(map[domain.Relation]int),
	}
}

// ObserveSkip counts a word dropped before extraction finished.
func (s *Stats) ObserveSkip(err error) {
	s.Words++
	if errors.Is(err, domain.ErrNoAnchorSense) {
		s.NoAnchor++
	}
}

func (s *Stats) countRecord(rel domain.Relation) {
	if s.Records == nil {
		s.Records = make(map[domain.Relation]int)
	}
	s.Records[rel]++
}

func (s *Stats) countSkipped(rel domain.Relation) {
	if s.Skipped == nil {
		s.Skipped = make(map[domain.Relation]int)
	}
	s.Skipped[rel]++
}

// TotalRecords sums records over all relations.
func (s *Stats) TotalRecords() int {
	total := 0
	for _, n := range s.Records {
		total += n
	}
	return total
}
