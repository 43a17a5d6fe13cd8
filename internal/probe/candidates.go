package probe

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/heartmarshall/lexprobe/internal/domain"
)

// CandidateSet collects relation candidates in insertion order, unique by
// surface name.
type CandidateSet struct {
	items []domain.Candidate
	seen  map[string]struct{}
}

// NewCandidateSet returns an empty set.
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{seen: make(map[string]struct{})}
}

// Add appends c unless a candidate with the same name is present.
func (s *CandidateSet) Add(c domain.Candidate) bool {
	if _, ok := s.seen[c.Name]; ok {
		return false
	}
	s.seen[c.Name] = struct{}{}
	s.items = append(s.items, c)
	return true
}

// Has reports whether name was accepted.
func (s *CandidateSet) Has(name string) bool {
	_, ok := s.seen[name]
	return ok
}

// Len returns the number of accepted candidates.
func (s *CandidateSet) Len() int { return len(s.items) }

// Candidates returns the accepted candidates in insertion order.
func (s *CandidateSet) Candidates() []domain.Candidate {
	return slices.Clone(s.items)
}

// Ranked returns the candidates sorted by count, highest first, keeping
// insertion order among equal counts, truncated to limit (limit <= 0 keeps
// all).
func (s *CandidateSet) Ranked(limit int) []domain.Candidate {
	out := slices.Clone(s.items)
	slices.SortStableFunc(out, func(a, b domain.Candidate) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Gate applies the size gate of a relation: fewer than minSize candidates
// discards the set with ErrBelowMinimum, otherwise the top maxSize are kept.
func Gate(s *CandidateSet, rel domain.Relation, minSize, maxSize int) ([]domain.Candidate, error) {
	if s.Len() < minSize {
		return nil, fmt.Errorf("%s: %d of %d candidates: %w", rel, s.Len(), minSize, domain.ErrBelowMinimum)
	}
	return s.Ranked(maxSize), nil
}
