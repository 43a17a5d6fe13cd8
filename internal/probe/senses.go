package probe

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/heartmarshall/lexprobe/internal/domain"
	"github.com/heartmarshall/lexprobe/internal/ontology"
)

// ScoredSense is a sense with its aggregate lemma frequency.
type ScoredSense struct {
	Sense *ontology.Sense
	Score int
}

// Selection is the outcome of sense selection for one word.
type Selection struct {
	// Anchor is the lowest-scored qualifying sense.
	Anchor *ontology.Sense
	// Expansion holds the lowest-scored senses, Anchor first.
	Expansion []*ontology.Sense
	// Ranked holds every qualifying sense in ascending score order.
	Ranked []ScoredSense
}

// SelectSenses ranks the noun and adjective senses of word by the summed
// corpus counts of their single-word lemmas. Senses scoring zero are
// dropped. Equal scores keep ontology order.
func (e *Extractor) SelectSenses(word string) (Selection, error) {
	var ranked []ScoredSense
	for _, s := range e.src.Ontology.SensesFor(word) {
		if !s.POS.Anchorable() {
			continue
		}
		if score := e.senseScore(s); score > 0 {
			ranked = append(ranked, ScoredSense{Sense: s, Score: score})
		}
	}
	if len(ranked) == 0 {
		return Selection{}, fmt.Errorf("%q: %w", word, domain.ErrNoAnchorSense)
	}

	slices.SortStableFunc(ranked, func(a, b ScoredSense) int {
		return cmp.Compare(a.Score, b.Score)
	})

	n := min(max(e.policy.ExpansionSenses, 1), len(ranked))
	expansion := make([]*ontology.Sense, n)
	for i := range expansion {
		expansion[i] = ranked[i].Sense
	}

	return Selection{
		Anchor:    ranked[0].Sense,
		Expansion: expansion,
		Ranked:    ranked,
	}, nil
}

func (e *Extractor) senseScore(s *ontology.Sense) int {
	score := 0
	for _, l := range s.Lemmas {
		if !domain.IsSingleWord(l.Name) {
			continue
		}
		if count, ok := e.src.Frequencies.Count(l.Name); ok {
			score += count
		}
	}
	return score
}
