package probe

import (
	"github.com/heartmarshall/lexprobe/internal/domain"
	"github.com/heartmarshall/lexprobe/internal/ontology"
)

// Antonyms collects, for every lemma of anchor, the lemmas of each antonym's
// sense. The result is unbounded and ungated.
func (e *Extractor) Antonyms(anchor *ontology.Sense) []domain.Candidate {
	set := NewCandidateSet()
	for _, l := range anchor.Lemmas {
		for _, ant := range e.src.Ontology.Antonyms(l) {
			for _, sibling := range ant.Sense.Lemmas {
				e.accept(set, sibling)
			}
		}
	}
	return set.Candidates()
}
