// Package probe extracts lexical relations of a word from an ontology:
// anchor sense selection, antonyms, hypernyms, co-hyponyms and a
// single-edit spelling corruption.
package probe

import (
	"fmt"

	"github.com/heartmarshall/lexprobe/internal/domain"
	"github.com/heartmarshall/lexprobe/internal/ontology"
)

// Frequencies answers corpus counts.
type Frequencies interface {
	Count(word string) (int, bool)
}

// Vocabulary answers membership in the probed model's vocabulary.
type Vocabulary interface {
	Contains(token string) bool
}

// Sources are the read-only collaborators of an Extractor.
type Sources struct {
	Frequencies Frequencies
	Vocabulary  Vocabulary
	Ontology    ontology.Ontology
}

// Extractor derives WordRelations for corpus words. It holds no per-word
// state; its only mutable dependency is the corruptor's random source.
type Extractor struct {
	src       Sources
	policy    Policy
	corruptor *Corruptor
}

// NewExtractor creates an Extractor. A nil corruptor disables corruptions.
func NewExtractor(src Sources, policy Policy, corruptor *Corruptor) *Extractor {
	return &Extractor{src: src, policy: policy, corruptor: corruptor}
}

// WordRelations is everything extracted for one word.
type WordRelations struct {
	Entry  domain.WordEntry
	POS    domain.PartOfSpeech
	Anchor *ontology.Sense

	Antonyms    []domain.Candidate
	Hypernyms   []domain.Candidate
	Cohyponyms  []domain.Candidate
	Corruptions []domain.Candidate

	// Edit is set when a corruption was produced.
	Edit *Edit
	// Skipped holds the reason a gated relation produced nothing. Antonyms
	// are ungated and never appear here.
	Skipped map[domain.Relation]error
}

// Targets returns the candidates of rel.
func (w WordRelations) Targets(rel domain.Relation) []domain.Candidate {
	switch rel {
	case domain.RelationAntonym:
		return w.Antonyms
	case domain.RelationHypernym:
		return w.Hypernyms
	case domain.RelationCohyponym:
		return w.Cohyponyms
	case domain.RelationCorruption:
		return w.Corruptions
	}
	return nil
}

// Empty reports whether no relation produced a candidate.
func (w WordRelations) Empty() bool {
	for _, rel := range domain.Relations {
		if len(w.Targets(rel)) > 0 {
			return false
		}
	}
	return true
}

// Extract runs sense selection, the three ontology relations and the
// corruption for entry, in that order. A word without an anchor sense
// returns an error wrapping domain.ErrNoAnchorSense and draws no random
// numbers.
func (e *Extractor) Extract(entry domain.WordEntry) (WordRelations, error) {
	sel, err := e.SelectSenses(entry.Word)
	if err != nil {
		return WordRelations{}, err
	}

	out := WordRelations{
		Entry:    entry,
		POS:      sel.Anchor.POS,
		Anchor:   sel.Anchor,
		Skipped:  make(map[domain.Relation]error),
		Antonyms: e.Antonyms(sel.Anchor),
	}

	hyp, co := e.Taxonomy(sel.Expansion)
	if out.Hypernyms, err = Gate(hyp, domain.RelationHypernym, e.policy.HypernymMin, e.policy.HypernymMax); err != nil {
		out.Skipped[domain.RelationHypernym] = err
	}
	if out.Cohyponyms, err = Gate(co, domain.RelationCohyponym, e.policy.CohyponymMin, e.policy.CohyponymMax); err != nil {
		out.Skipped[domain.RelationCohyponym] = err
	}

	if e.corruptor == nil {
		out.Skipped[domain.RelationCorruption] = fmt.Errorf("corruption disabled: %w", domain.ErrCorruptionSkipped)
		return out, nil
	}
	edit, err := e.corruptor.Corrupt(entry.Word, entry.Count)
	if err != nil {
		out.Skipped[domain.RelationCorruption] = err
		return out, nil
	}
	out.Edit = &edit
	out.Corruptions = []domain.Candidate{{Name: edit.Result, POS: out.POS, Count: 0}}
	return out, nil
}

// accept adds lemma l to set if its name is a single word present in both
// the frequency index and the vocabulary.
func (e *Extractor) accept(set *CandidateSet, l *ontology.Lemma) bool {
	name := l.Name
	if !domain.IsSingleWord(name) || set.Has(name) {
		return false
	}
	count, ok := e.src.Frequencies.Count(name)
	if !ok || !e.src.Vocabulary.Contains(name) {
		return false
	}
	return set.Add(domain.Candidate{Name: name, POS: l.Sense.POS, Count: count})
}
