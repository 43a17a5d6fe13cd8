// Package ontology models a lexical ontology (WordNet-style) as senses with
// ordered lemmas, hypernym edges between senses and antonym edges between
// lemmas, and exposes the traversal primitives relation extraction needs.
package ontology

import "github.com/heartmarshall/lexprobe/internal/domain"

// Ontology is the capability surface relation extraction depends on.
// Implementations must be safe for concurrent reads.
type Ontology interface {
	// SensesFor returns the candidate senses of word in enumeration order.
	SensesFor(word string) []*Sense
	// HypernymPaths returns every path from a root to s; s is the last element.
	HypernymPaths(s *Sense) [][]*Sense
	// HyponymClosure returns the senses reachable from s through hyponym edges
	// within depth levels (s excluded). depth <= 0 means unbounded.
	HyponymClosure(s *Sense, depth int) []*Sense
	// Antonyms returns the antonym lemmas of l.
	Antonyms(l *Lemma) []*Lemma
}

// Sense is a synset: one meaning shared by its lemmas.
type Sense struct {
	ID     string
	POS    domain.PartOfSpeech
	Lemmas []*Lemma

	hypernyms []*Sense
	hyponyms  []*Sense
}

// Hypernyms returns the direct hypernyms of s in edge insertion order.
func (s *Sense) Hypernyms() []*Sense { return s.hypernyms }

// Hyponyms returns the direct hyponyms of s in edge insertion order.
func (s *Sense) Hyponyms() []*Sense { return s.hyponyms }

// LemmaNames returns the surface forms of the lemmas of s.
func (s *Sense) LemmaNames() []string {
	names := make([]string, len(s.Lemmas))
	for i, l := range s.Lemmas {
		names[i] = l.Name
	}
	return names
}

func (s *Sense) String() string { return s.ID }

// Lemma is one surface form of a sense. The same name may appear in many
// senses; identity is the (sense, name) pair.
type Lemma struct {
	Name  string
	Sense *Sense

	antonyms []*Lemma
}

func (l *Lemma) String() string { return l.Sense.ID + "." + l.Name }
