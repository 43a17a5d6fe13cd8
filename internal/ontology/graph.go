package ontology

import (
	"fmt"

	"github.com/heartmarshall/lexprobe/internal/domain"
)

var _ Ontology = (*Graph)(nil)

// Graph is an in-memory Ontology. Build it once with the Add* methods, then
// share it read-only.
type Graph struct {
	senses map[string]*Sense
	order  []*Sense
	byName map[string][]*Sense
	stats  Stats
}

// Stats holds graph size counters for logging.
type Stats struct {
	Senses        int
	Lemmas        int
	HypernymLinks int
	AntonymLinks  int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		senses: make(map[string]*Sense),
		byName: make(map[string][]*Sense),
	}
}

// Stats returns size counters.
func (g *Graph) Stats() Stats { return g.stats }

// Sense returns the sense with the given id.
func (g *Graph) Sense(id string) (*Sense, bool) {
	s, ok := g.senses[id]
	return s, ok
}

// Senses returns all senses in insertion order.
func (g *Graph) Senses() []*Sense { return g.order }

// AddSense registers a new sense.
func (g *Graph) AddSense(id string, pos domain.PartOfSpeech) (*Sense, error) {
	if id == "" {
		return nil, fmt.Errorf("add sense: empty id: %w", domain.ErrValidation)
	}
	if _, ok := g.senses[id]; ok {
		return nil, fmt.Errorf("add sense %s: %w", id, domain.ErrAlreadyExists)
	}
	s := &Sense{ID: id, POS: pos}
	g.senses[id] = s
	g.order = append(g.order, s)
	g.stats.Senses++
	return s, nil
}

// AddLemma appends name to the lemmas of sense id. Adding the same name twice
// returns the existing lemma.
func (g *Graph) AddLemma(senseID, name string) (*Lemma, error) {
	s, ok := g.senses[senseID]
	if !ok {
		return nil, fmt.Errorf("add lemma %q: sense %s: %w", name, senseID, domain.ErrNotFound)
	}
	name = domain.NormalizeWord(name)
	if name == "" {
		return nil, fmt.Errorf("add lemma to %s: empty name: %w", senseID, domain.ErrValidation)
	}
	if l := findLemma(s, name); l != nil {
		return l, nil
	}
	l := &Lemma{Name: name, Sense: s}
	s.Lemmas = append(s.Lemmas, l)
	g.byName[name] = append(g.byName[name], s)
	g.stats.Lemmas++
	return l, nil
}

// Lemma returns the lemma name of sense id.
func (g *Graph) Lemma(senseID, name string) (*Lemma, bool) {
	s, ok := g.senses[senseID]
	if !ok {
		return nil, false
	}
	l := findLemma(s, domain.NormalizeWord(name))
	return l, l != nil
}

func findLemma(s *Sense, name string) *Lemma {
	for _, l := range s.Lemmas {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// AddHypernym links child to its more general parent (and parent to child as
// hyponym). Duplicate links are ignored.
func (g *Graph) AddHypernym(childID, parentID string) error {
	if childID == parentID {
		return fmt.Errorf("hypernym %s: self link: %w", childID, domain.ErrValidation)
	}
	child, ok := g.senses[childID]
	if !ok {
		return fmt.Errorf("hypernym: child %s: %w", childID, domain.ErrNotFound)
	}
	parent, ok := g.senses[parentID]
	if !ok {
		return fmt.Errorf("hypernym: parent %s: %w", parentID, domain.ErrNotFound)
	}
	for _, h := range child.hypernyms {
		if h == parent {
			return nil
		}
	}
	child.hypernyms = append(child.hypernyms, parent)
	parent.hyponyms = append(parent.hyponyms, child)
	g.stats.HypernymLinks++
	return nil
}

// AddAntonym records to as an antonym of from. The link is directed, like
// WordNet sense relations; callers add the reverse link when the source
// data does.
func (g *Graph) AddAntonym(from, to *Lemma) error {
	if from == nil || to == nil {
		return fmt.Errorf("antonym: nil lemma: %w", domain.ErrValidation)
	}
	for _, a := range from.antonyms {
		if a == to {
			return nil
		}
	}
	from.antonyms = append(from.antonyms, to)
	g.stats.AntonymLinks++
	return nil
}

// SensesFor returns the senses having a lemma named word, in the order the
// lemmas were added.
func (g *Graph) SensesFor(word string) []*Sense {
	return g.byName[domain.NormalizeWord(word)]
}

// HypernymPaths implements Ontology.
func (g *Graph) HypernymPaths(s *Sense) [][]*Sense {
	return Paths(s, (*Sense).Hypernyms)
}

// HyponymClosure implements Ontology.
func (g *Graph) HyponymClosure(s *Sense, depth int) []*Sense {
	return Closure(s, (*Sense).Hyponyms, depth)
}

// Antonyms implements Ontology.
func (g *Graph) Antonyms(l *Lemma) []*Lemma {
	return l.antonyms
}
