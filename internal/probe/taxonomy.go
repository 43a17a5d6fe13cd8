package probe

import (
	"slices"

	"github.com/heartmarshall/lexprobe/internal/ontology"
)

// HypernymWindow returns the positions of a root-first path that qualify as
// hypernyms: at least HypernymMinDepth positions below the root and among
// the HypernymWindow positions directly above the leaf. Short paths yield a
// shorter or empty window.
func HypernymWindow(path []*ontology.Sense, p Policy) []*ontology.Sense {
	return tailRange(belowDepth(path, p.HypernymMinDepth), p.HypernymWindow+1, 1)
}

// NearWindow returns the most general position of a full hypernym window.
// Senses in it contribute hypernyms but no co-hyponyms.
func NearWindow(path []*ontology.Sense, p Policy) []*ontology.Sense {
	return tailRange(belowDepth(path, p.HypernymMinDepth), p.HypernymWindow+1, p.HypernymWindow)
}

func belowDepth(path []*ontology.Sense, depth int) []*ontology.Sense {
	if depth >= len(path) {
		return nil
	}
	return path[max(depth, 0):]
}

// tailRange returns s[len-from : len-to], clamping both ends at zero.
func tailRange(s []*ontology.Sense, from, to int) []*ontology.Sense {
	lo := max(len(s)-from, 0)
	hi := max(len(s)-to, 0)
	if lo >= hi {
		return nil
	}
	return s[lo:hi]
}

// Taxonomy walks every hypernym path of the expansion senses. Lemmas of
// window senses become hypernym candidates; lemmas of the hyponym closure of
// window senses outside the near window become co-hyponym candidates. The
// sets are returned ungated.
func (e *Extractor) Taxonomy(expansion []*ontology.Sense) (hypernyms, cohyponyms *CandidateSet) {
	hypernyms, cohyponyms = NewCandidateSet(), NewCandidateSet()

	for _, s := range expansion {
		for _, path := range e.src.Ontology.HypernymPaths(s) {
			near := NearWindow(path, e.policy)
			for _, hyp := range HypernymWindow(path, e.policy) {
				for _, l := range hyp.Lemmas {
					e.accept(hypernyms, l)
				}
				if slices.Contains(near, hyp) {
					continue
				}
				for _, d := range e.src.Ontology.HyponymClosure(hyp, e.policy.ClosureDepth) {
					for _, l := range d.Lemmas {
						e.accept(cohyponyms, l)
					}
				}
			}
		}
	}
	return hypernyms, cohyponyms
}
