package probe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexprobe/internal/domain"
	"github.com/heartmarshall/lexprobe/internal/ontology"
)

type freqMap map[string]int

func (f freqMap) Count(word string) (int, bool) {
	c, ok := f[word]
	return c, ok
}

type vocabSet map[string]bool

func (v vocabSet) Contains(token string) bool { return v[token] }

func vocabOf(words ...string) vocabSet {
	v := vocabSet{}
	for _, w := range words {
		v[w] = true
	}
	return v
}

// scriptedRandom returns pre-recorded draws and fails the test on any
// unexpected or out-of-range draw.
type scriptedRandom struct {
	t     *testing.T
	vals  []int
	calls int
}

func script(t *testing.T, vals ...int) *scriptedRandom {
	return &scriptedRandom{t: t, vals: vals}
}

func (r *scriptedRandom) IntN(n int) int {
	r.t.Helper()
	if r.calls >= len(r.vals) {
		r.t.Fatalf("unexpected draw #%d (n=%d)", r.calls, n)
	}
	v := r.vals[r.calls]
	r.calls++
	if v < 0 || v >= n {
		r.t.Fatalf("scripted value %d outside [0,%d)", v, n)
	}
	return v
}

// sense adds a sense with the given lemmas to g.
func sense(t *testing.T, g *ontology.Graph, id string, pos domain.PartOfSpeech, lemmas ...string) *ontology.Sense {
	t.Helper()
	s, err := g.AddSense(id, pos)
	require.NoError(t, err)
	for _, name := range lemmas {
		_, err := g.AddLemma(id, name)
		require.NoError(t, err)
	}
	return s
}

func hypernym(t *testing.T, g *ontology.Graph, child, parent string) {
	t.Helper()
	require.NoError(t, g.AddHypernym(child, parent))
}

func antonym(t *testing.T, g *ontology.Graph, fromSense, fromName, toSense, toName string) {
	t.Helper()
	from, ok := g.Lemma(fromSense, fromName)
	require.True(t, ok)
	to, ok := g.Lemma(toSense, toName)
	require.True(t, ok)
	require.NoError(t, g.AddAntonym(from, to))
}

func names(cands []domain.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Name
	}
	return out
}
