package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexprobe/internal/domain"
	"github.com/heartmarshall/lexprobe/internal/ontology"
)

func TestSelectSenses_AnchorIsLowestScore(t *testing.T) {
	t.Parallel()

	g := ontology.NewGraph()
	// Scores: n.01 500, n.02 305, n.03 350; verb and satellite senses never anchor.
	sense(t, g, "zamek.n.01", domain.PartOfSpeechNoun, "zamek", "twierdza")
	sense(t, g, "zamek.n.02", domain.PartOfSpeechNoun, "zamek", "zatrzask")
	sense(t, g, "zamek.n.03", domain.PartOfSpeechNoun, "zamek", "suwak")
	sense(t, g, "zamek.v.01", domain.PartOfSpeechVerb, "zamek")
	sense(t, g, "zamek.s.01", domain.PartOfSpeechSatellite, "zamek")
	freq := freqMap{"zamek": 300, "twierdza": 200, "zatrzask": 5, "suwak": 50}

	e := NewExtractor(Sources{Frequencies: freq, Vocabulary: vocabOf(), Ontology: g}, DefaultPolicy(), nil)
	sel, err := e.SelectSenses("zamek")
	require.NoError(t, err)

	assert.Equal(t, "zamek.n.02", sel.Anchor.ID)
	require.Len(t, sel.Expansion, 2)
	assert.Equal(t, "zamek.n.02", sel.Expansion[0].ID)
	assert.Equal(t, "zamek.n.03", sel.Expansion[1].ID)

	require.Len(t, sel.Ranked, 3)
	for i := 1; i < len(sel.Ranked); i++ {
		assert.LessOrEqual(t, sel.Ranked[i-1].Score, sel.Ranked[i].Score)
	}
	assert.Equal(t, sel.Anchor, sel.Ranked[0].Sense)
	assert.Equal(t, 305, sel.Ranked[0].Score)
}

func TestSelectSenses_TiesKeepOntologyOrder(t *testing.T) {
	t.Parallel()

	g := ontology.NewGraph()
	sense(t, g, "b.n.01", domain.PartOfSpeechAdjective, "dobry")
	sense(t, g, "a.n.01", domain.PartOfSpeechNoun, "dobry")
	freq := freqMap{"dobry": 10}

	e := NewExtractor(Sources{Frequencies: freq, Vocabulary: vocabOf(), Ontology: g}, DefaultPolicy(), nil)
	sel, err := e.SelectSenses("dobry")
	require.NoError(t, err)
	assert.Equal(t, "b.n.01", sel.Anchor.ID)
}

func TestSelectSenses_ScoreIgnoresMultiWordAndUnknownLemmas(t *testing.T) {
	t.Parallel()

	g := ontology.NewGraph()
	sense(t, g, "hotdog.n.01", domain.PartOfSpeechNoun, "parówka", "gorący_pies", "hot dog", "hotdożek")
	freq := freqMap{"parówka": 7, "gorący_pies": 1000, "hot dog": 1000}

	e := NewExtractor(Sources{Frequencies: freq, Vocabulary: vocabOf(), Ontology: g}, DefaultPolicy(), nil)
	sel, err := e.SelectSenses("parówka")
	require.NoError(t, err)
	assert.Equal(t, 7, sel.Ranked[0].Score)
}

func TestSelectSenses_NoAnchor(t *testing.T) {
	t.Parallel()

	g := ontology.NewGraph()
	sense(t, g, "biec.v.01", domain.PartOfSpeechVerb, "biec")
	sense(t, g, "rzadki.n.01", domain.PartOfSpeechNoun, "rzadki", "unikat")
	freq := freqMap{"biec": 100}

	e := NewExtractor(Sources{Frequencies: freq, Vocabulary: vocabOf(), Ontology: g}, DefaultPolicy(), nil)

	tests := []struct {
		name string
		word string
	}{
		{"unknown word", "Warszawa"},
		{"only verb senses", "biec"},
		{"zero aggregate frequency", "rzadki"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := e.SelectSenses(tt.word)
			assert.ErrorIs(t, err, domain.ErrNoAnchorSense)
		})
	}
}

func TestSelectSenses_SingleSenseExpansion(t *testing.T) {
	t.Parallel()

	g := ontology.NewGraph()
	sense(t, g, "kot.n.01", domain.PartOfSpeechNoun, "kot")
	freq := freqMap{"kot": 500}

	e := NewExtractor(Sources{Frequencies: freq, Vocabulary: vocabOf(), Ontology: g}, DefaultPolicy(), nil)
	sel, err := e.SelectSenses("kot")
	require.NoError(t, err)
	assert.Len(t, sel.Expansion, 1)
}
