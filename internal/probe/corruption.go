package probe

import (
	"fmt"

	"github.com/heartmarshall/lexprobe/internal/domain"
)

// EditOp is a single-edit corruption operation.
type EditOp string

const (
	EditInsertion EditOp = "insertion"
	EditDeletion  EditOp = "deletion"
	EditSwap      EditOp = "swap"
)

var editOps = []EditOp{EditInsertion, EditDeletion, EditSwap}

// Edit describes one corruption. Pos is a rune offset; Rune is set for
// insertions only.
type Edit struct {
	Op     EditOp
	Pos    int
	Rune   rune
	Result string
}

// Corruptor produces misspelled variants of frequent in-vocabulary words.
type Corruptor struct {
	rng      Random
	alphabet []rune
	minCount int
	vocab    Vocabulary
}

// NewCorruptor creates a Corruptor. alphabet holds the characters insertions
// draw from.
func NewCorruptor(rng Random, alphabet string, minCount int, vocab Vocabulary) *Corruptor {
	return &Corruptor{
		rng:      rng,
		alphabet: []rune(alphabet),
		minCount: minCount,
		vocab:    vocab,
	}
}

// Corrupt applies one random edit to word. Nothing is drawn when the word
// fails the count or vocabulary gate. A drawn operation whose length
// precondition fails is not retried. Every returned error wraps
// domain.ErrCorruptionSkipped.
func (c *Corruptor) Corrupt(word string, count int) (Edit, error) {
	if count < c.minCount {
		return Edit{}, fmt.Errorf("count %d below %d: %w", count, c.minCount, domain.ErrCorruptionSkipped)
	}
	if !c.vocab.Contains(word) {
		return Edit{}, fmt.Errorf("%q not in vocabulary: %w", word, domain.ErrCorruptionSkipped)
	}

	runes := []rune(word)
	n := len(runes)
	op := editOps[c.rng.IntN(len(editOps))]

	switch op {
	case EditInsertion:
		if len(c.alphabet) == 0 {
			return Edit{}, fmt.Errorf("insertion: empty alphabet: %w", domain.ErrCorruptionSkipped)
		}
		pos := c.rng.IntN(n + 1)
		r := c.alphabet[c.rng.IntN(len(c.alphabet))]
		out := make([]rune, 0, n+1)
		out = append(out, runes[:pos]...)
		out = append(out, r)
		out = append(out, runes[pos:]...)
		return Edit{Op: op, Pos: pos, Rune: r, Result: string(out)}, nil

	case EditDeletion:
		if n < 2 {
			return Edit{}, fmt.Errorf("deletion of %q: too short: %w", word, domain.ErrCorruptionSkipped)
		}
		pos := c.rng.IntN(n)
		out := make([]rune, 0, n-1)
		out = append(out, runes[:pos]...)
		out = append(out, runes[pos+1:]...)
		return Edit{Op: op, Pos: pos, Result: string(out)}, nil

	default:
		if n < 2 {
			return Edit{}, fmt.Errorf("swap of %q: too short: %w", word, domain.ErrCorruptionSkipped)
		}
		pos := c.rng.IntN(n - 1)
		if runes[pos] == runes[pos+1] {
			return Edit{}, fmt.Errorf("swap of %q at %d: identical runes: %w", word, pos, domain.ErrCorruptionSkipped)
		}
		out := []rune(word)
		out[pos], out[pos+1] = out[pos+1], out[pos]
		return Edit{Op: op, Pos: pos, Result: string(out)}, nil
	}
}
