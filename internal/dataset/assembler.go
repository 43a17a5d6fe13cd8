package dataset

import (
	"context"

	"github.com/heartmarshall/lexprobe/internal/domain"
	"github.com/heartmarshall/lexprobe/internal/probe"
)

// Assembler numbers records, draws their split and writes them to a sink.
// It is not safe for concurrent use.
type Assembler struct {
	sink     Sink
	scorer   Scorer
	rng      probe.Random
	devDenom int
	nextID   int
	stats    *Stats
}

// NewAssembler creates an Assembler. A record is labelled dev with
// probability 1/devDenom. Counters are accumulated in stats when non-nil.
func NewAssembler(sink Sink, scorer Scorer, rng probe.Random, devDenom int, stats *Stats) *Assembler {
	return &Assembler{
		sink:     sink,
		scorer:   scorer,
		rng:      rng,
		devDenom: max(devDenom, 1),
		stats:    stats,
	}
}

// NextID returns the id the next record will get.
func (a *Assembler) NextID() int { return a.nextID }

// Emit writes one record per non-empty relation of w, in relation order,
// and returns how many were written. Each record draws its own split.
func (a *Assembler) Emit(ctx context.Context, w probe.WordRelations) (int, error) {
	if a.stats != nil {
		a.stats.Words++
		for rel, err := range w.Skipped {
			if err != nil {
				a.stats.countSkipped(rel)
			}
		}
	}

	word := Annotated{
		Name:  w.Entry.Word,
		POS:   w.POS,
		Score: a.scorer.Score(w.Entry.Word),
		Count: w.Entry.Count,
	}

	written := 0
	for _, rel := range domain.Relations {
		cands := w.Targets(rel)
		if len(cands) == 0 {
			continue
		}

		rec := Record{
			ID:       a.nextID,
			Split:    a.drawSplit(),
			Word:     word,
			Relation: rel,
			Targets:  make([]Annotated, len(cands)),
		}
		for i, c := range cands {
			rec.Targets[i] = Annotated{Name: c.Name, POS: c.POS, Score: a.scorer.Score(c.Name), Count: c.Count}
		}

		if err := a.sink.Write(ctx, rec); err != nil {
			return written, err
		}
		a.nextID++
		written++
		if a.stats != nil {
			a.stats.countRecord(rel)
		}
	}

	if written > 0 && a.stats != nil {
		a.stats.WordsEmitted++
	}
	return written, nil
}

func (a *Assembler) drawSplit() domain.Split {
	if a.rng.IntN(a.devDenom) == 0 {
		return domain.SplitDev
	}
	return domain.SplitTest
}
