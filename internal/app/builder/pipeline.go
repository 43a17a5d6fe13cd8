// Package builder runs the dataset build: it loads the corpus counts, the
// model vocabulary and the ontology, then extracts relations for every corpus
// word and streams the records to a sink.
package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/lexprobe/internal/config"
	"github.com/heartmarshall/lexprobe/internal/dataset"
	"github.com/heartmarshall/lexprobe/internal/domain"
	"github.com/heartmarshall/lexprobe/internal/lexicon/frequency"
	"github.com/heartmarshall/lexprobe/internal/lexicon/vocab"
	"github.com/heartmarshall/lexprobe/internal/ontology"
	"github.com/heartmarshall/lexprobe/internal/ontology/lmf"
	"github.com/heartmarshall/lexprobe/internal/probe"
	"github.com/heartmarshall/lexprobe/pkg/ctxutil"
)

// Phase names in execution order.
const (
	PhaseFrequency  = "frequency"
	PhaseVocabulary = "vocabulary"
	PhaseOntology   = "ontology"
	PhaseGenerate   = "generate"
)

var allPhases = []string{PhaseFrequency, PhaseVocabulary, PhaseOntology, PhaseGenerate}

// progressEvery is how often (in words) the generate phase logs progress.
const progressEvery = 10000

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Loaded   int
	Emitted  int
	Skipped  int
	Duration time.Duration
	Err      error
}

// SinkFactory opens the record sink of a run. The pipeline closes it.
type SinkFactory func(ctx context.Context, run *dataset.Run) (dataset.Sink, error)

// Pipeline orchestrates the four build phases. Every phase depends on the
// previous ones, so the first failure stops the run.
type Pipeline struct {
	log      *slog.Logger
	cfg      config.Config
	openSink SinkFactory
	results  map[string]PhaseResult

	freq   *frequency.Index
	scorer dataset.Scorer
	vocab  *vocab.Vocabulary
	onto   ontology.Ontology
	run    *dataset.Run
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, cfg config.Config, openSink SinkFactory) *Pipeline {
	return &Pipeline{
		log:      log,
		cfg:      cfg,
		openSink: openSink,
		results:  make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase failed.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// LastRun returns the run created by the generate phase, or nil if the
// pipeline never got there.
func (p *Pipeline) LastRun() *dataset.Run {
	return p.run
}

// Run executes all phases in order.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, phase := range allPhases {
		start := time.Now()
		phaseCtx := ctxutil.WithPhase(ctx, phase)
		p.log.InfoContext(phaseCtx, "starting phase")

		var result PhaseResult
		switch phase {
		case PhaseFrequency:
			result = p.runFrequency(phaseCtx)
		case PhaseVocabulary:
			result = p.runVocabulary()
		case PhaseOntology:
			result = p.runOntology(phaseCtx)
		case PhaseGenerate:
			result = p.runGenerate(phaseCtx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.ErrorContext(phaseCtx, "phase failed",
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			return fmt.Errorf("phase %s: %w", phase, result.Err)
		}
		p.log.InfoContext(phaseCtx, "phase completed",
			slog.Int("loaded", result.Loaded),
			slog.Int("emitted", result.Emitted),
			slog.Int("skipped", result.Skipped),
			slog.Duration("duration", result.Duration),
		)
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(allPhases)))
	return nil
}

// runFrequency loads the corpus counts and the score source.
func (p *Pipeline) runFrequency(ctx context.Context) PhaseResult {
	src := p.cfg.Sources

	ix, err := frequency.Load(src.FrequencyPath)
	if err != nil {
		return PhaseResult{Err: err}
	}
	p.freq = ix

	if src.ZipfPath != "" {
		table, err := dataset.LoadZipfTable(src.ZipfPath)
		if err != nil {
			return PhaseResult{Err: err}
		}
		p.scorer = table
		p.log.InfoContext(ctx, "zipf table loaded", slog.Int("words", len(table)))
	} else {
		p.scorer = dataset.NewCorpusZipf(ix)
		p.log.InfoContext(ctx, "no zipf table configured, scoring from corpus counts")
	}

	return PhaseResult{Loaded: ix.Len()}
}

// runVocabulary loads the probed model's vocabulary.
func (p *Pipeline) runVocabulary() PhaseResult {
	src := p.cfg.Sources

	v, err := vocab.Load(vocab.Format(src.VocabularyFormat), src.VocabularyPath, src.VocabularyStripSuffix)
	if err != nil {
		return PhaseResult{Err: err}
	}
	p.vocab = v
	return PhaseResult{Loaded: v.Len()}
}

// runOntology loads the wordnet.
func (p *Pipeline) runOntology(ctx context.Context) PhaseResult {
	src := p.cfg.Sources

	g, stats, err := lmf.Load(src.OntologyPath, src.OntologyLang)
	if err != nil {
		return PhaseResult{Err: err}
	}
	p.onto = g

	gs := g.Stats()
	p.log.InfoContext(ctx, "ontology parsed",
		slog.Int("lexicons", stats.Lexicons),
		slog.Int("entries", stats.Entries),
		slog.Int("synsets", stats.Synsets),
		slog.Int("hypernym_links", gs.HypernymLinks),
		slog.Int("antonym_links", gs.AntonymLinks),
	)
	if stats.Lexicons == 0 {
		return PhaseResult{Err: fmt.Errorf("no lexicon for language %q in %s", src.OntologyLang, src.OntologyPath)}
	}
	return PhaseResult{Loaded: gs.Senses, Skipped: stats.SkippedLexicons + stats.DanglingRelations}
}

// runGenerate extracts relations word by word in corpus order.
func (p *Pipeline) runGenerate(ctx context.Context) PhaseResult {
	gen := p.cfg.Generation

	run := dataset.NewRun(gen.Seed)
	p.run = run
	ctx = ctxutil.WithRunID(ctx, run.ID)

	sink, err := p.openSink(ctx, run)
	if err != nil {
		return PhaseResult{Err: fmt.Errorf("open sink: %w", err)}
	}

	corruptor := probe.NewCorruptor(
		probe.NewRandom(gen.Seed, probe.StreamCorruption),
		gen.Alphabet, gen.CorruptionMinCount, p.vocab,
	)
	extractor := probe.NewExtractor(probe.Sources{
		Frequencies: p.freq,
		Vocabulary:  p.vocab,
		Ontology:    p.onto,
	}, PolicyFrom(gen), corruptor)
	assembler := dataset.NewAssembler(sink, p.scorer,
		probe.NewRandom(gen.Seed, probe.StreamSplit), gen.DevRatioDenominator, &run.Stats)

	entries := p.freq.Entries()
	if gen.Limit > 0 && gen.Limit < len(entries) {
		entries = entries[:gen.Limit]
	}

	p.log.InfoContext(ctx, "generating",
		slog.Int64("seed", gen.Seed),
		slog.Int("words", len(entries)),
	)

	var result PhaseResult
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			closeErr := sink.Close(context.WithoutCancel(ctx))
			return PhaseResult{Err: errors.Join(
				fmt.Errorf("interrupted after %d words: %w", i, err), closeErr)}
		}

		rels, err := extractor.Extract(entry)
		if err != nil {
			if !domain.IsSkip(err) {
				closeErr := sink.Close(context.WithoutCancel(ctx))
				return PhaseResult{Err: errors.Join(fmt.Errorf("extract %q: %w", entry.Word, err), closeErr)}
			}
			run.Stats.ObserveSkip(err)
			result.Skipped++
			continue
		}

		n, err := assembler.Emit(ctx, rels)
		if err != nil {
			closeErr := sink.Close(context.WithoutCancel(ctx))
			return PhaseResult{Err: errors.Join(fmt.Errorf("emit %q: %w", entry.Word, err), closeErr)}
		}
		result.Emitted += n
		if n == 0 {
			result.Skipped++
		}

		if (i+1)%progressEvery == 0 {
			p.log.DebugContext(ctx, "generate progress",
				slog.Int("words", i+1),
				slog.Int("records", assembler.NextID()),
			)
		}
	}

	run.Finish()
	if err := sink.Close(ctx); err != nil {
		return PhaseResult{Err: fmt.Errorf("close sink: %w", err)}
	}

	p.log.InfoContext(ctx, "run stats",
		slog.Int("words", run.Stats.Words),
		slog.Int("words_emitted", run.Stats.WordsEmitted),
		slog.Int("no_anchor", run.Stats.NoAnchor),
		slog.Any("records", run.Stats.Records),
		slog.Any("skipped", run.Stats.Skipped),
	)

	result.Loaded = len(entries)
	return result
}

// PolicyFrom maps generation settings to an extraction policy.
func PolicyFrom(gen config.GenerationConfig) probe.Policy {
	return probe.Policy{
		HypernymMinDepth:   gen.HypernymMinDepth,
		HypernymWindow:     gen.HypernymWindow,
		ClosureDepth:       gen.ClosureDepth,
		HypernymMin:        gen.HypernymMin,
		HypernymMax:        gen.HypernymMax,
		CohyponymMin:       gen.CohyponymMin,
		CohyponymMax:       gen.CohyponymMax,
		ExpansionSenses:    gen.ExpansionSenses,
		CorruptionMinCount: gen.CorruptionMinCount,
	}
}
