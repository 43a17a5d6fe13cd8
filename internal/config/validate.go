package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/heartmarshall/lexprobe/internal/domain"
	"github.com/heartmarshall/lexprobe/internal/lexicon/vocab"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically. All problems are reported at once as a
// *domain.ValidationError.
func (c *Config) Validate() error {
	var errs []domain.FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		add("log.level", "unknown level %q", c.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		add("log.format", "unknown format %q", c.Log.Format)
	}

	if c.Sources.FrequencyPath == "" {
		add("sources.frequency_path", "required")
	}
	if c.Sources.OntologyPath == "" {
		add("sources.ontology_path", "required")
	}
	if c.Sources.VocabularyPath == "" {
		add("sources.vocabulary_path", "required")
	}
	if !vocab.Format(c.Sources.VocabularyFormat).IsValid() {
		add("sources.vocabulary_format", "must be %q or %q (got %q)", vocab.FormatTokenizer, vocab.FormatText, c.Sources.VocabularyFormat)
	}

	g := c.Generation
	if g.Alphabet == "" {
		add("generation.alphabet", "must not be empty")
	}
	if g.CorruptionMinCount < 0 {
		add("generation.corruption_min_count", "must be >= 0 (got %d)", g.CorruptionMinCount)
	}
	if g.HypernymMinDepth < 0 {
		add("generation.hypernym_min_depth", "must be >= 0 (got %d)", g.HypernymMinDepth)
	}
	if g.HypernymWindow < 1 {
		add("generation.hypernym_window", "must be >= 1 (got %d)", g.HypernymWindow)
	}
	if g.ClosureDepth < 0 {
		add("generation.closure_depth", "must be >= 0 (got %d)", g.ClosureDepth)
	}
	if g.HypernymMin < 1 || g.HypernymMin > g.HypernymMax {
		add("generation.hypernym_min", "must be in [1, hypernym_max] (got %d, max %d)", g.HypernymMin, g.HypernymMax)
	}
	if g.CohyponymMin < 1 || g.CohyponymMin > g.CohyponymMax {
		add("generation.cohyponym_min", "must be in [1, cohyponym_max] (got %d, max %d)", g.CohyponymMin, g.CohyponymMax)
	}
	if g.ExpansionSenses < 1 {
		add("generation.expansion_senses", "must be >= 1 (got %d)", g.ExpansionSenses)
	}
	if g.DevRatioDenominator < 1 {
		add("generation.dev_ratio_denominator", "must be >= 1 (got %d)", g.DevRatioDenominator)
	}
	if g.Limit < 0 {
		add("generation.limit", "must be >= 0 (got %d)", g.Limit)
	}

	if c.Output.Path == "" && !c.Output.Postgres {
		add("output.path", "required unless output.postgres is set")
	}
	if c.Output.Postgres {
		if c.Database.DSN == "" {
			add("database.dsn", "required when output.postgres is set")
		}
		if c.Output.BatchSize < 1 {
			add("output.batch_size", "must be >= 1 (got %d)", c.Output.BatchSize)
		}
		if c.Database.MinConns > c.Database.MaxConns {
			add("database.min_conns", "must not exceed max_conns (%d > %d)", c.Database.MinConns, c.Database.MaxConns)
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
