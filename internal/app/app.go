package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lexprobe/internal/adapter/postgres"
	"github.com/heartmarshall/lexprobe/internal/adapter/postgres/probeset"
	"github.com/heartmarshall/lexprobe/internal/app/builder"
	"github.com/heartmarshall/lexprobe/internal/config"
	"github.com/heartmarshall/lexprobe/internal/dataset"
)

// stdoutPath makes the TSV sink write to standard output.
const stdoutPath = "-"

// Options are command-line overrides. Nil pointers and false flags leave
// the loaded configuration untouched.
type Options struct {
	ConfigPath string
	OutPath    *string
	Seed       *int64
	Limit      *int
	Postgres   *bool
	DryRun     bool
}

// Apply copies the set overrides into cfg.
func (o Options) Apply(cfg *config.Config) {
	if o.OutPath != nil {
		cfg.Output.Path = *o.OutPath
	}
	if o.Seed != nil {
		cfg.Generation.Seed = *o.Seed
	}
	if o.Limit != nil {
		cfg.Generation.Limit = *o.Limit
	}
	if o.Postgres != nil {
		cfg.Output.Postgres = *o.Postgres
	}
}

// Run is the application entry point. It loads configuration, initializes
// the logger, prepares the configured sinks and runs the build pipeline.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.LoadPath(opts.ConfigPath)
	if err != nil {
		return err
	}
	opts.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: validate overrides: %w", err)
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting lexprobe",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Int64("seed", cfg.Generation.Seed),
		slog.String("output", cfg.Output.Path),
		slog.Bool("postgres", cfg.Output.Postgres),
		slog.Bool("dry_run", opts.DryRun),
	)

	var pool *pgxpool.Pool
	if cfg.Output.Postgres && !opts.DryRun {
		applied, err := postgres.Migrate(ctx, cfg.Database.DSN)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", slog.Int("count", applied))

		pool, err = postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
	}

	pipeline := builder.NewPipeline(logger, *cfg, sinkFactory(cfg, pool, opts.DryRun))
	if err := pipeline.Run(ctx); err != nil {
		return err
	}

	if run := pipeline.LastRun(); run != nil {
		logger.Info("dataset built",
			slog.String("run_id", run.ID.String()),
			slog.Int("records", run.Stats.TotalRecords()),
			slog.Duration("elapsed", run.FinishedAt.Sub(run.StartedAt)),
		)
	}
	if pipeline.HasErrors() {
		return errors.New("pipeline completed with errors")
	}
	return nil
}

// sinkFactory builds the record sink for a run: a counter for dry runs,
// otherwise the TSV file plus, when pool is set, the PostgreSQL store.
func sinkFactory(cfg *config.Config, pool *pgxpool.Pool, dryRun bool) builder.SinkFactory {
	return func(ctx context.Context, run *dataset.Run) (dataset.Sink, error) {
		if dryRun {
			return &dataset.CountingSink{}, nil
		}

		var sinks dataset.MultiSink
		if cfg.Output.Path != "" {
			tsv, err := openTSV(cfg.Output.Path)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, tsv)
		}

		if pool != nil {
			repo := probeset.New(pool, postgres.NewTxManager(pool))
			w, err := probeset.Open(ctx, repo, run, cfg.Output.BatchSize)
			if err != nil {
				return nil, errors.Join(err, sinks.Close(ctx))
			}
			sinks = append(sinks, w)
		}

		if len(sinks) == 1 {
			return sinks[0], nil
		}
		return sinks, nil
	}
}

func openTSV(path string) (*dataset.TSVSink, error) {
	if path == stdoutPath {
		return dataset.NewTSVWriter(os.Stdout), nil
	}
	return dataset.CreateTSV(path)
}
