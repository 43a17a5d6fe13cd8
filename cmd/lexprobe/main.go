// Command lexprobe builds a lexical-relation probing dataset: for every word
// of a corpus frequency list it extracts antonyms, hypernyms, co-hyponyms and
// a misspelling from a wordnet, and writes them as numbered, split-labelled
// records to a TSV file and, optionally, to PostgreSQL.
//
// Flags:
//
//	--config    path to YAML config file (default: $CONFIG_PATH or ./lexprobe.yaml)
//	--out       output TSV path, "-" for stdout
//	--seed      random seed for splits and corruptions
//	--limit     process only the first N corpus words (0 = all)
//	--postgres  also store records in PostgreSQL
//	--dry-run   extract and count records without writing anything
//
// Flags override config values. Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/lexprobe/internal/app"
)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	outFlag := flag.String("out", "", `output TSV path ("-" for stdout)`)
	seedFlag := flag.Int64("seed", 0, "random seed")
	limitFlag := flag.Int("limit", 0, "process only the first N corpus words (0 = all)")
	postgresFlag := flag.Bool("postgres", false, "also store records in PostgreSQL")
	dryRunFlag := flag.Bool("dry-run", false, "extract and count records without writing anything")
	flag.Parse()

	opts := app.Options{
		ConfigPath: *configFlag,
		DryRun:     *dryRunFlag,
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = os.Getenv("CONFIG_PATH")
	}

	// Only explicitly set flags override the config.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			opts.OutPath = outFlag
		case "seed":
			opts.Seed = seedFlag
		case "limit":
			opts.Limit = limitFlag
		case "postgres":
			opts.Postgres = postgresFlag
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "lexprobe: %v\n", err)
		stop()
		os.Exit(1)
	}
}
