// Package probeset stores dataset runs and their records in PostgreSQL.
package probeset

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lexprobe/internal/adapter/postgres"
	"github.com/heartmarshall/lexprobe/internal/dataset"
	"github.com/heartmarshall/lexprobe/internal/domain"
)

const (
	runsTable    = "probe_runs"
	recordsTable = "probe_records"
)

// Repo provides run and record persistence.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
}

// New creates a new probe set repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm}
}

// StartRun registers run. Registering the same run twice is a no-op.
func (r *Repo) StartRun(ctx context.Context, run *dataset.Run) error {
	query, args, err := postgres.Builder().
		Insert(runsTable).
		Columns("id", "seed", "started_at", "stats").
		Values(run.ID, run.Seed, run.StartedAt, run.Stats).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build start run query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "probe run", run.ID)
	}
	return nil
}

// FinishRun stores the end time and final stats of run.
func (r *Repo) FinishRun(ctx context.Context, run *dataset.Run) error {
	query, args, err := postgres.Builder().
		Update(runsTable).
		Set("finished_at", run.FinishedAt).
		Set("stats", run.Stats).
		Where(squirrel.Eq{"id": run.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build finish run query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "probe run", run.ID)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "probe run", run.ID)
	}
	return nil
}

// InsertRecords stores records of runID in one transaction using pgx.Batch.
// Records already stored (by run and record id) are skipped. Returns the
// number of rows actually inserted.
func (r *Repo) InsertRecords(ctx context.Context, runID uuid.UUID, records []dataset.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(
			`INSERT INTO probe_records (run_id, record_id, split, word, pos, freq, count, relation, targets)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (run_id, record_id) DO NOTHING`,
			runID, rec.ID, string(rec.Split),
			rec.Word.Name, string(rec.Word.POS), rec.Word.Score, rec.Word.Count,
			string(rec.Relation), rec.Targets,
		)
	}

	var inserted int
	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		n, err := r.sendBatchExec(ctx, batch)
		inserted = n
		return err
	})
	if err != nil {
		return 0, postgres.MapError(err, "probe records of run", runID)
	}
	return inserted, nil
}

// CountByRelation returns the number of stored records per relation.
func (r *Repo) CountByRelation(ctx context.Context, runID uuid.UUID) (map[domain.Relation]int, error) {
	query, args, err := postgres.Builder().
		Select("relation", "count(*)").
		From(recordsTable).
		Where(squirrel.Eq{"run_id": runID}).
		GroupBy("relation").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "probe records of run", runID)
	}
	defer rows.Close()

	counts := make(map[domain.Relation]int)
	for rows.Next() {
		var (
			rel string
			n   int
		)
		if err := rows.Scan(&rel, &n); err != nil {
			return nil, fmt.Errorf("scan relation count: %w", err)
		}
		counts[domain.Relation(rel)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "probe records of run", runID)
	}
	return counts, nil
}

// ListRecords returns the stored records of runID in id order, optionally
// restricted to one split.
func (r *Repo) ListRecords(ctx context.Context, runID uuid.UUID, split domain.Split) ([]dataset.Record, error) {
	sb := postgres.Builder().
		Select("record_id", "split", "word", "pos", "freq", "count", "relation", "targets").
		From(recordsTable).
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("record_id")
	if split != "" {
		sb = sb.Where(squirrel.Eq{"split": string(split)})
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "probe records of run", runID)
	}
	defer rows.Close()

	var records []dataset.Record
	for rows.Next() {
		var (
			rec                dataset.Record
			splitStr, pos, rel string
		)
		if err := rows.Scan(&rec.ID, &splitStr, &rec.Word.Name, &pos, &rec.Word.Score, &rec.Word.Count, &rel, &rec.Targets); err != nil {
			return nil, fmt.Errorf("scan probe record: %w", err)
		}
		rec.Split = domain.Split(splitStr)
		rec.Word.POS = domain.PartOfSpeech(pos)
		rec.Relation = domain.Relation(rel)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "probe records of run", runID)
	}
	return records, nil
}

func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	results := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}
