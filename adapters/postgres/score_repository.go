package postgres

import (
	"context"
	"fmt"

	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/exam"
	"github.com/jamesyinbaare/rmps-sub007/ports"

	"github.com/jmoiron/sqlx"
)

// scoreRepository implements the ScoreRepository interface
type scoreRepository struct {
	db *sqlx.DB
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *sqlx.DB) ports.ScoreRepository {
	return &scoreRepository{db: db}
}

// CreateBatch inserts an import batch and its score records in one
// transaction. A candidate re-appearing for the same subject and cycle
// replaces the earlier mark (latest import wins).
func (r *scoreRepository) CreateBatch(ctx context.Context, batch *exam.ScoreBatch, records []exam.ScoreRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO score_batches (id, subject_id, cycle_id, source_file, record_count, absent_count, withheld_count, skipped_count, imported_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		batch.ID, batch.SubjectID, batch.CycleID, batch.SourceFile,
		batch.RecordCount, batch.AbsentCount, batch.WithheldCount, batch.SkippedCount, batch.ImportedAt,
	); err != nil {
		return fmt.Errorf("failed to create score batch: %w", err)
	}

	insert := `INSERT INTO score_records (id, subject_id, cycle_id, batch_id, candidate_number, score, flag, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (subject_id, cycle_id, candidate_number)
		DO UPDATE SET score = EXCLUDED.score, flag = EXCLUDED.flag, batch_id = EXCLUDED.batch_id`
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, insert,
			rec.ID, rec.SubjectID, rec.CycleID, rec.BatchID,
			rec.CandidateNumber, rec.Score, rec.Flag, rec.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert score for candidate %s: %w", rec.CandidateNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit score batch: %w", err)
	}
	return nil
}

// ListBySubjectCycle retrieves all score records for a subject and cycle
func (r *scoreRepository) ListBySubjectCycle(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID) ([]exam.ScoreRecord, error) {
	query := `SELECT id, subject_id, cycle_id, batch_id, candidate_number, score, flag, created_at
		FROM score_records
		WHERE subject_id = $1 AND cycle_id = $2
		ORDER BY candidate_number`

	rows, err := r.db.QueryContext(ctx, query, subjectID, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query score records: %w", err)
	}
	defer rows.Close()

	var records []exam.ScoreRecord
	for rows.Next() {
		var rec exam.ScoreRecord
		if err := rows.Scan(
			&rec.ID, &rec.SubjectID, &rec.CycleID, &rec.BatchID,
			&rec.CandidateNumber, &rec.Score, &rec.Flag, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan score record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate score records: %w", err)
	}
	return records, nil
}

// ListBatches retrieves import batches for a subject and cycle, newest first
func (r *scoreRepository) ListBatches(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID) ([]*exam.ScoreBatch, error) {
	query := `SELECT id, subject_id, cycle_id, source_file, record_count, absent_count, withheld_count, skipped_count, imported_at
		FROM score_batches
		WHERE subject_id = $1 AND cycle_id = $2
		ORDER BY imported_at DESC`

	rows, err := r.db.QueryContext(ctx, query, subjectID, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query score batches: %w", err)
	}
	defer rows.Close()

	var batches []*exam.ScoreBatch
	for rows.Next() {
		var batch exam.ScoreBatch
		if err := rows.Scan(
			&batch.ID, &batch.SubjectID, &batch.CycleID, &batch.SourceFile,
			&batch.RecordCount, &batch.AbsentCount, &batch.WithheldCount, &batch.SkippedCount, &batch.ImportedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan score batch: %w", err)
		}
		batches = append(batches, &batch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate score batches: %w", err)
	}
	return batches, nil
}
