package migration

import (
	"context"

	"github.com/jamesyinbaare/rmps-sub007/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{version: "1.0.0"}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in dependency order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createSubjectsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create subjects table")
	}
	if err := r.createExamCyclesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create exam_cycles table")
	}
	if err := r.createScoreBatchesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create score_batches table")
	}
	if err := r.createScoreRecordsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create score_records table")
	}
	if err := r.createGradeRangesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create grade_ranges table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createSubjectsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS subjects (
			id UUID PRIMARY KEY,
			code VARCHAR(32) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createExamCyclesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS exam_cycles (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			year INTEGER NOT NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'open',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (name, year)
		)
	`)
	return err
}

func (r *MigrationRunner) createScoreBatchesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS score_batches (
			id UUID PRIMARY KEY,
			subject_id UUID NOT NULL REFERENCES subjects(id),
			cycle_id UUID NOT NULL REFERENCES exam_cycles(id),
			source_file VARCHAR(512) NOT NULL,
			record_count INTEGER NOT NULL DEFAULT 0,
			absent_count INTEGER NOT NULL DEFAULT 0,
			withheld_count INTEGER NOT NULL DEFAULT 0,
			skipped_count INTEGER NOT NULL DEFAULT 0,
			imported_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createScoreRecordsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS score_records (
			id UUID PRIMARY KEY,
			subject_id UUID NOT NULL REFERENCES subjects(id),
			cycle_id UUID NOT NULL REFERENCES exam_cycles(id),
			batch_id UUID NOT NULL REFERENCES score_batches(id),
			candidate_number VARCHAR(64) NOT NULL,
			score DOUBLE PRECISION,
			flag VARCHAR(16) NOT NULL DEFAULT 'present',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			UNIQUE (subject_id, cycle_id, candidate_number)
		)
	`)
	return err
}

func (r *MigrationRunner) createGradeRangesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS grade_ranges (
			id UUID PRIMARY KEY,
			subject_id UUID NOT NULL REFERENCES subjects(id),
			cycle_id UUID NOT NULL REFERENCES exam_cycles(id),
			grade VARCHAR(32) NOT NULL,
			min_score DOUBLE PRECISION,
			max_score DOUBLE PRECISION,
			position INTEGER NOT NULL,
			UNIQUE (subject_id, cycle_id, position)
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_score_records_subject_cycle ON score_records(subject_id, cycle_id)`,
		`CREATE INDEX IF NOT EXISTS idx_score_batches_subject_cycle ON score_batches(subject_id, cycle_id)`,
		`CREATE INDEX IF NOT EXISTS idx_grade_ranges_subject_cycle ON grade_ranges(subject_id, cycle_id)`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
