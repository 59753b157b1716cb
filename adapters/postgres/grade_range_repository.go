package postgres

import (
	"context"
	"fmt"

	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/grading"
	"github.com/jamesyinbaare/rmps-sub007/ports"

	"github.com/jmoiron/sqlx"
)

// gradeRangeRepository implements the GradeRangeRepository interface
type gradeRangeRepository struct {
	db *sqlx.DB
}

// NewGradeRangeRepository creates a new grade range repository
func NewGradeRangeRepository(db *sqlx.DB) ports.GradeRangeRepository {
	return &gradeRangeRepository{db: db}
}

// Replace swaps the configured ranges for a subject and cycle in one
// transaction. Position preserves the supplied order, which the
// standards-based binning depends on.
func (r *gradeRangeRepository) Replace(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID, ranges []grading.GradeRange) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM grade_ranges WHERE subject_id = $1 AND cycle_id = $2`,
		subjectID, cycleID,
	); err != nil {
		return fmt.Errorf("failed to clear grade ranges: %w", err)
	}

	insert := `INSERT INTO grade_ranges (id, subject_id, cycle_id, grade, min_score, max_score, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, gr := range ranges {
		if _, err := tx.ExecContext(ctx, insert,
			core.NewID(), subjectID, cycleID, gr.Grade.Key(), gr.Min, gr.Max, i,
		); err != nil {
			return fmt.Errorf("failed to insert grade range %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit grade ranges: %w", err)
	}
	return nil
}

// ListFor retrieves the configured ranges in supplied order. Missing
// configuration yields an empty slice, which callers treat as the
// "configure ranges first" state, not an error.
func (r *gradeRangeRepository) ListFor(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID) ([]grading.GradeRange, error) {
	query := `SELECT grade, min_score, max_score FROM grade_ranges
		WHERE subject_id = $1 AND cycle_id = $2
		ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, subjectID, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query grade ranges: %w", err)
	}
	defer rows.Close()

	var ranges []grading.GradeRange
	for rows.Next() {
		var stored string
		var gr grading.GradeRange
		if err := rows.Scan(&stored, &gr.Min, &gr.Max); err != nil {
			return nil, fmt.Errorf("failed to scan grade range: %w", err)
		}
		grade, err := grading.ParseGradeLabel(stored)
		if err != nil {
			return nil, fmt.Errorf("stored grade range is invalid: %w", err)
		}
		gr.Grade = grade
		ranges = append(ranges, gr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate grade ranges: %w", err)
	}
	return ranges, nil
}
