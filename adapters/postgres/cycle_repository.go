package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/exam"
	apperrors "github.com/jamesyinbaare/rmps-sub007/internal/errors"
	"github.com/jamesyinbaare/rmps-sub007/ports"

	"github.com/jmoiron/sqlx"
)

// cycleRepository implements the CycleRepository interface
type cycleRepository struct {
	db *sqlx.DB
}

// NewCycleRepository creates a new exam cycle repository
func NewCycleRepository(db *sqlx.DB) ports.CycleRepository {
	return &cycleRepository{db: db}
}

// Create inserts a new exam cycle
func (r *cycleRepository) Create(ctx context.Context, cycle *exam.ExamCycle) error {
	query := `INSERT INTO exam_cycles (id, name, year, status, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		cycle.ID, cycle.Name, cycle.Year, cycle.Status, cycle.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create exam cycle: %w", err)
	}
	return nil
}

// GetByID retrieves an exam cycle by its ID
func (r *cycleRepository) GetByID(ctx context.Context, id core.CycleID) (*exam.ExamCycle, error) {
	query := `SELECT id, name, year, status, created_at FROM exam_cycles WHERE id = $1`

	var cycle exam.ExamCycle
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cycle.ID, &cycle.Name, &cycle.Year, &cycle.Status, &cycle.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("exam cycle")
		}
		return nil, fmt.Errorf("failed to get exam cycle: %w", err)
	}
	return &cycle, nil
}

// List retrieves all exam cycles, newest first
func (r *cycleRepository) List(ctx context.Context) ([]*exam.ExamCycle, error) {
	query := `SELECT id, name, year, status, created_at FROM exam_cycles ORDER BY year DESC, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exam cycles: %w", err)
	}
	defer rows.Close()

	var cycles []*exam.ExamCycle
	for rows.Next() {
		var cycle exam.ExamCycle
		if err := rows.Scan(&cycle.ID, &cycle.Name, &cycle.Year, &cycle.Status, &cycle.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exam cycle: %w", err)
		}
		cycles = append(cycles, &cycle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exam cycles: %w", err)
	}
	return cycles, nil
}
