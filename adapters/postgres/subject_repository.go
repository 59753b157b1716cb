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

// subjectRepository implements the SubjectRepository interface
type subjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *sqlx.DB) ports.SubjectRepository {
	return &subjectRepository{db: db}
}

// Create inserts a new subject
func (r *subjectRepository) Create(ctx context.Context, subject *exam.Subject) error {
	query := `INSERT INTO subjects (id, code, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		subject.ID, subject.Code, subject.Name, subject.CreatedAt, subject.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

// GetByID retrieves a subject by its ID
func (r *subjectRepository) GetByID(ctx context.Context, id core.SubjectID) (*exam.Subject, error) {
	query := `SELECT id, code, name, created_at, updated_at FROM subjects WHERE id = $1`

	var subject exam.Subject
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&subject.ID, &subject.Code, &subject.Name, &subject.CreatedAt, &subject.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("subject")
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return &subject, nil
}

// GetByCode retrieves a subject by its catalog code
func (r *subjectRepository) GetByCode(ctx context.Context, code string) (*exam.Subject, error) {
	query := `SELECT id, code, name, created_at, updated_at FROM subjects WHERE code = $1`

	var subject exam.Subject
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&subject.ID, &subject.Code, &subject.Name, &subject.CreatedAt, &subject.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("subject")
		}
		return nil, fmt.Errorf("failed to get subject by code: %w", err)
	}
	return &subject, nil
}

// List retrieves all subjects ordered by code
func (r *subjectRepository) List(ctx context.Context) ([]*exam.Subject, error) {
	query := `SELECT id, code, name, created_at, updated_at FROM subjects ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*exam.Subject
	for rows.Next() {
		var subject exam.Subject
		if err := rows.Scan(&subject.ID, &subject.Code, &subject.Name, &subject.CreatedAt, &subject.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, &subject)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subjects: %w", err)
	}
	return subjects, nil
}
