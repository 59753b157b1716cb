package ports

import (
	"context"

	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/exam"
	"github.com/jamesyinbaare/rmps-sub007/domain/grading"
)

// SubjectRepository persists the subject catalog.
type SubjectRepository interface {
	Create(ctx context.Context, subject *exam.Subject) error
	GetByID(ctx context.Context, id core.SubjectID) (*exam.Subject, error)
	GetByCode(ctx context.Context, code string) (*exam.Subject, error)
	List(ctx context.Context) ([]*exam.Subject, error)
}

// CycleRepository persists examination cycles.
type CycleRepository interface {
	Create(ctx context.Context, cycle *exam.ExamCycle) error
	GetByID(ctx context.Context, id core.CycleID) (*exam.ExamCycle, error)
	List(ctx context.Context) ([]*exam.ExamCycle, error)
}

// GradeRangeRepository persists the standards-based grading
// configuration per subject and cycle. Replace swaps the whole set
// atomically; supplied order is preserved on read.
type GradeRangeRepository interface {
	Replace(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID, ranges []grading.GradeRange) error
	ListFor(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID) ([]grading.GradeRange, error)
}

// ScoreRepository persists imported score records and their batches.
type ScoreRepository interface {
	CreateBatch(ctx context.Context, batch *exam.ScoreBatch, records []exam.ScoreRecord) error
	ListBySubjectCycle(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID) ([]exam.ScoreRecord, error)
	ListBatches(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID) ([]*exam.ScoreBatch, error)
}
