package reporting

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/exam"
	"github.com/jamesyinbaare/rmps-sub007/domain/grading"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory repository fixtures. The builder only reads, so plain maps
// are enough.

type fakeSubjectRepo struct {
	subjects map[core.SubjectID]*exam.Subject
}

func (f *fakeSubjectRepo) Create(ctx context.Context, s *exam.Subject) error {
	f.subjects[s.ID] = s
	return nil
}

func (f *fakeSubjectRepo) GetByID(ctx context.Context, id core.SubjectID) (*exam.Subject, error) {
	if s, ok := f.subjects[id]; ok {
		return s, nil
	}
	return nil, os.ErrNotExist
}

func (f *fakeSubjectRepo) GetByCode(ctx context.Context, code string) (*exam.Subject, error) {
	for _, s := range f.subjects {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, os.ErrNotExist
}

func (f *fakeSubjectRepo) List(ctx context.Context) ([]*exam.Subject, error) {
	var out []*exam.Subject
	for _, s := range f.subjects {
		out = append(out, s)
	}
	return out, nil
}

type fakeCycleRepo struct {
	cycles map[core.CycleID]*exam.ExamCycle
}

func (f *fakeCycleRepo) Create(ctx context.Context, c *exam.ExamCycle) error {
	f.cycles[c.ID] = c
	return nil
}

func (f *fakeCycleRepo) GetByID(ctx context.Context, id core.CycleID) (*exam.ExamCycle, error) {
	if c, ok := f.cycles[id]; ok {
		return c, nil
	}
	return nil, os.ErrNotExist
}

func (f *fakeCycleRepo) List(ctx context.Context) ([]*exam.ExamCycle, error) {
	var out []*exam.ExamCycle
	for _, c := range f.cycles {
		out = append(out, c)
	}
	return out, nil
}

type fakeScoreRepo struct {
	records map[core.SubjectID][]exam.ScoreRecord
}

func (f *fakeScoreRepo) CreateBatch(ctx context.Context, batch *exam.ScoreBatch, records []exam.ScoreRecord) error {
	f.records[batch.SubjectID] = append(f.records[batch.SubjectID], records...)
	return nil
}

func (f *fakeScoreRepo) ListBySubjectCycle(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID) ([]exam.ScoreRecord, error) {
	return f.records[subjectID], nil
}

func (f *fakeScoreRepo) ListBatches(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID) ([]*exam.ScoreBatch, error) {
	return nil, nil
}

type fakeRangeRepo struct {
	ranges []grading.GradeRange
}

func (f *fakeRangeRepo) Replace(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID, ranges []grading.GradeRange) error {
	f.ranges = ranges
	return nil
}

func (f *fakeRangeRepo) ListFor(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID) ([]grading.GradeRange, error) {
	return f.ranges, nil
}

func presentRecord(subjectID core.SubjectID, cycleID core.CycleID, candidate string, score float64) exam.ScoreRecord {
	return exam.ScoreRecord{
		ID:              core.NewID(),
		SubjectID:       subjectID,
		CycleID:         cycleID,
		CandidateNumber: candidate,
		Score:           &score,
		Flag:            exam.FlagPresent,
	}
}

func newFixture(t *testing.T) (*Builder, core.SubjectID, core.CycleID) {
	t.Helper()

	subjectID := core.SubjectID(core.NewID())
	cycleID := core.CycleID(core.NewID())

	subjects := &fakeSubjectRepo{subjects: map[core.SubjectID]*exam.Subject{
		subjectID: {ID: subjectID, Code: "MTH101", Name: "Mathematics"},
	}}
	cycles := &fakeCycleRepo{cycles: map[core.CycleID]*exam.ExamCycle{
		cycleID: {ID: cycleID, Name: "May/June", Year: 2026, Status: exam.CycleOpen},
	}}

	scores := &fakeScoreRepo{records: map[core.SubjectID][]exam.ScoreRecord{}}
	for i, v := range []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100} {
		rec := presentRecord(subjectID, cycleID, string(rune('A'+i)), v)
		scores.records[subjectID] = append(scores.records[subjectID], rec)
	}

	builder := NewBuilder(subjects, cycles, scores, &fakeRangeRepo{}, t.TempDir())
	return builder, subjectID, cycleID
}

func TestBuilder_BuildSubjectReport(t *testing.T) {
	builder, subjectID, cycleID := newFixture(t)

	path, err := builder.BuildSubjectReport(context.Background(), subjectID, cycleID, grading.PercentileBased)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBuilder_BuildCycleReports(t *testing.T) {
	builder, _, cycleID := newFixture(t)

	paths, err := builder.BuildCycleReports(context.Background(), cycleID, grading.Hybrid)
	require.NoError(t, err)
	// Only the one subject with scores yields a workbook.
	assert.Len(t, paths, 1)
}

func TestManager_SubmitAndComplete(t *testing.T) {
	builder, subjectID, cycleID := newFixture(t)
	manager := NewManager(builder, 2)

	job, err := manager.Submit(SubmitRequest{
		SubjectID: subjectID,
		CycleID:   cycleID,
		Method:    grading.PercentileBased,
		Remarks:   "Cutoffs reviewed by the *awarding* committee.",
	})
	require.NoError(t, err)
	assert.Equal(t, JobPending, job.Status)
	assert.Contains(t, job.RemarksHTML, "<em>awarding</em>")

	require.Eventually(t, func() bool {
		current, ok := manager.Get(job.ID)
		return ok && current.Status == JobCompleted
	}, 5*time.Second, 10*time.Millisecond)

	finished, ok := manager.Get(job.ID)
	require.True(t, ok)
	assert.Len(t, finished.Files, 1)
	assert.NotNil(t, finished.CompletedAt)

	stats := manager.Stats()
	assert.Equal(t, 1, stats.Completed)
}

func TestManager_SubmitValidation(t *testing.T) {
	builder, subjectID, cycleID := newFixture(t)
	manager := NewManager(builder, 1)

	_, err := manager.Submit(SubmitRequest{SubjectID: subjectID, Method: grading.Hybrid})
	assert.Error(t, err, "missing cycle must be rejected")

	_, err = manager.Submit(SubmitRequest{CycleID: cycleID, Method: "weighted"})
	assert.Error(t, err, "unknown method must be rejected")
}

func TestManager_UnknownJob(t *testing.T) {
	builder, _, _ := newFixture(t)
	manager := NewManager(builder, 1)

	_, ok := manager.Get(core.ReportID(core.NewID()))
	assert.False(t, ok)
}

func TestManager_FailedJobIsReported(t *testing.T) {
	builder, _, cycleID := newFixture(t)
	manager := NewManager(builder, 1)

	// Unknown subject makes the build fail.
	job, err := manager.Submit(SubmitRequest{
		SubjectID: core.SubjectID(core.NewID()),
		CycleID:   cycleID,
		Method:    grading.PercentileBased,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, ok := manager.Get(job.ID)
		return ok && current.Status == JobFailed
	}, 5*time.Second, 10*time.Millisecond)

	failed, _ := manager.Get(job.ID)
	assert.NotEmpty(t, failed.Error)
}
