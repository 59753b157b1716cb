package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/exam"
	"github.com/jamesyinbaare/rmps-sub007/domain/grading"
	apperrors "github.com/jamesyinbaare/rmps-sub007/internal/errors"
	"github.com/jamesyinbaare/rmps-sub007/internal/reporting"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubjectRepo struct {
	subjects map[core.SubjectID]*exam.Subject
}

func (s *stubSubjectRepo) Create(ctx context.Context, subject *exam.Subject) error {
	s.subjects[subject.ID] = subject
	return nil
}

func (s *stubSubjectRepo) GetByID(ctx context.Context, id core.SubjectID) (*exam.Subject, error) {
	if subject, ok := s.subjects[id]; ok {
		return subject, nil
	}
	return nil, apperrors.NotFound("subject")
}

func (s *stubSubjectRepo) GetByCode(ctx context.Context, code string) (*exam.Subject, error) {
	for _, subject := range s.subjects {
		if subject.Code == code {
			return subject, nil
		}
	}
	return nil, apperrors.NotFound("subject")
}

func (s *stubSubjectRepo) List(ctx context.Context) ([]*exam.Subject, error) {
	var out []*exam.Subject
	for _, subject := range s.subjects {
		out = append(out, subject)
	}
	return out, nil
}

type stubCycleRepo struct {
	cycles map[core.CycleID]*exam.ExamCycle
}

func (s *stubCycleRepo) Create(ctx context.Context, cycle *exam.ExamCycle) error {
	s.cycles[cycle.ID] = cycle
	return nil
}

func (s *stubCycleRepo) GetByID(ctx context.Context, id core.CycleID) (*exam.ExamCycle, error) {
	if cycle, ok := s.cycles[id]; ok {
		return cycle, nil
	}
	return nil, apperrors.NotFound("cycle")
}

func (s *stubCycleRepo) List(ctx context.Context) ([]*exam.ExamCycle, error) {
	var out []*exam.ExamCycle
	for _, cycle := range s.cycles {
		out = append(out, cycle)
	}
	return out, nil
}

type stubScoreRepo struct {
	records []exam.ScoreRecord
}

func (s *stubScoreRepo) CreateBatch(ctx context.Context, batch *exam.ScoreBatch, records []exam.ScoreRecord) error {
	s.records = append(s.records, records...)
	return nil
}

func (s *stubScoreRepo) ListBySubjectCycle(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID) ([]exam.ScoreRecord, error) {
	return s.records, nil
}

func (s *stubScoreRepo) ListBatches(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID) ([]*exam.ScoreBatch, error) {
	return nil, nil
}

type stubRangeRepo struct {
	ranges []grading.GradeRange
}

func (s *stubRangeRepo) Replace(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID, ranges []grading.GradeRange) error {
	s.ranges = ranges
	return nil
}

func (s *stubRangeRepo) ListFor(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID) ([]grading.GradeRange, error) {
	return s.ranges, nil
}

func newTestServer(t *testing.T) (*Server, *stubScoreRepo, *stubRangeRepo, core.SubjectID, core.CycleID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	subjectID := core.SubjectID(core.NewID())
	cycleID := core.CycleID(core.NewID())

	subjects := &stubSubjectRepo{subjects: map[core.SubjectID]*exam.Subject{
		subjectID: {ID: subjectID, Code: "ENG203", Name: "English Language"},
	}}
	cycles := &stubCycleRepo{cycles: map[core.CycleID]*exam.ExamCycle{
		cycleID: {ID: cycleID, Name: "Nov/Dec", Year: 2026, Status: exam.CycleOpen},
	}}
	scores := &stubScoreRepo{}
	ranges := &stubRangeRepo{}

	builder := reporting.NewBuilder(subjects, cycles, scores, ranges, t.TempDir())
	manager := reporting.NewManager(builder, 1)

	return NewServer(subjects, cycles, scores, ranges, manager), scores, ranges, subjectID, cycleID
}

func seedScores(scores *stubScoreRepo, subjectID core.SubjectID, cycleID core.CycleID, values []float64) {
	for i := range values {
		scores.records = append(scores.records, exam.ScoreRecord{
			ID:              core.NewID(),
			SubjectID:       subjectID,
			CycleID:         cycleID,
			CandidateNumber: string(rune('A' + i)),
			Score:           &values[i],
			Flag:            exam.FlagPresent,
		})
	}
}

func doRequest(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleGrading_Percentile(t *testing.T) {
	server, scores, _, subjectID, cycleID := newTestServer(t)
	seedScores(scores, subjectID, cycleID, []float64{95, 88, 92, 55, 60, 70, 35, 40, 25, 15})

	rec := doRequest(t, server, http.MethodGet,
		"/api/v1/subjects/"+subjectID.String()+"/cycles/"+cycleID.String()+"/grading", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp gradingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "percentile_based", resp.Method)
	assert.Equal(t, 10, resp.Scores)
	assert.InDelta(t, 92, resp.Boundaries["DISTINCTION"], 1e-9)
	assert.InDelta(t, 0, resp.Boundaries["FAIL"], 1e-9)

	total := 0
	for _, n := range resp.Distribution {
		total += n
	}
	assert.Equal(t, 10, total)
}

func TestHandleGrading_UnknownMethod(t *testing.T) {
	server, _, _, subjectID, cycleID := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet,
		"/api/v1/subjects/"+subjectID.String()+"/cycles/"+cycleID.String()+"/grading?method=bell_curve", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGrading_StandardsWithRanges(t *testing.T) {
	server, scores, ranges, subjectID, cycleID := newTestServer(t)
	seedScores(scores, subjectID, cycleID, []float64{96, 82, 61, 33, 12})

	lo := func(v float64) *float64 { return &v }
	ranges.ranges = []grading.GradeRange{
		{Grade: grading.Distinction, Min: lo(90), Max: lo(100)},
		{Grade: grading.UpperCredit, Min: lo(75), Max: lo(89.99)},
		{Grade: grading.Credit, Min: lo(55), Max: lo(74.99)},
		{Grade: grading.LowerCredit, Min: lo(30), Max: lo(54.99)},
		{Grade: grading.Pass, Min: lo(10), Max: lo(29.99)},
	}

	rec := doRequest(t, server, http.MethodGet,
		"/api/v1/subjects/"+subjectID.String()+"/cycles/"+cycleID.String()+"/grading?method=standards_based", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp gradingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Distribution["DISTINCTION"])
	assert.Equal(t, 1, resp.Distribution["UPPER_CREDIT"])
	assert.Equal(t, 0, resp.Unclassified)
	assert.InDelta(t, 90, resp.Boundaries["DISTINCTION"], 1e-9)
}

func TestHandleGetSubject_NotFound(t *testing.T) {
	server, _, _, _, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/api/v1/subjects/"+core.NewID().String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleCreateSubject(t *testing.T) {
	server, _, _, _, _ := newTestServer(t)

	rec := doRequest(t, server, http.MethodPost, "/api/v1/subjects",
		`{"code":"PHY110","name":"Physics"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var subject exam.Subject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &subject))
	assert.Equal(t, "PHY110", subject.Code)
	assert.NotEmpty(t, subject.ID)

	rec = doRequest(t, server, http.MethodPost, "/api/v1/subjects", `{"code":"PHY110"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing name must fail binding")
}

func TestHandleReplaceGradeRanges_BadGrade(t *testing.T) {
	server, _, _, subjectID, cycleID := newTestServer(t)

	rec := doRequest(t, server, http.MethodPut,
		"/api/v1/subjects/"+subjectID.String()+"/cycles/"+cycleID.String()+"/grade-ranges",
		`{"ranges":[{"grade":"Merit","min":50,"max":60}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSubmitReport(t *testing.T) {
	server, scores, _, subjectID, cycleID := newTestServer(t)
	seedScores(scores, subjectID, cycleID, []float64{10, 30, 50, 70, 90})

	rec := doRequest(t, server, http.MethodPost, "/api/v1/reports",
		`{"subject_id":"`+subjectID.String()+`","cycle_id":"`+cycleID.String()+`","method":"percentile_based"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var job reporting.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &job))
	assert.NotEmpty(t, job.ID)

	rec = doRequest(t, server, http.MethodPost, "/api/v1/reports", `{"method":"percentile_based"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing cycle_id must fail binding")
}
