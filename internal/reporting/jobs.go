package reporting

import (
	"context"
	"sync"
	"time"

	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/grading"
	"github.com/jamesyinbaare/rmps-sub007/internal"
	apperrors "github.com/jamesyinbaare/rmps-sub007/internal/errors"

	"github.com/gomarkdown/markdown"
	"golang.org/x/sync/semaphore"
)

// JobStatus is the lifecycle state of a report job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// Job tracks one report generation request. Callers poll it by ID until
// it reaches a terminal state.
type Job struct {
	ID          core.ReportID          `json:"id"`
	SubjectID   core.SubjectID         `json:"subject_id,omitempty"`
	CycleID     core.CycleID           `json:"cycle_id"`
	Method      grading.BoundaryMethod `json:"method"`
	Status      JobStatus              `json:"status"`
	Files       []string               `json:"files,omitempty"`
	Error       string                 `json:"error,omitempty"`
	RemarksHTML string                 `json:"remarks_html,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
}

// SubmitRequest describes a report to generate. An empty SubjectID
// requests a cycle-wide build (one workbook per subject with scores).
// Remarks is optional markdown carried into the job result as HTML.
type SubmitRequest struct {
	SubjectID core.SubjectID
	CycleID   core.CycleID
	Method    grading.BoundaryMethod
	Remarks   string
}

// Manager runs report jobs in the background with bounded concurrency
// and keeps their state in memory for status polling.
type Manager struct {
	mu      sync.RWMutex
	jobs    map[core.ReportID]*Job
	sem     *semaphore.Weighted
	builder *Builder
	logger  *internal.Logger
}

// NewManager creates a job manager allowing workers concurrent builds.
func NewManager(builder *Builder, workers int64) *Manager {
	if workers < 1 {
		workers = 1
	}
	return &Manager{
		jobs:    make(map[core.ReportID]*Job),
		sem:     semaphore.NewWeighted(workers),
		builder: builder,
		logger:  internal.DefaultLogger,
	}
}

// Submit validates the request, registers a pending job and starts it in
// the background. The returned snapshot is safe to hand to callers.
func (m *Manager) Submit(req SubmitRequest) (Job, error) {
	if req.CycleID.String() == "" {
		return Job{}, apperrors.InvalidInput("cycle ID is required")
	}
	if _, err := grading.ParseBoundaryMethod(string(req.Method)); err != nil {
		return Job{}, apperrors.InvalidInput(err.Error())
	}

	job := &Job{
		ID:        core.ReportID(core.NewID()),
		SubjectID: req.SubjectID,
		CycleID:   req.CycleID,
		Method:    req.Method,
		Status:    JobPending,
		CreatedAt: time.Now().UTC(),
	}
	if req.Remarks != "" {
		job.RemarksHTML = string(markdown.ToHTML([]byte(req.Remarks), nil, nil))
	}

	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()

	go m.run(job.ID)
	return *job, nil
}

// Get returns a snapshot of the job, if known.
func (m *Manager) Get(id core.ReportID) (Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	snapshot := *job
	snapshot.Files = append([]string(nil), job.Files...)
	return snapshot, true
}

// QueueStats summarizes job states for the ops endpoint.
type QueueStats struct {
	Pending   int `json:"pending"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// Stats counts jobs by state.
func (m *Manager) Stats() QueueStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var stats QueueStats
	for _, job := range m.jobs {
		switch job.Status {
		case JobPending:
			stats.Pending++
		case JobRunning:
			stats.Running++
		case JobCompleted:
			stats.Completed++
		case JobFailed:
			stats.Failed++
		}
	}
	return stats
}

// run executes one job. Jobs outlive the submitting request, so they run
// against a background context.
func (m *Manager) run(id core.ReportID) {
	ctx := context.Background()
	if err := m.sem.Acquire(ctx, 1); err != nil {
		m.finish(id, nil, err)
		return
	}
	defer m.sem.Release(1)

	m.mu.Lock()
	job, ok := m.jobs[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	job.Status = JobRunning
	subjectID, cycleID, method := job.SubjectID, job.CycleID, job.Method
	m.mu.Unlock()

	var files []string
	var err error
	if subjectID.String() == "" {
		files, err = m.builder.BuildCycleReports(ctx, cycleID, method)
	} else {
		var path string
		path, err = m.builder.BuildSubjectReport(ctx, subjectID, cycleID, method)
		if err == nil {
			files = []string{path}
		}
	}
	m.finish(id, files, err)
}

func (m *Manager) finish(id core.ReportID, files []string, err error) {
	now := time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[id]
	if !ok {
		return
	}
	job.CompletedAt = &now
	if err != nil {
		job.Status = JobFailed
		job.Error = err.Error()
		m.logger.Error("[Reports] job %s failed: %v", id, err)
		return
	}
	job.Status = JobCompleted
	job.Files = files
	m.logger.Info("[Reports] job %s completed with %d file(s)", id, len(files))
}
