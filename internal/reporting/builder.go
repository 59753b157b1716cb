package reporting

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jamesyinbaare/rmps-sub007/adapters/excel"
	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/exam"
	"github.com/jamesyinbaare/rmps-sub007/domain/grading"
	"github.com/jamesyinbaare/rmps-sub007/internal"
	apperrors "github.com/jamesyinbaare/rmps-sub007/internal/errors"
	"github.com/jamesyinbaare/rmps-sub007/internal/statistics"
	"github.com/jamesyinbaare/rmps-sub007/ports"

	"golang.org/x/sync/errgroup"
)

// cycleBuildConcurrency bounds how many subject reports a cycle-wide
// build runs at once.
const cycleBuildConcurrency = 4

// Builder assembles grade report workbooks from stored scores and
// grading configuration.
type Builder struct {
	subjects  ports.SubjectRepository
	cycles    ports.CycleRepository
	scores    ports.ScoreRepository
	ranges    ports.GradeRangeRepository
	writer    *excel.ReportWriter
	outputDir string
	logger    *internal.Logger
}

// NewBuilder creates a new report builder writing workbooks to outputDir.
func NewBuilder(
	subjects ports.SubjectRepository,
	cycles ports.CycleRepository,
	scores ports.ScoreRepository,
	ranges ports.GradeRangeRepository,
	outputDir string,
) *Builder {
	return &Builder{
		subjects:  subjects,
		cycles:    cycles,
		scores:    scores,
		ranges:    ranges,
		writer:    excel.NewReportWriter(),
		outputDir: outputDir,
		logger:    internal.DefaultLogger,
	}
}

// BuildSubjectReport computes the grading result for one subject and
// cycle and writes it as a workbook. Returns the written file path.
func (b *Builder) BuildSubjectReport(ctx context.Context, subjectID core.SubjectID, cycleID core.CycleID, method grading.BoundaryMethod) (string, error) {
	subject, err := b.subjects.GetByID(ctx, subjectID)
	if err != nil {
		return "", err
	}
	cycle, err := b.cycles.GetByID(ctx, cycleID)
	if err != nil {
		return "", err
	}

	records, err := b.scores.ListBySubjectCycle(ctx, subjectID, cycleID)
	if err != nil {
		return "", err
	}

	var ranges []grading.GradeRange
	if method == grading.StandardsBased {
		if ranges, err = b.ranges.ListFor(ctx, subjectID, cycleID); err != nil {
			return "", err
		}
	}

	numeric := exam.NumericScores(records)
	result, err := grading.Compute(numeric, method, ranges)
	if err != nil {
		return "", apperrors.Wrap(err, "grade computation failed")
	}

	profile, err := statistics.Describe(numeric)
	if err != nil {
		return "", apperrors.Wrap(err, "score profile failed")
	}

	data := excel.ReportData{
		SubjectCode: subject.Code,
		SubjectName: subject.Name,
		CycleName:   fmt.Sprintf("%s %d", cycle.Name, cycle.Year),
		Method:      method,
		GeneratedAt: time.Now().UTC(),
		Result:      result,
		Candidates:  assignCandidates(records, method, result.Boundaries, ranges),
		Profile:     &profile,
	}

	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return "", apperrors.Wrap(err, "failed to create report directory")
	}
	path := filepath.Join(b.outputDir, reportFilename(subject.Code, cycle.Year, method))
	if err := b.writer.Write(path, data); err != nil {
		return "", apperrors.Wrap(err, "failed to write report workbook")
	}

	b.logger.Info("[Reports] wrote %s (%d candidates, %d graded)", path, len(records), result.Distribution.Total())
	return path, nil
}

// BuildCycleReports builds one workbook per subject that has scores in
// the cycle, a bounded number at a time. Returns the written paths.
func (b *Builder) BuildCycleReports(ctx context.Context, cycleID core.CycleID, method grading.BoundaryMethod) ([]string, error) {
	subjects, err := b.subjects.List(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]string, len(subjects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cycleBuildConcurrency)

	for i, subject := range subjects {
		g.Go(func() error {
			records, err := b.scores.ListBySubjectCycle(gctx, subject.ID, cycleID)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return nil
			}
			path, err := b.BuildSubjectReport(gctx, subject.ID, cycleID, method)
			if err != nil {
				return fmt.Errorf("subject %s: %w", subject.Code, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			written = append(written, p)
		}
	}
	return written, nil
}

// assignCandidates produces the per-candidate grade rows for the report.
// Grade placement mirrors the engine: boundary banding for the
// percentile and hybrid methods, range binning for standards-based.
func assignCandidates(records []exam.ScoreRecord, method grading.BoundaryMethod, bounds grading.Boundaries, ranges []grading.GradeRange) []excel.CandidateGrade {
	usable := grading.UsableRanges(ranges)

	candidates := make([]excel.CandidateGrade, 0, len(records))
	for _, rec := range records {
		cg := excel.CandidateGrade{Number: rec.CandidateNumber, Score: rec.Score, Flag: rec.Flag}
		if rec.Flag == exam.FlagPresent && rec.Score != nil && len(bounds) > 0 {
			if method == grading.StandardsBased {
				if grade, ok := grading.BandByRanges(*rec.Score, usable); ok {
					cg.Grade = grade
				}
			} else {
				cg.Grade = grading.Band(*rec.Score, bounds)
			}
		}
		candidates = append(candidates, cg)
	}
	return candidates
}

func reportFilename(subjectCode string, year int, method grading.BoundaryMethod) string {
	code := strings.ToLower(strings.ReplaceAll(subjectCode, " ", "_"))
	return fmt.Sprintf("grade_report_%s_%d_%s_%d.xlsx", code, year, method, time.Now().UnixMilli())
}
