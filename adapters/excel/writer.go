package excel

import (
	"fmt"
	"time"

	"github.com/jamesyinbaare/rmps-sub007/domain/exam"
	"github.com/jamesyinbaare/rmps-sub007/domain/grading"
	"github.com/jamesyinbaare/rmps-sub007/internal/statistics"

	"github.com/xuri/excelize/v2"
)

// CandidateGrade is one candidate's outcome for the report workbook.
type CandidateGrade struct {
	Number string
	Score  *float64
	Flag   exam.ScoreFlag
	Grade  grading.GradeLabel
}

// ReportData carries everything the grade report workbook displays.
type ReportData struct {
	SubjectCode string
	SubjectName string
	CycleName   string
	Method      grading.BoundaryMethod
	GeneratedAt time.Time
	Result      grading.Result
	Candidates  []CandidateGrade
	Profile     *statistics.Profile
}

// ReportWriter produces grade report workbooks.
type ReportWriter struct{}

// NewReportWriter creates a new report writer
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// Write saves the grade report as an xlsx workbook at path.
func (w *ReportWriter) Write(path string, data ReportData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummarySheet(f, data); err != nil {
		return err
	}
	if err := w.writeBoundariesSheet(f, data.Result.Boundaries); err != nil {
		return err
	}
	if err := w.writeDistributionSheet(f, data.Result); err != nil {
		return err
	}
	if err := w.writeCandidatesSheet(f, data.Candidates); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report workbook: %w", err)
	}
	return nil
}

func (w *ReportWriter) writeSummarySheet(f *excelize.File, data ReportData) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Subject", fmt.Sprintf("%s - %s", data.SubjectCode, data.SubjectName)},
		{"Cycle", data.CycleName},
		{"Method", string(data.Method)},
		{"Generated", data.GeneratedAt.Format(time.RFC3339)},
		{"Candidates", len(data.Candidates)},
		{"Graded", data.Result.Distribution.Total()},
		{"Unclassified", data.Result.Unclassified},
	}
	if data.Profile != nil {
		rows = append(rows,
			[]interface{}{"Mean", data.Profile.Mean},
			[]interface{}{"Median", data.Profile.Median},
			[]interface{}{"Std Dev", data.Profile.StdDev},
			[]interface{}{"Min", data.Profile.Min},
			[]interface{}{"Max", data.Profile.Max},
		)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	return nil
}

func (w *ReportWriter) writeBoundariesSheet(f *excelize.File, bounds grading.Boundaries) error {
	const sheet = "Boundaries"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create boundaries sheet: %w", err)
	}

	header := []interface{}{"Grade", "Minimum Score"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write boundaries header: %w", err)
	}
	rowIdx := 2
	for _, grade := range grading.Labels {
		cutoff, ok := bounds[grade]
		if !ok {
			continue
		}
		row := []interface{}{grade.String(), cutoff}
		cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write boundary row: %w", err)
		}
		rowIdx++
	}
	return nil
}

func (w *ReportWriter) writeDistributionSheet(f *excelize.File, result grading.Result) error {
	const sheet = "Distribution"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create distribution sheet: %w", err)
	}

	header := []interface{}{"Grade", "Count"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write distribution header: %w", err)
	}
	for i, grade := range grading.Labels {
		row := []interface{}{grade.String(), result.Distribution[grade]}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write distribution row: %w", err)
		}
	}
	if result.Unclassified > 0 {
		row := []interface{}{"Unclassified", result.Unclassified}
		cell, _ := excelize.CoordinatesToCellName(1, len(grading.Labels)+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write unclassified row: %w", err)
		}
	}
	return nil
}

func (w *ReportWriter) writeCandidatesSheet(f *excelize.File, candidates []CandidateGrade) error {
	const sheet = "Candidates"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	header := []interface{}{"Candidate Number", "Score", "Grade"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write candidates header: %w", err)
	}
	for i, c := range candidates {
		var score interface{}
		var grade string
		switch {
		case c.Flag == exam.FlagAbsent:
			score, grade = "A", "-"
		case c.Flag == exam.FlagWithheld:
			score, grade = "AA", "-"
		case c.Score != nil:
			score, grade = *c.Score, c.Grade.String()
		}
		row := []interface{}{c.Number, score, grade}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write candidate row: %w", err)
		}
	}
	return nil
}
