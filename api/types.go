package api

import (
	"github.com/jamesyinbaare/rmps-sub007/domain/grading"
)

// createSubjectRequest is the POST /subjects payload.
type createSubjectRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// createCycleRequest is the POST /cycles payload.
type createCycleRequest struct {
	Name string `json:"name" binding:"required"`
	Year int    `json:"year" binding:"required"`
}

// gradeRangePayload is one configured band in the grade-ranges payload.
// Grade accepts any spelling the label parser does ("UPPER_CREDIT",
// "Upper Credit", ...).
type gradeRangePayload struct {
	Grade string   `json:"grade" binding:"required"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
}

// replaceGradeRangesRequest is the PUT grade-ranges payload.
type replaceGradeRangesRequest struct {
	Ranges []gradeRangePayload `json:"ranges" binding:"required"`
}

// submitReportRequest is the POST /reports payload.
type submitReportRequest struct {
	SubjectID string `json:"subject_id"`
	CycleID   string `json:"cycle_id" binding:"required"`
	Method    string `json:"method" binding:"required"`
	Remarks   string `json:"remarks"`
}

// gradingResponse serializes an engine result with string grade keys in
// their persisted form (e.g. "UPPER_CREDIT").
type gradingResponse struct {
	Method       string             `json:"method"`
	Scores       int                `json:"scores"`
	Boundaries   map[string]float64 `json:"boundaries"`
	Distribution map[string]int     `json:"distribution"`
	Unclassified int                `json:"unclassified"`
}

func newGradingResponse(method grading.BoundaryMethod, scoreCount int, result grading.Result) gradingResponse {
	resp := gradingResponse{
		Method:       string(method),
		Scores:       scoreCount,
		Boundaries:   make(map[string]float64, len(result.Boundaries)),
		Distribution: make(map[string]int, len(result.Distribution)),
		Unclassified: result.Unclassified,
	}
	for grade, cutoff := range result.Boundaries {
		resp.Boundaries[grade.Key()] = cutoff
	}
	for grade, count := range result.Distribution {
		resp.Distribution[grade.Key()] = count
	}
	return resp
}
