package exam

import (
	"fmt"
	"strings"
	"time"

	"github.com/jamesyinbaare/rmps-sub007/domain/core"
)

// Subject is one examinable subject in the catalog.
type Subject struct {
	ID        core.SubjectID `json:"id" db:"id"`
	Code      string         `json:"code" db:"code"`
	Name      string         `json:"name" db:"name"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// CycleStatus tracks whether an examination cycle still accepts data.
type CycleStatus string

const (
	CycleOpen   CycleStatus = "open"
	CycleClosed CycleStatus = "closed"
)

// ExamCycle is one examination sitting (e.g. "May/June 2026").
type ExamCycle struct {
	ID        core.CycleID `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Year      int          `json:"year" db:"year"`
	Status    CycleStatus  `json:"status" db:"status"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// ScoreFlag distinguishes a numeric mark from the sentinel states a score
// sheet can carry for a candidate.
type ScoreFlag string

const (
	// FlagPresent means the candidate sat the paper and Score is set.
	FlagPresent ScoreFlag = "present"
	// FlagAbsent is the "A" sentinel: the candidate did not sit.
	FlagAbsent ScoreFlag = "absent"
	// FlagWithheld is the "AA" sentinel: the result is withheld.
	FlagWithheld ScoreFlag = "withheld"
)

// ParseScoreCell interprets one score-sheet cell. Numeric cells become
// present records; the absence sentinels map to their flags.
func ParseScoreCell(raw string) (ScoreFlag, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "A":
		return FlagAbsent, nil
	case "AA":
		return FlagWithheld, nil
	case "":
		return "", fmt.Errorf("empty score cell")
	}
	return FlagPresent, nil
}

// ScoreRecord is one candidate's mark on a subject within a cycle. Score
// is nil unless Flag is FlagPresent.
type ScoreRecord struct {
	ID              core.ID        `json:"id" db:"id"`
	SubjectID       core.SubjectID `json:"subject_id" db:"subject_id"`
	CycleID         core.CycleID   `json:"cycle_id" db:"cycle_id"`
	BatchID         core.BatchID   `json:"batch_id" db:"batch_id"`
	CandidateNumber string         `json:"candidate_number" db:"candidate_number"`
	Score           *float64       `json:"score" db:"score"`
	Flag            ScoreFlag      `json:"flag" db:"flag"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
}

// ScoreBatch records the provenance of one score-sheet import.
type ScoreBatch struct {
	ID            core.BatchID   `json:"id" db:"id"`
	SubjectID     core.SubjectID `json:"subject_id" db:"subject_id"`
	CycleID       core.CycleID   `json:"cycle_id" db:"cycle_id"`
	SourceFile    string         `json:"source_file" db:"source_file"`
	RecordCount   int            `json:"record_count" db:"record_count"`
	AbsentCount   int            `json:"absent_count" db:"absent_count"`
	WithheldCount int            `json:"withheld_count" db:"withheld_count"`
	SkippedCount  int            `json:"skipped_count" db:"skipped_count"`
	ImportedAt    time.Time      `json:"imported_at" db:"imported_at"`
}

// NumericScores extracts the cleaned numeric marks that feed grade
// computation: present records only, in input order.
func NumericScores(records []ScoreRecord) []float64 {
	scores := make([]float64, 0, len(records))
	for _, rec := range records {
		if rec.Flag == FlagPresent && rec.Score != nil {
			scores = append(scores, *rec.Score)
		}
	}
	return scores
}
