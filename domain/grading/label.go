package grading

import (
	"fmt"
	"strings"
)

// GradeLabel is one of the six canonical grades awarded on a subject.
type GradeLabel string

const (
	Distinction GradeLabel = "Distinction"
	UpperCredit GradeLabel = "Upper Credit"
	Credit      GradeLabel = "Credit"
	LowerCredit GradeLabel = "Lower Credit"
	Pass        GradeLabel = "Pass"
	Fail        GradeLabel = "Fail"
)

// Labels lists all grades from highest to lowest. Order is significant:
// boundary derivation and tie-breaking rely on it.
var Labels = []GradeLabel{Distinction, UpperCredit, Credit, LowerCredit, Pass, Fail}

// PassingLabels lists the five pass-or-above grades, highest first.
var PassingLabels = Labels[:5]

// labelTable maps every accepted spelling to its canonical label. Lookup
// keys are normalized (lowercase, underscores and hyphens folded to
// spaces), so "UPPER_CREDIT", "upper-credit" and "Upper Credit" all
// resolve to UpperCredit. The table is exhaustive: anything not listed
// here is not a grade.
var labelTable = map[string]GradeLabel{
	"distinction":  Distinction,
	"upper credit": UpperCredit,
	"credit":       Credit,
	"lower credit": LowerCredit,
	"pass":         Pass,
	"fail":         Fail,
}

// ParseGradeLabel resolves a grade name to its canonical label,
// case-insensitively. Returns an error for anything outside the six
// canonical grades.
func ParseGradeLabel(s string) (GradeLabel, error) {
	key := strings.Join(strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(strings.TrimSpace(s)))), " ")
	if label, ok := labelTable[key]; ok {
		return label, nil
	}
	return "", fmt.Errorf("unknown grade label: %q", s)
}

// String returns the canonical display name.
func (g GradeLabel) String() string {
	return string(g)
}

// Key returns the uppercase snake-case form used in persisted
// configuration and API payloads (e.g. "UPPER_CREDIT").
func (g GradeLabel) Key() string {
	return strings.ToUpper(strings.ReplaceAll(string(g), " ", "_"))
}

// rank returns the position of the grade in Labels; lower is better.
func (g GradeLabel) rank() int {
	for i, label := range Labels {
		if label == g {
			return i
		}
	}
	return len(Labels)
}

// Outranks reports whether g is a higher grade than other.
func (g GradeLabel) Outranks(other GradeLabel) bool {
	return g.rank() < other.rank()
}
