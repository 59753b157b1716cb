package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SubjectID ID
	CycleID   ID
	BatchID   ID
	ReportID  ID
)

// String conversions for domain IDs
func (id SubjectID) String() string { return ID(id).String() }
func (id CycleID) String() string   { return ID(id).String() }
func (id BatchID) String() string   { return ID(id).String() }
func (id ReportID) String() string  { return ID(id).String() }

// ParseSubjectID parses a string into SubjectID
func ParseSubjectID(s string) (SubjectID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("subject ID cannot be empty")
	}
	return SubjectID(s), nil
}

// ParseCycleID parses a string into CycleID
func ParseCycleID(s string) (CycleID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("cycle ID cannot be empty")
	}
	return CycleID(s), nil
}

// ParseReportID parses a string into ReportID
func ParseReportID(s string) (ReportID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("report ID cannot be empty")
	}
	return ReportID(s), nil
}
