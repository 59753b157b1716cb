package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jamesyinbaare/rmps-sub007/domain/exam"
	"github.com/jamesyinbaare/rmps-sub007/internal"

	"github.com/xuri/excelize/v2"
)

// candidate/score header spellings seen on submitted sheets.
var candidateHeaders = []string{"candidate_number", "candidate no", "candidate", "index_number", "index no", "index"}
var scoreHeaders = []string{"score", "mark", "marks", "raw_score"}

// SheetReader parses candidate score sheets from xlsx or csv sources.
type SheetReader struct {
	logger *internal.Logger
}

// NewSheetReader creates a new score sheet reader
func NewSheetReader() *SheetReader {
	return &SheetReader{logger: internal.DefaultLogger}
}

// ReadFile reads a score sheet from disk, dispatching on file extension.
func (r *SheetReader) ReadFile(path string) (*ParsedSheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("score sheet not found: %s", path)
	}
	defer f.Close()
	return r.Read(f, filepath.Base(path))
}

// Read parses a score sheet from a stream. filename decides the format:
// .csv is parsed as CSV, anything else as xlsx (Sheet1).
func (r *SheetReader) Read(src io.Reader, filename string) (*ParsedSheet, error) {
	var rows [][]string
	var err error

	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		rows, err = csv.NewReader(src).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
	} else {
		f, openErr := excelize.OpenReader(src)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open workbook: %w", openErr)
		}
		defer f.Close()
		rows, err = f.GetRows("Sheet1")
		if err != nil {
			return nil, fmt.Errorf("failed to read Sheet1: %w", err)
		}
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("score sheet must have a header row and at least one data row")
	}
	return r.processRows(rows, filename)
}

func (r *SheetReader) processRows(rows [][]string, filename string) (*ParsedSheet, error) {
	candidateCol, scoreCol, err := locateColumns(rows[0])
	if err != nil {
		return nil, err
	}

	sheet := &ParsedSheet{}
	for i, row := range rows[1:] {
		candidate := cellAt(row, candidateCol)
		rawScore := cellAt(row, scoreCol)

		if candidate == "" {
			sheet.Skipped++
			r.logger.Debug("[SheetReader] %s row %d: blank candidate number, skipped", filename, i+2)
			continue
		}

		flag, err := exam.ParseScoreCell(rawScore)
		if err != nil {
			sheet.Skipped++
			r.logger.Debug("[SheetReader] %s row %d: %v, skipped", filename, i+2, err)
			continue
		}

		parsed := ParsedScore{CandidateNumber: candidate, Flag: flag}
		if flag == exam.FlagPresent {
			value, err := strconv.ParseFloat(rawScore, 64)
			if err != nil || value < 0 {
				sheet.Skipped++
				r.logger.Warn("[SheetReader] %s row %d: score %q is not a non-negative number, skipped", filename, i+2, rawScore)
				continue
			}
			parsed.Score = &value
		}

		switch flag {
		case exam.FlagAbsent:
			sheet.Absent++
		case exam.FlagWithheld:
			sheet.Withheld++
		}
		sheet.Scores = append(sheet.Scores, parsed)
	}

	r.logger.Info("[SheetReader] %s: %d rows parsed (%d absent, %d withheld, %d skipped)",
		filename, len(sheet.Scores), sheet.Absent, sheet.Withheld, sheet.Skipped)
	return sheet, nil
}

// locateColumns finds the candidate-number and score columns in the
// header row, matching known spellings case-insensitively.
func locateColumns(header []string) (candidateCol, scoreCol int, err error) {
	candidateCol, scoreCol = -1, -1
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if candidateCol < 0 && matchesAny(name, candidateHeaders) {
			candidateCol = i
		}
		if scoreCol < 0 && matchesAny(name, scoreHeaders) {
			scoreCol = i
		}
	}
	if candidateCol < 0 {
		return 0, 0, fmt.Errorf("no candidate number column found in header %v", header)
	}
	if scoreCol < 0 {
		return 0, 0, fmt.Errorf("no score column found in header %v", header)
	}
	return candidateCol, scoreCol, nil
}

func matchesAny(name string, accepted []string) bool {
	for _, a := range accepted {
		if name == a || name == strings.ReplaceAll(a, "_", " ") {
			return true
		}
	}
	return false
}

// cellAt returns the trimmed cell value, tolerating ragged rows.
func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
