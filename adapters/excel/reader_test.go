package excel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jamesyinbaare/rmps-sub007/domain/exam"

	"github.com/xuri/excelize/v2"
)

func TestSheetReader_CSV(t *testing.T) {
	csvData := strings.Join([]string{
		"candidate_number,score",
		"C001,78.5",
		"C002,A",
		"C003,AA",
		"C004,",
		"C005,notanumber",
		"C006,-4",
		",55",
		"C007,0",
	}, "\n")

	sheet, err := NewSheetReader().Read(strings.NewReader(csvData), "scores.csv")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	if len(sheet.Scores) != 4 { // C001, C002, C003, C007
		t.Fatalf("expected 4 parsed rows, got %d: %+v", len(sheet.Scores), sheet.Scores)
	}
	if sheet.Absent != 1 || sheet.Withheld != 1 {
		t.Errorf("Absent/Withheld = %d/%d, want 1/1", sheet.Absent, sheet.Withheld)
	}
	// blank score, bad number, negative, blank candidate
	if sheet.Skipped != 4 {
		t.Errorf("Skipped = %d, want 4", sheet.Skipped)
	}

	first := sheet.Scores[0]
	if first.CandidateNumber != "C001" || first.Flag != exam.FlagPresent || first.Score == nil || *first.Score != 78.5 {
		t.Errorf("unexpected first row: %+v", first)
	}
	if sheet.Scores[1].Flag != exam.FlagAbsent || sheet.Scores[1].Score != nil {
		t.Errorf("expected absent sentinel for C002: %+v", sheet.Scores[1])
	}
	if sheet.Scores[2].Flag != exam.FlagWithheld {
		t.Errorf("expected withheld sentinel for C003: %+v", sheet.Scores[2])
	}
	if last := sheet.Scores[3]; last.Score == nil || *last.Score != 0 {
		t.Errorf("zero is a valid score: %+v", last)
	}
}

func TestSheetReader_Xlsx(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Index No", "Mark"},
		{"X100", 61},
		{"X101", "A"},
		{"X102", 88.25},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("failed to build workbook: %v", err)
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}

	sheet, err := NewSheetReader().Read(&buf, "scores.xlsx")
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if len(sheet.Scores) != 3 {
		t.Fatalf("expected 3 parsed rows, got %d", len(sheet.Scores))
	}
	if sheet.Scores[2].Score == nil || *sheet.Scores[2].Score != 88.25 {
		t.Errorf("unexpected third row: %+v", sheet.Scores[2])
	}
}

func TestSheetReader_HeaderErrors(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"missing score column", "candidate_number,remark\nC001,good"},
		{"missing candidate column", "name,score\nAda,50"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSheetReader().Read(strings.NewReader(tc.csv), "bad.csv"); err == nil {
				t.Error("expected header error")
			}
		})
	}
}

func TestSheetReader_NeedsDataRows(t *testing.T) {
	if _, err := NewSheetReader().Read(strings.NewReader("candidate_number,score"), "empty.csv"); err == nil {
		t.Error("expected error for header-only sheet")
	}
}
