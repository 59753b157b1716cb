package excel

import "github.com/jamesyinbaare/rmps-sub007/domain/exam"

// ParsedScore is one cleaned row from a score sheet.
type ParsedScore struct {
	CandidateNumber string
	Score           *float64
	Flag            exam.ScoreFlag
}

// ParsedSheet is the result of reading one score sheet.
type ParsedSheet struct {
	Scores   []ParsedScore
	Absent   int // "A" sentinel rows
	Withheld int // "AA" sentinel rows
	Skipped  int // rows dropped: blank candidate, blank or unparseable score
}
