package api

import (
	"net/http"
	"time"

	"github.com/jamesyinbaare/rmps-sub007/adapters/excel"
	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/exam"

	"github.com/gin-gonic/gin"
)

// handleImportScores accepts a multipart score sheet (xlsx or csv),
// parses it and stores the records as one batch.
func (s *Server) handleImportScores(c *gin.Context) {
	subjectID, cycleID, ok := subjectCycleParams(c)
	if !ok {
		return
	}

	// Reject imports against unknown subjects or cycles up front.
	if _, err := s.subjects.GetByID(c.Request.Context(), subjectID); err != nil {
		respondError(c, err)
		return
	}
	cycle, err := s.cycles.GetByID(c.Request.Context(), cycleID)
	if err != nil {
		respondError(c, err)
		return
	}
	if cycle.Status != exam.CycleOpen {
		c.JSON(http.StatusConflict, gin.H{"error": "exam cycle is closed"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	sheet, err := excel.NewSheetReader().Read(src, fileHeader.Filename)
	if err != nil {
		s.logger.Warn("[API] score sheet rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, records := buildBatch(subjectID, cycleID, fileHeader.Filename, sheet)
	if err := s.scores.CreateBatch(c.Request.Context(), batch, records); err != nil {
		s.logger.Error("[API] failed to store score batch: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"batch": batch})
}

func (s *Server) handleListBatches(c *gin.Context) {
	subjectID, cycleID, ok := subjectCycleParams(c)
	if !ok {
		return
	}

	batches, err := s.scores.ListBatches(c.Request.Context(), subjectID, cycleID)
	if err != nil {
		s.logger.Error("[API] failed to list batches: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches, "count": len(batches)})
}

// buildBatch turns a parsed sheet into a batch row plus score records.
func buildBatch(subjectID core.SubjectID, cycleID core.CycleID, sourceFile string, sheet *excel.ParsedSheet) (*exam.ScoreBatch, []exam.ScoreRecord) {
	now := time.Now().UTC()
	batch := &exam.ScoreBatch{
		ID:            core.BatchID(core.NewID()),
		SubjectID:     subjectID,
		CycleID:       cycleID,
		SourceFile:    sourceFile,
		RecordCount:   len(sheet.Scores),
		AbsentCount:   sheet.Absent,
		WithheldCount: sheet.Withheld,
		SkippedCount:  sheet.Skipped,
		ImportedAt:    now,
	}

	records := make([]exam.ScoreRecord, 0, len(sheet.Scores))
	for _, parsed := range sheet.Scores {
		records = append(records, exam.ScoreRecord{
			ID:              core.NewID(),
			SubjectID:       subjectID,
			CycleID:         cycleID,
			BatchID:         batch.ID,
			CandidateNumber: parsed.CandidateNumber,
			Score:           parsed.Score,
			Flag:            parsed.Flag,
			CreatedAt:       now,
		})
	}
	return batch, records
}
