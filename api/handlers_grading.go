package api

import (
	"net/http"
	"strconv"

	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/exam"
	"github.com/jamesyinbaare/rmps-sub007/domain/grading"
	"github.com/jamesyinbaare/rmps-sub007/internal/statistics"

	"github.com/gin-gonic/gin"
)

// subjectCycleParams pulls the subject and cycle IDs out of the route.
func subjectCycleParams(c *gin.Context) (core.SubjectID, core.CycleID, bool) {
	subjectID, err := core.ParseSubjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}
	cycleID, err := core.ParseCycleID(c.Param("cycleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}
	return subjectID, cycleID, true
}

func (s *Server) handleGetGradeRanges(c *gin.Context) {
	subjectID, cycleID, ok := subjectCycleParams(c)
	if !ok {
		return
	}

	ranges, err := s.ranges.ListFor(c.Request.Context(), subjectID, cycleID)
	if err != nil {
		s.logger.Error("[API] failed to list grade ranges: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ranges": ranges, "count": len(ranges)})
}

func (s *Server) handleReplaceGradeRanges(c *gin.Context) {
	subjectID, cycleID, ok := subjectCycleParams(c)
	if !ok {
		return
	}

	var req replaceGradeRangesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ranges := make([]grading.GradeRange, 0, len(req.Ranges))
	for _, payload := range req.Ranges {
		grade, err := grading.ParseGradeLabel(payload.Grade)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ranges = append(ranges, grading.GradeRange{Grade: grade, Min: payload.Min, Max: payload.Max})
	}

	if err := s.ranges.Replace(c.Request.Context(), subjectID, cycleID, ranges); err != nil {
		s.logger.Error("[API] failed to replace grade ranges: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ranges": ranges, "count": len(ranges)})
}

// handleGrading runs the boundary engine over the stored scores. Empty
// results are normal states: no scores yet, or standards-based grading
// awaiting range configuration.
func (s *Server) handleGrading(c *gin.Context) {
	subjectID, cycleID, ok := subjectCycleParams(c)
	if !ok {
		return
	}

	method, err := grading.ParseBoundaryMethod(c.DefaultQuery("method", string(grading.PercentileBased)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := s.scores.ListBySubjectCycle(c.Request.Context(), subjectID, cycleID)
	if err != nil {
		s.logger.Error("[API] failed to list scores: %v", err)
		respondError(c, err)
		return
	}

	var ranges []grading.GradeRange
	if method == grading.StandardsBased {
		if ranges, err = s.ranges.ListFor(c.Request.Context(), subjectID, cycleID); err != nil {
			s.logger.Error("[API] failed to list grade ranges: %v", err)
			respondError(c, err)
			return
		}
	}

	scores := exam.NumericScores(records)
	result, err := grading.Compute(scores, method, ranges)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGradingResponse(method, len(scores), result))
}

func (s *Server) handleStatistics(c *gin.Context) {
	subjectID, cycleID, ok := subjectCycleParams(c)
	if !ok {
		return
	}

	bins, err := strconv.Atoi(c.DefaultQuery("bins", "10"))
	if err != nil || bins < 1 || bins > 100 {
		bins = 10
	}

	records, err := s.scores.ListBySubjectCycle(c.Request.Context(), subjectID, cycleID)
	if err != nil {
		s.logger.Error("[API] failed to list scores: %v", err)
		respondError(c, err)
		return
	}

	scores := exam.NumericScores(records)
	profile, err := statistics.Describe(scores)
	if err != nil {
		s.logger.Error("[API] failed to describe scores: %v", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":   profile,
		"histogram": statistics.Histogram(scores, bins),
	})
}
