package api

import (
	"net/http"
	"path/filepath"

	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/grading"
	"github.com/jamesyinbaare/rmps-sub007/internal/reporting"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleSubmitReport(c *gin.Context) {
	var req submitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	method, err := grading.ParseBoundaryMethod(req.Method)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := s.reports.Submit(reporting.SubmitRequest{
		SubjectID: core.SubjectID(req.SubjectID),
		CycleID:   core.CycleID(req.CycleID),
		Method:    method,
		Remarks:   req.Remarks,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, job)
}

func (s *Server) handleGetReport(c *gin.Context) {
	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, ok := s.reports.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "report job not found"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// handleDownloadReport streams the first workbook of a completed job.
func (s *Server) handleDownloadReport(c *gin.Context) {
	id, err := core.ParseReportID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, ok := s.reports.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "report job not found"})
		return
	}
	if job.Status != reporting.JobCompleted || len(job.Files) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "report is not ready", "status": job.Status})
		return
	}

	path := job.Files[0]
	c.FileAttachment(path, filepath.Base(path))
}
