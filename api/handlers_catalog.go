package api

import (
	"net/http"
	"time"

	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/exam"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleCreateSubject(c *gin.Context) {
	var req createSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	subject := &exam.Subject{
		ID:        core.SubjectID(core.NewID()),
		Code:      req.Code,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.subjects.Create(c.Request.Context(), subject); err != nil {
		s.logger.Error("[API] failed to create subject: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (s *Server) handleListSubjects(c *gin.Context) {
	subjects, err := s.subjects.List(c.Request.Context())
	if err != nil {
		s.logger.Error("[API] failed to list subjects: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects, "count": len(subjects)})
}

func (s *Server) handleGetSubject(c *gin.Context) {
	id, err := core.ParseSubjectID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, err := s.subjects.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subject)
}

func (s *Server) handleCreateCycle(c *gin.Context) {
	var req createCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cycle := &exam.ExamCycle{
		ID:        core.CycleID(core.NewID()),
		Name:      req.Name,
		Year:      req.Year,
		Status:    exam.CycleOpen,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.cycles.Create(c.Request.Context(), cycle); err != nil {
		s.logger.Error("[API] failed to create cycle: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cycle)
}

func (s *Server) handleListCycles(c *gin.Context) {
	cycles, err := s.cycles.List(c.Request.Context())
	if err != nil {
		s.logger.Error("[API] failed to list cycles: %v", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cycles": cycles, "count": len(cycles)})
}
