package api

import (
	"net/http"

	"github.com/jamesyinbaare/rmps-sub007/internal"
	apperrors "github.com/jamesyinbaare/rmps-sub007/internal/errors"
	"github.com/jamesyinbaare/rmps-sub007/internal/reporting"
	"github.com/jamesyinbaare/rmps-sub007/ports"

	"github.com/gin-gonic/gin"
)

// Server is the grading REST API.
type Server struct {
	router   *gin.Engine
	subjects ports.SubjectRepository
	cycles   ports.CycleRepository
	scores   ports.ScoreRepository
	ranges   ports.GradeRangeRepository
	reports  *reporting.Manager
	logger   *internal.Logger
}

// NewServer wires repositories and the report manager into the router.
func NewServer(
	subjects ports.SubjectRepository,
	cycles ports.CycleRepository,
	scores ports.ScoreRepository,
	ranges ports.GradeRangeRepository,
	reports *reporting.Manager,
) *Server {
	s := &Server{
		router:   gin.Default(),
		subjects: subjects,
		cycles:   cycles,
		scores:   scores,
		ranges:   ranges,
		reports:  reports,
		logger:   internal.DefaultLogger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.router.Group("/api/v1")

	v1.POST("/subjects", s.handleCreateSubject)
	v1.GET("/subjects", s.handleListSubjects)
	v1.GET("/subjects/:id", s.handleGetSubject)

	v1.POST("/cycles", s.handleCreateCycle)
	v1.GET("/cycles", s.handleListCycles)

	sc := v1.Group("/subjects/:id/cycles/:cycleID")
	sc.GET("/grade-ranges", s.handleGetGradeRanges)
	sc.PUT("/grade-ranges", s.handleReplaceGradeRanges)
	sc.POST("/scores/import", s.handleImportScores)
	sc.GET("/scores/batches", s.handleListBatches)
	sc.GET("/grading", s.handleGrading)
	sc.GET("/statistics", s.handleStatistics)

	v1.POST("/reports", s.handleSubmitReport)
	v1.GET("/reports/:id", s.handleGetReport)
	v1.GET("/reports/:id/download", s.handleDownloadReport)
}

// Start starts the API server
func (s *Server) Start(addr string) error {
	s.logger.Info("[API] listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// respondError maps application error codes onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeInvalidInput, apperrors.CodeImportError:
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
