package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/workforce-scheduler/pkg/core/services"
	"github.com/jakechorley/workforce-scheduler/pkg/runlock"
)

// AutoScheduleBody is the JSON body of an auto-schedule request
type AutoScheduleBody struct {
	WeekStart           string   `json:"weekStart" binding:"required,datetime=2006-01-02"`
	LocationIDs         []string `json:"locationIds"`
	RespectAvailability *bool    `json:"respectAvailability"`
	MaxHoursPerEmployee *float64 `json:"maxHoursPerEmployee" binding:"omitempty,gte=0"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) autoSchedule(c *gin.Context) {
	var body AutoScheduleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	weekStart, err := time.ParseInLocation(scheduler.DateLayout, body.WeekStart, s.deps.Cfg.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "weekStart must be a YYYY-MM-DD date"})
		return
	}

	result, err := services.RunAutoSchedule(
		c.Request.Context(),
		s.deps.Database,
		s.deps.Oracle,
		s.deps.Locker,
		s.deps.Cfg,
		s.deps.Logger,
		services.AutoScheduleRequest{
			OrganizationID:      c.Param("organizationId"),
			WeekStart:           weekStart,
			LocationIDs:         body.LocationIDs,
			RespectAvailability: body.RespectAvailability,
			MaxHoursPerEmployee: body.MaxHoursPerEmployee,
		},
	)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) listTemplates(c *gin.Context) {
	templates, err := services.ListTemplates(
		c.Request.Context(),
		s.deps.Database,
		s.deps.Logger,
		c.Param("organizationId"),
		c.QueryArray("locationId"),
	)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (s *Server) verifyAudit(c *gin.Context) {
	report, err := services.VerifyAuditLog(c.Request.Context(), s.deps.Database, s.deps.Logger)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// fail maps service errors onto status codes
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, runlock.ErrLocked):
		c.JSON(http.StatusConflict, errorResponse{Error: "a scheduling run for this week is already in progress"})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
