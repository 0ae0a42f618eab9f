package controller

import (
	"strconv"
	"time"

	"smartedu_backend/internal/service"
	"smartedu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CalendarController struct {
	Service *service.CalendarService
	Logger  *zap.Logger
}

func NewCalendarController(svc *service.CalendarService, logger *zap.Logger) *CalendarController {
	return &CalendarController{Service: svc, Logger: logger}
}

// @Summary Create a calendar event
// @Tags Calendar
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateEventRequest true "Event"
// @Success 201 {object} util.Response
// @Router /api/calendar/events [post]
func (c *CalendarController) CreateEvent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	var req service.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	event, err := c.Service.CreateEvent(user, &req)
	if err != nil {
		util.FailFromError(ctx, c.Logger, "create event", err)
		return
	}

	util.Created(ctx, "event created", event)
}

// @Summary List visible calendar events
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param from query string false "Range start (RFC3339)"
// @Param to query string false "Range end (RFC3339)"
// @Success 200 {object} util.Response
// @Router /api/calendar/events [get]
func (c *CalendarController) ListEvents(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now.AddDate(0, 2, 0)

	if v := ctx.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			from = t
		}
	}
	if v := ctx.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			to = t
		}
	}

	events, err := c.Service.ListEvents(user, from, to)
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "list events", err)
		return
	}

	util.OK(ctx, "events retrieved", gin.H{"items": events, "total": len(events)})
}

// @Summary List upcoming calendar events
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max events" default(5)
// @Success 200 {object} util.Response
// @Router /api/calendar/events/upcoming [get]
func (c *CalendarController) UpcomingEvents(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "5"))

	events, err := c.Service.UpcomingEvents(user, limit)
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "upcoming events", err)
		return
	}

	util.OK(ctx, "upcoming events retrieved", gin.H{"items": events, "total": len(events)})
}

// @Summary Calendar event counts by type
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/calendar/stats [get]
func (c *CalendarController) EventStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	stats, err := c.Service.EventStats(user)
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "event stats", err)
		return
	}

	util.OK(ctx, "event stats retrieved", stats)
}

// @Summary Delete a calendar event
// @Tags Calendar
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} util.Response
// @Router /api/calendar/events/{id} [delete]
func (c *CalendarController) DeleteEvent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	if err := c.Service.DeleteEvent(user, ctx.Param("id")); err != nil {
		util.FailFromError(ctx, c.Logger, "delete event", err)
		return
	}

	util.OK(ctx, "event deleted", nil)
}
