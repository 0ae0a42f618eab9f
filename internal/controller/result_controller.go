package controller

import (
	"strconv"
	"time"

	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/service"
	"smartedu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ResultController struct {
	Service *service.ResultService
	Logger  *zap.Logger
}

func NewResultController(svc *service.ResultService, logger *zap.Logger) *ResultController {
	return &ResultController{Service: svc, Logger: logger}
}

// @Summary List submission results
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param quiz_id query string false "Filter by quiz"
// @Param subject query string false "Filter by subject"
// @Param class query string false "Filter by class"
// @Param student_email query string false "Filter by student"
// @Param from query string false "Submitted at or after (RFC3339)"
// @Param to query string false "Submitted before (RFC3339)"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/teacher/results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filter := repository.ResultFilter{
		QuizID:       ctx.Query("quiz_id"),
		Subject:      ctx.Query("subject"),
		Class:        ctx.Query("class"),
		StudentEmail: ctx.Query("student_email"),
		Page:         page,
		Limit:        limit,
	}
	if v := ctx.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.From = t
		}
	}
	if v := ctx.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.To = t
		}
	}

	results, total, err := c.Service.ListForTeacher(user, filter)
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "list results", err)
		return
	}

	util.OK(ctx, "results retrieved", gin.H{"items": results, "total": total})
}

// @Summary Per-quiz score analytics
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Param quiz_id query string false "Restrict to one quiz"
// @Success 200 {object} util.Response
// @Router /api/teacher/results/analytics [get]
func (c *ResultController) QuizAnalytics(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	rows, err := c.Service.QuizAnalytics(user, ctx.Query("quiz_id"))
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "quiz analytics", err)
		return
	}

	util.OK(ctx, "analytics retrieved", rows)
}

// @Summary Per-subject score analytics
// @Tags Results
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/results/analytics/subjects [get]
func (c *ResultController) SubjectAnalytics(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	rows, err := c.Service.SubjectAnalytics(user)
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "subject analytics", err)
		return
	}

	util.OK(ctx, "analytics retrieved", rows)
}
