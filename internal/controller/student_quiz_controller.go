package controller

import (
	"smartedu_backend/internal/service"
	"smartedu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StudentQuizController serves the student side of the assessment flow:
// browsing published quizzes, taking them, checkpointing progress and
// submitting for grading.
type StudentQuizController struct {
	QuizService    *service.QuizService
	AttemptService *service.AttemptService
	GradingService *service.GradingService
	ResultService  *service.ResultService
	Logger         *zap.Logger
}

func NewStudentQuizController(quizSvc *service.QuizService, attemptSvc *service.AttemptService, gradingSvc *service.GradingService, resultSvc *service.ResultService, logger *zap.Logger) *StudentQuizController {
	return &StudentQuizController{
		QuizService:    quizSvc,
		AttemptService: attemptSvc,
		GradingService: gradingSvc,
		ResultService:  resultSvc,
		Logger:         logger,
	}
}

// @Summary List published quizzes
// @Tags Student Quizzes
// @Produce json
// @Security BearerAuth
// @Param subject query string false "Filter by subject"
// @Param search query string false "Title/subject substring"
// @Success 200 {object} util.Response
// @Router /api/student/quizzes [get]
func (c *StudentQuizController) ListQuizzes(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	quizzes, err := c.QuizService.ListPublished(user, ctx.Query("subject"), ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "list published quizzes", err)
		return
	}

	util.OK(ctx, "quizzes retrieved", gin.H{"items": quizzes, "total": len(quizzes)})
}

// @Summary Fetch a quiz to take
// @Tags Student Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /api/student/quizzes/{id} [get]
func (c *StudentQuizController) GetQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	view, err := c.QuizService.GetQuizForAttempt(ctx.Request.Context(), user, ctx.Param("id"))
	if err != nil {
		util.FailFromError(ctx, c.Logger, "get quiz for attempt", err)
		return
	}

	util.OK(ctx, "quiz retrieved", view)
}

// @Summary Save attempt progress
// @Tags Student Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SaveProgressRequest true "Progress checkpoint"
// @Success 200 {object} util.Response
// @Router /api/student/quizzes/progress [post]
func (c *StudentQuizController) SaveProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	var req service.SaveProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.AttemptService.SaveProgress(user, &req)
	if err != nil {
		util.FailFromError(ctx, c.Logger, "save progress", err)
		return
	}

	util.OK(ctx, "progress saved", attempt)
}

// @Summary Resume an in-progress attempt
// @Tags Student Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /api/student/quizzes/{id}/attempt [get]
func (c *StudentQuizController) GetAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	attempt, err := c.AttemptService.GetActive(user, ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "get attempt", err)
		return
	}
	if attempt == nil {
		util.OK(ctx, "no active attempt", nil)
		return
	}

	util.OK(ctx, "attempt retrieved", attempt)
}

// @Summary Submit answers for grading
// @Tags Student Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SubmitRequest true "Final answers"
// @Success 201 {object} util.Response
// @Router /api/student/quizzes/submit [post]
func (c *StudentQuizController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GradingService.Submit(user, &req)
	if err != nil {
		util.FailFromError(ctx, c.Logger, "submit quiz", err)
		return
	}

	util.Created(ctx, "quiz graded", result)
}

// @Summary Get own result history
// @Tags Student Quizzes
// @Produce json
// @Security BearerAuth
// @Param subject query string false "Filter by subject"
// @Success 200 {object} util.Response
// @Router /api/student/results [get]
func (c *StudentQuizController) GetResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	history, err := c.ResultService.GetStudentHistory(user, ctx.Query("subject"))
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "get student results", err)
		return
	}

	util.OK(ctx, "results retrieved", history)
}
