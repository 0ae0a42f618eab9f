package controller

import (
	"smartedu_backend/internal/service"
	"smartedu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuizController struct {
	Service *service.QuizService
	Logger  *zap.Logger
}

func NewQuizController(svc *service.QuizService, logger *zap.Logger) *QuizController {
	return &QuizController{Service: svc, Logger: logger}
}

// @Summary Create a quiz
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateQuizRequest true "Quiz"
// @Success 201 {object} util.Response
// @Router /api/teacher/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	var req service.CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.CreateQuiz(user, &req)
	if err != nil {
		util.FailFromError(ctx, c.Logger, "create quiz", err)
		return
	}

	util.Created(ctx, "quiz created", quiz)
}

// @Summary List own quizzes
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	quizzes, err := c.Service.ListForTeacher(user)
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "list quizzes", err)
		return
	}

	util.OK(ctx, "quizzes retrieved", gin.H{"items": quizzes, "total": len(quizzes)})
}

// @Summary Get a quiz with its answer key
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	quiz, err := c.Service.GetQuizForTeacher(user, ctx.Param("id"))
	if err != nil {
		util.FailFromError(ctx, c.Logger, "get quiz", err)
		return
	}

	util.OK(ctx, "quiz retrieved", quiz)
}

// @Summary Publish a quiz
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/{id}/publish [put]
func (c *QuizController) PublishQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	if err := c.Service.PublishQuiz(ctx.Request.Context(), user, ctx.Param("id")); err != nil {
		util.FailFromError(ctx, c.Logger, "publish quiz", err)
		return
	}

	util.OK(ctx, "quiz published", nil)
}

// @Summary Unpublish a quiz
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/{id}/unpublish [put]
func (c *QuizController) UnpublishQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	if err := c.Service.UnpublishQuiz(ctx.Request.Context(), user, ctx.Param("id")); err != nil {
		util.FailFromError(ctx, c.Logger, "unpublish quiz", err)
		return
	}

	util.OK(ctx, "quiz unpublished", nil)
}

// @Summary Delete a quiz
// @Tags Quizzes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	if err := c.Service.DeleteQuiz(ctx.Request.Context(), user, ctx.Param("id")); err != nil {
		util.FailFromError(ctx, c.Logger, "delete quiz", err)
		return
	}

	util.OK(ctx, "quiz deleted", nil)
}
