package controller

import (
	"strconv"

	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/service"
	"smartedu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type QuestionController struct {
	Service *service.QuestionService
	Logger  *zap.Logger
}

func NewQuestionController(svc *service.QuestionService, logger *zap.Logger) *QuestionController {
	return &QuestionController{Service: svc, Logger: logger}
}

// @Summary Add a question to the bank
// @Tags Question Bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AddQuestionRequest true "Question"
// @Success 201 {object} util.Response
// @Router /api/teacher/questions [post]
func (c *QuestionController) AddQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	var req service.AddQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.AddQuestion(user, &req)
	if err != nil {
		util.FailFromError(ctx, c.Logger, "add question", err)
		return
	}

	util.Created(ctx, "question added", question)
}

// @Summary List bank questions
// @Tags Question Bank
// @Produce json
// @Security BearerAuth
// @Param subject query string false "Filter by subject"
// @Param topic query string false "Filter by topic"
// @Param class query string false "Filter by class"
// @Param question_type query string false "Filter by type"
// @Param difficulty query string false "Filter by difficulty"
// @Param search query string false "Search in question text"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/teacher/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filter := repository.QuestionFilter{
		Subject:      ctx.Query("subject"),
		Topic:        ctx.Query("topic"),
		Class:        ctx.Query("class"),
		QuestionType: ctx.Query("question_type"),
		Difficulty:   ctx.Query("difficulty"),
		Search:       ctx.Query("search"),
		Page:         page,
		Limit:        limit,
	}

	questions, total, err := c.Service.ListQuestions(user, filter)
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "list questions", err)
		return
	}

	util.OK(ctx, "questions retrieved", gin.H{"items": questions, "total": total})
}

// @Summary Get the bank's filter vocabulary
// @Tags Question Bank
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/vocabulary [get]
func (c *QuestionController) GetVocabulary(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	vocab, err := c.Service.GetVocabulary(user)
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "get vocabulary", err)
		return
	}

	util.OK(ctx, "vocabulary retrieved", vocab)
}

// @Summary Delete a bank question
// @Tags Question Bank
// @Produce json
// @Security BearerAuth
// @Param id path string true "Question ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	if err := c.Service.DeleteQuestion(user, ctx.Param("id")); err != nil {
		util.FailFromError(ctx, c.Logger, "delete question", err)
		return
	}

	util.OK(ctx, "question deleted", nil)
}
