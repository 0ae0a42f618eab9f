package controller

import (
	"strconv"

	"smartedu_backend/internal/service"
	"smartedu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContentController struct {
	Service *service.ContentService
	Logger  *zap.Logger
}

func NewContentController(svc *service.ContentService, logger *zap.Logger) *ContentController {
	return &ContentController{Service: svc, Logger: logger}
}

// @Summary Upload a teaching resource
// @Tags Content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param subject formData string false "Subject"
// @Param class formData string false "Class"
// @Success 201 {object} util.Response
// @Router /api/teacher/content [post]
func (c *ContentController) UploadContent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	req := &service.UploadContentRequest{
		Title:       ctx.PostForm("title"),
		Description: ctx.PostForm("description"),
		Subject:     ctx.PostForm("subject"),
		Class:       ctx.PostForm("class"),
	}

	item, err := c.Service.UploadContent(ctx.Request.Context(), user, req, header)
	if err != nil {
		util.FailFromError(ctx, c.Logger, "upload content", err)
		return
	}

	util.Created(ctx, "content uploaded", item)
}

// @Summary List teaching resources
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param subject query string false "Filter by subject"
// @Param class query string false "Filter by class"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/content [get]
func (c *ContentController) ListContent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	items, total, err := c.Service.ListContent(user, ctx.Query("subject"), ctx.Query("class"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "list content", err)
		return
	}

	util.OK(ctx, "content retrieved", gin.H{"items": items, "total": total})
}

// @Summary Like a teaching resource
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Content ID"
// @Success 200 {object} util.Response
// @Router /api/content/{id}/like [post]
func (c *ContentController) LikeContent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	item, err := c.Service.LikeContent(user, ctx.Param("id"))
	if err != nil {
		util.FailFromError(ctx, c.Logger, "like content", err)
		return
	}

	util.OK(ctx, "content liked", item)
}

// @Summary Delete a teaching resource
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path string true "Content ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/content/{id} [delete]
func (c *ContentController) DeleteContent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	if err := c.Service.DeleteContent(ctx.Request.Context(), user, ctx.Param("id")); err != nil {
		util.FailFromError(ctx, c.Logger, "delete content", err)
		return
	}

	util.OK(ctx, "content deleted", nil)
}
