package controller

import (
	"smartedu_backend/internal/model"
	"smartedu_backend/internal/service"
	"smartedu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	Service *service.UserService
	Logger  *zap.Logger
}

func NewUserController(svc *service.UserService, logger *zap.Logger) *UserController {
	return &UserController{Service: svc, Logger: logger}
}

// @Summary Create a teacher or student account
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateUserRequest true "New user"
// @Success 201 {object} util.Response
// @Router /api/admin/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	var req service.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	created, err := c.Service.CreateUser(user, &req)
	if err != nil {
		util.FailFromError(ctx, c.Logger, "create user", err)
		return
	}

	util.Created(ctx, "user created", created)
}

// @Summary List school users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Param class query string false "Filter by class"
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	role := model.UserRole(ctx.Query("role"))
	class := ctx.Query("class")

	users, err := c.Service.ListUsers(user, role, class)
	if err != nil {
		util.LogInternalError(ctx, c.Logger, "list users", err)
		return
	}

	util.OK(ctx, "users retrieved", gin.H{"items": users, "total": len(users)})
}

// @Summary Disable a user account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/disable [put]
func (c *UserController) DisableUser(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	if err := c.Service.SetDisabled(user, ctx.Param("id"), true); err != nil {
		util.FailFromError(ctx, c.Logger, "disable user", err)
		return
	}

	util.OK(ctx, "user disabled", nil)
}

// @Summary Re-enable a user account
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/enable [put]
func (c *UserController) EnableUser(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	if err := c.Service.SetDisabled(user, ctx.Param("id"), false); err != nil {
		util.FailFromError(ctx, c.Logger, "enable user", err)
		return
	}

	util.OK(ctx, "user enabled", nil)
}
