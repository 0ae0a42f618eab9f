package controller

import (
	"strings"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/service"
	"smartedu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	Service *service.AuthService
	Logger  *zap.Logger
}

func NewAuthController(svc *service.AuthService, logger *zap.Logger) *AuthController {
	return &AuthController{Service: svc, Logger: logger}
}

func (c *AuthController) login(ctx *gin.Context, role model.UserRole) {
	var req service.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.Login(&req, role)
	if err != nil {
		util.FailFromError(ctx, c.Logger, "login", err)
		return
	}

	util.OK(ctx, "login successful", resp)
}

// @Summary Student login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Router /api/auth/student/login [post]
func (c *AuthController) StudentLogin(ctx *gin.Context) {
	c.login(ctx, model.Student)
}

// @Summary Teacher login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Router /api/auth/teacher/login [post]
func (c *AuthController) TeacherLogin(ctx *gin.Context) {
	c.login(ctx, model.Teacher)
}

// @Summary Principal login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Router /api/auth/principal/login [post]
func (c *AuthController) PrincipalLogin(ctx *gin.Context) {
	c.login(ctx, model.Principal)
}

// @Summary Superadmin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Router /api/auth/superadmin/login [post]
func (c *AuthController) SuperadminLogin(ctx *gin.Context) {
	c.login(ctx, model.Superadmin)
}

// @Summary Verify a session token
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/auth/verify [get]
func (c *AuthController) Verify(ctx *gin.Context) {
	tokenString := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
	claims, err := c.Service.VerifyToken(tokenString)
	if err != nil {
		util.Unauthorized(ctx, "invalid or expired token")
		return
	}
	util.OK(ctx, "token valid", claims)
}

// @Summary Change own password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ChangePasswordRequest true "Password change"
// @Success 200 {object} util.Response
// @Router /api/auth/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx, "authentication required")
		return
	}

	var req service.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.ChangePassword(user, &req); err != nil {
		util.FailFromError(ctx, c.Logger, "change password", err)
		return
	}

	util.OK(ctx, "password changed", nil)
}
