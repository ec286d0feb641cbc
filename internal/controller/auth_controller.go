package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *service.AuthService
}

func NewAuthController(auth *service.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

type SignupRequest struct {
	FullName string `json:"fullName" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// sessionPayload 登录/注册成功返回的载荷
type sessionPayload struct {
	Token     string      `json:"token"`
	ExpiresAt string      `json:"expiresAt"`
	User      *model.User `json:"user"`
}

func newSessionPayload(user *model.User, session *model.Session) sessionPayload {
	return sessionPayload{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(util.TimeFormat),
		User:      user,
	}
}

// Signup 用户注册
// @Summary 注册新账号
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "注册信息"
// @Success 201 {object} util.Response
// @Router /api/v1/auth/signup [post]
func (ctl *AuthController) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, session, err := ctl.Auth.Signup(req.FullName, req.Email, req.Password)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, newSessionPayload(user, session))
}

// Login 用户登录
// @Summary 邮箱密码登录
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} util.Response
// @Router /api/v1/auth/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, session, err := ctl.Auth.Login(req.Email, req.Password)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, newSessionPayload(user, session))
}

// Logout 退出登录
// @Summary 撤销当前会话令牌
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/auth/logout [post]
func (ctl *AuthController) Logout(c *gin.Context) {
	token := middleware.ExtractToken(c)
	if err := ctl.Auth.Logout(token); err != nil {
		util.HandleError(c, err)
		return
	}
	util.SuccessMessage(c, "logged out", nil)
}

// Profile 当前用户信息
// @Summary 查看个人资料
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/auth/profile [get]
func (ctl *AuthController) Profile(c *gin.Context) {
	util.Success(c, middleware.GetActor(c))
}

// ChangePassword 修改密码
// @Summary 修改密码并撤销其他会话
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "新旧密码"
// @Success 200 {object} util.Response
// @Router /api/v1/auth/password [put]
func (ctl *AuthController) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user := middleware.GetActor(c)
	token := middleware.ExtractToken(c)
	if err := ctl.Auth.ChangePassword(user, req.CurrentPassword, req.NewPassword, token); err != nil {
		util.HandleError(c, err)
		return
	}
	util.SuccessMessage(c, "password changed", nil)
}
