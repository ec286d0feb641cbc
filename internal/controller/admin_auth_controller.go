package controller

import (
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminAuthController struct {
	Auth *service.AuthService
	Cfg  *config.Config
}

func NewAdminAuthController(auth *service.AuthService, cfg *config.Config) *AdminAuthController {
	return &AdminAuthController{Auth: auth, Cfg: cfg}
}

// Login 管理端登录
// @Summary 管理员登录，要求staff身份
// @Tags admin
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/auth/login [post]
func (ctl *AdminAuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, session, err := ctl.Auth.AdminLogin(req.Email, req.Password, auditMeta(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}

	// 浏览器端管理台走cookie，API客户端走返回的令牌
	maxAge := int(ctl.Cfg.Session.ExpireTime.Seconds())
	c.SetCookie(util.AdminTokenCookie, session.Token, maxAge, "/", "", false, true)

	util.Success(c, newSessionPayload(user, session))
}

// Logout 管理端退出
// @Summary 撤销当前管理会话
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/admin/auth/logout [post]
func (ctl *AdminAuthController) Logout(c *gin.Context) {
	actor := middleware.GetActor(c)
	token := middleware.ExtractToken(c)
	if err := ctl.Auth.AdminLogout(actor, token, auditMeta(c)); err != nil {
		util.HandleError(c, err)
		return
	}

	c.SetCookie(util.AdminTokenCookie, "", -1, "/", "", false, true)
	util.SuccessMessage(c, "logged out", nil)
}
