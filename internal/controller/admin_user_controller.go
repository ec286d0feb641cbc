package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminUserController struct {
	Users *service.AdminUserService
}

func NewAdminUserController(users *service.AdminUserService) *AdminUserController {
	return &AdminUserController{Users: users}
}

type BulkUserRequest struct {
	UserIDs []uint `json:"userIds" binding:"required,min=1"`
}

type PromoteRequest struct {
	IsStaff *bool `json:"isStaff" binding:"required"`
}

// List 用户列表
// @Summary 分页用户列表，支持状态、staff、关键词筛选
// @Tags admin
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param status query string false "用户状态"
// @Param search query string false "姓名或邮箱关键词"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/users [get]
func (ctl *AdminUserController) List(c *gin.Context) {
	page, limit := pagination(c)

	filter := repository.UserFilter{
		Status: model.UserStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if staff := c.Query("staff"); staff != "" {
		v := staff == "true"
		filter.Staff = &v
	}

	users, total, err := ctl.Users.List(page, limit, filter)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// Get 用户详情
// @Summary 单个用户详情
// @Tags admin
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/users/{id} [get]
func (ctl *AdminUserController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		util.BadRequest(c, "invalid user id")
		return
	}

	user, err := ctl.Users.Get(id)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, user)
}

// Activate 启用用户
// @Summary 将用户置为启用状态
// @Tags admin
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/users/{id}/activate [post]
func (ctl *AdminUserController) Activate(c *gin.Context) {
	ctl.setStatus(c, ctl.Users.Activate)
}

// Deactivate 停用用户
// @Summary 停用用户并撤销其全部会话
// @Tags admin
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/users/{id}/deactivate [post]
func (ctl *AdminUserController) Deactivate(c *gin.Context) {
	ctl.setStatus(c, ctl.Users.Deactivate)
}

func (ctl *AdminUserController) setStatus(c *gin.Context, op func(*model.User, uint, service.AuditEntry) (*model.User, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		util.BadRequest(c, "invalid user id")
		return
	}

	user, err := op(middleware.GetActor(c), id, auditMeta(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, user)
}

// Promote 调整staff身份
// @Summary 授予或回收后台访问权限
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "用户ID"
// @Param request body PromoteRequest true "目标身份"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/users/{id}/promote [post]
func (ctl *AdminUserController) Promote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		util.BadRequest(c, "invalid user id")
		return
	}

	var req PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.Users.Promote(middleware.GetActor(c), id, *req.IsStaff, auditMeta(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, user)
}

// BulkActivate 批量启用
// @Summary 批量启用用户
// @Tags admin
// @Accept json
// @Produce json
// @Param request body BulkUserRequest true "用户ID列表"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/users/bulk-activate [post]
func (ctl *AdminUserController) BulkActivate(c *gin.Context) {
	ctl.bulk(c, ctl.Users.BulkActivate)
}

// BulkDeactivate 批量停用
// @Summary 批量停用用户并撤销会话
// @Tags admin
// @Accept json
// @Produce json
// @Param request body BulkUserRequest true "用户ID列表"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/users/bulk-deactivate [post]
func (ctl *AdminUserController) BulkDeactivate(c *gin.Context) {
	ctl.bulk(c, ctl.Users.BulkDeactivate)
}

// BulkDelete 批量删除
// @Summary 批量标记删除用户
// @Tags admin
// @Accept json
// @Produce json
// @Param request body BulkUserRequest true "用户ID列表"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/users/bulk-delete [post]
func (ctl *AdminUserController) BulkDelete(c *gin.Context) {
	ctl.bulk(c, ctl.Users.BulkDelete)
}

func (ctl *AdminUserController) bulk(c *gin.Context, op func(*model.User, []uint, service.AuditEntry) (*service.BulkResult, error)) {
	var req BulkUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := op(middleware.GetActor(c), req.UserIDs, auditMeta(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, result)
}

// Stats 管理端首页统计
// @Summary 用户、课程、证书的汇总统计
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/admin/stats [get]
func (ctl *AdminUserController) Stats(c *gin.Context) {
	stats, err := ctl.Users.Stats()
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, stats)
}
