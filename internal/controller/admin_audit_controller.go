package controller

import (
	"strconv"
	"time"

	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminAuditController struct {
	Audit *service.AuditService
}

func NewAdminAuditController(audit *service.AuditService) *AdminAuditController {
	return &AdminAuditController{Audit: audit}
}

// List 审计日志
// @Summary 分页审计日志，支持按操作、管理员、时间范围筛选
// @Tags admin
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Param action query string false "操作类型"
// @Param admin_user_id query int false "管理员ID"
// @Param start_date query string false "起始日期 2006-01-02"
// @Param end_date query string false "结束日期 2006-01-02"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/audit-logs [get]
func (ctl *AdminAuditController) List(c *gin.Context) {
	page, limit := pagination(c)

	filter := repository.AuditFilter{
		Action:    c.Query("action"),
		ModelName: c.Query("model"),
	}
	if raw := c.Query("admin_user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.AdminUserID = uint(id)
		}
	}
	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.Parse(util.DateFormat, raw); err == nil {
			filter.StartDate = t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.Parse(util.DateFormat, raw); err == nil {
			// 结束日期按当天最后一刻算
			filter.EndDate = t.AddDate(0, 0, 1).Add(-time.Second)
		}
	}

	logs, total, err := ctl.Audit.List(page, limit, filter)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: logs, Total: total, Page: page, Limit: limit})
}
