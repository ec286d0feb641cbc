package controller

import (
	"net/http"

	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminConfigController struct {
	Configs *service.ConfigService
}

func NewAdminConfigController(configs *service.ConfigService) *AdminConfigController {
	return &AdminConfigController{Configs: configs}
}

type ConfigUpdateRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

// List 全部配置项
// @Summary 系统配置列表
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/admin/configs [get]
func (ctl *AdminConfigController) List(c *gin.Context) {
	configs, err := ctl.Configs.GetAll()
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, configs)
}

// Update 批量更新配置
// @Summary 批量更新配置，非法键逐个报错不影响其余键
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ConfigUpdateRequest true "键值对"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/v1/admin/configs [put]
func (ctl *AdminConfigController) Update(c *gin.Context) {
	var req ConfigUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.Configs.UpdateBatch(middleware.GetActor(c), req.Values, auditMeta(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}

	// 部分失败时合法键已落盘，但整体按400上报，逐键错误放在响应体里
	if result.Errors != nil {
		c.JSON(http.StatusBadRequest, util.Response{
			Code:    http.StatusBadRequest,
			Message: "Some configurations failed to update",
			Data:    result,
		})
		return
	}
	util.Success(c, result)
}

// Reset 恢复默认配置
// @Summary 全部配置项恢复出厂默认值
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/admin/configs/reset [post]
func (ctl *AdminConfigController) Reset(c *gin.Context) {
	if err := ctl.Configs.ResetDefaults(middleware.GetActor(c), auditMeta(c)); err != nil {
		util.HandleError(c, err)
		return
	}
	util.SuccessMessage(c, "configs reset to defaults", nil)
}
