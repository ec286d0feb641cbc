package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress *service.ProgressService
}

func NewProgressController(progress *service.ProgressService) *ProgressController {
	return &ProgressController{Progress: progress}
}

type TrackTimeRequest struct {
	Minutes  int     `json:"minutes" binding:"min=0"`
	Position float64 `json:"position" binding:"min=0"`
}

// CompleteModule 上报模块完成
// @Summary 记录模块完成事件，幂等
// @Tags progress
// @Produce json
// @Param id path int true "模块ID"
// @Success 200 {object} util.Response
// @Router /api/v1/modules/{id}/complete [post]
func (ctl *ProgressController) CompleteModule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		util.BadRequest(c, "invalid module id")
		return
	}

	result, err := ctl.Progress.RecordModuleCompletion(middleware.GetActor(c), id)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, result)
}

// TrackTime 上报学习时长
// @Summary 累计模块学习时长与播放位置
// @Tags progress
// @Accept json
// @Produce json
// @Param id path int true "模块ID"
// @Param request body TrackTimeRequest true "时长与位置"
// @Success 200 {object} util.Response
// @Router /api/v1/modules/{id}/track [post]
func (ctl *ProgressController) TrackTime(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		util.BadRequest(c, "invalid module id")
		return
	}

	var req TrackTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	progress, err := ctl.Progress.TrackModuleTime(middleware.GetActor(c), id, req.Minutes, req.Position)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, progress)
}

// ListProgress 我的课程进度
// @Summary 当前用户全部课程进度
// @Tags progress
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/progress [get]
func (ctl *ProgressController) ListProgress(c *gin.Context) {
	list, err := ctl.Progress.ListCourseProgress(middleware.GetActor(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, list)
}

// Stats 学习统计
// @Summary 当前用户的学习统计
// @Tags progress
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/stats [get]
func (ctl *ProgressController) Stats(c *gin.Context) {
	stats, err := ctl.Progress.GetStats(middleware.GetActor(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, stats)
}

// RecomputeStats 重算学习统计
// @Summary 从原始进度记录全量重算统计
// @Tags progress
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/stats/recompute [post]
func (ctl *ProgressController) RecomputeStats(c *gin.Context) {
	stats, err := ctl.Progress.RecomputeLearningStats(middleware.GetActor(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, stats)
}
