package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AILabController struct {
	Labs *service.AILabService
}

func NewAILabController(labs *service.AILabService) *AILabController {
	return &AILabController{Labs: labs}
}

type CompleteLabRequest struct {
	Score *float64 `json:"score" binding:"omitempty,min=0,max=100"`
}

// List 实验列表
// @Summary 全部上线实验与当前用户状态
// @Tags ailab
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/labs [get]
func (ctl *AILabController) List(c *gin.Context) {
	views, err := ctl.Labs.ListForUser(middleware.GetActor(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, views)
}

// Start 开始实验
// @Summary 开始或继续一次实验
// @Tags ailab
// @Produce json
// @Param id path int true "实验ID"
// @Success 200 {object} util.Response
// @Router /api/v1/labs/{id}/start [post]
func (ctl *AILabController) Start(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		util.BadRequest(c, "invalid lab id")
		return
	}

	progress, err := ctl.Labs.StartLab(middleware.GetActor(c), id)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, progress)
}

// Complete 完成实验
// @Summary 提交实验完成与得分
// @Tags ailab
// @Accept json
// @Produce json
// @Param id path int true "实验ID"
// @Param request body CompleteLabRequest false "得分"
// @Success 200 {object} util.Response
// @Router /api/v1/labs/{id}/complete [post]
func (ctl *AILabController) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		util.BadRequest(c, "invalid lab id")
		return
	}

	var req CompleteLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	progress, err := ctl.Labs.CompleteLab(middleware.GetActor(c), id, req.Score)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, progress)
}
