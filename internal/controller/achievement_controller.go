package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AchievementController struct {
	Achievements *service.AchievementService
}

func NewAchievementController(achievements *service.AchievementService) *AchievementController {
	return &AchievementController{Achievements: achievements}
}

// List 成就列表
// @Summary 全部成就与当前用户的解锁记录
// @Tags achievement
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/achievements [get]
func (ctl *AchievementController) List(c *gin.Context) {
	achievements, grants, err := ctl.Achievements.ListForUser(middleware.GetActor(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, gin.H{
		"achievements": achievements,
		"unlocked":     grants,
	})
}
