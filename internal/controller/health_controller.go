package controller

import (
	"time"

	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Check 健康检查
// @Summary 服务与数据库健康状态
// @Tags health
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (ctl *HealthController) Check(c *gin.Context) {
	status := "ok"
	sqlDB, err := ctl.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "degraded"
	}

	util.Success(c, gin.H{
		"status": status,
		"time":   time.Now().Format(util.TimeFormat),
	})
}
