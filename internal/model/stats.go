package model

import (
	"time"
)

// LearningStats 每个用户一行的派生统计 可随时从原始进度记录重算
// swagger:model LearningStats
type LearningStats struct {
	BaseModel
	UserID                  uint       `gorm:"type:bigint unsigned;not null;uniqueIndex" json:"userId"`
	TotalLearningHours      float64    `gorm:"default:0" json:"totalLearningHours"`
	TotalCoursesCompleted   int        `gorm:"default:0" json:"totalCoursesCompleted"`
	TotalModulesCompleted   int        `gorm:"default:0" json:"totalModulesCompleted"`
	TotalCertificatesEarned int        `gorm:"default:0" json:"totalCertificatesEarned"`
	TotalAIProjects         int        `gorm:"default:0" json:"totalAiProjects"`
	StreakDays              int        `gorm:"default:0" json:"streakDays"`
	LastLearningDate        *time.Time `json:"lastLearningDate"` // 只保存日期部分
}

func (LearningStats) TableName() string {
	return "learning_stats"
}
