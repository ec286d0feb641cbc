package model

import (
	"time"
)

// CriteriaType 成就判定依据的统计维度
type CriteriaType string

const (
	CriteriaCoursesCompleted   CriteriaType = "courses_completed"
	CriteriaModulesCompleted   CriteriaType = "modules_completed"
	CriteriaLearningHours      CriteriaType = "learning_hours"
	CriteriaStreakDays         CriteriaType = "streak_days"
	CriteriaLabsCompleted      CriteriaType = "labs_completed"
	CriteriaCertificatesEarned CriteriaType = "certificates_earned"
)

// Achievement 静态成就目录
// swagger:model Achievement
type Achievement struct {
	BaseModel
	Title             string       `gorm:"size:255;not null" json:"title"`
	Description       string       `gorm:"type:text" json:"description"`
	IconName          string       `gorm:"size:50;default:'trophy'" json:"iconName"`
	Color             string       `gorm:"size:20;default:'google-blue'" json:"color"`
	CriteriaType      CriteriaType `gorm:"size:50;not null" json:"criteriaType"`
	CriteriaThreshold int          `gorm:"default:1" json:"criteriaThreshold"`
	IsActive          bool         `gorm:"default:true" json:"isActive"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement 授予记录 每个 (user, achievement) 只追加一次，永不撤销
// swagger:model UserAchievement
type UserAchievement struct {
	BaseModel
	UserID        uint        `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_achievement" json:"userId"`
	AchievementID uint        `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_achievement" json:"achievementId"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
	UnlockedAt    time.Time   `json:"unlockedAt"`
	IsNotified    bool        `gorm:"default:false" json:"isNotified"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
