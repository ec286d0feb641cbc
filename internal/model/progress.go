package model

import (
	"time"
)

// CourseProgress 每个 (user, course) 唯一 计数字段只由进度服务重算
// swagger:model CourseProgress
type CourseProgress struct {
	BaseModel
	UserID                uint       `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_course" json:"userId"`
	CourseID              uint       `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_course" json:"courseId"`
	CurrentModuleID       *uint      `gorm:"type:bigint unsigned" json:"currentModuleId"`
	ProgressPercentage    float64    `gorm:"default:0" json:"progressPercentage"`
	CompletedModulesCount int        `gorm:"default:0" json:"completedModulesCount"`
	TotalModulesCount     int        `gorm:"default:0" json:"totalModulesCount"`
	IsCompleted           bool       `gorm:"default:false;index" json:"isCompleted"`
	StartedAt             time.Time  `json:"startedAt"`
	LastAccessedAt        time.Time  `json:"lastAccessedAt"`
	CompletedAt           *time.Time `json:"completedAt"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}

// ModuleProgress 每个 (user, module) 唯一 首次完成事件时惰性创建
// swagger:model ModuleProgress
type ModuleProgress struct {
	BaseModel
	UserID           uint       `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_module" json:"userId"`
	ModuleID         uint       `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_module" json:"moduleId"`
	IsCompleted      bool       `gorm:"default:false" json:"isCompleted"`
	CompletedAt      *time.Time `json:"completedAt"`
	TimeSpentMinutes int        `gorm:"default:0" json:"timeSpentMinutes"`
	LastPosition     float64    `gorm:"default:0" json:"lastPosition"` // 播放位置
}

func (ModuleProgress) TableName() string {
	return "module_progress"
}
