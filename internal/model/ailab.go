package model

import (
	"time"
)

type LabStatus string

const (
	LabAvailable  LabStatus = "available"
	LabInProgress LabStatus = "in_progress"
	LabCompleted  LabStatus = "completed"
	LabLocked     LabStatus = "locked"
)

// AILab 动手实验项目
// swagger:model AILab
type AILab struct {
	BaseModel
	Title                    string           `gorm:"size:255;not null" json:"title"`
	Description              string           `gorm:"type:text" json:"description"`
	IconName                 string           `gorm:"size:50;default:'sparkles'" json:"iconName"`
	Difficulty               CourseDifficulty `gorm:"size:20;default:'beginner'" json:"difficulty"`
	EstimatedDurationMinutes int              `gorm:"default:120" json:"estimatedDurationMinutes"`
	Category                 string           `gorm:"size:100;default:'Machine Learning'" json:"category"`
	IsActive                 bool             `gorm:"default:true" json:"isActive"`
}

func (AILab) TableName() string {
	return "ai_labs"
}

// AILabProgress 每个 (user, lab) 唯一
// swagger:model AILabProgress
type AILabProgress struct {
	BaseModel
	UserID        uint       `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_lab" json:"userId"`
	LabID         uint       `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_lab" json:"labId"`
	Status        LabStatus  `gorm:"size:20;default:'available'" json:"status"`
	StartedAt     *time.Time `json:"startedAt"`
	CompletedAt   *time.Time `json:"completedAt"`
	Score         *float64   `json:"score"`
	Attempts      int        `gorm:"default:0" json:"attempts"`
	LastAttemptAt *time.Time `json:"lastAttemptAt"`
}

func (AILabProgress) TableName() string {
	return "ai_lab_progress"
}
