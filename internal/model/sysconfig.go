package model

import (
	"time"
)

// ConfigType 配置值的封闭类型标签 写入路径按标签校验
type ConfigType string

const (
	ConfigString   ConfigType = "string"
	ConfigInteger  ConfigType = "integer"
	ConfigBoolean  ConfigType = "boolean"
	ConfigText     ConfigType = "text"
	ConfigPassword ConfigType = "password"
	ConfigSecret   ConfigType = "secret"
	ConfigSelect   ConfigType = "select"
	ConfigJSON     ConfigType = "json"
)

// SystemConfig 系统配置项 值统一存字符串
// swagger:model SystemConfig
type SystemConfig struct {
	BaseModel
	Key         string     `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value       string     `gorm:"type:text" json:"value"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:50;index;default:'general'" json:"category"`
	DataType    ConfigType `gorm:"size:20;default:'string'" json:"dataType"`
	Options     string     `gorm:"type:text" json:"options"` // select 类型的候选值，JSON 数组
	UpdatedByID *uint      `gorm:"type:bigint unsigned" json:"updatedById"`
}

func (SystemConfig) TableName() string {
	return "system_configs"
}

type ApprovalStatus string

const (
	ApprovalPending       ApprovalStatus = "pending"
	ApprovalApproved      ApprovalStatus = "approved"
	ApprovalRejected      ApprovalStatus = "rejected"
	ApprovalNeedsRevision ApprovalStatus = "needs_revision"
)

// CourseApproval 课程审核状态 每门课程一条
// swagger:model CourseApproval
type CourseApproval struct {
	BaseModel
	CourseID     uint           `gorm:"type:bigint unsigned;not null;uniqueIndex" json:"courseId"`
	Status       ApprovalStatus `gorm:"size:20;default:'pending'" json:"status"`
	ReviewedByID *uint          `gorm:"type:bigint unsigned" json:"reviewedById"`
	ReviewNotes  string         `gorm:"type:text" json:"reviewNotes"`
	ReviewedAt   *time.Time     `json:"reviewedAt"`
}

func (CourseApproval) TableName() string {
	return "course_approvals"
}
