package model

import (
	"time"
)

type UserStatus string

const (
	StatusActive      UserStatus = "active"
	StatusDeactivated UserStatus = "deactivated"
	StatusDeleted     UserStatus = "deleted"
)

// User 平台用户 管理员通过 IsStaff/IsSuperuser 标记
// swagger:model User
type User struct {
	BaseModel
	Email       string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"size:100;not null" json:"-"`
	FullName    string     `gorm:"size:255;not null" json:"fullName"`
	IsStaff     bool       `gorm:"default:false" json:"isStaff"`
	IsSuperuser bool       `gorm:"default:false" json:"isSuperuser"`
	Status      UserStatus `gorm:"size:20;default:'active';index" json:"status"`
	LastLogin   *time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// IsActive 停用即逻辑删除，物理行保留
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}
