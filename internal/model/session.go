package model

import (
	"time"
)

// Session 服务端签发的持有者凭证 撤销状态以数据库为准
// swagger:model Session
type Session struct {
	BaseModel
	UserID    uint      `gorm:"index:idx_sessions_user_active;type:bigint unsigned;not null" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	Token     string    `gorm:"size:512;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	IsActive  bool      `gorm:"default:true;index:idx_sessions_user_active" json:"isActive"`
}

func (Session) TableName() string {
	return "sessions"
}

// Valid 到期时刻本身视为已过期
func (s *Session) Valid(now time.Time) bool {
	return s.IsActive && now.Before(s.ExpiresAt)
}
