package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONMap 审计详情的自由键值对，按 JSON 落库
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for JSONMap")
	}
	return json.Unmarshal(data, m)
}

// AuditLog 管理操作的追加式审计记录 本核心不更新也不删除
// swagger:model AuditLog
type AuditLog struct {
	BaseModel
	AdminUserID uint      `gorm:"index;type:bigint unsigned;not null" json:"adminUserId"`
	AdminUser   User      `gorm:"foreignKey:AdminUserID" json:"-"`
	Action      string    `gorm:"size:100;not null;index" json:"action"`
	ModelName   string    `gorm:"size:100" json:"modelName"`
	ObjectID    string    `gorm:"size:100" json:"objectId"`
	Details     JSONMap   `gorm:"type:json" json:"details"`
	IPAddress   string    `gorm:"size:45" json:"ipAddress"`
	UserAgent   string    `gorm:"type:text" json:"userAgent"`
	LoggedAt    time.Time `gorm:"index" json:"loggedAt"`
}

func (AuditLog) TableName() string {
	return "admin_audit_logs"
}
