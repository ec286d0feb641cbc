package model

import (
	"time"
)

// Certificate 课程结业证书 每个 (user, course) 唯一
// swagger:model Certificate
type Certificate struct {
	BaseModel
	UserID        uint      `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_course_cert" json:"userId"`
	CourseID      uint      `gorm:"type:bigint unsigned;not null;uniqueIndex:idx_user_course_cert" json:"courseId"`
	Course        Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	CertificateID string    `gorm:"size:100;uniqueIndex;not null" json:"certificateId"`
	IssuedAt      time.Time `json:"issuedAt"`
	DownloadURL   string    `gorm:"size:255" json:"downloadUrl"`
}

func (Certificate) TableName() string {
	return "certificates"
}
