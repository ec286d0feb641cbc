package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Create(entry *model.AuditLog) error {
	return r.DB.Create(entry).Error
}

// AuditFilter 审计日志查询条件
type AuditFilter struct {
	Action      string
	AdminUserID uint
	ModelName   string
	StartDate   time.Time
	EndDate     time.Time
}

func (r *AuditRepository) List(page, pageSize int, filter AuditFilter) ([]model.AuditLog, int64, error) {
	var entries []model.AuditLog
	var total int64

	query := r.DB.Model(&model.AuditLog{})

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.AdminUserID != 0 {
		query = query.Where("admin_user_id = ?", filter.AdminUserID)
	}
	if filter.ModelName != "" {
		query = query.Where("model_name = ?", filter.ModelName)
	}
	if !filter.StartDate.IsZero() {
		query = query.Where("logged_at >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query = query.Where("logged_at <= ?", filter.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("logged_at DESC").Find(&entries).Error
	return entries, total, err
}
