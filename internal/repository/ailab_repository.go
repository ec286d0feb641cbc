package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AILabRepository struct {
	DB *gorm.DB
}

func NewAILabRepository(db *gorm.DB) *AILabRepository {
	return &AILabRepository{DB: db}
}

func (r *AILabRepository) FindActive() ([]model.AILab, error) {
	var labs []model.AILab
	err := r.DB.Where("is_active = ?", true).Order("created_at ASC").Find(&labs).Error
	return labs, err
}

func (r *AILabRepository) FindActiveByID(id uint) (*model.AILab, error) {
	var lab model.AILab
	err := r.DB.Where("id = ? AND is_active = ?", id, true).First(&lab).Error
	return &lab, err
}

func (r *AILabRepository) FindProgress(userID, labID uint) (*model.AILabProgress, error) {
	var progress model.AILabProgress
	err := r.DB.Where("user_id = ? AND lab_id = ?", userID, labID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *AILabRepository) ListProgress(userID uint) ([]model.AILabProgress, error) {
	var list []model.AILabProgress
	err := r.DB.Where("user_id = ?", userID).Find(&list).Error
	return list, err
}

func (r *AILabRepository) CreateProgress(progress *model.AILabProgress) error {
	return r.DB.Create(progress).Error
}

func (r *AILabRepository) SaveProgress(progress *model.AILabProgress) error {
	return r.DB.Save(progress).Error
}

func (r *AILabRepository) CountCompleted(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.AILabProgress{}).
		Where("user_id = ? AND status = ?", userID, model.LabCompleted).
		Count(&count).Error
	return count, err
}
