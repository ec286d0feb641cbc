package repository

import (
	"errors"
	"strings"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) FindActive() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Where("is_active = ?", true).Order("criteria_threshold ASC").Find(&achievements).Error
	return achievements, err
}

// FindGrantedIDs 用户已解锁的成就ID集合
func (r *AchievementRepository) FindGrantedIDs(userID uint) (map[uint]bool, error) {
	var grants []model.UserAchievement
	err := r.DB.Where("user_id = ?", userID).Find(&grants).Error
	if err != nil {
		return nil, err
	}
	granted := make(map[uint]bool, len(grants))
	for _, g := range grants {
		granted[g.AchievementID] = true
	}
	return granted, nil
}

func (r *AchievementRepository) FindGrants(userID uint) ([]model.UserAchievement, error) {
	var grants []model.UserAchievement
	err := r.DB.Preload("Achievement").Where("user_id = ?", userID).Find(&grants).Error
	return grants, err
}

// CreateGrant 并发重复授予靠唯一约束兜底，冲突按无事发生处理
func (r *AchievementRepository) CreateGrant(grant *model.UserAchievement) error {
	err := r.DB.Create(grant).Error
	if err != nil && isDuplicateKey(err) {
		return nil
	}
	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
