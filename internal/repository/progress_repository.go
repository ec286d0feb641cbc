package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) CreateCourseProgress(progress *model.CourseProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) FindCourseProgress(userID, courseID uint) (*model.CourseProgress, error) {
	var progress model.CourseProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) ListCourseProgress(userID uint) ([]model.CourseProgress, error) {
	var list []model.CourseProgress
	err := r.DB.Where("user_id = ?", userID).Order("last_accessed_at DESC").Find(&list).Error
	return list, err
}

func (r *ProgressRepository) SaveCourseProgress(progress *model.CourseProgress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) FindModuleProgress(userID, moduleID uint) (*model.ModuleProgress, error) {
	var progress model.ModuleProgress
	err := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) CreateModuleProgress(progress *model.ModuleProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) SaveModuleProgress(progress *model.ModuleProgress) error {
	return r.DB.Save(progress).Error
}

// CountCompletedModulesInCourse 跨表统计该课程下已完成的模块数
func (r *ProgressRepository) CountCompletedModulesInCourse(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ModuleProgress{}).
		Joins("JOIN course_modules ON course_modules.id = module_progress.module_id").
		Where("module_progress.user_id = ? AND course_modules.course_id = ? AND module_progress.is_completed = ?",
			userID, courseID, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) SumTimeSpentMinutes(userID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.ModuleProgress{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(time_spent_minutes), 0)").
		Scan(&total).Error
	return total, err
}

func (r *ProgressRepository) CountCompletedCourses(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CourseProgress{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountCompletedModules(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ModuleProgress{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

// FindOrCreateStats 每个用户一行
func (r *ProgressRepository) FindOrCreateStats(userID uint) (*model.LearningStats, error) {
	var stats model.LearningStats
	err := r.DB.Where(model.LearningStats{UserID: userID}).FirstOrCreate(&stats).Error
	return &stats, err
}

func (r *ProgressRepository) SaveStats(stats *model.LearningStats) error {
	return r.DB.Save(stats).Error
}
