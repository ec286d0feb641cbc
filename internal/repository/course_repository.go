package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindActiveByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ? AND is_active = ?", id, true).First(&course).Error
	return &course, err
}

func (r *CourseRepository) FindActiveByIDWithModules(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("course_modules.`order` ASC")
	}).Where("id = ? AND is_active = ?", id, true).First(&course).Error
	return &course, err
}

func (r *CourseRepository) ListActive(category string) ([]model.Course, error) {
	var courses []model.Course
	query := r.DB.Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListAll(page, pageSize int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	if err := r.DB.Model(&model.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * pageSize
	err := r.DB.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) FindModuleByID(id uint) (*model.CourseModule, error) {
	var module model.CourseModule
	err := r.DB.First(&module, id).Error
	return &module, err
}

func (r *CourseRepository) CountModules(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CourseModule{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountActive() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// UpdateActiveBulk 整批一条UPDATE，返回真正改变的行数
func (r *CourseRepository) UpdateActiveBulk(ids []uint, active bool) (int64, error) {
	res := r.DB.Model(&model.Course{}).
		Where("id IN ? AND is_active <> ?", ids, active).
		Update("is_active", active)
	return res.RowsAffected, res.Error
}

// DeleteBulk 软删除，单条UPDATE打 deleted_at 标记
func (r *CourseRepository) DeleteBulk(ids []uint) (int64, error) {
	res := r.DB.Delete(&model.Course{}, ids)
	return res.RowsAffected, res.Error
}

// FindOrCreateApproval 每门课程一条审核记录
func (r *CourseRepository) FindOrCreateApproval(courseID uint) (*model.CourseApproval, error) {
	var approval model.CourseApproval
	err := r.DB.Where(model.CourseApproval{CourseID: courseID}).
		Attrs(model.CourseApproval{Status: model.ApprovalPending}).
		FirstOrCreate(&approval).Error
	return &approval, err
}

func (r *CourseRepository) SaveApproval(approval *model.CourseApproval) error {
	return r.DB.Save(approval).Error
}

func (r *CourseRepository) CountPendingApprovals() (int64, error) {
	var count int64
	err := r.DB.Model(&model.CourseApproval{}).
		Where("status = ?", model.ApprovalPending).Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountCompletionsSince(since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CourseProgress{}).
		Where("is_completed = ? AND completed_at >= ?", true, since).Count(&count).Error
	return count, err
}
