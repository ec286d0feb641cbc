package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint, at time.Time) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", at).
		Error
}

// UserFilter 管理端用户列表的筛选条件
type UserFilter struct {
	Status model.UserStatus
	Staff  *bool
	Search string
}

func (r *UserRepository) List(page, pageSize int, filter UserFilter) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	query := r.DB.Model(&model.User{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Staff != nil {
		query = query.Where("is_staff = ?", *filter.Staff)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ?", term, term)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&users).Error
	return users, total, err
}

// UpdateStatusBulk 整批一条UPDATE，返回真正改变的行数
func (r *UserRepository) UpdateStatusBulk(ids []uint, status model.UserStatus) (int64, error) {
	res := r.DB.Model(&model.User{}).
		Where("id IN ? AND status <> ?", ids, status).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *UserRepository) CountByStatus(status model.UserStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountStaff() (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("is_staff = ?", true).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}
