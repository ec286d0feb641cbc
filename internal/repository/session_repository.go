package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.Session) error {
	return r.DB.Create(session).Error
}

// FindActiveByToken 精确匹配且仅限 is_active 的记录
// 从未存在、已失效、未知令牌对调用方不可区分
func (r *SessionRepository) FindActiveByToken(token string) (*model.Session, error) {
	var session model.Session
	err := r.DB.Preload("User").
		Where("token = ? AND is_active = ?", token, true).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Invalidate 只打标记，不删除记录
func (r *SessionRepository) Invalidate(session *model.Session) error {
	session.IsActive = false
	return r.DB.Model(session).Update("is_active", false).Error
}

// InvalidateAllForUser exceptToken 为空时撤销该用户全部活跃会话
func (r *SessionRepository) InvalidateAllForUser(userID uint, exceptToken string) (int64, error) {
	query := r.DB.Model(&model.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true)
	if exceptToken != "" {
		query = query.Where("token <> ?", exceptToken)
	}
	res := query.Update("is_active", false)
	return res.RowsAffected, res.Error
}

// InvalidateAllForUsers 批量停用用户时一并撤销会话，单条UPDATE
func (r *SessionRepository) InvalidateAllForUsers(userIDs []uint) (int64, error) {
	res := r.DB.Model(&model.Session{}).
		Where("user_id IN ? AND is_active = ?", userIDs, true).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}
