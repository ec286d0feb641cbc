package service

import (
	"errors"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// SessionService 会话的签发、解析、校验与撤销
// 没有后台清扫任务：过期会话在下一次被校验时惰性打上失效标记
type SessionService struct {
	SessionRepo *repository.SessionRepository
	Cfg         *config.Config
}

func NewSessionService(sessionRepo *repository.SessionRepository, cfg *config.Config) *SessionService {
	return &SessionService{
		SessionRepo: sessionRepo,
		Cfg:         cfg,
	}
}

// Create 为用户签发一个新会话
func (s *SessionService) Create(user *model.User) (*model.Session, error) {
	token, err := util.GenerateSessionToken(user, s.Cfg.Session.Secret, s.Cfg.Session.ExpireTime)
	if err != nil {
		return nil, err
	}

	session := &model.Session{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.Cfg.Session.ExpireTime),
		IsActive:  true,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	session.User = *user
	return session, nil
}

// Resolve 从未存在、已失效、未知令牌统一折叠为同一个认证错误
func (s *SessionService) Resolve(token string) (*model.Session, error) {
	session, err := s.SessionRepo.FindActiveByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidToken
		}
		return nil, err
	}
	return session, nil
}

// Validate 纯函数，不产生任何写入
func (s *SessionService) Validate(session *model.Session) bool {
	return session.Valid(time.Now())
}

// Invalidate 幂等
func (s *SessionService) Invalidate(session *model.Session) error {
	if !session.IsActive {
		return nil
	}
	return s.SessionRepo.Invalidate(session)
}

// InvalidateAllForUser 修改密码、停用账号时批量撤销
func (s *SessionService) InvalidateAllForUser(userID uint, exceptToken string) (int64, error) {
	return s.SessionRepo.InvalidateAllForUser(userID, exceptToken)
}

// Authenticate 解析并校验令牌 观察到校验失败时就地失效该会话
func (s *SessionService) Authenticate(token string) (*model.Session, error) {
	session, err := s.Resolve(token)
	if err != nil {
		return nil, err
	}

	if !s.Validate(session) || !session.User.IsActive() {
		if err := s.Invalidate(session); err != nil {
			return nil, err
		}
		return nil, util.ErrInvalidToken
	}

	return session, nil
}
