package service

import (
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Sessions *SessionService
	Audit    *AuditService
}

func NewAuthService(userRepo *repository.UserRepository, sessions *SessionService, audit *AuditService) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Sessions: sessions,
		Audit:    audit,
	}
}

func (s *AuthService) Signup(fullName, email, password string) (*model.User, *model.Session, error) {
	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Email:    email,
		Password: string(hashed),
		FullName: fullName,
		Status:   model.StatusActive,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, nil, err
	}

	session, err := s.Sessions.Create(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login 所有失败路径折叠为同一条消息，防止账号枚举
func (s *AuthService) Login(email, password string) (*model.User, *model.Session, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.UserRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, nil, err
	}
	user.LastLogin = &now

	session, err := s.Sessions.Create(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// AdminLogin 额外要求 is_staff，失败消息与普通登录失败不可区分
func (s *AuthService) AdminLogin(email, password string, meta AuditEntry) (*model.User, *model.Session, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}
	if !user.IsStaff || !user.IsActive() {
		return nil, nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.UserRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, nil, err
	}
	user.LastLogin = &now

	session, err := s.Sessions.Create(user)
	if err != nil {
		return nil, nil, err
	}

	s.Audit.Log(user, "admin_login", meta)

	return user, session, nil
}

// Logout 未知或已失效的令牌也按成功处理
func (s *AuthService) Logout(token string) error {
	session, err := s.Sessions.Resolve(token)
	if err != nil {
		return nil
	}
	return s.Sessions.Invalidate(session)
}

// AdminLogout 只撤销请求携带的那个令牌
func (s *AuthService) AdminLogout(actor *model.User, token string, meta AuditEntry) error {
	if err := s.Logout(token); err != nil {
		return err
	}
	s.Audit.Log(actor, "admin_logout", meta)
	return nil
}

// ChangePassword 成功后撤销该用户除当前会话外的全部会话
func (s *AuthService) ChangePassword(user *model.User, currentPassword, newPassword, presentedToken string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return util.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if err := s.UserRepo.Update(user); err != nil {
		return err
	}

	_, err = s.Sessions.InvalidateAllForUser(user.ID, presentedToken)
	return err
}
