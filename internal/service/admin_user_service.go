package service

import (
	"strconv"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

// AdminUserService 管理端的用户生命周期操作
type AdminUserService struct {
	UserRepo *repository.UserRepository
	CertRepo *repository.CertificateRepository
	Courses  *repository.CourseRepository
	Sessions *SessionService
	Audit    *AuditService
}

func NewAdminUserService(
	userRepo *repository.UserRepository,
	certRepo *repository.CertificateRepository,
	courseRepo *repository.CourseRepository,
	sessions *SessionService,
	audit *AuditService,
) *AdminUserService {
	return &AdminUserService{
		UserRepo: userRepo,
		CertRepo: certRepo,
		Courses:  courseRepo,
		Sessions: sessions,
		Audit:    audit,
	}
}

func (s *AdminUserService) List(page, pageSize int, filter repository.UserFilter) ([]model.User, int64, error) {
	return s.UserRepo.List(page, pageSize, filter)
}

func (s *AdminUserService) Get(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return user, nil
}

// setStatus 单用户状态迁移 停用或删除时同时撤销其全部会话
func (s *AdminUserService) setStatus(actor *model.User, userID uint, status model.UserStatus, action string, meta AuditEntry) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	if user.Status != status {
		user.Status = status
		if err := s.UserRepo.Update(user); err != nil {
			return nil, err
		}
		if status != model.StatusActive {
			if _, err := s.Sessions.InvalidateAllForUser(user.ID, ""); err != nil {
				return nil, err
			}
		}
	}

	meta.ModelName = "User"
	meta.ObjectID = strconv.FormatUint(uint64(user.ID), 10)
	meta.Details = model.JSONMap{"email": user.Email, "status": string(status)}
	s.Audit.Log(actor, action, meta)

	return user, nil
}

func (s *AdminUserService) Activate(actor *model.User, userID uint, meta AuditEntry) (*model.User, error) {
	return s.setStatus(actor, userID, model.StatusActive, "user_activate", meta)
}

func (s *AdminUserService) Deactivate(actor *model.User, userID uint, meta AuditEntry) (*model.User, error) {
	return s.setStatus(actor, userID, model.StatusDeactivated, "user_deactivate", meta)
}

// Promote 授予或回收 staff 只有超级管理员路由会挂到这里
func (s *AdminUserService) Promote(actor *model.User, userID uint, isStaff bool, meta AuditEntry) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	user.IsStaff = isStaff
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}

	action := "user_promote"
	if !isStaff {
		action = "user_demote"
	}
	meta.ModelName = "User"
	meta.ObjectID = strconv.FormatUint(uint64(user.ID), 10)
	meta.Details = model.JSONMap{"email": user.Email, "is_staff": isStaff}
	s.Audit.Log(actor, action, meta)

	return user, nil
}

// BulkResult 批量操作回执 Affected 是真正发生状态变化的行数
type BulkResult struct {
	Requested int   `json:"requested"`
	Affected  int64 `json:"affected"`
}

// bulkSetStatus 整批一条UPDATE 审计恰好一条聚合条目，带全部请求ID
func (s *AdminUserService) bulkSetStatus(actor *model.User, ids []uint, status model.UserStatus, action string, meta AuditEntry) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, util.ErrNoIDsProvided
	}

	affected, err := s.UserRepo.UpdateStatusBulk(ids, status)
	if err != nil {
		return nil, err
	}

	if status != model.StatusActive {
		if _, err := s.Sessions.SessionRepo.InvalidateAllForUsers(ids); err != nil {
			return nil, err
		}
	}

	meta.ModelName = "User"
	meta.Details = model.JSONMap{
		"count":    affected,
		"user_ids": idDetails(ids),
		"status":   string(status),
	}
	s.Audit.Log(actor, action, meta)

	return &BulkResult{Requested: len(ids), Affected: affected}, nil
}

func (s *AdminUserService) BulkActivate(actor *model.User, ids []uint, meta AuditEntry) (*BulkResult, error) {
	return s.bulkSetStatus(actor, ids, model.StatusActive, "user_bulk_activate", meta)
}

func (s *AdminUserService) BulkDeactivate(actor *model.User, ids []uint, meta AuditEntry) (*BulkResult, error) {
	return s.bulkSetStatus(actor, ids, model.StatusDeactivated, "user_bulk_deactivate", meta)
}

// BulkDelete 标记删除 不做物理删除，保留审计可追溯性
func (s *AdminUserService) BulkDelete(actor *model.User, ids []uint, meta AuditEntry) (*BulkResult, error) {
	return s.bulkSetStatus(actor, ids, model.StatusDeleted, "user_bulk_delete", meta)
}

// DashboardStats 管理端首页统计
type DashboardStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	ActiveUsers       int64 `json:"activeUsers"`
	StaffUsers        int64 `json:"staffUsers"`
	NewUsersThisWeek  int64 `json:"newUsersThisWeek"`
	ActiveCourses     int64 `json:"activeCourses"`
	PendingApprovals  int64 `json:"pendingApprovals"`
	CertificatesTotal int64 `json:"certificatesTotal"`
	CompletionsWeek   int64 `json:"completionsThisWeek"`
}

func (s *AdminUserService) Stats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	weekAgo := time.Now().AddDate(0, 0, -7)

	active, err := s.UserRepo.CountByStatus(model.StatusActive)
	if err != nil {
		return nil, err
	}
	deactivated, err := s.UserRepo.CountByStatus(model.StatusDeactivated)
	if err != nil {
		return nil, err
	}
	staff, err := s.UserRepo.CountStaff()
	if err != nil {
		return nil, err
	}
	newUsers, err := s.UserRepo.CountCreatedSince(weekAgo)
	if err != nil {
		return nil, err
	}
	courses, err := s.Courses.CountActive()
	if err != nil {
		return nil, err
	}
	pending, err := s.Courses.CountPendingApprovals()
	if err != nil {
		return nil, err
	}
	certs, err := s.CertRepo.CountAll()
	if err != nil {
		return nil, err
	}
	completions, err := s.Courses.CountCompletionsSince(weekAgo)
	if err != nil {
		return nil, err
	}

	stats.TotalUsers = active + deactivated
	stats.ActiveUsers = active
	stats.StaffUsers = staff
	stats.NewUsersThisWeek = newUsers
	stats.ActiveCourses = courses
	stats.PendingApprovals = pending
	stats.CertificatesTotal = certs
	stats.CompletionsWeek = completions
	return stats, nil
}
