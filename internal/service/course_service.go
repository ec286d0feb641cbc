package service

import (
	"errors"
	"strconv"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
	Audit        *AuditService
}

func NewCourseService(courseRepo *repository.CourseRepository, progressRepo *repository.ProgressRepository, audit *AuditService) *CourseService {
	return &CourseService{
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		Audit:        audit,
	}
}

func (s *CourseService) ListActive(category string) ([]model.Course, error) {
	return s.CourseRepo.ListActive(category)
}

// GetDetail 课程详情带模块列表 已登录用户附带进度
func (s *CourseService) GetDetail(user *model.User, courseID uint) (*model.Course, *model.CourseProgress, error) {
	course, err := s.CourseRepo.FindActiveByIDWithModules(courseID)
	if err != nil {
		return nil, nil, util.ErrCourseNotFound
	}

	if user == nil {
		return course, nil, nil
	}
	progress, err := s.ProgressRepo.FindCourseProgress(user.ID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return course, nil, nil
		}
		return nil, nil, err
	}
	return course, progress, nil
}

// Enroll 重复报名返回冲突错误
func (s *CourseService) Enroll(user *model.User, courseID uint) (*model.CourseProgress, error) {
	course, err := s.CourseRepo.FindActiveByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	if _, err := s.ProgressRepo.FindCourseProgress(user.ID, courseID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	total, err := s.CourseRepo.CountModules(course.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	progress := &model.CourseProgress{
		UserID:            user.ID,
		CourseID:          course.ID,
		TotalModulesCount: int(total),
		StartedAt:         now,
		LastAccessedAt:    now,
	}
	if err := s.ProgressRepo.CreateCourseProgress(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// ---- 管理端 ----

func (s *CourseService) ListAll(page, pageSize int) ([]model.Course, int64, error) {
	return s.CourseRepo.ListAll(page, pageSize)
}

// Create 新课程默认下线，走审核流程后上线
func (s *CourseService) Create(actor *model.User, course *model.Course, meta AuditEntry) (*model.Course, error) {
	course.IsActive = false
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	if _, err := s.CourseRepo.FindOrCreateApproval(course.ID); err != nil {
		return nil, err
	}

	meta.ModelName = "Course"
	meta.ObjectID = strconv.FormatUint(uint64(course.ID), 10)
	meta.Details = model.JSONMap{"title": course.Title}
	s.Audit.Log(actor, "course_create", meta)

	return course, nil
}

func (s *CourseService) Update(actor *model.User, course *model.Course, meta AuditEntry) error {
	if err := s.CourseRepo.Save(course); err != nil {
		return err
	}

	meta.ModelName = "Course"
	meta.ObjectID = strconv.FormatUint(uint64(course.ID), 10)
	meta.Details = model.JSONMap{"title": course.Title}
	s.Audit.Log(actor, "course_update", meta)
	return nil
}

func (s *CourseService) FindByID(courseID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	return course, nil
}

// bulkSetActive 整批一条UPDATE 审计恰好一条聚合条目，带全部请求ID
func (s *CourseService) bulkSetActive(actor *model.User, ids []uint, active bool, action string, meta AuditEntry) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, util.ErrNoIDsProvided
	}

	affected, err := s.CourseRepo.UpdateActiveBulk(ids, active)
	if err != nil {
		return nil, err
	}

	meta.ModelName = "Course"
	meta.Details = model.JSONMap{
		"count":      affected,
		"course_ids": idDetails(ids),
		"is_active":  active,
	}
	s.Audit.Log(actor, action, meta)

	return &BulkResult{Requested: len(ids), Affected: affected}, nil
}

func (s *CourseService) BulkActivate(actor *model.User, ids []uint, meta AuditEntry) (*BulkResult, error) {
	return s.bulkSetActive(actor, ids, true, "course_bulk_activate", meta)
}

func (s *CourseService) BulkDeactivate(actor *model.User, ids []uint, meta AuditEntry) (*BulkResult, error) {
	return s.bulkSetActive(actor, ids, false, "course_bulk_deactivate", meta)
}

// BulkDelete 软删除 记录保留，所有查询不再可见
func (s *CourseService) BulkDelete(actor *model.User, ids []uint, meta AuditEntry) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, util.ErrNoIDsProvided
	}

	affected, err := s.CourseRepo.DeleteBulk(ids)
	if err != nil {
		return nil, err
	}

	meta.ModelName = "Course"
	meta.Details = model.JSONMap{
		"count":      affected,
		"course_ids": idDetails(ids),
	}
	s.Audit.Log(actor, "course_bulk_delete", meta)

	return &BulkResult{Requested: len(ids), Affected: affected}, nil
}

// Approve 审核通过即上线
func (s *CourseService) Approve(actor *model.User, courseID uint, notes string, meta AuditEntry) (*model.CourseApproval, error) {
	return s.review(actor, courseID, model.ApprovalApproved, notes, "course_approve", meta)
}

// Reject 驳回并下线 notes 说明驳回原因
func (s *CourseService) Reject(actor *model.User, courseID uint, notes string, meta AuditEntry) (*model.CourseApproval, error) {
	return s.review(actor, courseID, model.ApprovalRejected, notes, "course_reject", meta)
}

func (s *CourseService) review(actor *model.User, courseID uint, status model.ApprovalStatus, notes, action string, meta AuditEntry) (*model.CourseApproval, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	approval, err := s.CourseRepo.FindOrCreateApproval(course.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	approval.Status = status
	approval.ReviewedByID = &actor.ID
	approval.ReviewNotes = notes
	approval.ReviewedAt = &now
	if err := s.CourseRepo.SaveApproval(approval); err != nil {
		return nil, err
	}

	course.IsActive = status == model.ApprovalApproved
	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}

	meta.ModelName = "Course"
	meta.ObjectID = strconv.FormatUint(uint64(course.ID), 10)
	meta.Details = model.JSONMap{"title": course.Title, "status": string(status), "notes": notes}
	s.Audit.Log(actor, action, meta)

	return approval, nil
}
