package service

import (
	"math"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

// ProgressService 模块完成、课程进度重算与学习统计
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	CourseRepo   *repository.CourseRepository
	CertRepo     *repository.CertificateRepository
	AILabRepo    *repository.AILabRepository
	Certificates *CertificateService
	Achievements *AchievementService
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	courseRepo *repository.CourseRepository,
	certRepo *repository.CertificateRepository,
	aiLabRepo *repository.AILabRepository,
	certificates *CertificateService,
	achievements *AchievementService,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		CourseRepo:   courseRepo,
		CertRepo:     certRepo,
		AILabRepo:    aiLabRepo,
		Certificates: certificates,
		Achievements: achievements,
	}
}

// CompletionResult 一次完成事件的落盘结果
type CompletionResult struct {
	ModuleProgress *model.ModuleProgress `json:"moduleProgress"`
	CourseProgress *model.CourseProgress `json:"courseProgress"`
	Unlocked       []model.Achievement   `json:"unlockedAchievements"`
}

// RecordModuleCompletion 模块完成事件，幂等：重复完成同一模块不改变任何计数
func (s *ProgressService) RecordModuleCompletion(user *model.User, moduleID uint) (*CompletionResult, error) {
	module, err := s.CourseRepo.FindModuleByID(moduleID)
	if err != nil {
		return nil, util.ErrModuleNotFound
	}

	courseProgress, err := s.ProgressRepo.FindCourseProgress(user.ID, module.CourseID)
	if err != nil {
		return nil, util.ErrNotEnrolled
	}

	now := time.Now()
	firstCompletion := false

	moduleProgress, err := s.ProgressRepo.FindModuleProgress(user.ID, moduleID)
	if err != nil {
		moduleProgress = &model.ModuleProgress{
			UserID:      user.ID,
			ModuleID:    moduleID,
			IsCompleted: true,
			CompletedAt: &now,
		}
		if err := s.ProgressRepo.CreateModuleProgress(moduleProgress); err != nil {
			return nil, err
		}
		firstCompletion = true
	} else if !moduleProgress.IsCompleted {
		moduleProgress.IsCompleted = true
		moduleProgress.CompletedAt = &now
		if err := s.ProgressRepo.SaveModuleProgress(moduleProgress); err != nil {
			return nil, err
		}
		firstCompletion = true
	}

	courseProgress, err = s.recomputeCourseProgress(user, courseProgress)
	if err != nil {
		return nil, err
	}

	if !firstCompletion {
		return &CompletionResult{
			ModuleProgress: moduleProgress,
			CourseProgress: courseProgress,
		}, nil
	}

	// 只有真正新完成的模块才算学习活动，推进连续天数
	stats, err := s.MarkLearningActivity(user)
	if err != nil {
		return nil, err
	}
	stats, err = s.recomputeStats(user, stats)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.Achievements.EvaluateAndGrant(user, stats)
	if err != nil {
		logger.Log.Error("achievement evaluation failed",
			zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return &CompletionResult{
		ModuleProgress: moduleProgress,
		CourseProgress: courseProgress,
		Unlocked:       unlocked,
	}, nil
}

// recomputeCourseProgress 从模块进度重算课程级计数 不信任增量更新
func (s *ProgressService) recomputeCourseProgress(user *model.User, progress *model.CourseProgress) (*model.CourseProgress, error) {
	total, err := s.CourseRepo.CountModules(progress.CourseID)
	if err != nil {
		return nil, err
	}
	completed, err := s.ProgressRepo.CountCompletedModulesInCourse(user.ID, progress.CourseID)
	if err != nil {
		return nil, err
	}

	progress.CompletedModulesCount = int(completed)
	progress.TotalModulesCount = int(total)
	if total == 0 {
		progress.ProgressPercentage = 0
	} else {
		progress.ProgressPercentage = math.Round(float64(completed)/float64(total)*10000) / 100
	}
	progress.LastAccessedAt = time.Now()

	wasCompleted := progress.IsCompleted
	progress.IsCompleted = total > 0 && completed >= total
	if progress.IsCompleted && progress.CompletedAt == nil {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := s.ProgressRepo.SaveCourseProgress(progress); err != nil {
		return nil, err
	}

	if progress.IsCompleted && !wasCompleted {
		if course, err := s.CourseRepo.FindByID(progress.CourseID); err == nil {
			if _, err := s.Certificates.IssueForCourse(user, course); err != nil {
				logger.Log.Error("certificate issue failed",
					zap.Uint("user_id", user.ID),
					zap.Uint("course_id", course.ID),
					zap.Error(err),
				)
			}
		}
	}

	return progress, nil
}

// MarkLearningActivity 连续学习天数按自然日推进
// 同日重复活动不变；昨天有活动则 +1；否则重置为 1
func (s *ProgressService) MarkLearningActivity(user *model.User) (*model.LearningStats, error) {
	return s.markLearningActivityAt(user, time.Now())
}

// markLearningActivityAt 按日历日比较，不做时长除法：夏令时切换日不足24小时，
// 用 Sub 除 24h 会把连续的一天误判为同一天
func (s *ProgressService) markLearningActivityAt(user *model.User, now time.Time) (*model.LearningStats, error) {
	stats, err := s.ProgressRepo.FindOrCreateStats(user.ID)
	if err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if stats.LastLearningDate != nil {
		last := *stats.LastLearningDate
		lastDay := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, now.Location())
		switch {
		case lastDay.Equal(today):
			return stats, nil
		case lastDay.AddDate(0, 0, 1).Equal(today):
			stats.StreakDays++
		default:
			stats.StreakDays = 1
		}
	} else {
		stats.StreakDays = 1
	}

	stats.LastLearningDate = &today
	if err := s.ProgressRepo.SaveStats(stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// RecomputeLearningStats 从原始记录全量重算派生统计
// 连续天数与最后学习日期不在重算范围内，它们只由学习活动事件驱动
func (s *ProgressService) RecomputeLearningStats(user *model.User) (*model.LearningStats, error) {
	stats, err := s.ProgressRepo.FindOrCreateStats(user.ID)
	if err != nil {
		return nil, err
	}
	return s.recomputeStats(user, stats)
}

func (s *ProgressService) recomputeStats(user *model.User, stats *model.LearningStats) (*model.LearningStats, error) {
	minutes, err := s.ProgressRepo.SumTimeSpentMinutes(user.ID)
	if err != nil {
		return nil, err
	}
	courses, err := s.ProgressRepo.CountCompletedCourses(user.ID)
	if err != nil {
		return nil, err
	}
	modules, err := s.ProgressRepo.CountCompletedModules(user.ID)
	if err != nil {
		return nil, err
	}
	certs, err := s.CertRepo.CountByUser(user.ID)
	if err != nil {
		return nil, err
	}
	labs, err := s.AILabRepo.CountCompleted(user.ID)
	if err != nil {
		return nil, err
	}

	stats.TotalLearningHours = math.Round(float64(minutes)/60*100) / 100
	stats.TotalCoursesCompleted = int(courses)
	stats.TotalModulesCompleted = int(modules)
	stats.TotalCertificatesEarned = int(certs)
	stats.TotalAIProjects = int(labs)

	if err := s.ProgressRepo.SaveStats(stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// TrackModuleTime 学习时长与播放位置上报 不触发完成语义
func (s *ProgressService) TrackModuleTime(user *model.User, moduleID uint, minutes int, position float64) (*model.ModuleProgress, error) {
	module, err := s.CourseRepo.FindModuleByID(moduleID)
	if err != nil {
		return nil, util.ErrModuleNotFound
	}

	progress, err := s.ProgressRepo.FindModuleProgress(user.ID, moduleID)
	if err != nil {
		progress = &model.ModuleProgress{
			UserID:   user.ID,
			ModuleID: moduleID,
		}
		if err := s.ProgressRepo.CreateModuleProgress(progress); err != nil {
			return nil, err
		}
	}

	if minutes > 0 {
		progress.TimeSpentMinutes += minutes
	}
	if position > 0 {
		progress.LastPosition = position
	}
	if err := s.ProgressRepo.SaveModuleProgress(progress); err != nil {
		return nil, err
	}

	if courseProgress, err := s.ProgressRepo.FindCourseProgress(user.ID, module.CourseID); err == nil {
		courseProgress.LastAccessedAt = time.Now()
		mid := module.ID
		courseProgress.CurrentModuleID = &mid
		if err := s.ProgressRepo.SaveCourseProgress(courseProgress); err != nil {
			return nil, err
		}
	}

	return progress, nil
}

// ListCourseProgress 用户维度的课程进度列表
func (s *ProgressService) ListCourseProgress(user *model.User) ([]model.CourseProgress, error) {
	return s.ProgressRepo.ListCourseProgress(user.ID)
}

// GetStats 读取统计，不存在则按零值创建
func (s *ProgressService) GetStats(user *model.User) (*model.LearningStats, error) {
	return s.ProgressRepo.FindOrCreateStats(user.ID)
}
