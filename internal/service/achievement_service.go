package service

import (
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

// AchievementService 成就只增不减：一旦解锁，指标回落也不回收
type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	ProgressRepo    *repository.ProgressRepository
}

func NewAchievementService(achievementRepo *repository.AchievementRepository, progressRepo *repository.ProgressRepository) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		ProgressRepo:    progressRepo,
	}
}

// metricFor 按条件类型取当前指标值
func metricFor(criteria model.CriteriaType, stats *model.LearningStats) float64 {
	switch criteria {
	case model.CriteriaCoursesCompleted:
		return float64(stats.TotalCoursesCompleted)
	case model.CriteriaModulesCompleted:
		return float64(stats.TotalModulesCompleted)
	case model.CriteriaLearningHours:
		return stats.TotalLearningHours
	case model.CriteriaStreakDays:
		return float64(stats.StreakDays)
	case model.CriteriaLabsCompleted:
		return float64(stats.TotalAIProjects)
	case model.CriteriaCertificatesEarned:
		return float64(stats.TotalCertificatesEarned)
	}
	return 0
}

// EvaluateAndGrant 对照最新统计授予所有达标且未解锁的成就
// 返回本次新解锁的成就，供调用方通知用户
func (s *AchievementService) EvaluateAndGrant(user *model.User, stats *model.LearningStats) ([]model.Achievement, error) {
	achievements, err := s.AchievementRepo.FindActive()
	if err != nil {
		return nil, err
	}
	granted, err := s.AchievementRepo.FindGrantedIDs(user.ID)
	if err != nil {
		return nil, err
	}

	var unlocked []model.Achievement
	for _, a := range achievements {
		if granted[a.ID] {
			continue
		}
		if metricFor(a.CriteriaType, stats) < float64(a.CriteriaThreshold) {
			continue
		}

		grant := &model.UserAchievement{
			UserID:        user.ID,
			AchievementID: a.ID,
			UnlockedAt:    time.Now(),
		}
		if err := s.AchievementRepo.CreateGrant(grant); err != nil {
			logger.Log.Error("achievement grant failed",
				zap.Uint("user_id", user.ID),
				zap.Uint("achievement_id", a.ID),
				zap.Error(err),
			)
			continue
		}
		unlocked = append(unlocked, a)
	}
	return unlocked, nil
}

// ListForUser 全部启用成就 + 用户的解锁记录
// 读取前先按最新统计补评一轮，错过完成事件的成就在这里补发
func (s *AchievementService) ListForUser(user *model.User) ([]model.Achievement, []model.UserAchievement, error) {
	stats, err := s.ProgressRepo.FindOrCreateStats(user.ID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.EvaluateAndGrant(user, stats); err != nil {
		return nil, nil, err
	}

	achievements, err := s.AchievementRepo.FindActive()
	if err != nil {
		return nil, nil, err
	}
	grants, err := s.AchievementRepo.FindGrants(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return achievements, grants, nil
}
