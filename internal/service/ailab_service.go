package service

import (
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// AILabService AI实验的状态流转 available -> in_progress -> completed
type AILabService struct {
	AILabRepo *repository.AILabRepository
	Progress  *ProgressService
}

func NewAILabService(aiLabRepo *repository.AILabRepository, progress *ProgressService) *AILabService {
	return &AILabService{
		AILabRepo: aiLabRepo,
		Progress:  progress,
	}
}

// LabView 实验及当前用户的状态
type LabView struct {
	Lab      model.AILab          `json:"lab"`
	Progress *model.AILabProgress `json:"progress,omitempty"`
	Status   model.LabStatus      `json:"status"`
}

func (s *AILabService) ListForUser(user *model.User) ([]LabView, error) {
	labs, err := s.AILabRepo.FindActive()
	if err != nil {
		return nil, err
	}

	progressByLab := map[uint]*model.AILabProgress{}
	if user != nil {
		list, err := s.AILabRepo.ListProgress(user.ID)
		if err != nil {
			return nil, err
		}
		for i := range list {
			progressByLab[list[i].LabID] = &list[i]
		}
	}

	views := make([]LabView, 0, len(labs))
	for _, lab := range labs {
		view := LabView{Lab: lab, Status: model.LabAvailable}
		if p, ok := progressByLab[lab.ID]; ok {
			view.Progress = p
			view.Status = p.Status
		}
		views = append(views, view)
	}
	return views, nil
}

// StartLab 重复开始只累计尝试次数，不重置已有进度
func (s *AILabService) StartLab(user *model.User, labID uint) (*model.AILabProgress, error) {
	lab, err := s.AILabRepo.FindActiveByID(labID)
	if err != nil {
		return nil, util.ErrLabNotFound
	}

	now := time.Now()
	progress, err := s.AILabRepo.FindProgress(user.ID, lab.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress = &model.AILabProgress{
			UserID:        user.ID,
			LabID:         lab.ID,
			Status:        model.LabInProgress,
			StartedAt:     &now,
			Attempts:      1,
			LastAttemptAt: &now,
		}
		if err := s.AILabRepo.CreateProgress(progress); err != nil {
			return nil, err
		}
		return progress, nil
	}

	if progress.Status != model.LabCompleted {
		progress.Status = model.LabInProgress
	}
	if progress.StartedAt == nil {
		progress.StartedAt = &now
	}
	progress.Attempts++
	progress.LastAttemptAt = &now
	if err := s.AILabRepo.SaveProgress(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// CompleteLab 完成实验并更新统计与成就 重复完成只刷新分数
func (s *AILabService) CompleteLab(user *model.User, labID uint, score *float64) (*model.AILabProgress, error) {
	lab, err := s.AILabRepo.FindActiveByID(labID)
	if err != nil {
		return nil, util.ErrLabNotFound
	}

	progress, err := s.AILabRepo.FindProgress(user.ID, lab.ID)
	if err != nil {
		return nil, util.ErrLabNotFound
	}

	now := time.Now()
	firstCompletion := progress.Status != model.LabCompleted

	progress.Status = model.LabCompleted
	if progress.CompletedAt == nil {
		progress.CompletedAt = &now
	}
	if score != nil {
		progress.Score = score
	}
	if err := s.AILabRepo.SaveProgress(progress); err != nil {
		return nil, err
	}

	if firstCompletion {
		if _, err := s.Progress.MarkLearningActivity(user); err != nil {
			return nil, err
		}
		stats, err := s.Progress.RecomputeLearningStats(user)
		if err != nil {
			return nil, err
		}
		if _, err := s.Progress.Achievements.EvaluateAndGrant(user, stats); err != nil {
			return nil, err
		}
	}

	return progress, nil
}
