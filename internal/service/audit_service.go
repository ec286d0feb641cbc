package service

import (
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// AuditService 管理操作的审计落盘
// 审计写入失败绝不回滚或阻塞被审计的主操作，只上报运维日志和指标
type AuditService struct {
	AuditRepo *repository.AuditRepository
}

func NewAuditService(auditRepo *repository.AuditRepository) *AuditService {
	return &AuditService{AuditRepo: auditRepo}
}

// AuditEntry 单条审计的可选上下文
type AuditEntry struct {
	ModelName string
	ObjectID  string
	Details   model.JSONMap
	IPAddress string
	UserAgent string
}

// idDetails 聚合审计条目里的请求ID列表
func idDetails(ids []uint) []interface{} {
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

// Log 每个逻辑操作恰好记录一条 批量操作记一条聚合条目
func (s *AuditService) Log(actor *model.User, action string, entry AuditEntry) {
	if actor == nil {
		logger.Log.Error("audit log dropped: no actor", zap.String("action", action))
		monitoring.AuditWriteFailures.Inc()
		return
	}

	details := entry.Details
	if details == nil {
		details = model.JSONMap{}
	}

	record := &model.AuditLog{
		AdminUserID: actor.ID,
		Action:      action,
		ModelName:   entry.ModelName,
		ObjectID:    entry.ObjectID,
		Details:     details,
		IPAddress:   entry.IPAddress,
		UserAgent:   entry.UserAgent,
		LoggedAt:    time.Now(),
	}

	if err := s.AuditRepo.Create(record); err != nil {
		logger.Log.Error("audit log write failed",
			zap.String("action", action),
			zap.Uint("admin_user_id", actor.ID),
			zap.Error(err),
		)
		monitoring.AuditWriteFailures.Inc()
	}
}

// List 审计日志查询（管理端只读）
func (s *AuditService) List(page, pageSize int, filter repository.AuditFilter) ([]model.AuditLog, int64, error) {
	return s.AuditRepo.List(page, pageSize, filter)
}
