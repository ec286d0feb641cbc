package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CertificateService struct {
	CertRepo *repository.CertificateRepository
	Storage  *StorageService
}

func NewCertificateService(certRepo *repository.CertificateRepository, storage *StorageService) *CertificateService {
	return &CertificateService{
		CertRepo: certRepo,
		Storage:  storage,
	}
}

// IssueForCourse 课程完成时签发 每个 (user, course) 只发一张，重复调用返回已有证书
func (s *CertificateService) IssueForCourse(user *model.User, course *model.Course) (*model.Certificate, error) {
	existing, err := s.CertRepo.FindByUserAndCourse(user.ID, course.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cert := &model.Certificate{
		UserID:        user.ID,
		CourseID:      course.ID,
		CertificateID: "CERT-" + strings.ToUpper(uuid.NewString()[:8]),
		IssuedAt:      time.Now(),
	}
	cert.DownloadURL = s.renderArtifact(user, course, cert)

	if err := s.CertRepo.Create(cert); err != nil {
		// 并发完成最后一个模块时可能撞唯一约束，以先写入者为准
		if existing, ferr := s.CertRepo.FindByUserAndCourse(user.ID, course.ID); ferr == nil {
			return existing, nil
		}
		return nil, err
	}
	return cert, nil
}

// renderArtifact 证书文件走存储后端，失败只降级为无下载链接
func (s *CertificateService) renderArtifact(user *model.User, course *model.Course, cert *model.Certificate) string {
	content := fmt.Sprintf(
		"Certificate of Completion\n\n%s\nhas successfully completed the course\n%s\n\nCertificate ID: %s\nIssued: %s\n",
		user.FullName,
		course.Title,
		cert.CertificateID,
		cert.IssuedAt.Format("2006-01-02"),
	)

	filename := "certificates/" + cert.CertificateID + ".txt"
	reader := strings.NewReader(content)

	url, err := s.Storage.Provider.Upload(context.Background(), filename, reader, int64(len(content)), "text/plain")
	if err != nil {
		logger.Log.Warn("certificate artifact upload failed",
			zap.String("certificate_id", cert.CertificateID),
			zap.Error(err),
		)
		return ""
	}
	return url
}

func (s *CertificateService) ListForUser(user *model.User) ([]model.Certificate, error) {
	return s.CertRepo.ListByUser(user.ID)
}
