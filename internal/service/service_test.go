package service

import (
	"fmt"
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv 一套内存数据库上的完整服务栈
type testEnv struct {
	DB *gorm.DB

	UserRepo        *repository.UserRepository
	SessionRepo     *repository.SessionRepository
	CourseRepo      *repository.CourseRepository
	ProgressRepo    *repository.ProgressRepository
	AchievementRepo *repository.AchievementRepository
	AuditRepo       *repository.AuditRepository
	ConfigRepo      *repository.ConfigRepository
	AILabRepo       *repository.AILabRepository
	CertRepo        *repository.CertificateRepository

	Audit        *AuditService
	Sessions     *SessionService
	Auth         *AuthService
	Certs        *CertificateService
	Achievements *AchievementService
	Progress     *ProgressService
	Courses      *CourseService
	AdminUsers   *AdminUserService
	Configs      *ConfigService
	Labs         *AILabService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret-0123456789-0123456789"
	cfg.Session.ExpireTime = 7 * 24 * time.Hour
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	env := &testEnv{DB: db}
	env.UserRepo = repository.NewUserRepository(db)
	env.SessionRepo = repository.NewSessionRepository(db)
	env.CourseRepo = repository.NewCourseRepository(db)
	env.ProgressRepo = repository.NewProgressRepository(db)
	env.AchievementRepo = repository.NewAchievementRepository(db)
	env.AuditRepo = repository.NewAuditRepository(db)
	env.ConfigRepo = repository.NewConfigRepository(db)
	env.AILabRepo = repository.NewAILabRepository(db)
	env.CertRepo = repository.NewCertificateRepository(db)

	storage, err := NewStorageService(cfg)
	require.NoError(t, err)

	env.Audit = NewAuditService(env.AuditRepo)
	env.Sessions = NewSessionService(env.SessionRepo, cfg)
	env.Auth = NewAuthService(env.UserRepo, env.Sessions, env.Audit)
	env.Certs = NewCertificateService(env.CertRepo, storage)
	env.Achievements = NewAchievementService(env.AchievementRepo, env.ProgressRepo)
	env.Progress = NewProgressService(env.ProgressRepo, env.CourseRepo, env.CertRepo, env.AILabRepo, env.Certs, env.Achievements)
	env.Courses = NewCourseService(env.CourseRepo, env.ProgressRepo, env.Audit)
	env.AdminUsers = NewAdminUserService(env.UserRepo, env.CertRepo, env.CourseRepo, env.Sessions, env.Audit)
	env.Configs = NewConfigService(env.ConfigRepo, env.Audit)
	env.Labs = NewAILabService(env.AILabRepo, env.Progress)

	return env
}

func (env *testEnv) createUser(t *testing.T, email, password string, staff bool) *model.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Email:    email,
		Password: string(hashed),
		FullName: "Test User",
		IsStaff:  staff,
		Status:   model.StatusActive,
	}
	require.NoError(t, env.UserRepo.Create(user))
	return user
}

func (env *testEnv) createCourse(t *testing.T, title string, moduleCount int) (*model.Course, []model.CourseModule) {
	t.Helper()
	course := &model.Course{Title: title, IsActive: true}
	require.NoError(t, env.CourseRepo.Create(course))

	modules := make([]model.CourseModule, 0, moduleCount)
	for i := 0; i < moduleCount; i++ {
		m := model.CourseModule{
			CourseID: course.ID,
			Title:    fmt.Sprintf("%s module %d", title, i+1),
			Order:    i + 1,
		}
		require.NoError(t, env.DB.Create(&m).Error)
		modules = append(modules, m)
	}
	return course, modules
}

func (env *testEnv) lastAuditLog(t *testing.T) *model.AuditLog {
	t.Helper()
	var entry model.AuditLog
	require.NoError(t, env.DB.Order("id DESC").First(&entry).Error)
	return &entry
}

func (env *testEnv) countAuditLogs(t *testing.T, action string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.DB.Model(&model.AuditLog{}).Where("action = ?", action).Count(&count).Error)
	return count
}
