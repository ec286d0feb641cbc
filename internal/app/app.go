package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Engine *gin.Engine

	tracerProvider *sdktrace.TracerProvider

	// repositories
	UserRepo        *repository.UserRepository
	SessionRepo     *repository.SessionRepository
	CourseRepo      *repository.CourseRepository
	ProgressRepo    *repository.ProgressRepository
	AchievementRepo *repository.AchievementRepository
	AuditRepo       *repository.AuditRepository
	ConfigRepo      *repository.ConfigRepository
	AILabRepo       *repository.AILabRepository
	CertRepo        *repository.CertificateRepository

	// services
	AuditSvc       *service.AuditService
	SessionSvc     *service.SessionService
	AuthSvc        *service.AuthService
	StorageSvc     *service.StorageService
	CertSvc        *service.CertificateService
	AchievementSvc *service.AchievementService
	ProgressSvc    *service.ProgressService
	CourseSvc      *service.CourseService
	AdminUserSvc   *service.AdminUserService
	ConfigSvc      *service.ConfigService
	AILabSvc       *service.AILabService

	// controllers
	AuthCtl        *controller.AuthController
	CourseCtl      *controller.CourseController
	ProgressCtl    *controller.ProgressController
	AchievementCtl *controller.AchievementController
	AILabCtl       *controller.AILabController
	CertCtl        *controller.CertificateController
	AdminAuthCtl   *controller.AdminAuthController
	AdminUserCtl   *controller.AdminUserController
	AdminCourseCtl *controller.AdminCourseController
	AdminConfigCtl *controller.AdminConfigController
	AdminAuditCtl  *controller.AdminAuditController
	HealthCtl      *controller.HealthController
}

func NewApp(cfg *config.Config) (*App, error) {
	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}

	a := &App{Cfg: cfg, DB: db}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("lms-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Warn("tracing disabled: collector unreachable", zap.Error(err))
		} else {
			a.tracerProvider = tp
		}
	}

	a.buildRepositories()
	if err := a.buildServices(); err != nil {
		return nil, err
	}
	a.buildControllers()
	a.Engine = a.buildRouter()

	return a, nil
}

func (a *App) buildRepositories() {
	a.UserRepo = repository.NewUserRepository(a.DB)
	a.SessionRepo = repository.NewSessionRepository(a.DB)
	a.CourseRepo = repository.NewCourseRepository(a.DB)
	a.ProgressRepo = repository.NewProgressRepository(a.DB)
	a.AchievementRepo = repository.NewAchievementRepository(a.DB)
	a.AuditRepo = repository.NewAuditRepository(a.DB)
	a.ConfigRepo = repository.NewConfigRepository(a.DB)
	a.AILabRepo = repository.NewAILabRepository(a.DB)
	a.CertRepo = repository.NewCertificateRepository(a.DB)
}

func (a *App) buildServices() error {
	storage, err := service.NewStorageService(a.Cfg)
	if err != nil {
		return err
	}
	a.StorageSvc = storage

	a.AuditSvc = service.NewAuditService(a.AuditRepo)
	a.SessionSvc = service.NewSessionService(a.SessionRepo, a.Cfg)
	a.AuthSvc = service.NewAuthService(a.UserRepo, a.SessionSvc, a.AuditSvc)
	a.CertSvc = service.NewCertificateService(a.CertRepo, a.StorageSvc)
	a.AchievementSvc = service.NewAchievementService(a.AchievementRepo, a.ProgressRepo)
	a.ProgressSvc = service.NewProgressService(a.ProgressRepo, a.CourseRepo, a.CertRepo, a.AILabRepo, a.CertSvc, a.AchievementSvc)
	a.CourseSvc = service.NewCourseService(a.CourseRepo, a.ProgressRepo, a.AuditSvc)
	a.AdminUserSvc = service.NewAdminUserService(a.UserRepo, a.CertRepo, a.CourseRepo, a.SessionSvc, a.AuditSvc)
	a.ConfigSvc = service.NewConfigService(a.ConfigRepo, a.AuditSvc)
	a.AILabSvc = service.NewAILabService(a.AILabRepo, a.ProgressSvc)

	return nil
}

func (a *App) buildControllers() {
	a.AuthCtl = controller.NewAuthController(a.AuthSvc)
	a.CourseCtl = controller.NewCourseController(a.CourseSvc)
	a.ProgressCtl = controller.NewProgressController(a.ProgressSvc)
	a.AchievementCtl = controller.NewAchievementController(a.AchievementSvc)
	a.AILabCtl = controller.NewAILabController(a.AILabSvc)
	a.CertCtl = controller.NewCertificateController(a.CertSvc)
	a.AdminAuthCtl = controller.NewAdminAuthController(a.AuthSvc, a.Cfg)
	a.AdminUserCtl = controller.NewAdminUserController(a.AdminUserSvc)
	a.AdminCourseCtl = controller.NewAdminCourseController(a.CourseSvc)
	a.AdminConfigCtl = controller.NewAdminConfigController(a.ConfigSvc)
	a.AdminAuditCtl = controller.NewAdminAuditController(a.AuditSvc)
	a.HealthCtl = controller.NewHealthController(a.DB)
}

// Run 启动HTTP服务并等待退出信号，收到信号后优雅关停
func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Cfg.Server.Port,
		Handler: a.Engine,
	}

	go func() {
		logger.Log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}

	return srv.Shutdown(ctx)
}
