package app

import (
	"time"

	"lms_backend/internal/middleware"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
)

func (a *App) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(security.Secure())
	r.Use(security.CORS(a.Cfg.CORS.AllowedOrigins))
	r.Use(monitoring.MetricsMiddleware())

	if a.Cfg.Tracing.Enabled && a.tracerProvider != nil {
		r.Use(tracing.GinMiddleware())
	}

	if a.Cfg.RateLimit.MaxRequests > 0 {
		window := time.Duration(a.Cfg.RateLimit.WindowMinutes) * time.Minute
		r.Use(security.RateLimiter(a.Cfg.RateLimit.MaxRequests, window))
	}

	r.GET("/health", a.HealthCtl.Check)
	r.GET("/metrics", monitoring.PrometheusHandler())

	api := r.Group("/api/v1")

	// 公开接口 登录用户附带进度，匿名也可浏览
	public := api.Group("")
	public.Use(middleware.TryAuth(a.SessionSvc))
	{
		public.POST("/auth/signup", a.AuthCtl.Signup)
		public.POST("/auth/login", a.AuthCtl.Login)
		public.POST("/auth/logout", a.AuthCtl.Logout)
		public.GET("/courses", a.CourseCtl.List)
		public.GET("/courses/:id", a.CourseCtl.Detail)
	}

	// 需要登录
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(a.SessionSvc))
	{
		authed.GET("/auth/profile", a.AuthCtl.Profile)
		authed.PUT("/auth/password", a.AuthCtl.ChangePassword)

		authed.POST("/courses/:id/enroll", a.CourseCtl.Enroll)
		authed.GET("/progress", a.ProgressCtl.ListProgress)
		authed.POST("/modules/:id/complete", a.ProgressCtl.CompleteModule)
		authed.POST("/modules/:id/track", a.ProgressCtl.TrackTime)
		authed.GET("/stats", a.ProgressCtl.Stats)
		authed.POST("/stats/recompute", a.ProgressCtl.RecomputeStats)

		authed.GET("/achievements", a.AchievementCtl.List)
		authed.GET("/certificates", a.CertCtl.List)

		authed.GET("/labs", a.AILabCtl.List)
		authed.POST("/labs/:id/start", a.AILabCtl.Start)
		authed.POST("/labs/:id/complete", a.AILabCtl.Complete)
	}

	// 管理端登录不要求已有会话
	api.POST("/admin/auth/login", a.AdminAuthCtl.Login)

	// 管理端 staff 可用
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(a.SessionSvc), middleware.RequireStaff())
	{
		admin.POST("/auth/logout", a.AdminAuthCtl.Logout)
		admin.GET("/stats", a.AdminUserCtl.Stats)

		admin.GET("/users", a.AdminUserCtl.List)
		admin.GET("/users/:id", a.AdminUserCtl.Get)
		admin.POST("/users/:id/activate", a.AdminUserCtl.Activate)
		admin.POST("/users/:id/deactivate", a.AdminUserCtl.Deactivate)
		admin.POST("/users/bulk-activate", a.AdminUserCtl.BulkActivate)
		admin.POST("/users/bulk-deactivate", a.AdminUserCtl.BulkDeactivate)

		admin.GET("/courses", a.AdminCourseCtl.List)
		admin.POST("/courses", a.AdminCourseCtl.Create)
		admin.PUT("/courses/:id", a.AdminCourseCtl.Update)
		admin.POST("/courses/:id/approve", a.AdminCourseCtl.Approve)
		admin.POST("/courses/:id/reject", a.AdminCourseCtl.Reject)
		admin.POST("/courses/bulk-activate", a.AdminCourseCtl.BulkActivate)
		admin.POST("/courses/bulk-deactivate", a.AdminCourseCtl.BulkDeactivate)

		admin.GET("/audit-logs", a.AdminAuditCtl.List)
		admin.GET("/configs", a.AdminConfigCtl.List)
	}

	// 超级管理员专属
	super := api.Group("/admin")
	super.Use(middleware.RequireAuth(a.SessionSvc), middleware.RequireStaff(), middleware.RequireSuperuser())
	{
		super.POST("/users/:id/promote", a.AdminUserCtl.Promote)
		super.POST("/users/bulk-delete", a.AdminUserCtl.BulkDelete)
		super.POST("/courses/bulk-delete", a.AdminCourseCtl.BulkDelete)
		super.PUT("/configs", a.AdminConfigCtl.Update)
		super.POST("/configs/reset", a.AdminConfigCtl.Reset)
	}

	return r
}
