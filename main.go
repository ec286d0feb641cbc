package main

import (
	"flag"
	"log"

	"lms_backend/internal/app"
	"lms_backend/internal/config"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

// @title LMS Backend API
// @version 1.0
// @description 学习管理系统后端服务
// @BasePath /api/v1
func main() {
	forceMigrate := flag.Bool("migrate", false, "run database migration on startup")
	migrateOnly := flag.Bool("migrate-only", false, "run migration and exit")
	configPath := flag.String("config", "configs", "config directory")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.ForceMigrate = *forceMigrate
	cfg.MigrateOnly = *migrateOnly

	logger.InitLogger(cfg.Server.Mode)
	defer logger.Log.Sync()

	application, err := app.NewApp(cfg)
	if err != nil {
		logger.Log.Fatal("failed to initialize application", zap.Error(err))
	}

	if cfg.MigrateOnly {
		logger.Log.Info("migration completed, exiting")
		return
	}

	if err := application.Run(); err != nil {
		logger.Log.Fatal("server shutdown failed", zap.Error(err))
	}
}
