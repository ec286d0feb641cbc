package database

import (
	"fmt"
	"log"

	"lms_backend/internal/config"
	"lms_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	SeedDefaults(db)

	return db, nil
}

// Migrate 测试环境用sqlite时也走同一份迁移
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Session{},
		&model.Course{},
		&model.CourseModule{},
		&model.CourseProgress{},
		&model.ModuleProgress{},
		&model.LearningStats{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.AILab{},
		&model.AILabProgress{},
		&model.Certificate{},
		&model.AuditLog{},
		&model.SystemConfig{},
		&model.CourseApproval{},
	)
}

// SeedDefaults 成就目录为空时插入默认徽章
func SeedDefaults(db *gorm.DB) {
	var count int64
	db.Model(&model.Achievement{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := []model.Achievement{
		{Title: "First Steps", Description: "Complete your first module", IconName: "footprints", CriteriaType: model.CriteriaModulesCompleted, CriteriaThreshold: 1, IsActive: true},
		{Title: "Course Finisher", Description: "Complete your first course", IconName: "graduation-cap", CriteriaType: model.CriteriaCoursesCompleted, CriteriaThreshold: 1, IsActive: true},
		{Title: "Dedicated Learner", Description: "Complete 5 courses", IconName: "medal", CriteriaType: model.CriteriaCoursesCompleted, CriteriaThreshold: 5, IsActive: true},
		{Title: "Ten Hours In", Description: "Accumulate 10 learning hours", IconName: "clock", CriteriaType: model.CriteriaLearningHours, CriteriaThreshold: 10, IsActive: true},
		{Title: "Week Streak", Description: "Learn 7 days in a row", IconName: "flame", CriteriaType: model.CriteriaStreakDays, CriteriaThreshold: 7, IsActive: true},
		{Title: "Lab Rat", Description: "Complete your first AI lab", IconName: "flask", CriteriaType: model.CriteriaLabsCompleted, CriteriaThreshold: 1, IsActive: true},
		{Title: "Certified", Description: "Earn your first certificate", IconName: "award", CriteriaType: model.CriteriaCertificatesEarned, CriteriaThreshold: 1, IsActive: true},
	}
	for _, a := range defaults {
		db.Create(&a)
	}
}
