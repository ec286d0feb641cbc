package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ConfigRepository struct {
	DB *gorm.DB
}

func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{DB: db}
}

func (r *ConfigRepository) FindAll() ([]model.SystemConfig, error) {
	var configs []model.SystemConfig
	err := r.DB.Order("category, `key`").Find(&configs).Error
	return configs, err
}

func (r *ConfigRepository) FindByKey(key string) (*model.SystemConfig, error) {
	var config model.SystemConfig
	err := r.DB.Where("`key` = ?", key).First(&config).Error
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *ConfigRepository) Save(config *model.SystemConfig) error {
	return r.DB.Save(config).Error
}

func (r *ConfigRepository) Create(config *model.SystemConfig) error {
	return r.DB.Create(config).Error
}
