package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

// ConfigService 系统配置的读写与类型校验
type ConfigService struct {
	ConfigRepo *repository.ConfigRepository
	Audit      *AuditService
}

func NewConfigService(configRepo *repository.ConfigRepository, audit *AuditService) *ConfigService {
	return &ConfigService{
		ConfigRepo: configRepo,
		Audit:      audit,
	}
}

func (s *ConfigService) GetAll() ([]model.SystemConfig, error) {
	return s.ConfigRepo.FindAll()
}

// normalizeValue 按配置项的类型标签校验并规范化新值
// 类型集合是封闭的：未知标签一律拒绝，而不是放行
func normalizeValue(cfg *model.SystemConfig, raw string) (string, error) {
	switch cfg.DataType {
	case model.ConfigString, model.ConfigText, model.ConfigPassword, model.ConfigSecret:
		return raw, nil

	case model.ConfigInteger:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return "", fmt.Errorf("value must be an integer")
		}
		return strconv.Itoa(n), nil

	case model.ConfigBoolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1":
			return "true", nil
		case "false", "0":
			return "false", nil
		}
		return "", fmt.Errorf("value must be a boolean")

	case model.ConfigSelect:
		var options []string
		if err := json.Unmarshal([]byte(cfg.Options), &options); err != nil {
			return "", fmt.Errorf("config has no valid options defined")
		}
		for _, opt := range options {
			if raw == opt {
				return raw, nil
			}
		}
		return "", fmt.Errorf("value must be one of: %s", strings.Join(options, ", "))

	case model.ConfigJSON:
		if !json.Valid([]byte(raw)) {
			return "", fmt.Errorf("value must be valid JSON")
		}
		return raw, nil
	}

	return "", fmt.Errorf("unknown data type %q", cfg.DataType)
}

// UpdateResult 批量更新回执 合法键已生效，非法键逐个报错
type UpdateResult struct {
	Updated []string          `json:"updated"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// UpdateBatch 部分成功语义：单个键校验失败不影响其余键落盘
func (s *ConfigService) UpdateBatch(actor *model.User, values map[string]string, meta AuditEntry) (*UpdateResult, error) {
	if len(values) == 0 {
		return nil, util.Validation("no config values provided")
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := &UpdateResult{Errors: map[string]string{}}
	for _, key := range keys {
		cfg, err := s.ConfigRepo.FindByKey(key)
		if err != nil {
			result.Errors[key] = "unknown config key"
			continue
		}

		normalized, err := normalizeValue(cfg, values[key])
		if err != nil {
			result.Errors[key] = err.Error()
			continue
		}

		cfg.Value = normalized
		cfg.UpdatedByID = &actor.ID
		if err := s.ConfigRepo.Save(cfg); err != nil {
			result.Errors[key] = "failed to save"
			continue
		}
		result.Updated = append(result.Updated, key)
	}

	if len(result.Errors) == 0 {
		result.Errors = nil
	}

	if len(result.Updated) > 0 {
		updatedList := make([]interface{}, len(result.Updated))
		for i, k := range result.Updated {
			updatedList[i] = k
		}
		meta.ModelName = "SystemConfig"
		meta.Details = model.JSONMap{"keys": updatedList, "count": len(result.Updated)}
		s.Audit.Log(actor, "config_update", meta)
	}

	return result, nil
}

// ResetDefaults 缺失的默认项补齐，已有项恢复默认值
func (s *ConfigService) ResetDefaults(actor *model.User, meta AuditEntry) error {
	for _, def := range defaultConfigs {
		cfg, err := s.ConfigRepo.FindByKey(def.Key)
		if err != nil {
			fresh := def
			fresh.UpdatedByID = &actor.ID
			if err := s.ConfigRepo.Create(&fresh); err != nil {
				return err
			}
			continue
		}
		cfg.Value = def.Value
		cfg.Description = def.Description
		cfg.Category = def.Category
		cfg.DataType = def.DataType
		cfg.Options = def.Options
		cfg.UpdatedByID = &actor.ID
		if err := s.ConfigRepo.Save(cfg); err != nil {
			return err
		}
	}

	meta.ModelName = "SystemConfig"
	meta.Details = model.JSONMap{"count": len(defaultConfigs)}
	s.Audit.Log(actor, "config_reset", meta)
	return nil
}
