package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type configCtlEnv struct {
	Router     *gin.Engine
	ConfigRepo *repository.ConfigRepository
}

func newConfigCtlEnv(t *testing.T) *configCtlEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	admin := &model.User{
		Email:    "admin@example.com",
		Password: "x",
		FullName: "Admin",
		IsStaff:  true,
		Status:   model.StatusActive,
	}
	require.NoError(t, db.Create(admin).Error)

	configRepo := repository.NewConfigRepository(db)
	configs := service.NewConfigService(configRepo, service.NewAuditService(repository.NewAuditRepository(db)))
	ctl := NewAdminConfigController(configs)

	r := gin.New()
	r.PUT("/configs", func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, admin)
	}, ctl.Update)

	return &configCtlEnv{Router: r, ConfigRepo: configRepo}
}

func (env *configCtlEnv) createConfig(t *testing.T, key string, dataType model.ConfigType, value string) {
	t.Helper()
	require.NoError(t, env.ConfigRepo.Create(&model.SystemConfig{
		Key:      key,
		Value:    value,
		DataType: dataType,
	}))
}

func (env *configCtlEnv) putConfigs(t *testing.T, values map[string]string) (*httptest.ResponseRecorder, util.Response) {
	t.Helper()
	payload, err := json.Marshal(gin.H{"values": values})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/configs", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)

	var body util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestConfigUpdateAllValidReturns200(t *testing.T) {
	env := newConfigCtlEnv(t)
	env.createConfig(t, "site_name", model.ConfigString, "LMS")

	w, _ := env.putConfigs(t, map[string]string{"site_name": "New Name"})
	assert.Equal(t, http.StatusOK, w.Code)

	stored, err := env.ConfigRepo.FindByKey("site_name")
	require.NoError(t, err)
	assert.Equal(t, "New Name", stored.Value)
}

func TestConfigUpdatePartialFailureReturns400(t *testing.T) {
	env := newConfigCtlEnv(t)
	env.createConfig(t, "site_name", model.ConfigString, "LMS")
	env.createConfig(t, "max_attempts", model.ConfigInteger, "5")

	// 任意一个键失败就整体按400上报，逐键错误在响应体里
	w, body := env.putConfigs(t, map[string]string{
		"site_name":    "New Name",
		"max_attempts": "not-a-number",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Some configurations failed to update", body.Message)

	payload, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	errs, ok := payload["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "max_attempts")

	// 合法键仍然落盘
	stored, err := env.ConfigRepo.FindByKey("site_name")
	require.NoError(t, err)
	assert.Equal(t, "New Name", stored.Value)

	untouched, err := env.ConfigRepo.FindByKey("max_attempts")
	require.NoError(t, err)
	assert.Equal(t, "5", untouched.Value)
}
