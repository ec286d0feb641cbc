package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms_backend/internal/config"
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

type gateEnv struct {
	DB       *gorm.DB
	Sessions *service.SessionService
	Router   *gin.Engine
}

func newGateEnv(t *testing.T) *gateEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret-0123456789-0123456789"
	cfg.Session.ExpireTime = 7 * 24 * time.Hour

	sessions := service.NewSessionService(repository.NewSessionRepository(db), cfg)

	r := gin.New()
	r.GET("/me", RequireAuth(sessions), func(c *gin.Context) {
		util.Success(c, gin.H{"email": GetActor(c).Email})
	})
	r.GET("/staff", RequireAuth(sessions), RequireStaff(), func(c *gin.Context) {
		util.Success(c, nil)
	})
	r.GET("/super", RequireAuth(sessions), RequireStaff(), RequireSuperuser(), func(c *gin.Context) {
		util.Success(c, nil)
	})
	r.GET("/open", TryAuth(sessions), func(c *gin.Context) {
		user := GetActor(c)
		if user == nil {
			util.Success(c, gin.H{"anonymous": true})
			return
		}
		util.Success(c, gin.H{"email": user.Email})
	})

	return &gateEnv{DB: db, Sessions: sessions, Router: r}
}

func (env *gateEnv) createUserSession(t *testing.T, email string, staff, super bool) (*model.User, *model.Session) {
	t.Helper()
	user := &model.User{
		Email:       email,
		Password:    "x",
		FullName:    "Test User",
		IsStaff:     staff,
		IsSuperuser: super,
		Status:      model.StatusActive,
	}
	require.NoError(t, env.DB.Create(user).Error)

	session, err := env.Sessions.Create(user)
	require.NoError(t, err)
	return user, session
}

func (env *gateEnv) do(req *http.Request) (*httptest.ResponseRecorder, util.Response) {
	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)

	var body util.Response
	json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestMissingAndInvalidTokenMessagesDiffer(t *testing.T) {
	env := newGateEnv(t)

	// 缺失令牌
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w, body := env.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, util.ErrMissingToken.Message, body.Message)

	// 无效令牌必须是另一条消息
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer bogus-token")
	w, body = env.do(req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, util.ErrInvalidToken.Message, body.Message)

	assert.NotEqual(t, util.ErrMissingToken.Message, util.ErrInvalidToken.Message)
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	env := newGateEnv(t)
	_, session := env.createUserSession(t, "alice@example.com", false, false)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w, _ := env.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHeaderWinsOverCookie(t *testing.T) {
	env := newGateEnv(t)
	_, headerSession := env.createUserSession(t, "header@example.com", false, false)
	_, cookieSession := env.createUserSession(t, "cookie@example.com", false, false)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+headerSession.Token)
	req.AddCookie(&http.Cookie{Name: util.AdminTokenCookie, Value: cookieSession.Token})

	w, body := env.do(req)
	assert.Equal(t, http.StatusOK, w.Code)

	payload, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "header@example.com", payload["email"])
}

func TestCookieFallback(t *testing.T) {
	env := newGateEnv(t)
	_, session := env.createUserSession(t, "cookie@example.com", false, false)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: util.AdminTokenCookie, Value: session.Token})

	w, _ := env.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaffGateReturns403NotChallenge(t *testing.T) {
	env := newGateEnv(t)
	_, memberSession := env.createUserSession(t, "member@example.com", false, false)
	_, staffSession := env.createUserSession(t, "staff@example.com", true, false)

	// 已认证但权限不足是403，不是401
	req := httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+memberSession.Token)
	w, _ := env.do(req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+staffSession.Token)
	w, _ = env.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSuperuserGate(t *testing.T) {
	env := newGateEnv(t)
	_, staffSession := env.createUserSession(t, "staff@example.com", true, false)
	_, superSession := env.createUserSession(t, "root@example.com", true, true)

	req := httptest.NewRequest(http.MethodGet, "/super", nil)
	req.Header.Set("Authorization", "Bearer "+staffSession.Token)
	w, _ := env.do(req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/super", nil)
	req.Header.Set("Authorization", "Bearer "+superSession.Token)
	w, _ = env.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTryAuthNeverBlocks(t *testing.T) {
	env := newGateEnv(t)

	// 匿名照常放行
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w, body := env.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	payload := body.Data.(map[string]interface{})
	assert.Equal(t, true, payload["anonymous"])

	// 坏令牌也放行，只是不注入用户
	req = httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w, body = env.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	payload = body.Data.(map[string]interface{})
	assert.Equal(t, true, payload["anonymous"])
}
