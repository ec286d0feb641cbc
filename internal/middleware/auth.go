package middleware

import (
	"strings"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

const (
	ContextSessionKey = "session"
	ContextUserKey    = "user"
)

// ExtractToken Authorization 头优先于 admin_token cookie
// 两者同时存在时以头为准
func ExtractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
			return token
		}
	}
	if cookie, err := c.Cookie(util.AdminTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	return ""
}

// TryAuth 可选认证 令牌缺失或无效时照常放行，只是不注入用户
func TryAuth(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token != "" {
			if session, err := sessions.Authenticate(token); err == nil {
				c.Set(ContextSessionKey, session)
				c.Set(ContextUserKey, &session.User)
			}
		}
		c.Next()
	}
}

// RequireAuth 强制认证
// 缺令牌与坏令牌必须返回不同的401消息，客户端据此决定是否清除本地凭据
func RequireAuth(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			util.Error(c, util.ErrMissingToken.Status(), util.ErrMissingToken.Message)
			c.Abort()
			return
		}

		session, err := sessions.Authenticate(token)
		if err != nil {
			util.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, session)
		c.Set(ContextUserKey, &session.User)
		c.Next()
	}
}

// RequireStaff 挂在 RequireAuth 之后 非staff返回403而不是401
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetActor(c)
		if user == nil || !user.IsStaff {
			util.Error(c, util.ErrPermissionDenied.Status(), util.ErrPermissionDenied.Message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperuser 超级管理员专属路由
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetActor(c)
		if user == nil || !user.IsSuperuser {
			util.Error(c, util.ErrPermissionDenied.Status(), util.ErrPermissionDenied.Message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetActor 当前请求的认证用户 未认证返回nil
func GetActor(c *gin.Context) *model.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}

// GetSession 当前请求绑定的会话
func GetSession(c *gin.Context) *model.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*model.Session)
	if !ok {
		return nil
	}
	return session
}
