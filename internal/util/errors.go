package util

import "net/http"

// ErrorKind 错误分类 与对外的HTTP状态一一对应
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func Validation(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

func Authentication(msg string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: msg}
}

func Authorization(msg string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: msg}
}

func NotFoundError(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

var (
	// 登录失败统一为一条笼统消息，避免账号枚举
	ErrInvalidCredentials = Validation("invalid credentials")

	// 缺失令牌与无效令牌的消息必须可区分，客户端重试逻辑依赖这一点
	ErrMissingToken = Authentication("Authentication required")
	ErrInvalidToken = Authentication("Invalid or expired token")

	ErrPermissionDenied = Authorization("permission denied")

	ErrUserNotFound     = NotFoundError("用户不存在")
	ErrCourseNotFound   = NotFoundError("course not found")
	ErrModuleNotFound   = NotFoundError("module not found")
	ErrLabNotFound      = NotFoundError("lab not found")
	ErrNotEnrolled      = NotFoundError("not enrolled in this course")
	ErrEmailRegistered  = Conflict("该邮箱已被注册")
	ErrAlreadyEnrolled  = Conflict("already enrolled in this course")
	ErrWrongPassword    = Validation("current password is incorrect")
	ErrNoIDsProvided    = Validation("no ids provided")
)
