package service

import "lms_backend/internal/model"

// defaultConfigs 出厂配置 重置时以此为准
var defaultConfigs = []model.SystemConfig{
	{
		Key:         "site_name",
		Value:       "LMS Platform",
		Description: "站点名称",
		Category:    "general",
		DataType:    model.ConfigString,
	},
	{
		Key:         "maintenance_mode",
		Value:       "false",
		Description: "维护模式开关，开启后前台停止服务",
		Category:    "general",
		DataType:    model.ConfigBoolean,
	},
	{
		Key:         "registration_enabled",
		Value:       "true",
		Description: "是否开放新用户注册",
		Category:    "general",
		DataType:    model.ConfigBoolean,
	},
	{
		Key:         "session_expire_days",
		Value:       "7",
		Description: "会话有效天数",
		Category:    "security",
		DataType:    model.ConfigInteger,
	},
	{
		Key:         "max_login_attempts",
		Value:       "5",
		Description: "登录尝试上限",
		Category:    "security",
		DataType:    model.ConfigInteger,
	},
	{
		Key:         "default_language",
		Value:       "zh-CN",
		Description: "默认界面语言",
		Category:    "general",
		DataType:    model.ConfigSelect,
		Options:     `["zh-CN","en-US"]`,
	},
	{
		Key:         "smtp_password",
		Value:       "",
		Description: "SMTP发信密码",
		Category:    "email",
		DataType:    model.ConfigPassword,
	},
	{
		Key:         "featured_courses",
		Value:       "[]",
		Description: "首页推荐课程ID列表",
		Category:    "content",
		DataType:    model.ConfigJSON,
	},
}
