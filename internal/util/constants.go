package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// AdminTokenCookie 管理端令牌的回退Cookie名 Authorization头优先
const AdminTokenCookie = "admin_token"
