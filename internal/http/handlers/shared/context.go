package shared

import (
	"github.com/elitebuy/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 鉴权中间件写入的上下文键
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// CurrentUserID 读取鉴权中间件写入的用户 ID，缺失时返回 401
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	return id, true
}
