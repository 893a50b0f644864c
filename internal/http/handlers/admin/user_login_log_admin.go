package admin

import (
	"strconv"

	"github.com/elitebuy/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetUserLoginLogs 获取指定用户的登录记录
func (h *Handler) GetUserLoginLogs(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	logs, err := h.LoginHistoryService.List(userID, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, logs)
}
