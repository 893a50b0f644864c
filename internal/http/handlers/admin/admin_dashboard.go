package admin

import (
	"strings"

	"github.com/elitebuy/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetAnalytics 获取后台经营概览，refresh=1 时跳过缓存
func (h *Handler) GetAnalytics(c *gin.Context) {
	refresh := strings.TrimSpace(c.Query("refresh"))
	forceRefresh := refresh == "1" || strings.EqualFold(refresh, "true")

	data, err := h.AnalyticsService.GetAnalytics(c.Request.Context(), forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, data)
}
