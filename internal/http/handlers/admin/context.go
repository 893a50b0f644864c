package admin

import (
	handlershared "github.com/elitebuy/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// getActorID 当前操作的管理员用户 ID
func getActorID(c *gin.Context) (uint, bool) {
	return handlershared.CurrentUserID(c)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseUintParam(c, name)
}
