package public

import (
	handlershared "github.com/elitebuy/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.CurrentUserID(c)
}
