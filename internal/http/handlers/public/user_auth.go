package public

import (
	"time"

	"github.com/elitebuy/internal/http/response"
	"github.com/elitebuy/internal/service"

	"github.com/gin-gonic/gin"
)

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.UserAuthService.Register(req, loginMeta(c))
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, authPayload(result))
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req service.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.UserAuthService.Login(req, loginMeta(c))
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, authPayload(result))
}

// GetMe 获取当前用户资料
func (h *Handler) GetMe(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserService.GetProfile(uid)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, user)
}

// UpdateMe 更新当前用户资料
func (h *Handler) UpdateMe(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req service.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserService.UpdateProfile(uid, req)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, user)
}

// ChangeMyPassword 修改当前用户密码
func (h *Handler) ChangeMyPassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(uid, req.CurrentPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// GetMyStats 获取当前用户统计
func (h *Handler) GetMyStats(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	stats, err := h.UserService.GetUserStats(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, stats)
}

func loginMeta(c *gin.Context) service.LoginMeta {
	meta := service.LoginMeta{
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			meta.RequestID = id
		}
	}
	return meta
}

func authPayload(result *service.AuthResult) gin.H {
	return gin.H{
		"user":       result.User,
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Format(time.RFC3339),
	}
}
