package admin

import (
	"strings"

	handlershared "github.com/elitebuy/internal/http/handlers/shared"
	"github.com/elitebuy/internal/http/response"
	"github.com/elitebuy/internal/repository"
	"github.com/elitebuy/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateAdminUserRequest 管理员更新用户请求
type UpdateAdminUserRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

var userAdminErrorRules = []mappedHandlerError{
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
	{Target: service.ErrCannotDeleteSelf, Code: response.CodeBadRequest, Key: "error.cannot_modify_self"},
}

// GetAdminUsers 获取用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)

	users, total, err := h.UserService.ListUsers(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Role:     strings.TrimSpace(c.Query("role")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, users, handlershared.BuildPagination(page, pageSize, total))
}

// UpdateAdminUser 启用/禁用用户
func (h *Handler) UpdateAdminUser(c *gin.Context) {
	actorID, ok := getActorID(c)
	if !ok {
		return
	}
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req UpdateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserService.SetUserActive(actorID, userID, *req.IsActive)
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, user)
}

// DeleteAdminUser 删除用户及其关联数据
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	actorID, ok := getActorID(c)
	if !ok {
		return
	}
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.UserService.DeleteUser(actorID, userID); err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	if h.AuthzService != nil {
		if err := h.AuthzService.SetUserRoles(userID, nil); err != nil {
			requestLog(c).Warnw("admin_user_roles_clear_failed", "user_id", userID, "error", err)
		}
	}
	response.Success(c, gin.H{"deleted": true})
}
