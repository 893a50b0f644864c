package admin

import (
	"github.com/elitebuy/internal/http/response"

	"github.com/gin-gonic/gin"
)

type authzSetUserRolesPayload struct {
	Roles []string `json:"roles"`
}

// ListAuthzRoles 获取角色及其策略
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	items := make([]gin.H, 0, len(roles))
	for _, role := range roles {
		policies, err := h.AuthzService.GetRolePolicies(role)
		if err != nil {
			respondError(c, response.CodeInternal, "error.internal", err)
			return
		}
		items = append(items, gin.H{
			"role":     role,
			"policies": policies,
		})
	}
	response.Success(c, items)
}

// GetUserRoles 获取用户的附加角色
func (h *Handler) GetUserRoles(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetUserRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"user_id": userID, "roles": roles})
}

// SetUserRoles 覆盖设置用户的附加角色
func (h *Handler) SetUserRoles(c *gin.Context) {
	userID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var req authzSetUserRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserService.GetProfile(userID)
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, response.CodeInternal, "error.internal")
		return
	}
	if err := h.AuthzService.SetUserRoles(user.ID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	roles, err := h.AuthzService.GetUserRoles(user.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	requestLog(c).Infow("admin_user_roles_updated", "user_id", user.ID, "roles", roles)
	response.Success(c, gin.H{"user_id": user.ID, "roles": roles})
}
