package admin

import "github.com/elitebuy/internal/provider"

// Handler 后台接口：商品与分类维护、订单状态、用户与角色、经营分析
// 路由层已经做过 JWT 与 Casbin 校验
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
