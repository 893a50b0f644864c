package public

import "github.com/elitebuy/internal/provider"

// Handler 商城前台接口：游客浏览目录，登录用户管理购物车、收藏、地址并结算下单
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
