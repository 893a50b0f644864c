package router

import (
	"sort"
	"strings"

	"github.com/elitebuy/internal/authz"
	"github.com/elitebuy/internal/cache"
	"github.com/elitebuy/internal/config"
	adminhandlers "github.com/elitebuy/internal/http/handlers/admin"
	publichandlers "github.com/elitebuy/internal/http/handlers/public"
	"github.com/elitebuy/internal/http/response"
	"github.com/elitebuy/internal/logger"
	"github.com/elitebuy/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "eb"
	}
	redisClient := cache.Client()
	loginRule, registerRule := authRateLimitRules(cfg.Security.LoginRateLimit, redisPrefix)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	userAuth := UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/health", healthHandler)

		// 公开接口
		apiV1.GET("/products", publicHandler.GetProducts)
		apiV1.GET("/products/featured", publicHandler.GetFeaturedProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.GET("/categories", publicHandler.GetCategories)
		apiV1.GET("/captcha", publicHandler.GetImageCaptcha)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, registerRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(userAuth)
		{
			user.GET("/me", publicHandler.GetMe)
			user.PUT("/me", publicHandler.UpdateMe)
			user.PUT("/me/password", publicHandler.ChangeMyPassword)
			user.GET("/me/stats", publicHandler.GetMyStats)
			user.GET("/me/login-history", publicHandler.GetMyLoginLogs)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.POST("/checkout/quote", publicHandler.QuoteCheckout)
			user.POST("/checkout", publicHandler.Checkout)
			user.POST("/payments/:id/confirm", publicHandler.ConfirmPayment)
			user.GET("/orders", publicHandler.ListMyOrders)
			user.GET("/orders/:id", publicHandler.GetMyOrder)

			user.GET("/wishlist", publicHandler.GetWishlist)
			user.POST("/wishlist", publicHandler.AddWishlistItem)
			user.GET("/wishlist/:product_id", publicHandler.CheckWishlistItem)
			user.DELETE("/wishlist/:product_id", publicHandler.RemoveWishlistItem)

			user.GET("/addresses", publicHandler.ListAddresses)
			user.POST("/addresses", publicHandler.CreateAddress)
			user.PUT("/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/addresses/:id", publicHandler.DeleteAddress)
			user.POST("/addresses/:id/default", publicHandler.SetDefaultAddress)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		admin.Use(userAuth, AdminRBACMiddleware(c.AuthzService))
		{
			admin.GET("/analytics", adminHandler.GetAnalytics)

			// 商品与分类
			admin.GET("/products", adminHandler.GetAdminProducts)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)
			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			// 订单
			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.PATCH("/orders/:id", adminHandler.AdminUpdateOrderStatus)

			// 用户
			admin.GET("/users", adminHandler.GetAdminUsers)
			admin.PATCH("/users/:id", adminHandler.UpdateAdminUser)
			admin.DELETE("/users/:id", adminHandler.DeleteAdminUser)
			admin.GET("/users/:id/login-history", adminHandler.GetUserLoginLogs)

			// 权限
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.GET("/authz/permissions", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminPermissionCatalog(r))
			})
			admin.GET("/users/:id/roles", adminHandler.GetUserRoles)
			admin.PUT("/users/:id/roles", adminHandler.SetUserRoles)
		}
	}

	// 健康检查
	r.GET("/health", healthHandler)

	return r
}

func healthHandler(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
