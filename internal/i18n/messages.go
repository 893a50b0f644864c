package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":             "Invalid request",
		"error.unauthorized":            "Unauthorized",
		"error.forbidden":               "Forbidden",
		"error.not_found":               "Resource not found",
		"error.internal":                "Internal server error",
		"error.jwt_secret_missing":      "Authentication is not configured",
		"error.auth_header_missing":     "Missing Authorization header",
		"error.auth_header_invalid":     "Authorization header must be Bearer token",
		"error.token_invalid":           "Invalid or expired token",
		"error.user_disabled":           "Account has been disabled",
		"error.rate_limit_unavailable":  "Rate limiter unavailable, please try again later",
		"error.rate_limited":            "Too many requests, please retry in %d seconds",
		"error.login_too_many":          "Too many login attempts, please retry in %d seconds",
		"error.invalid_credentials":     "Invalid email or password",
		"error.email_exists":            "An account with this email already exists",
		"error.user_not_found":          "User not found",
		"error.cannot_modify_self":      "You cannot disable or delete your own account",
		"error.captcha_required":        "Please complete the captcha",
		"error.captcha_invalid":         "Captcha is incorrect",
		"error.captcha_disabled":        "Captcha is not enabled",
		"error.product_not_found":       "Product not found",
		"error.product_not_available":   "Product is not available",
		"error.product_invalid":         "Product name, price and stock are required",
		"error.category_not_found":      "Category not found",
		"error.category_exists":         "A category with this slug already exists",
		"error.category_invalid":        "Category name is invalid",
		"error.category_in_use":         "Category still has products",
		"error.invalid_quantity":        "Quantity must be at least 1",
		"error.cart_empty":              "Your cart is empty",
		"error.order_not_found":         "Order not found",
		"error.order_create_failed":     "Failed to place order",
		"error.order_status_invalid":    "Invalid order status transition",
		"error.payment_not_found":       "Payment not found",
		"error.payment_not_pending":     "Payment has already been processed",
		"error.payment_not_confirmable": "Only mobile money payments can be confirmed",
		"error.payment_method_invalid":  "Please select a payment method",
		"error.payment_status_invalid":  "Invalid payment status",
		"error.wishlist_exists":         "Product is already in your wishlist",
		"error.wishlist_not_found":      "Product is not in your wishlist",
		"error.address_not_found":       "Address not found",
		"error.region_invalid":          "Please select a valid region",
	},
	LocaleZhCN: {
		"error.bad_request":             "请求参数错误",
		"error.unauthorized":            "未登录或登录已失效",
		"error.forbidden":               "没有权限",
		"error.not_found":               "资源不存在",
		"error.internal":                "服务器内部错误",
		"error.jwt_secret_missing":      "鉴权未配置",
		"error.auth_header_missing":     "缺少 Authorization 请求头",
		"error.auth_header_invalid":     "Authorization 格式应为 Bearer token",
		"error.token_invalid":           "Token 无效或已过期",
		"error.user_disabled":           "账号已被禁用",
		"error.rate_limit_unavailable":  "限流服务不可用，请稍后重试",
		"error.rate_limited":            "请求过于频繁，请 %d 秒后重试",
		"error.login_too_many":          "登录尝试次数过多，请 %d 秒后重试",
		"error.invalid_credentials":     "邮箱或密码错误",
		"error.email_exists":            "该邮箱已注册",
		"error.user_not_found":          "用户不存在",
		"error.cannot_modify_self":      "不能禁用或删除自己的账号",
		"error.captcha_required":        "请完成验证码",
		"error.captcha_invalid":         "验证码错误",
		"error.captcha_disabled":        "验证码未启用",
		"error.product_not_found":       "商品不存在",
		"error.product_not_available":   "商品已下架",
		"error.product_invalid":         "商品名称、价格与库存不合法",
		"error.category_not_found":      "分类不存在",
		"error.category_exists":         "分类标识已存在",
		"error.category_invalid":        "分类名称不合法",
		"error.category_in_use":         "分类下仍有商品",
		"error.invalid_quantity":        "数量至少为 1",
		"error.cart_empty":              "购物车为空",
		"error.order_not_found":         "订单不存在",
		"error.order_create_failed":     "下单失败",
		"error.order_status_invalid":    "订单状态流转不合法",
		"error.payment_not_found":       "支付记录不存在",
		"error.payment_not_pending":     "支付已处理",
		"error.payment_not_confirmable": "只有移动支付需要确认",
		"error.payment_method_invalid":  "请选择支付方式",
		"error.payment_status_invalid":  "支付状态不合法",
		"error.wishlist_exists":         "商品已在收藏中",
		"error.wishlist_not_found":      "商品不在收藏中",
		"error.address_not_found":       "地址不存在",
		"error.region_invalid":          "请选择有效的大区",
	},
}
