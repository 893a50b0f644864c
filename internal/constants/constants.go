package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// 支付方式常量
const (
	PaymentMethodMobileMoney    = "mobile_money"
	PaymentMethodCard           = "card"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

// 移动钱包网络
const (
	MobileNetworkMTN        = "MTN"
	MobileNetworkVodafone   = "Vodafone"
	MobileNetworkAirtelTigo = "AirtelTigo"
)

// 交易号前缀
const (
	TransactionPrefixMobileMoney = "MOMO_"
	TransactionPrefixCard        = "CARD_"
)

// 结账结果
const (
	CheckoutOutcomeSuccess              = "success"
	CheckoutOutcomeFailed               = "failed"
	CheckoutOutcomeAwaitingConfirmation = "awaiting_confirmation"
	CheckoutOutcomeProcessing           = "processing"
)

// 用户角色
const (
	UserRoleCustomer = "customer"
	UserRoleAdmin    = "admin"
)

// 存储驱动
const (
	StoreDriverMemory   = "memory"
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// UnknownCategoryName 商品无分类时的收藏快照名称
const UnknownCategoryName = "Unknown"

// 登录来源
const (
	LoginDeviceMobile = "Mobile App"
	LoginDeviceWeb    = "Web"
)

// 缓存命名空间
const (
	CacheNamespaceCatalog   = "catalog"
	CacheNamespaceAnalytics = "analytics"
)

// 异步队列
const (
	QueueDefault  = "default"
	QueueCritical = "critical"

	TaskPaymentSimulateSettle = "payment:simulate_settle"
)

// GhanaRegions 收货地址可选大区
var GhanaRegions = []string{
	"Greater Accra",
	"Ashanti",
	"Western",
	"Eastern",
	"Central",
	"Volta",
	"Northern",
	"Upper East",
	"Upper West",
	"Brong Ahafo",
	"Western North",
	"Ahafo",
	"Bono East",
	"Oti",
	"North East",
	"Savannah",
}

// DefaultAvatarURL 新用户默认头像
const DefaultAvatarURL = "https://images.pexels.com/photos/771742/pexels-photo-771742.jpeg?auto=compress&cs=tinysrgb&w=100&h=100&fit=crop"

// CaptchaSceneRegister 注册验证码场景
const CaptchaSceneRegister = "register"
