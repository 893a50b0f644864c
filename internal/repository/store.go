package repository

import (
	"gorm.io/gorm"
)

// Store 数据访问集合，内存与 GORM 两种实现对业务层透明
type Store struct {
	Users        UserRepository
	Products     ProductRepository
	Categories   CategoryRepository
	Carts        CartRepository
	Orders       OrderRepository
	Payments     PaymentRepository
	Wishlist     WishlistRepository
	Addresses    AddressRepository
	LoginHistory LoginHistoryRepository
	Dashboard    DashboardRepository
}

// NewGormStore 基于数据库连接创建数据访问集合
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:        NewUserRepository(db),
		Products:     NewProductRepository(db),
		Categories:   NewCategoryRepository(db),
		Carts:        NewCartRepository(db),
		Orders:       NewOrderRepository(db),
		Payments:     NewPaymentRepository(db),
		Wishlist:     NewWishlistRepository(db),
		Addresses:    NewAddressRepository(db),
		LoginHistory: NewLoginHistoryRepository(db),
		Dashboard:    NewDashboardRepository(db),
	}
}

// NewMemoryStore 创建进程内数据访问集合
func NewMemoryStore() *Store {
	return NewMemoryBackend().Store()
}
