package repository

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/models"

	"github.com/shopspring/decimal"
)

// MemoryBackend 进程内存储，所有集合共享一把读写锁，ID 自增
type MemoryBackend struct {
	mu sync.RWMutex

	users        []models.User
	products     []models.Product
	categories   []models.Category
	cartItems    []models.CartItem
	orders       []models.Order
	orderItems   []models.OrderItem
	payments     []models.Payment
	wishlist     []models.WishlistItem
	addresses    []models.DeliveryAddress
	loginHistory []models.LoginHistory

	nextIDs map[string]uint
	now     func() time.Time
}

// NewMemoryBackend 创建空的内存存储
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		nextIDs: make(map[string]uint),
		now:     time.Now,
	}
}

// Store 返回绑定到该内存存储的仓库集合
func (b *MemoryBackend) Store() *Store {
	return &Store{
		Users:        &memoryUserRepository{b: b},
		Products:     &memoryProductRepository{b: b},
		Categories:   &memoryCategoryRepository{b: b},
		Carts:        &memoryCartRepository{b: b},
		Orders:       &memoryOrderRepository{b: b},
		Payments:     &memoryPaymentRepository{b: b},
		Wishlist:     &memoryWishlistRepository{b: b},
		Addresses:    &memoryAddressRepository{b: b},
		LoginHistory: &memoryLoginHistoryRepository{b: b},
		Dashboard:    &memoryDashboardRepository{b: b},
	}
}

// nextID 分配自增 ID；调用方需持有写锁
func (b *MemoryBackend) nextID(table string, preset uint) uint {
	if preset != 0 {
		if preset >= b.nextIDs[table] {
			b.nextIDs[table] = preset
		}
		return preset
	}
	b.nextIDs[table]++
	return b.nextIDs[table]
}

func (b *MemoryBackend) stamp(created *time.Time) time.Time {
	now := b.now()
	if created.IsZero() {
		*created = now
	}
	return now
}

// ---- users ----

type memoryUserRepository struct{ b *MemoryBackend }

func (r *memoryUserRepository) findIndex(id uint) int {
	for i := range r.b.users {
		if r.b.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *memoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	for _, user := range r.b.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) GetByID(id uint) (*models.User, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	if idx := r.findIndex(id); idx >= 0 {
		found := r.b.users[idx]
		return &found, nil
	}
	return nil, nil
}

func (r *memoryUserRepository) Create(user *models.User) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	for _, existing := range r.b.users {
		if existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	user.ID = r.b.nextID("users", user.ID)
	user.UpdatedAt = r.b.stamp(&user.CreatedAt)
	r.b.users = append(r.b.users, *user)
	return nil
}

func (r *memoryUserRepository) Update(user *models.User) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	idx := r.findIndex(user.ID)
	if idx < 0 {
		return nil
	}
	for _, existing := range r.b.users {
		if existing.ID != user.ID && existing.Email == user.Email {
			return ErrDuplicate
		}
	}
	user.UpdatedAt = r.b.now()
	r.b.users[idx] = *user
	return nil
}

func (r *memoryUserRepository) UpdateLastLogin(id uint, at time.Time) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	if idx := r.findIndex(id); idx >= 0 {
		loginAt := at
		r.b.users[idx].LastLogin = &loginAt
	}
	return nil
}

func (r *memoryUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	keyword := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]models.User, 0, len(r.b.users))
	for _, user := range r.b.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(user.Email), keyword) &&
			!strings.Contains(strings.ToLower(user.Name), keyword) {
			continue
		}
		matched = append(matched, user)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, filter.Page, filter.PageSize), int64(len(matched)), nil
}

func (r *memoryUserRepository) Count() (int64, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	return int64(len(r.b.users)), nil
}

func (r *memoryUserRepository) DeleteCascade(id uint) (bool, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	idx := r.findIndex(id)
	if idx < 0 {
		return false, nil
	}
	r.b.users = append(r.b.users[:idx], r.b.users[idx+1:]...)

	orderIDs := make(map[uint]struct{})
	r.b.orders = filterSlice(r.b.orders, func(o models.Order) bool {
		if o.UserID == id {
			orderIDs[o.ID] = struct{}{}
			return false
		}
		return true
	})
	r.b.orderItems = filterSlice(r.b.orderItems, func(item models.OrderItem) bool {
		_, owned := orderIDs[item.OrderID]
		return !owned
	})
	r.b.payments = filterSlice(r.b.payments, func(p models.Payment) bool {
		_, owned := orderIDs[p.OrderID]
		return !owned
	})
	r.b.wishlist = filterSlice(r.b.wishlist, func(w models.WishlistItem) bool { return w.UserID != id })
	r.b.addresses = filterSlice(r.b.addresses, func(a models.DeliveryAddress) bool { return a.UserID != id })
	r.b.loginHistory = filterSlice(r.b.loginHistory, func(l models.LoginHistory) bool { return l.UserID != id })
	r.b.cartItems = filterSlice(r.b.cartItems, func(c models.CartItem) bool { return c.UserID != id })
	return true, nil
}

// ---- catalog ----

type memoryProductRepository struct{ b *MemoryBackend }

func (r *memoryProductRepository) findIndex(id uint) int {
	for i := range r.b.products {
		if r.b.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *memoryProductRepository) withCategory(product models.Product) models.Product {
	for _, category := range r.b.categories {
		if category.ID == product.CategoryID {
			c := category
			product.Category = &c
			break
		}
	}
	return product
}

func (r *memoryProductRepository) GetByID(id uint) (*models.Product, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	if idx := r.findIndex(id); idx >= 0 {
		found := r.withCategory(r.b.products[idx])
		return &found, nil
	}
	return nil, nil
}

func (r *memoryProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	keyword := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]models.Product, 0, len(r.b.products))
	for _, product := range r.b.products {
		if filter.OnlyActive && !product.IsActive {
			continue
		}
		if filter.CategoryID != 0 && product.CategoryID != filter.CategoryID {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(product.Name), keyword) &&
			!strings.Contains(strings.ToLower(product.Description), keyword) {
			continue
		}
		matched = append(matched, r.withCategory(product))
	}
	return paginate(matched, filter.Page, filter.PageSize), int64(len(matched)), nil
}

func (r *memoryProductRepository) ListFeatured(categoryID uint, limit int) ([]models.Product, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	matched := make([]models.Product, 0)
	for _, product := range r.b.products {
		if !product.IsFeatured || !product.IsActive {
			continue
		}
		if categoryID != 0 && product.CategoryID != categoryID {
			continue
		}
		matched = append(matched, product)
		if limit > 0 && len(matched) >= limit {
			break
		}
	}
	return matched, nil
}

func (r *memoryProductRepository) Create(product *models.Product) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	product.ID = r.b.nextID("products", product.ID)
	product.UpdatedAt = r.b.stamp(&product.CreatedAt)
	stored := *product
	stored.Category = nil
	r.b.products = append(r.b.products, stored)
	return nil
}

func (r *memoryProductRepository) Update(product *models.Product) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	if idx := r.findIndex(product.ID); idx >= 0 {
		product.UpdatedAt = r.b.now()
		stored := *product
		stored.Category = nil
		r.b.products[idx] = stored
	}
	return nil
}

func (r *memoryProductRepository) Delete(id uint) (bool, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	idx := r.findIndex(id)
	if idx < 0 {
		return false, nil
	}
	r.b.products = append(r.b.products[:idx], r.b.products[idx+1:]...)
	return true, nil
}

func (r *memoryProductRepository) Count() (int64, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	return int64(len(r.b.products)), nil
}

func (r *memoryProductRepository) CountByCategory() (map[uint]int64, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	counts := make(map[uint]int64)
	for _, product := range r.b.products {
		counts[product.CategoryID]++
	}
	return counts, nil
}

type memoryCategoryRepository struct{ b *MemoryBackend }

func (r *memoryCategoryRepository) findIndex(id uint) int {
	for i := range r.b.categories {
		if r.b.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *memoryCategoryRepository) GetByID(id uint) (*models.Category, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	if idx := r.findIndex(id); idx >= 0 {
		found := r.b.categories[idx]
		return &found, nil
	}
	return nil, nil
}

func (r *memoryCategoryRepository) ListActive(parentID *uint) ([]models.Category, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	matched := make([]models.Category, 0)
	for _, category := range r.b.categories {
		if !category.IsActive {
			continue
		}
		if parentID != nil && *parentID != 0 {
			if category.ParentID == nil || *category.ParentID != *parentID {
				continue
			}
		} else if category.ParentID != nil {
			continue
		}
		matched = append(matched, category)
	}
	sortCategories(matched)
	return matched, nil
}

func (r *memoryCategoryRepository) ListAll() ([]models.Category, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	all := append([]models.Category(nil), r.b.categories...)
	sortCategories(all)
	return all, nil
}

func (r *memoryCategoryRepository) Create(category *models.Category) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	for _, existing := range r.b.categories {
		if existing.Slug == category.Slug {
			return ErrDuplicate
		}
	}
	category.ID = r.b.nextID("categories", category.ID)
	r.b.stamp(&category.CreatedAt)
	r.b.categories = append(r.b.categories, *category)
	return nil
}

func (r *memoryCategoryRepository) Update(category *models.Category) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	for _, existing := range r.b.categories {
		if existing.ID != category.ID && existing.Slug == category.Slug {
			return ErrDuplicate
		}
	}
	if idx := r.findIndex(category.ID); idx >= 0 {
		r.b.categories[idx] = *category
	}
	return nil
}

func (r *memoryCategoryRepository) Delete(id uint) (bool, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	idx := r.findIndex(id)
	if idx < 0 {
		return false, nil
	}
	r.b.categories = append(r.b.categories[:idx], r.b.categories[idx+1:]...)
	return true, nil
}

func sortCategories(categories []models.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].SortOrder == categories[j].SortOrder {
			return categories[i].ID < categories[j].ID
		}
		return categories[i].SortOrder < categories[j].SortOrder
	})
}

// ---- cart ----

type memoryCartRepository struct{ b *MemoryBackend }

func (r *memoryCartRepository) ListByUser(userID uint) ([]models.CartItem, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	items := make([]models.CartItem, 0)
	for _, item := range r.b.cartItems {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items, nil
}

func (r *memoryCartRepository) ReplaceByUser(userID uint, items []models.CartItem) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	r.b.cartItems = filterSlice(r.b.cartItems, func(c models.CartItem) bool { return c.UserID != userID })
	now := r.b.now()
	for i, item := range items {
		item.ID = r.b.nextID("cart_items", 0)
		item.UserID = userID
		item.Position = i
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		item.UpdatedAt = now
		r.b.cartItems = append(r.b.cartItems, item)
	}
	return nil
}

func (r *memoryCartRepository) ClearByUser(userID uint) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	r.b.cartItems = filterSlice(r.b.cartItems, func(c models.CartItem) bool { return c.UserID != userID })
	return nil
}

// ---- orders & payments ----

type memoryOrderRepository struct{ b *MemoryBackend }

// CreateWithItems 订单与订单项在同一临界区写入
func (r *memoryOrderRepository) CreateWithItems(order *models.Order, items []models.OrderItem) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	order.ID = r.b.nextID("orders", 0)
	order.UpdatedAt = r.b.stamp(&order.CreatedAt)
	for i := range items {
		items[i].ID = r.b.nextID("order_items", 0)
		items[i].OrderID = order.ID
		r.b.stamp(&items[i].CreatedAt)
	}
	stored := *order
	stored.Items = nil
	stored.Payment = nil
	r.b.orders = append(r.b.orders, stored)
	r.b.orderItems = append(r.b.orderItems, items...)
	order.Items = append([]models.OrderItem(nil), items...)
	return nil
}

// hydrate 附带订单项与最新支付；调用方需持有读锁
func (r *memoryOrderRepository) hydrate(order models.Order) models.Order {
	order.Items = make([]models.OrderItem, 0)
	for _, item := range r.b.orderItems {
		if item.OrderID == order.ID {
			order.Items = append(order.Items, item)
		}
	}
	order.Payment = nil
	for i := len(r.b.payments) - 1; i >= 0; i-- {
		if r.b.payments[i].OrderID == order.ID {
			payment := copyPayment(r.b.payments[i])
			order.Payment = &payment
			break
		}
	}
	return order
}

func (r *memoryOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	for _, order := range r.b.orders {
		if order.ID == id {
			found := r.hydrate(order)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryOrderRepository) GetByIDAndUser(id uint, userID uint) (*models.Order, error) {
	order, err := r.GetByID(id)
	if err != nil || order == nil || order.UserID != userID {
		return nil, err
	}
	return order, nil
}

func (r *memoryOrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	orders := make([]models.Order, 0)
	for i := len(r.b.orders) - 1; i >= 0; i-- {
		if r.b.orders[i].UserID == userID {
			orders = append(orders, r.hydrate(r.b.orders[i]))
		}
	}
	return orders, nil
}

func (r *memoryOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	matched := make([]models.Order, 0)
	for i := len(r.b.orders) - 1; i >= 0; i-- {
		order := r.b.orders[i]
		if filter.UserID != 0 && order.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.PaymentMethod != "" && order.PaymentMethod != filter.PaymentMethod {
			continue
		}
		matched = append(matched, order)
	}
	page := paginate(matched, filter.Page, filter.PageSize)
	for i := range page {
		page[i] = r.hydrate(page[i])
	}
	return page, int64(len(matched)), nil
}

func (r *memoryOrderRepository) UpdateStatus(id uint, status string) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	for i := range r.b.orders {
		if r.b.orders[i].ID == id {
			r.b.orders[i].Status = status
			r.b.orders[i].UpdatedAt = r.b.now()
		}
	}
	return nil
}

func (r *memoryOrderRepository) StatsByUser(userID uint) (int64, models.Money, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	var count int64
	spent := decimal.Zero
	for _, order := range r.b.orders {
		if order.UserID == userID {
			count++
			spent = spent.Add(order.TotalAmount.Decimal)
		}
	}
	return count, models.NewMoneyFromDecimal(spent), nil
}

type memoryPaymentRepository struct{ b *MemoryBackend }

func copyPayment(p models.Payment) models.Payment {
	if p.Details != nil {
		details := make(models.JSON, len(p.Details))
		for k, v := range p.Details {
			details[k] = v
		}
		p.Details = details
	}
	return p
}

func (r *memoryPaymentRepository) Create(payment *models.Payment) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	payment.ID = r.b.nextID("payments", 0)
	payment.UpdatedAt = r.b.stamp(&payment.CreatedAt)
	r.b.payments = append(r.b.payments, copyPayment(*payment))
	return nil
}

func (r *memoryPaymentRepository) GetByID(id uint) (*models.Payment, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	for _, payment := range r.b.payments {
		if payment.ID == id {
			found := copyPayment(payment)
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryPaymentRepository) GetLatestByOrder(orderID uint) (*models.Payment, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	for i := len(r.b.payments) - 1; i >= 0; i-- {
		if r.b.payments[i].OrderID == orderID {
			found := copyPayment(r.b.payments[i])
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryPaymentRepository) MarkApproved(paymentID uint, at time.Time) (bool, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	for i := range r.b.payments {
		payment := &r.b.payments[i]
		if payment.ID != paymentID {
			continue
		}
		if payment.Status != constants.PaymentStatusPending || payment.ApprovedAt != nil {
			return false, nil
		}
		approvedAt := at
		payment.ApprovedAt = &approvedAt
		payment.UpdatedAt = at
		return true, nil
	}
	return false, nil
}

// Settle 仅当支付仍为 pending 时写入终态，支付成功时同一临界区推进订单
func (r *memoryPaymentRepository) Settle(input SettleInput) (SettleResult, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	result := SettleResult{}
	idx := -1
	for i := range r.b.payments {
		if r.b.payments[i].ID == input.PaymentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return result, nil
	}
	payment := &r.b.payments[idx]
	if payment.Status == constants.PaymentStatusPending {
		result.Applied = true
		payment.Status = input.Status
		payment.UpdatedAt = input.At
		if input.TransactionID != "" {
			payment.TransactionID = input.TransactionID
		}
		if input.Status != constants.PaymentStatusPending {
			settledAt := input.At
			payment.SettledAt = &settledAt
		}
	}
	snapshot := copyPayment(*payment)
	result.Payment = &snapshot
	if !result.Applied || input.Status != constants.PaymentStatusCompleted {
		return result, nil
	}
	for i := range r.b.orders {
		if r.b.orders[i].ID == payment.OrderID && r.b.orders[i].Status == constants.OrderStatusPending {
			r.b.orders[i].Status = constants.OrderStatusProcessing
			r.b.orders[i].UpdatedAt = input.At
			result.OrderAdvanced = true
		}
	}
	return result, nil
}

// ---- wishlist ----

type memoryWishlistRepository struct{ b *MemoryBackend }

func (r *memoryWishlistRepository) Create(item *models.WishlistItem) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	for _, existing := range r.b.wishlist {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			return ErrDuplicate
		}
	}
	item.ID = r.b.nextID("wishlist_items", 0)
	r.b.stamp(&item.AddedAt)
	r.b.wishlist = append(r.b.wishlist, *item)
	return nil
}

func (r *memoryWishlistRepository) Exists(userID, productID uint) (bool, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	for _, existing := range r.b.wishlist {
		if existing.UserID == userID && existing.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryWishlistRepository) Delete(userID, productID uint) (bool, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	before := len(r.b.wishlist)
	r.b.wishlist = filterSlice(r.b.wishlist, func(w models.WishlistItem) bool {
		return !(w.UserID == userID && w.ProductID == productID)
	})
	return len(r.b.wishlist) < before, nil
}

func (r *memoryWishlistRepository) ListByUser(userID uint) ([]models.WishlistItem, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	items := make([]models.WishlistItem, 0)
	for _, item := range r.b.wishlist {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *memoryWishlistRepository) CountByUser(userID uint) (int64, error) {
	items, err := r.ListByUser(userID)
	return int64(len(items)), err
}

// ---- addresses ----

type memoryAddressRepository struct{ b *MemoryBackend }

func (r *memoryAddressRepository) findIndex(id, userID uint) int {
	for i := range r.b.addresses {
		if r.b.addresses[i].ID == id && r.b.addresses[i].UserID == userID {
			return i
		}
	}
	return -1
}

// unsetDefaults 取消用户其他默认地址；调用方需持有写锁
func (r *memoryAddressRepository) unsetDefaults(userID, exceptID uint) {
	for i := range r.b.addresses {
		if r.b.addresses[i].UserID == userID && r.b.addresses[i].ID != exceptID {
			r.b.addresses[i].IsDefault = false
		}
	}
}

func (r *memoryAddressRepository) Create(address *models.DeliveryAddress) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	if address.IsDefault {
		r.unsetDefaults(address.UserID, 0)
	}
	address.ID = r.b.nextID("delivery_addresses", 0)
	address.UpdatedAt = r.b.stamp(&address.CreatedAt)
	r.b.addresses = append(r.b.addresses, *address)
	return nil
}

func (r *memoryAddressRepository) GetByIDAndUser(id, userID uint) (*models.DeliveryAddress, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	if idx := r.findIndex(id, userID); idx >= 0 {
		found := r.b.addresses[idx]
		return &found, nil
	}
	return nil, nil
}

func (r *memoryAddressRepository) ListByUser(userID uint) ([]models.DeliveryAddress, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	items := make([]models.DeliveryAddress, 0)
	for _, address := range r.b.addresses {
		if address.UserID == userID {
			items = append(items, address)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsDefault != items[j].IsDefault {
			return items[i].IsDefault
		}
		return items[i].ID > items[j].ID
	})
	return items, nil
}

func (r *memoryAddressRepository) Update(address *models.DeliveryAddress) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	idx := r.findIndex(address.ID, address.UserID)
	if idx < 0 {
		return nil
	}
	if address.IsDefault {
		r.unsetDefaults(address.UserID, address.ID)
	}
	address.UpdatedAt = r.b.now()
	r.b.addresses[idx] = *address
	return nil
}

func (r *memoryAddressRepository) Delete(id, userID uint) (bool, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	idx := r.findIndex(id, userID)
	if idx < 0 {
		return false, nil
	}
	r.b.addresses = append(r.b.addresses[:idx], r.b.addresses[idx+1:]...)
	return true, nil
}

func (r *memoryAddressRepository) SetDefault(id, userID uint) (bool, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	idx := r.findIndex(id, userID)
	if idx < 0 {
		return false, nil
	}
	r.unsetDefaults(userID, id)
	r.b.addresses[idx].IsDefault = true
	r.b.addresses[idx].UpdatedAt = r.b.now()
	return true, nil
}

func (r *memoryAddressRepository) CountByUser(userID uint) (int64, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	var count int64
	for _, address := range r.b.addresses {
		if address.UserID == userID {
			count++
		}
	}
	return count, nil
}

// ---- login history ----

type memoryLoginHistoryRepository struct{ b *MemoryBackend }

func (r *memoryLoginHistoryRepository) Create(record *models.LoginHistory) error {
	if record == nil {
		return nil
	}
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	record.ID = r.b.nextID("login_history", 0)
	r.b.stamp(&record.LoginTime)
	r.b.loginHistory = append(r.b.loginHistory, *record)
	return nil
}

func (r *memoryLoginHistoryRepository) ListByUser(userID uint, limit int) ([]models.LoginHistory, error) {
	r.b.mu.RLock()
	defer r.b.mu.RUnlock()
	records := make([]models.LoginHistory, 0)
	for _, record := range r.b.loginHistory {
		if record.UserID == userID {
			records = append(records, record)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].LoginTime.Equal(records[j].LoginTime) {
			return records[i].ID > records[j].ID
		}
		return records[i].LoginTime.After(records[j].LoginTime)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// ---- helpers ----

func filterSlice[T any](items []T, keep func(T) bool) []T {
	out := items[:0]
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
