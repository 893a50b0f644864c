package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupGormStoreTest(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewGormStore(db), db
}

// eachStore 在内存与 sqlite 两种实现上执行同一用例
func eachStore(t *testing.T, fn func(t *testing.T, store *Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore())
	})
	t.Run("gorm", func(t *testing.T) {
		store, _ := setupGormStoreTest(t)
		fn(t, store)
	})
}

func createTestOrder(t *testing.T, store *Store, userID uint) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID:        userID,
		Status:        constants.OrderStatusPending,
		PaymentMethod: constants.PaymentMethodCard,
		TotalAmount:   models.MustMoney("250.00"),
	}
	items := []models.OrderItem{
		{ProductID: 1, ProductName: "A", ProductPrice: models.MustMoney("100.00"), Quantity: 2, Subtotal: models.MustMoney("200.00")},
		{ProductID: 2, ProductName: "B", ProductPrice: models.MustMoney("50.00"), Quantity: 1, Subtotal: models.MustMoney("50.00")},
	}
	if err := store.Orders.CreateWithItems(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderCreateWithItemsAssignsIDs(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		first := createTestOrder(t, store, 7)
		second := createTestOrder(t, store, 7)
		if first.ID == 0 || second.ID <= first.ID {
			t.Fatalf("order ids should be unique and increasing, got %d then %d", first.ID, second.ID)
		}

		loaded, err := store.Orders.GetByIDAndUser(first.ID, 7)
		if err != nil {
			t.Fatalf("get order failed: %v", err)
		}
		if loaded == nil || len(loaded.Items) != 2 {
			t.Fatalf("expected order with 2 items, got %+v", loaded)
		}
		for _, item := range loaded.Items {
			if item.OrderID != first.ID {
				t.Fatalf("item order id want %d got %d", first.ID, item.OrderID)
			}
		}

		other, err := store.Orders.GetByIDAndUser(first.ID, 8)
		if err != nil {
			t.Fatalf("get order failed: %v", err)
		}
		if other != nil {
			t.Fatalf("order of another user should not be visible")
		}

		list, err := store.Orders.ListByUser(7)
		if err != nil {
			t.Fatalf("list orders failed: %v", err)
		}
		if len(list) != 2 || list[0].ID != second.ID {
			t.Fatalf("orders should be newest first, got %+v", list)
		}
	})
}

func TestPaymentSettleIsGuardedByPendingStatus(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		order := createTestOrder(t, store, 1)
		payment := &models.Payment{
			OrderID: order.ID,
			Method:  constants.PaymentMethodCard,
			Amount:  models.MustMoney("285.00"),
			Status:  constants.PaymentStatusPending,
			Details: models.JSON{"card_last_four": "4242"},
		}
		if err := store.Payments.Create(payment); err != nil {
			t.Fatalf("create payment failed: %v", err)
		}

		now := time.Now()
		first, err := store.Payments.Settle(SettleInput{
			PaymentID:     payment.ID,
			Status:        constants.PaymentStatusCompleted,
			TransactionID: "CARD_1",
			At:            now,
		})
		if err != nil {
			t.Fatalf("settle failed: %v", err)
		}
		if !first.Applied || !first.OrderAdvanced {
			t.Fatalf("first settle should apply and advance order, got %+v", first)
		}
		if first.Payment.TransactionID != "CARD_1" || first.Payment.Status != constants.PaymentStatusCompleted {
			t.Fatalf("unexpected payment after settle: %+v", first.Payment)
		}

		second, err := store.Payments.Settle(SettleInput{
			PaymentID: payment.ID,
			Status:    constants.PaymentStatusFailed,
			At:        now,
		})
		if err != nil {
			t.Fatalf("second settle failed: %v", err)
		}
		if second.Applied || second.OrderAdvanced {
			t.Fatalf("second settle must be a no-op, got %+v", second)
		}
		if second.Payment.Status != constants.PaymentStatusCompleted {
			t.Fatalf("terminal status must not change, got %s", second.Payment.Status)
		}

		loaded, err := store.Orders.GetByID(order.ID)
		if err != nil {
			t.Fatalf("get order failed: %v", err)
		}
		if loaded.Status != constants.OrderStatusProcessing {
			t.Fatalf("order status want processing got %s", loaded.Status)
		}
		if loaded.Payment == nil || loaded.Payment.ID != payment.ID {
			t.Fatalf("order should carry its payment, got %+v", loaded.Payment)
		}
	})
}

func TestPaymentMarkApprovedOnlyOnce(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		order := createTestOrder(t, store, 1)
		payment := &models.Payment{OrderID: order.ID, Method: constants.PaymentMethodMobileMoney, Status: constants.PaymentStatusPending}
		if err := store.Payments.Create(payment); err != nil {
			t.Fatalf("create payment failed: %v", err)
		}

		now := time.Now()
		applied, err := store.Payments.MarkApproved(payment.ID, now)
		if err != nil || !applied {
			t.Fatalf("first approval should apply, applied=%v err=%v", applied, err)
		}
		again, err := store.Payments.MarkApproved(payment.ID, now)
		if err != nil || again {
			t.Fatalf("second approval should be ignored, applied=%v err=%v", again, err)
		}
		stored, err := store.Payments.GetByID(payment.ID)
		if err != nil || stored == nil {
			t.Fatalf("load payment failed: %v", err)
		}
		if stored.ApprovedAt == nil || stored.Status != constants.PaymentStatusPending {
			t.Fatalf("approval should be recorded on a pending payment, got %s %v", stored.Status, stored.ApprovedAt)
		}

		if _, err := store.Payments.Settle(SettleInput{PaymentID: payment.ID, Status: constants.PaymentStatusFailed, At: now}); err != nil {
			t.Fatalf("settle failed: %v", err)
		}
		other := &models.Payment{OrderID: order.ID, Method: constants.PaymentMethodMobileMoney, Status: constants.PaymentStatusFailed}
		if err := store.Payments.Create(other); err != nil {
			t.Fatalf("create payment failed: %v", err)
		}
		settled, err := store.Payments.MarkApproved(other.ID, now)
		if err != nil || settled {
			t.Fatalf("terminal payment should not be approved, applied=%v err=%v", settled, err)
		}
	})
}

func TestPaymentSettleFailedKeepsOrderPending(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		order := createTestOrder(t, store, 1)
		payment := &models.Payment{OrderID: order.ID, Method: constants.PaymentMethodCard, Status: constants.PaymentStatusPending}
		if err := store.Payments.Create(payment); err != nil {
			t.Fatalf("create payment failed: %v", err)
		}
		result, err := store.Payments.Settle(SettleInput{PaymentID: payment.ID, Status: constants.PaymentStatusFailed, At: time.Now()})
		if err != nil {
			t.Fatalf("settle failed: %v", err)
		}
		if !result.Applied || result.OrderAdvanced {
			t.Fatalf("unexpected settle result: %+v", result)
		}
		loaded, _ := store.Orders.GetByID(order.ID)
		if loaded.Status != constants.OrderStatusPending {
			t.Fatalf("order status want pending got %s", loaded.Status)
		}
	})
}

func countDefaults(addresses []models.DeliveryAddress) int {
	count := 0
	for _, address := range addresses {
		if address.IsDefault {
			count++
		}
	}
	return count
}

func TestAddressSetDefaultLeavesExactlyOne(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		const userID = 3
		first := &models.DeliveryAddress{UserID: userID, FullName: "Ama", PhoneNumber: "0241234567", StreetAddress: "1 Ring Rd"}
		second := &models.DeliveryAddress{UserID: userID, FullName: "Ama", PhoneNumber: "0241234567", StreetAddress: "2 Ring Rd"}
		for _, address := range []*models.DeliveryAddress{first, second} {
			if err := store.Addresses.Create(address); err != nil {
				t.Fatalf("create address failed: %v", err)
			}
		}

		// 0 个默认 -> 1 个
		ok, err := store.Addresses.SetDefault(first.ID, userID)
		if err != nil || !ok {
			t.Fatalf("set default failed: ok=%v err=%v", ok, err)
		}
		list, _ := store.Addresses.ListByUser(userID)
		if countDefaults(list) != 1 || list[0].ID != first.ID {
			t.Fatalf("expected first as the only default, got %+v", list)
		}

		// 1 个默认 -> 切换
		if ok, err := store.Addresses.SetDefault(second.ID, userID); err != nil || !ok {
			t.Fatalf("switch default failed: ok=%v err=%v", ok, err)
		}
		list, _ = store.Addresses.ListByUser(userID)
		if countDefaults(list) != 1 || list[0].ID != second.ID {
			t.Fatalf("expected second as the only default, got %+v", list)
		}

		ok, err = store.Addresses.SetDefault(999, userID)
		if err != nil {
			t.Fatalf("set default on missing address failed: %v", err)
		}
		if ok {
			t.Fatalf("missing address should report not found")
		}
		list, _ = store.Addresses.ListByUser(userID)
		if countDefaults(list) != 1 {
			t.Fatalf("missing address must not clear the current default")
		}
	})
}

func TestAddressCreateDefaultUnsetsOthers(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		first := &models.DeliveryAddress{UserID: 1, FullName: "A", PhoneNumber: "1", StreetAddress: "x", IsDefault: true}
		second := &models.DeliveryAddress{UserID: 1, FullName: "B", PhoneNumber: "2", StreetAddress: "y", IsDefault: true}
		other := &models.DeliveryAddress{UserID: 2, FullName: "C", PhoneNumber: "3", StreetAddress: "z", IsDefault: true}
		for _, address := range []*models.DeliveryAddress{first, second, other} {
			if err := store.Addresses.Create(address); err != nil {
				t.Fatalf("create address failed: %v", err)
			}
		}
		list, _ := store.Addresses.ListByUser(1)
		if countDefaults(list) != 1 || list[0].ID != second.ID {
			t.Fatalf("latest default should win, got %+v", list)
		}
		list, _ = store.Addresses.ListByUser(2)
		if countDefaults(list) != 1 {
			t.Fatalf("other user's default must be untouched")
		}
	})
}

func TestWishlistRejectsDuplicate(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		item := &models.WishlistItem{UserID: 1, ProductID: 2, ProductName: "Headphones", ProductPrice: models.MustMoney("299.99")}
		if err := store.Wishlist.Create(item); err != nil {
			t.Fatalf("create wishlist item failed: %v", err)
		}
		dup := &models.WishlistItem{UserID: 1, ProductID: 2, ProductName: "Headphones"}
		if err := store.Wishlist.Create(dup); err != ErrDuplicate {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
		removed, err := store.Wishlist.Delete(1, 2)
		if err != nil || !removed {
			t.Fatalf("delete wishlist item failed: removed=%v err=%v", removed, err)
		}
		count, _ := store.Wishlist.CountByUser(1)
		if count != 0 {
			t.Fatalf("wishlist should be empty, got %d", count)
		}
	})
}

func TestUserDeleteCascade(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		user := &models.User{Name: "Kofi", Email: "kofi@example.com", PasswordHash: "hash", Role: constants.UserRoleCustomer, IsActive: true}
		if err := store.Users.Create(user); err != nil {
			t.Fatalf("create user failed: %v", err)
		}
		order := createTestOrder(t, store, user.ID)
		_ = store.Payments.Create(&models.Payment{OrderID: order.ID, Method: constants.PaymentMethodCashOnDelivery, Status: constants.PaymentStatusPending})
		_ = store.Wishlist.Create(&models.WishlistItem{UserID: user.ID, ProductID: 1, ProductName: "x"})
		_ = store.Addresses.Create(&models.DeliveryAddress{UserID: user.ID, FullName: "K", PhoneNumber: "1", StreetAddress: "s"})
		_ = store.LoginHistory.Create(&models.LoginHistory{UserID: user.ID})
		_ = store.Carts.ReplaceByUser(user.ID, []models.CartItem{{ProductID: 1, ProductName: "x", Quantity: 1}})

		deleted, err := store.Users.DeleteCascade(user.ID)
		if err != nil || !deleted {
			t.Fatalf("delete user failed: deleted=%v err=%v", deleted, err)
		}

		if found, _ := store.Users.GetByID(user.ID); found != nil {
			t.Fatalf("user should be gone")
		}
		if orders, _ := store.Orders.ListByUser(user.ID); len(orders) != 0 {
			t.Fatalf("orders should be removed, got %d", len(orders))
		}
		if payment, _ := store.Payments.GetLatestByOrder(order.ID); payment != nil {
			t.Fatalf("payments should be removed")
		}
		if items, _ := store.Wishlist.ListByUser(user.ID); len(items) != 0 {
			t.Fatalf("wishlist should be removed")
		}
		if addresses, _ := store.Addresses.ListByUser(user.ID); len(addresses) != 0 {
			t.Fatalf("addresses should be removed")
		}
		if records, _ := store.LoginHistory.ListByUser(user.ID, 0); len(records) != 0 {
			t.Fatalf("login history should be removed")
		}
		if items, _ := store.Carts.ListByUser(user.ID); len(items) != 0 {
			t.Fatalf("cart should be removed")
		}

		deleted, err = store.Users.DeleteCascade(user.ID)
		if err != nil || deleted {
			t.Fatalf("second delete should report not found, deleted=%v err=%v", deleted, err)
		}
	})
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		if err := store.Users.Create(&models.User{Name: "A", Email: "dup@example.com", PasswordHash: "h", Role: "customer"}); err != nil {
			t.Fatalf("create user failed: %v", err)
		}
		err := store.Users.Create(&models.User{Name: "B", Email: "dup@example.com", PasswordHash: "h", Role: "customer"})
		if err != ErrDuplicate {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})
}

func TestLoginHistoryNewestFirstWithLimit(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		base := time.Now().Add(-time.Hour)
		for i := 0; i < 12; i++ {
			record := &models.LoginHistory{UserID: 5, LoginTime: base.Add(time.Duration(i) * time.Minute), IPAddress: fmt.Sprintf("10.0.0.%d", i)}
			if err := store.LoginHistory.Create(record); err != nil {
				t.Fatalf("create login record failed: %v", err)
			}
		}
		records, err := store.LoginHistory.ListByUser(5, 10)
		if err != nil {
			t.Fatalf("list login history failed: %v", err)
		}
		if len(records) != 10 {
			t.Fatalf("limit want 10 got %d", len(records))
		}
		if records[0].IPAddress != "10.0.0.11" {
			t.Fatalf("newest record should come first, got %s", records[0].IPAddress)
		}
	})
}

func TestCatalogFeaturedAndCategories(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		if err := ApplySeed(store, models.DefaultSeed()); err != nil {
			t.Fatalf("apply seed failed: %v", err)
		}
		// 重复执行不报错
		if err := ApplySeed(store, models.DefaultSeed()); err != nil {
			t.Fatalf("apply seed twice failed: %v", err)
		}

		featured, err := store.Products.ListFeatured(1, 1)
		if err != nil {
			t.Fatalf("list featured failed: %v", err)
		}
		if len(featured) != 1 || featured[0].Name != "Smartphone Pro Max" {
			t.Fatalf("unexpected featured products: %+v", featured)
		}

		roots, err := store.Categories.ListActive(nil)
		if err != nil {
			t.Fatalf("list categories failed: %v", err)
		}
		if len(roots) != 3 || roots[0].Name != "Electronics" {
			t.Fatalf("unexpected root categories: %+v", roots)
		}

		counts, err := store.Products.CountByCategory()
		if err != nil {
			t.Fatalf("count by category failed: %v", err)
		}
		if counts[1] != 2 {
			t.Fatalf("electronics should have 2 products, got %d", counts[1])
		}

		top, err := store.Dashboard.GetTopCategories(5)
		if err != nil {
			t.Fatalf("top categories failed: %v", err)
		}
		if len(top) != 3 || top[0].Name != "Electronics" || top[0].ProductCount != 2 {
			t.Fatalf("unexpected top categories: %+v", top)
		}
	})
}

func TestCartReplaceKeepsOrder(t *testing.T) {
	eachStore(t, func(t *testing.T, store *Store) {
		items := []models.CartItem{
			{ProductID: 9, ProductName: "nine", ProductPrice: models.MustMoney("1.00"), Quantity: 1},
			{ProductID: 3, ProductName: "three", ProductPrice: models.MustMoney("2.00"), Quantity: 4},
		}
		if err := store.Carts.ReplaceByUser(1, items); err != nil {
			t.Fatalf("replace cart failed: %v", err)
		}
		loaded, err := store.Carts.ListByUser(1)
		if err != nil {
			t.Fatalf("list cart failed: %v", err)
		}
		if len(loaded) != 2 || loaded[0].ProductID != 9 || loaded[1].Quantity != 4 {
			t.Fatalf("unexpected cart lines: %+v", loaded)
		}
		if err := store.Carts.ClearByUser(1); err != nil {
			t.Fatalf("clear cart failed: %v", err)
		}
		loaded, _ = store.Carts.ListByUser(1)
		if len(loaded) != 0 {
			t.Fatalf("cart should be empty")
		}
	})
}
