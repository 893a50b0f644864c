package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/elitebuy/internal/config"
	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/queue"
	"github.com/elitebuy/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testClock = time.UnixMilli(1700000000000)

func newGormTestStore(t *testing.T) *repository.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return repository.NewGormStore(db)
}

// forEachStore 在内存与 sqlite 两种存储上执行同一用例
func forEachStore(t *testing.T, fn func(t *testing.T, store *repository.Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, repository.NewMemoryStore())
	})
	t.Run("gorm", func(t *testing.T) {
		fn(t, newGormTestStore(t))
	})
}

type checkoutTestEnv struct {
	store    *repository.Store
	carts    *CartService
	orders   *OrderService
	payments *PaymentService
	checkout *CheckoutService
	user     *models.User
	phone    *models.Product
	case_    *models.Product
}

type recordingEnqueuer struct {
	payloads []queue.PaymentSettlePayload
	delays   []time.Duration
	err      error
}

func (r *recordingEnqueuer) EnqueuePaymentSettle(payload queue.PaymentSettlePayload, delay time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.payloads = append(r.payloads, payload)
	r.delays = append(r.delays, delay)
	return nil
}

type envOption struct {
	random   Randomizer
	enqueuer SettlementEnqueuer
	async    bool
	store    *repository.Store
}

func newCheckoutTestEnv(t *testing.T, opt envOption) *checkoutTestEnv {
	t.Helper()
	store := opt.store
	if store == nil {
		store = repository.NewMemoryStore()
	}
	if opt.random == nil {
		opt.random = FixedRandomizer(0.5)
	}

	category := &models.Category{Name: "Electronics", Slug: "electronics", IsActive: true}
	if err := store.Categories.Create(category); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	user := &models.User{Name: "Ama Mensah", Email: "ama@example.com", Role: constants.UserRoleCustomer, IsActive: true}
	if err := store.Users.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	phone := &models.Product{CategoryID: category.ID, Name: "Phone", Price: models.MustMoney("100.00"), ImageURL: "phone.jpg", Stock: 5, IsActive: true}
	if err := store.Products.Create(phone); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	phoneCase := &models.Product{CategoryID: category.ID, Name: "Case", Price: models.MustMoney("50.00"), ImageURL: "case.jpg", Stock: 5, IsActive: true}
	if err := store.Products.Create(phoneCase); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	simulator := NewPaymentSimulator(config.PaymentSimulationConfig{},
		WithRandomizer(opt.random),
		WithDelayer(NoDelay{}),
		WithClock(func() time.Time { return testClock }),
	)
	carts := NewCartService(store.Carts, store.Products)
	orders := NewOrderService(store.Orders, DefaultPricing())
	payments := NewPaymentService(store.Payments, store.Orders, orders, simulator)
	checkout := NewCheckoutService(carts, orders, payments, opt.enqueuer, opt.async)

	return &checkoutTestEnv{
		store:    store,
		carts:    carts,
		orders:   orders,
		payments: payments,
		checkout: checkout,
		user:     user,
		phone:    phone,
		case_:    phoneCase,
	}
}

// fillCart 2 x 100.00 + 1 x 50.00 = 250.00
func (e *checkoutTestEnv) fillCart(t *testing.T) {
	t.Helper()
	if _, err := e.carts.AddItem(e.user.ID, e.phone.ID, 2); err != nil {
		t.Fatalf("add phone failed: %v", err)
	}
	if _, err := e.carts.AddItem(e.user.ID, e.case_.ID, 1); err != nil {
		t.Fatalf("add case failed: %v", err)
	}
}

func validDelivery() DeliveryInfo {
	return DeliveryInfo{
		FullName: "Ama Mensah",
		Address:  "12 Ring Road",
		City:     "Accra",
		State:    "Greater Accra",
		Phone:    "0241234567",
	}
}

func cardInput() CheckoutInput {
	return CheckoutInput{
		PaymentMethod: constants.PaymentMethodCard,
		Delivery:      validDelivery(),
		Payment: PaymentInput{
			CardNumber: "4111 1111 1111 1234",
			ExpiryDate: "12/28",
			CVV:        "123",
		},
	}
}

func mobileMoneyInput() CheckoutInput {
	return CheckoutInput{
		PaymentMethod: constants.PaymentMethodMobileMoney,
		Delivery:      validDelivery(),
		Payment: PaymentInput{
			PhoneNumber:        "0241234567",
			ConfirmPhoneNumber: "0241234567",
			MobileNetwork:      constants.MobileNetworkVodafone,
		},
	}
}
