package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elitebuy/internal/config"
	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/http/response"
	"github.com/elitebuy/internal/provider"

	"github.com/gin-gonic/gin"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Defaults()
	cfg.Database.Driver = constants.StoreDriverMemory
	cfg.Database.Seed = true
	cfg.UserJWT.SecretKey = "router-test-secret-0123456789abcdef0123"

	c, err := provider.NewContainer(cfg, nil)
	if err != nil {
		t.Fatalf("new container failed: %v", err)
	}
	return SetupRouter(cfg, c)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s: http status want 200 got %d", method, path, w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: unmarshal response failed: %v", method, path, err)
	}
	return resp
}

func login(t *testing.T, engine *gin.Engine, email, password string) string {
	t.Helper()
	resp := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("login %s failed: %d %s", email, resp.StatusCode, resp.Msg)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("login %s returned no token: %v", email, err)
	}
	return data.Token
}

func TestPublicCatalogRoutes(t *testing.T) {
	engine := newTestEngine(t)

	for _, path := range []string{"/api/v1/products", "/api/v1/products/featured", "/api/v1/products/1", "/api/v1/categories"} {
		resp := doJSON(t, engine, http.MethodGet, path, "", nil)
		if resp.StatusCode != response.CodeOK {
			t.Fatalf("GET %s want ok, got %d %s", path, resp.StatusCode, resp.Msg)
		}
	}

	resp := doJSON(t, engine, http.MethodGet, "/api/v1/products/9999", "", nil)
	if resp.StatusCode != response.CodeNotFound {
		t.Fatalf("missing product want 404, got %d", resp.StatusCode)
	}
}

func TestUserRoutesRequireToken(t *testing.T) {
	engine := newTestEngine(t)

	resp := doJSON(t, engine, http.MethodGet, "/api/v1/me", "", nil)
	if resp.StatusCode != response.CodeUnauthorized {
		t.Fatalf("want 401 without token, got %d", resp.StatusCode)
	}

	resp = doJSON(t, engine, http.MethodGet, "/api/v1/cart", "not-a-jwt", nil)
	if resp.StatusCode != response.CodeUnauthorized {
		t.Fatalf("want 401 with bad token, got %d", resp.StatusCode)
	}
}

func TestLoginAndProfile(t *testing.T) {
	engine := newTestEngine(t)
	token := login(t, engine, "john@example.com", "password123")

	resp := doJSON(t, engine, http.MethodGet, "/api/v1/me", token, nil)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("get me failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var me struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(resp.Data, &me); err != nil {
		t.Fatalf("unmarshal profile failed: %v", err)
	}
	if me.Email != "john@example.com" {
		t.Fatalf("profile email want john@example.com, got %s", me.Email)
	}

	resp = doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "john@example.com",
		"password": "wrong-password",
	})
	if resp.StatusCode != response.CodeUnauthorized {
		t.Fatalf("wrong password want 401, got %d", resp.StatusCode)
	}
}

func TestAdminRoutesEnforceRole(t *testing.T) {
	engine := newTestEngine(t)

	customer := login(t, engine, "john@example.com", "password123")
	resp := doJSON(t, engine, http.MethodGet, "/api/v1/admin/analytics", customer, nil)
	if resp.StatusCode != response.CodeForbidden {
		t.Fatalf("customer want 403 on analytics, got %d", resp.StatusCode)
	}

	admin := login(t, engine, "admin@elitebuy.com", "admin123")
	resp = doJSON(t, engine, http.MethodGet, "/api/v1/admin/analytics", admin, nil)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("admin analytics failed: %d %s", resp.StatusCode, resp.Msg)
	}
	resp = doJSON(t, engine, http.MethodGet, "/api/v1/admin/users", admin, nil)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("admin users failed: %d %s", resp.StatusCode, resp.Msg)
	}
}

func TestCashOnDeliveryCheckoutFlow(t *testing.T) {
	engine := newTestEngine(t)
	token := login(t, engine, "john@example.com", "password123")

	resp := doJSON(t, engine, http.MethodPost, "/api/v1/cart/items", token, gin.H{"product_id": 1, "quantity": 2})
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("add cart item failed: %d %s", resp.StatusCode, resp.Msg)
	}

	resp = doJSON(t, engine, http.MethodPost, "/api/v1/checkout", token, gin.H{
		"payment_method": constants.PaymentMethodCashOnDelivery,
		"delivery": gin.H{
			"full_name": "John Doe",
			"address":   "12 Ring Road",
			"city":      "Accra",
			"phone":     "0241234567",
		},
	})
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("checkout failed: %d %s", resp.StatusCode, resp.Msg)
	}
	var result struct {
		Outcome string `json:"outcome"`
		Order   struct {
			ID uint `json:"id"`
		} `json:"order"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatalf("unmarshal checkout failed: %v", err)
	}
	if result.Outcome != constants.CheckoutOutcomeSuccess || result.Order.ID == 0 {
		t.Fatalf("unexpected checkout result: %+v", result)
	}

	resp = doJSON(t, engine, http.MethodGet, "/api/v1/cart", token, nil)
	var cartView struct {
		ItemCount int `json:"item_count"`
	}
	if err := json.Unmarshal(resp.Data, &cartView); err != nil {
		t.Fatalf("unmarshal cart failed: %v", err)
	}
	if cartView.ItemCount != 0 {
		t.Fatalf("cart should be cleared after checkout, got %d items", cartView.ItemCount)
	}

	resp = doJSON(t, engine, http.MethodGet, "/api/v1/orders", token, nil)
	var orders []json.RawMessage
	if err := json.Unmarshal(resp.Data, &orders); err != nil {
		t.Fatalf("unmarshal orders failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("want 1 order, got %d", len(orders))
	}
}

func TestCheckoutRejectsIncompleteDelivery(t *testing.T) {
	engine := newTestEngine(t)
	token := login(t, engine, "john@example.com", "password123")

	doJSON(t, engine, http.MethodPost, "/api/v1/cart/items", token, gin.H{"product_id": 1})
	resp := doJSON(t, engine, http.MethodPost, "/api/v1/checkout", token, gin.H{
		"payment_method": constants.PaymentMethodCashOnDelivery,
		"delivery":       gin.H{"full_name": "John Doe"},
	})
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("want 400 for incomplete delivery, got %d", resp.StatusCode)
	}
}
