package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elitebuy/internal/authz"
	"github.com/elitebuy/internal/http/response"

	"github.com/gin-gonic/gin"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func TestUserJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(UserJWTAuthMiddleware("", nil))
	r.GET("/me", func(c *gin.Context) {
		response.Success(c, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	if got := decodeStatusCode(t, w); got != response.CodeUnauthorized {
		t.Fatalf("status_code want 401 got %d", got)
	}
}

func decodeStatusCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

// newRBACEngine 模拟 JWT 中间件写入的用户上下文后挂载 RBAC 校验
func newRBACEngine(t *testing.T, userID uint, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, err := authz.NewService(nil)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}
	if err := svc.SetUserRoles(21, []string{"analyst"}); err != nil {
		t.Fatalf("assign analyst failed: %v", err)
	}

	r := gin.New()
	group := r.Group("/api/v1/admin", func(c *gin.Context) {
		if userID > 0 {
			c.Set(userIDContextKey, userID)
			c.Set(userRoleContextKey, role)
		}
		c.Next()
	}, AdminRBACMiddleware(svc))
	ok := func(c *gin.Context) { response.Success(c, gin.H{"ok": true}) }
	group.GET("/analytics", ok)
	group.POST("/products", ok)
	return r
}

func TestAdminRBACMiddleware(t *testing.T) {
	cases := []struct {
		name   string
		userID uint
		role   string
		method string
		path   string
		want   int
	}{
		{name: "analyst reads analytics", userID: 21, role: "customer", method: http.MethodGet, path: "/api/v1/admin/analytics", want: response.CodeOK},
		{name: "analyst cannot create product", userID: 21, role: "customer", method: http.MethodPost, path: "/api/v1/admin/products", want: response.CodeForbidden},
		{name: "admin account role", userID: 1, role: "admin", method: http.MethodPost, path: "/api/v1/admin/products", want: response.CodeOK},
		{name: "customer denied", userID: 30, role: "customer", method: http.MethodGet, path: "/api/v1/admin/analytics", want: response.CodeForbidden},
		{name: "anonymous", method: http.MethodGet, path: "/api/v1/admin/analytics", want: response.CodeUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRBACEngine(t, tc.userID, tc.role)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			if got := decodeStatusCode(t, w); got != tc.want {
				t.Fatalf("status_code want %d got %d", tc.want, got)
			}
		})
	}
}
