package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	if w.Code != 200 {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	body := map[string]interface{}{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body failed: %v", err)
	}
	return body
}

func TestSuccessWithMsgCarriesCheckoutMessage(t *testing.T) {
	c, w := newTestContext()
	SuccessWithMsg(c, "Payment is being processed", gin.H{"outcome": "processing"})

	body := decode(t, w)
	if body["status_code"] != float64(CodeOK) || body["msg"] != "Payment is being processed" {
		t.Fatalf("unexpected body: %v", body)
	}
	data, _ := body["data"].(map[string]interface{})
	if data["outcome"] != "processing" {
		t.Fatalf("outcome missing: %v", body)
	}
}

func TestSuccessWithPageFlattensEnvelope(t *testing.T) {
	c, w := newTestContext()
	SuccessWithPage(c, []int{1, 2}, NewPagination(2, 20, 41))

	body := decode(t, w)
	if body["status_code"] != float64(CodeOK) || body["msg"] != "success" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	pagination, _ := body["pagination"].(map[string]interface{})
	if pagination["total_page"] != float64(3) || pagination["page"] != float64(2) {
		t.Fatalf("unexpected pagination: %v", pagination)
	}
}

func TestNewPaginationZeroPageSize(t *testing.T) {
	if p := NewPagination(1, 0, 10); p.TotalPage != 0 {
		t.Fatalf("zero page size want 0 total pages got %d", p.TotalPage)
	}
}

func TestErrorAttachesRequestID(t *testing.T) {
	c, w := newTestContext()
	c.Set("request_id", "req-1")
	Error(c, CodeConflict, "insufficient stock")

	body := decode(t, w)
	if body["status_code"] != float64(CodeConflict) {
		t.Fatalf("want 409 got %v", body["status_code"])
	}
	data, _ := body["data"].(map[string]interface{})
	if data["request_id"] != "req-1" {
		t.Fatalf("request_id missing: %v", body)
	}
}

func TestFailUnwrapsAppError(t *testing.T) {
	c, w := newTestContext()
	cause := errors.New("db down")
	Fail(c, WrapError(CodeNotFound, "order not found", cause))

	body := decode(t, w)
	if body["status_code"] != float64(CodeNotFound) || body["msg"] != "order not found" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestFailHidesPlainErrors(t *testing.T) {
	c, w := newTestContext()
	Fail(c, errors.New("pq: connection refused"))

	body := decode(t, w)
	if body["status_code"] != float64(CodeInternal) || body["msg"] != "internal error" {
		t.Fatalf("plain error should map to internal, got %v", body)
	}
}

func TestTooManyRequestsSetsRetryAfter(t *testing.T) {
	c, w := newTestContext()
	TooManyRequests(c, "too many login attempts", 300)

	if got := w.Header().Get("Retry-After"); got != "300" {
		t.Fatalf("Retry-After want 300 got %q", got)
	}
	body := decode(t, w)
	if body["status_code"] != float64(CodeTooManyRequests) {
		t.Fatalf("want 429 got %v", body["status_code"])
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(CodeInternal, "checkout failed", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("AppError should unwrap to cause")
	}
	if err.Error() != "checkout failed: boom" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
