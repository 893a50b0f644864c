package queue

import (
	"errors"
	"testing"
	"time"

	"github.com/elitebuy/internal/config"
)

func TestDisabledClientRejectsSettle(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	err = client.EnqueuePaymentSettle(PaymentSettlePayload{PaymentID: 1}, time.Second)
	if !errors.Is(err, ErrQueueDisabled) {
		t.Fatalf("want ErrQueueDisabled got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client: %v", err)
	}
}

func TestPaymentSettleTaskPayload(t *testing.T) {
	task, err := NewPaymentSettleTask(PaymentSettlePayload{PaymentID: 9, OrderID: 4, Method: "card"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskPaymentSimulateSettle {
		t.Fatalf("task type mismatch: %s", task.Type())
	}
	payload, err := ParsePaymentSettlePayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.PaymentID != 9 || payload.OrderID != 4 || payload.Method != "card" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("addr want 127.0.0.1:6379 got %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("concurrency want 10 got %d", cfg.Concurrency)
	}
	if cfg.Queues["critical"] == 0 {
		t.Fatalf("critical queue should be served by default")
	}
}
