package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/elitebuy/internal/constants"
	"github.com/elitebuy/internal/models"
	"github.com/elitebuy/internal/queue"
	"github.com/elitebuy/internal/service"

	"github.com/hibiken/asynq"
)

type stubCompleter struct {
	calls []uint
	err   error
}

func (s *stubCompleter) CompleteAsyncSettlement(paymentID uint) (*models.Payment, error) {
	s.calls = append(s.calls, paymentID)
	if s.err != nil {
		return nil, s.err
	}
	return &models.Payment{ID: paymentID, Status: constants.PaymentStatusCompleted}, nil
}

func newSettleTask(t *testing.T, paymentID uint) *asynq.Task {
	t.Helper()
	task, err := queue.NewPaymentSettleTask(queue.PaymentSettlePayload{PaymentID: paymentID, OrderID: 7, Method: constants.PaymentMethodCard})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	return task
}

func TestHandlePaymentSettleCallsCompleter(t *testing.T) {
	stub := &stubCompleter{}
	consumer := &Consumer{settlements: stub}

	if err := consumer.handlePaymentSettle(context.Background(), newSettleTask(t, 42)); err != nil {
		t.Fatalf("handle settle failed: %v", err)
	}
	if len(stub.calls) != 1 || stub.calls[0] != 42 {
		t.Fatalf("unexpected completer calls: %v", stub.calls)
	}
}

func TestHandlePaymentSettleSkipsZeroPayment(t *testing.T) {
	stub := &stubCompleter{}
	consumer := &Consumer{settlements: stub}

	if err := consumer.handlePaymentSettle(context.Background(), newSettleTask(t, 0)); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(stub.calls) != 0 {
		t.Fatalf("expected no completer call, got %v", stub.calls)
	}
}

func TestHandlePaymentSettleIgnoresTerminalErrors(t *testing.T) {
	for _, target := range []error{service.ErrPaymentNotPending, service.ErrPaymentNotFound, service.ErrPaymentCanceled} {
		consumer := &Consumer{settlements: &stubCompleter{err: target}}
		if err := consumer.handlePaymentSettle(context.Background(), newSettleTask(t, 3)); err != nil {
			t.Fatalf("expected %v to be swallowed, got %v", target, err)
		}
	}
}

func TestHandlePaymentSettleRetriesUnknownErrors(t *testing.T) {
	boom := errors.New("store unavailable")
	consumer := &Consumer{settlements: &stubCompleter{err: boom}}
	err := consumer.handlePaymentSettle(context.Background(), newSettleTask(t, 3))
	if !errors.Is(err, boom) {
		t.Fatalf("expected retryable error, got %v", err)
	}
}

func TestHandlePaymentSettleRejectsBadPayload(t *testing.T) {
	consumer := &Consumer{settlements: &stubCompleter{}}
	task := asynq.NewTask(queue.TaskPaymentSimulateSettle, []byte("{"))
	if err := consumer.handlePaymentSettle(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}
