package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/elitebuy/internal/config"
)

type fakeService struct {
	name     string
	startErr error
	block    bool

	mu      sync.Mutex
	stopped bool
	order   *[]string
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	if f.block {
		<-ctx.Done()
	}
	return nil
}

func (f *fakeService) Stop(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	if f.order != nil {
		*f.order = append(*f.order, f.name)
	}
	return nil
}

func TestRunnerStopsAllWhenOneFails(t *testing.T) {
	var order []string
	api := &fakeService{name: "http", block: true, order: &order}
	worker := &fakeService{name: "worker", startErr: errors.New("redis unreachable"), order: &order}

	err := NewRunner(api, worker).Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "worker: redis unreachable" {
		t.Fatalf("want wrapped worker error, got %v", err)
	}
	if len(order) != 2 || order[0] != "http" || order[1] != "worker" {
		t.Fatalf("services should stop in start order, got %v", order)
	}
}

func TestRunnerCanceledContextIsCleanExit(t *testing.T) {
	api := &fakeService{name: "http", block: true}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewRunner(api).Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("canceled context should exit cleanly, got %v", err)
	}
	if !api.stopped {
		t.Fatalf("service should be stopped")
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	if err := NewRunner(nil).Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("runner without services should fail")
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{"": ModeAll, "API": ModeAPI, " worker ": ModeWorker, "all": ModeAll}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) want %s got %s err=%v", raw, want, got, err)
		}
	}
	if _, err := ParseMode("cron"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
}

func TestNormalizeOptionsUsesConfigShutdownTimeout(t *testing.T) {
	cfg := config.Defaults()
	cfg.Server.ShutdownTimeoutSeconds = 25
	opts := normalizeOptions(Options{Config: cfg})
	if opts.ShutdownTimeout != 25*time.Second || opts.Mode != ModeAll {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestHTTPServiceServesAndStops(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	svc := NewHTTPService(config.ServerConfig{Host: "127.0.0.1", Port: "0", ReadTimeoutSeconds: 5, WriteTimeoutSeconds: 5}, handler)
	if err := svc.Listen(); err != nil {
		t.Fatalf("listen failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewRunner(svc).Run(ctx, time.Second, nil)
	}()

	resp, err := http.Get("http://" + svc.Addr() + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "ok" {
		t.Fatalf("unexpected body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runner should stop cleanly, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("runner did not stop")
	}
}
