package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestResolveLogFilePathDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	if filepath.Base(got) != "elitebuy.log" {
		t.Fatalf("default filename want elitebuy.log got %s", filepath.Base(got))
	}
	if filepath.Base(filepath.Dir(got)) != defaultLogDirName {
		t.Fatalf("default dir want %s got %s", defaultLogDirName, filepath.Dir(got))
	}
	if _, err := os.Stat(got); err != nil {
		t.Fatalf("expected log file to be created: %v", err)
	}
}

func readJSONLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	var lines []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not json: %q", line)
		}
		lines = append(lines, entry)
	}
	return lines
}

func TestNewReleaseWritesServiceField(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "api.log", Service: "elitebuy-worker"})
	log.Info("payment_settled", zap.Uint("payment_id", 7))
	_ = log.Sync()

	lines := readJSONLines(t, filepath.Join(tmpDir, "api.log"))
	if len(lines) != 1 {
		t.Fatalf("want 1 log line got %d", len(lines))
	}
	entry := lines[0]
	if entry["event"] != "payment_settled" || entry["service"] != "elitebuy-worker" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["payment_id"] != float64(7) {
		t.Fatalf("payment_id field missing: %v", entry)
	}
}

func TestNewReleaseDefaultServiceName(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir})
	log.Info("app_start")
	_ = log.Sync()

	lines := readJSONLines(t, filepath.Join(tmpDir, "elitebuy.log"))
	if len(lines) != 1 || lines[0]["service"] != "elitebuy-api" {
		t.Fatalf("unexpected entries: %v", lines)
	}
}

func TestNewLevelOverrideDropsInfo(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "warn.log", Level: "warn"})
	log.Info("checkout_quote")
	log.Warn("checkout_settlement_enqueue_failed")
	_ = log.Sync()

	lines := readJSONLines(t, filepath.Join(tmpDir, "warn.log"))
	if len(lines) != 1 || lines[0]["event"] != "checkout_settlement_enqueue_failed" {
		t.Fatalf("warn level should keep only warnings, got %v", lines)
	}
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestResolveLevel(t *testing.T) {
	if got := resolveLevel("", true).Level(); got != zapcore.DebugLevel {
		t.Fatalf("debug mode want debug level got %s", got)
	}
	if got := resolveLevel("", false).Level(); got != zapcore.InfoLevel {
		t.Fatalf("release mode want info level got %s", got)
	}
	if got := resolveLevel("ERROR", true).Level(); got != zapcore.ErrorLevel {
		t.Fatalf("override want error level got %s", got)
	}
	if got := resolveLevel("loud", false).Level(); got != zapcore.InfoLevel {
		t.Fatalf("unknown level should fall back to info, got %s", got)
	}
}

func TestForPaymentBindsIdentifiers(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	previous := L
	L = zap.New(core)
	t.Cleanup(func() { L = previous })

	ForPayment(12, 34).Infow("payment_settled", "status", "completed")

	entries := logs.FilterMessage("payment_settled").All()
	if len(entries) != 1 {
		t.Fatalf("want 1 entry got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["payment_id"] != uint64(12) || fields["order_id"] != uint64(34) || fields["status"] != "completed" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}
