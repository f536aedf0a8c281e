package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"HBDSaver/internal/logging"
	"HBDSaver/internal/model"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"configuration", &model.ConfigurationError{Field: "account", Msg: "empty"}, 1},
		{"ledger query", &model.LedgerQueryError{Op: "history", Err: errors.New("timeout")}, 2},
		{"wrapped ledger query", fmt.Errorf("run: %w", &model.LedgerQueryError{Op: "content", Err: errors.New("eof")}), 2},
		{"other", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSetup_RejectsPlaceholders(t *testing.T) {
	t.Setenv("ACCOUNT_NAME", "your_hive_user")
	t.Setenv("SIGNING_KEY", "your_private_key")
	t.Setenv("LOG_DIR", t.TempDir())
	configPath = t.TempDir() + "/missing.yaml"
	defer log.SetOutput(os.Stderr)

	_, err := setup()
	var ce *model.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("setup() error = %v, want ConfigurationError", err)
	}
}

func TestSetup_RejectsBadWIF(t *testing.T) {
	t.Setenv("ACCOUNT_NAME", "alice")
	t.Setenv("SIGNING_KEY", "not-a-wif")
	t.Setenv("SEND_MODE", "percentage")
	t.Setenv("PERCENT_VALUE", "10")
	t.Setenv("LOG_DIR", t.TempDir())
	configPath = t.TempDir() + "/missing.yaml"
	defer log.SetOutput(os.Stderr)

	_, err := setup()
	var ce *model.ConfigurationError
	if !errors.As(err, &ce) || ce.Field != "signing_key" {
		t.Fatalf("setup() error = %v, want signing_key ConfigurationError", err)
	}
}

func TestSetup_LoadFailureIsLoggedToFile(t *testing.T) {
	logDir := t.TempDir()
	t.Setenv("LOG_DIR", logDir)
	t.Setenv("DRY_RUN", "yes")
	configPath = filepath.Join(t.TempDir(), "missing.yaml")
	defer log.SetOutput(os.Stderr)

	_, err := setup()
	var ce *model.ConfigurationError
	if !errors.As(err, &ce) || ce.Field != "DRY_RUN" {
		t.Fatalf("setup() error = %v, want DRY_RUN ConfigurationError", err)
	}
	if got := exitCode(err); got != 1 {
		t.Errorf("exitCode() = %d, want 1", got)
	}

	data, err := os.ReadFile(filepath.Join(logDir, logging.FileName(time.Now())))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "[FATAL] load config") {
		t.Errorf("log file = %q, want load failure", data)
	}
}
