package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SinesysTech/aluminify-sub018/internal/config"
)

func TestInitLoggerWritesToConfiguredFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "backend.log")
	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Log.File = logFile
	cfg.Log.MaxSizeMB = 10
	cfg.Log.MaxBackups = 1
	cfg.Log.MaxAgeDays = 1

	InitLogger(cfg)
	Log.Info("logger smoke test")
	Log.Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("configured log file is empty after logging")
	}
}
