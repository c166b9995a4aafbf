package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostolop/rent-vs-buy/internal/config"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.LoggingConfig
		override string
		wantErr  bool
	}{
		{name: "defaults", cfg: config.LoggingConfig{}},
		{name: "console debug", cfg: config.LoggingConfig{Level: "debug", Format: "console"}},
		{name: "warning alias", cfg: config.LoggingConfig{Level: "warning", Format: "json"}},
		{name: "override wins", cfg: config.LoggingConfig{Level: "loud"}, override: "error"},
		{name: "bad level", cfg: config.LoggingConfig{Level: "loud"}, wantErr: true},
		{name: "bad format", cfg: config.LoggingConfig{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := Initialize(tt.cfg, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Initialize() error = %v", err)
			}
			if logger == nil {
				t.Fatal("expected logger")
			}
			_ = logger.Sync()
		})
	}
}

func TestInitializeOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := Initialize(config.LoggingConfig{Level: "info", Format: "json", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	logger.Info("probe")
	_ = logger.Sync()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}
