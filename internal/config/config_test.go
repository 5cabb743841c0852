package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"runtui/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := config.Default()
	if cfg != want {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtui.yaml")
	data := "backend: http://example.com:9000\ntransport: ws\nwindow_size: 7\nshow_all_events: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend != "http://example.com:9000" {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.Transport != "ws" {
		t.Errorf("Transport = %q", cfg.Transport)
	}
	if cfg.WindowSize != 7 {
		t.Errorf("WindowSize = %d", cfg.WindowSize)
	}
	if !cfg.ShowAllEvents {
		t.Errorf("ShowAllEvents = false, want true")
	}
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runtui.yaml")
	if err := os.WriteFile(path, []byte("transport: carrier-pigeon\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Errorf("Load() accepted an unknown transport")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RUNTUI_BACKEND", "http://env:1234")
	t.Setenv("RUNTUI_TRANSPORT", "ws")

	cfg := config.Default().ApplyEnv()
	if cfg.Backend != "http://env:1234" {
		t.Errorf("Backend = %q", cfg.Backend)
	}
	if cfg.Transport != "ws" {
		t.Errorf("Transport = %q", cfg.Transport)
	}
}
