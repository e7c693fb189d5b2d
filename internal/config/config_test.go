package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DatabasePath == "" {
		t.Error("DatabasePath default is empty")
	}
	if cfg.LayoutSettleDelay != 200*time.Millisecond {
		t.Errorf("LayoutSettleDelay = %v, want 200ms", cfg.LayoutSettleDelay)
	}
	if cfg.RemeasureDelay != 350*time.Millisecond {
		t.Errorf("RemeasureDelay = %v, want 350ms", cfg.RemeasureDelay)
	}
	if cfg.ThumbnailWidth != 320 {
		t.Errorf("ThumbnailWidth = %d, want 320", cfg.ThumbnailWidth)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PAGETURN_DATABASE_PATH", "/tmp/other.db")
	t.Setenv("PAGETURN_LAYOUT_SETTLE_DELAY", "50ms")
	t.Setenv("PAGETURN_THUMBNAIL_WIDTH", "128")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DatabasePath != "/tmp/other.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.LayoutSettleDelay != 50*time.Millisecond {
		t.Errorf("LayoutSettleDelay = %v, want 50ms", cfg.LayoutSettleDelay)
	}
	if cfg.ThumbnailWidth != 128 {
		t.Errorf("ThumbnailWidth = %d, want 128", cfg.ThumbnailWidth)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "database_path: /var/lib/pageturn/books.db\nremeasure_delay: 500ms\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DatabasePath != "/var/lib/pageturn/books.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.RemeasureDelay != 500*time.Millisecond {
		t.Errorf("RemeasureDelay = %v, want 500ms", cfg.RemeasureDelay)
	}
	// Unset keys keep their defaults.
	if cfg.ThumbnailWidth != 320 {
		t.Errorf("ThumbnailWidth = %d, want 320", cfg.ThumbnailWidth)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}
