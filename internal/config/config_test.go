package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DASHBOARD_ADDR", "STORE_URL", "STORE_TIMEOUT", "PAGE_SIZE", "DELETE_CONFIRM", "DASHBOARD_TIMEZONE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.StoreURL != DefaultStoreURL {
		t.Fatalf("expected hosted store url, got %q", cfg.StoreURL)
	}
	if cfg.StoreTimeout != 0 {
		t.Fatalf("expected no store timeout by default, got %v", cfg.StoreTimeout)
	}
	if cfg.PageSize != 10 {
		t.Fatalf("expected page size 10, got %d", cfg.PageSize)
	}
	if !cfg.DeleteConfirm {
		t.Fatalf("expected confirmation flow by default")
	}
	if cfg.Location() != time.Local {
		t.Fatalf("expected local time zone")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("DELETE_CONFIRM", "false")
	t.Setenv("DASHBOARD_TIMEZONE", "UTC")

	cfg := Load()
	if cfg.StoreTimeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", cfg.StoreTimeout)
	}
	if cfg.PageSize != 25 {
		t.Fatalf("expected page size 25, got %d", cfg.PageSize)
	}
	if cfg.DeleteConfirm {
		t.Fatalf("expected immediate delete flow")
	}
	if cfg.Location().String() != "UTC" {
		t.Fatalf("expected UTC, got %s", cfg.Location())
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("STORE_TIMEOUT", "soon")
	t.Setenv("PAGE_SIZE", "many")
	t.Setenv("DASHBOARD_TIMEZONE", "Nowhere/Special")

	cfg := Load()
	if cfg.StoreTimeout != 0 || cfg.PageSize != 10 || cfg.Location() != time.Local {
		t.Fatalf("unexpected fallback values: %+v", cfg)
	}
}
