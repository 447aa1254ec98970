package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("DATABASE_URL", "sqlite://grooming_salon.db")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("HTTP_READ_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://salon.example ,")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %q", cfg.Port)
	}
	if cfg.DatabaseURL != "sqlite://grooming_salon.db" {
		t.Fatalf("unexpected database url %q", cfg.DatabaseURL)
	}
	if cfg.RateLimitPerMinute != 20 {
		t.Fatalf("expected fallback rate limit 20, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Fatalf("expected read timeout 5s, got %s", cfg.ReadTimeout)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://salon.example" {
		t.Fatalf("unexpected origins %#v", cfg.AllowedOrigins)
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"0", true, false},
		{"garbage", true, true},
		{"", false, false},
	}
	for _, tc := range tests {
		if got := parseBool(tc.in, tc.def); got != tc.want {
			t.Errorf("parseBool(%q, %v) = %v, want %v", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestNotificationsEnabled(t *testing.T) {
	t.Setenv("SENDGRID_API_KEY", "key")
	t.Setenv("STAFF_EMAIL", "")

	if Load().NotificationsEnabled() {
		t.Fatal("expected notifications off without a recipient")
	}

	t.Setenv("STAFF_EMAIL", "staff@salon.example")
	if !Load().NotificationsEnabled() {
		t.Fatal("expected notifications on")
	}
}
