package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AppName != "pylon-go" {
		t.Fatalf("AppName = %q", cfg.AppName)
	}
	if cfg.GatewayURL != "https://pylon-gateway-api.fly.dev" {
		t.Fatalf("GatewayURL = %q", cfg.GatewayURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.GatewayTimeout != 60*time.Second {
		t.Fatalf("GatewayTimeout = %v", cfg.GatewayTimeout)
	}
	if cfg.JournalType != "none" {
		t.Fatalf("JournalType = %q", cfg.JournalType)
	}
	if cfg.JournalTTL != 30*24*time.Hour {
		t.Fatalf("JournalTTL = %v", cfg.JournalTTL)
	}
	if cfg.JournalCleanupInterval != 12*time.Hour {
		t.Fatalf("JournalCleanupInterval = %v", cfg.JournalCleanupInterval)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GATEWAY_URL", "http://localhost:9000")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("JOURNAL_TYPE", "bbolt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.GatewayURL != "http://localhost:9000" {
		t.Fatalf("GatewayURL = %q", cfg.GatewayURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.JournalType != "bbolt" {
		t.Fatalf("JournalType = %q", cfg.JournalType)
	}
}

func TestLoadRejectsNonPositiveTimeouts(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero request timeout")
	}
}

func TestLoadRejectsNonPositiveJournalTTL(t *testing.T) {
	t.Setenv("JOURNAL_TTL_SECONDS", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative journal ttl")
	}
}
