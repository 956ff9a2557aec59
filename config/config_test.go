package config

import "testing"

func TestDefaultConfigHasSaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BackendPoolSize <= 0 {
		t.Errorf("BackendPoolSize = %d, want > 0", cfg.BackendPoolSize)
	}
	if cfg.BufferSize <= 0 {
		t.Errorf("BufferSize = %d, want > 0", cfg.BufferSize)
	}
}

func TestNewAppliesOptions(t *testing.T) {
	cfg := New(
		WithListenAddr(":3724"),
		WithBackendAddr("game.example.com:3724"),
		WithRateLimit(50, 10),
	)
	if cfg.ListenAddr != ":3724" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.BackendAddr != "game.example.com:3724" {
		t.Errorf("BackendAddr = %q", cfg.BackendAddr)
	}
	if cfg.RateLimitPerSecond != 50 || cfg.RateLimitBurst != 10 {
		t.Errorf("rate limit = %v/%v, want 50/10", cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	}
}

func TestWithDirectorySetsAllThreeFields(t *testing.T) {
	cfg := New(WithDirectory([]string{"localhost:2379"}, "aurora-proxy", 0))
	if len(cfg.DirectoryEndpoints) != 1 || cfg.DirectoryEndpoints[0] != "localhost:2379" {
		t.Errorf("DirectoryEndpoints = %v", cfg.DirectoryEndpoints)
	}
	if cfg.DirectoryPoolName != "aurora-proxy" {
		t.Errorf("DirectoryPoolName = %q", cfg.DirectoryPoolName)
	}
	if cfg.DirectoryTTL != 0 {
		t.Errorf("DirectoryTTL = %v, want 0", cfg.DirectoryTTL)
	}
}
