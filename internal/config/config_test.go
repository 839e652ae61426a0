package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "APP_ENV", "REDIS_DB", "SLOT_CACHE_TTL", "AUDIT_QUEUE_SIZE", "REDIS_ADDR", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Addr())
	}
	if cfg.IsProduction() {
		t.Fatalf("default env should not be production")
	}
	if cfg.SlotCacheTTL != 2*time.Minute || cfg.AuditQueueSize != 100 || cfg.RedisDB != 0 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Fatalf("expected no CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SLOT_CACHE_TTL", "45s")
	t.Setenv("AUDIT_QUEUE_SIZE", "not-a-number")
	t.Setenv("CORS_ORIGINS", " https://a.example.com, ,https://b.example.com")

	cfg := Load()

	if cfg.Addr() != ":9090" || !cfg.IsProduction() {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.RedisDB != 3 || cfg.SlotCacheTTL != 45*time.Second {
		t.Fatalf("unexpected redis config %+v", cfg)
	}
	if cfg.AuditQueueSize != 100 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.AuditQueueSize)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}
