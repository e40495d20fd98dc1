package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()
	if cfg.Kafka.OrdersTopic != "orders.events" {
		t.Errorf("Expected orders.events, got %s", cfg.Kafka.OrdersTopic)
	}
	if cfg.Inventory.AlertSweepInterval != 5*time.Minute {
		t.Errorf("Expected 5m sweep interval, got %s", cfg.Inventory.AlertSweepInterval)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "25")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("ALERT_SWEEP_INTERVAL", "30s")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := LoadEnv()

	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Expected trimmed brokers, got %v", cfg.Kafka.Brokers)
	}
	if cfg.Postgres.MaxOpenConns != 25 {
		t.Errorf("Expected 25, got %d", cfg.Postgres.MaxOpenConns)
	}
	if !cfg.Telemetry.Enabled {
		t.Errorf("Expected telemetry enabled")
	}
	if cfg.Inventory.AlertSweepInterval != 30*time.Second {
		t.Errorf("Expected 30s, got %s", cfg.Inventory.AlertSweepInterval)
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("Expected fallback 0 for invalid REDIS_DB, got %d", cfg.Redis.DB)
	}
}
