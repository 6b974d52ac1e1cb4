package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{
		"SERVICE_NAME", "HTTP_PORT", "POSTGRES_DSN", "KAFKA_BROKERS",
		"LEDGER_ADMIN", "ENABLE_SEED_CATALOG", "ENABLE_OUTBOX_RELAY",
	} {
		t.Setenv(name, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "chorus" || cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LedgerAdmin != "deployer" {
		t.Fatalf("expected default admin deployer, got %q", cfg.LedgerAdmin)
	}
	if cfg.EnableSeedCatalog {
		t.Fatalf("seed catalog must default off")
	}
	if !cfg.EnableOutboxRelay {
		t.Fatalf("outbox relay must default on")
	}
	if len(cfg.KafkaBrokers) != 1 || cfg.KafkaBrokers[0] != "localhost:9092" {
		t.Fatalf("unexpected broker default: %v", cfg.KafkaBrokers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LEDGER_ADMIN", "  treasury-ops  ")
	t.Setenv("ENABLE_SEED_CATALOG", "yes")
	t.Setenv("ENABLE_OUTBOX_RELAY", "off")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092 ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.LedgerAdmin != "treasury-ops" {
		t.Fatalf("expected trimmed admin, got %q", cfg.LedgerAdmin)
	}
	if !cfg.EnableSeedCatalog || cfg.EnableOutboxRelay {
		t.Fatalf("flag parsing wrong: %+v", cfg)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "broker-2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
}

func TestEnvBoolFallback(t *testing.T) {
	t.Setenv("SOME_FLAG", "maybe")
	if envBool("SOME_FLAG", true) != true {
		t.Fatalf("unparseable value must keep fallback")
	}
	t.Setenv("SOME_FLAG", "0")
	if envBool("SOME_FLAG", true) != false {
		t.Fatalf("expected 0 to parse false")
	}
}
