package config

import (
	"testing"
	"time"
)

const sample = `
prod_env = false
private_key = "file-key"
seed_path = "seed.toml"

[postgres]
host = "localhost"
user = "postgres"
password = "file-pass"
db_name = "paygate"
port = 5432

[nats]
servers = ["localhost:4222", "localhost:4223"]
request_timeout = "3s"

[web]
ipv4 = "0.0.0.0:8080"

[outbox]
interval = "1s"
`

func TestParse(t *testing.T) {
	config, err := Parse([]byte(sample), Secrets{})
	if err != nil {
		t.Fatal(err)
	}

	if config.Nats.RequestTimeout != 3*time.Second {
		t.Fatalf("request timeout: %s", config.Nats.RequestTimeout)
	}
	if config.Outbox.Interval != time.Second {
		t.Fatalf("outbox interval: %s", config.Outbox.Interval)
	}
	if config.Outbox.BatchSize != DefaultOutboxBatchSize {
		t.Fatalf("outbox batch size: %d", config.Outbox.BatchSize)
	}
	if config.Provisioning.RegistryCacheTTL != DefaultRegistryCacheTTL {
		t.Fatalf("registry ttl: %s", config.Provisioning.RegistryCacheTTL)
	}
	if config.Postgres.Ssl_mode != "disable" || config.Postgres.Port != 5432 {
		t.Fatalf("postgres: %+v", config.Postgres)
	}
	if config.Nats.Servers != "nats://localhost:4222,nats://localhost:4223" {
		t.Fatalf("servers: %s", config.Nats.Servers)
	}
	if config.SeedPath != "seed.toml" || config.Api.Ipv4 != "0.0.0.0:8080" {
		t.Fatalf("unexpected config: %+v", config)
	}
}

func TestParseSecretsOverride(t *testing.T) {
	config, err := Parse([]byte(sample), Secrets{
		PostgresPassword: "env-pass",
		NatsUser:         "u",
		NatsPassword:     "p",
		AccessKey:        "env-key",
		SealKey:          "env-seal",
	})
	if err != nil {
		t.Fatal(err)
	}

	if config.Postgres.Password != "env-pass" || config.PrivateKey != "env-key" || config.SealKey != "env-seal" {
		t.Fatalf("secrets not applied: %+v", config)
	}
	if config.Nats.Servers != "nats://u:p@localhost:4222,nats://u:p@localhost:4223" {
		t.Fatalf("servers: %s", config.Nats.Servers)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", "prod_env = "},
		{"no nats", "[web]\nipv4 = \"0.0.0.0:8080\""},
		{"no web", "[nats]\nservers = [\"localhost:4222\"]"},
		{"prod without key", "prod_env = true\n[nats]\nservers = [\"localhost:4222\"]\n[web]\nipv4 = \"0.0.0.0:8080\""},
		{"dev without key", "prod_env = false\n[nats]\nservers = [\"localhost:4222\"]\n[web]\nipv4 = \"0.0.0.0:8080\""},
	}

	for _, tt := range tests {
		if _, err := Parse([]byte(tt.data), Secrets{}); err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
	}
}
