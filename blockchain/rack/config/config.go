package config

import (
	"errors"
	"fmt"
	"os"
	"paygate/pkg/keygen"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultWorkers  = 10
	DefaultPoolSize = 16
)

type Config struct {
	Prod_env bool

	// hex nacl key, every generated secret is sealed with it
	SealKey string `toml:"seal_key"`

	Nats struct {
		TomlServers []string `toml:"servers"`
		Servers     string   `toml:"-"`
		User        string
		Password    string
	}
	Signer struct {
		// pre-generated keys kept per gateway, 0 generates on request
		PoolSize int      `toml:"pool_size"`
		Gateways []string // empty: every supported gateway
		Workers  int
	} `toml:"signer"`
}

// read from PAYGATE_SIGNER_* env vars, override the file
type Secrets struct {
	NatsUser     string `envconfig:"NATS_USER"`
	NatsPassword string `envconfig:"NATS_PASSWORD"`
	SealKey      string `envconfig:"SEAL_KEY"`
}

func ReadConfig() *Config {
	byte_config, err := os.ReadFile(os.Getenv("CONFIG"))
	if err != nil {
		panic(err)
	}

	var secrets Secrets
	if err := envconfig.Process("paygate_signer", &secrets); err != nil {
		panic(err)
	}

	config, err := Parse(byte_config, secrets)
	if err != nil {
		panic(err)
	}

	return config
}

func Parse(data []byte, secrets Secrets) (*Config, error) {
	var config Config
	if _, err := toml.Decode(string(data), &config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if secrets.NatsUser != "" {
		config.Nats.User = secrets.NatsUser
	}
	if secrets.NatsPassword != "" {
		config.Nats.Password = secrets.NatsPassword
	}
	if secrets.SealKey != "" {
		config.SealKey = secrets.SealKey
	}

	if config.Signer.Workers <= 0 {
		config.Signer.Workers = DefaultWorkers
	}
	if config.Signer.PoolSize < 0 {
		config.Signer.PoolSize = 0
	}
	if len(config.Signer.Gateways) == 0 {
		config.Signer.Gateways = keygen.Gateways()
	}

	if len(config.Nats.TomlServers) == 0 {
		return nil, errors.New("config: nats.servers is empty")
	}
	if config.SealKey == "" {
		return nil, errors.New("config: seal_key is required")
	}
	for _, g := range config.Signer.Gateways {
		if !keygen.Supported(g) {
			return nil, fmt.Errorf("config: signer.gateways: %w", keygen.ErrUnsupportedGateway{Gateway: g})
		}
	}

	var servers []string
	for _, x := range config.Nats.TomlServers {
		if config.Nats.User != "" {
			servers = append(servers, fmt.Sprintf("nats://%s:%s@%s", config.Nats.User, config.Nats.Password, x))
			continue
		}
		servers = append(servers, "nats://"+x)
	}
	config.Nats.Servers = strings.Join(servers, ",")

	return &config, nil
}
