package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/gorm"
)

const (
	DefaultRequestTimeout   = 7 * time.Second
	DefaultRegistryCacheTTL = 30 * time.Second
	DefaultQRCacheTTL       = 10 * time.Minute
	DefaultOutboxInterval   = 5 * time.Second
	DefaultOutboxBatchSize  = 20
)

type Config struct {
	DB *gorm.DB `toml:"-"`

	Prod_env bool

	// management and admin routes require it in the Access header
	PrivateKey string `toml:"private_key"`

	// optional toml file with reference data, applied on startup
	SeedPath string `toml:"seed_path"`

	// hex nacl key for locally generated secrets, required in prod
	SealKey string `toml:"seal_key"`

	Postgres struct {
		Host     string
		User     string
		Password string
		Db_name  string
		Port     uint16
		Ssl_mode string
	}
	Nats struct {
		Servers        string   `toml:"-"`
		TomlServers    []string `toml:"servers"`
		User           string
		Password       string
		RequestTimeout time.Duration `toml:"request_timeout"`
	}
	Api struct {
		Ipv4  string
		Proto string
	} `toml:"web"`
	Provisioning struct {
		RegistryCacheTTL time.Duration `toml:"registry_cache_ttl"`
		QRCacheTTL       time.Duration `toml:"qr_cache_ttl"`
	} `toml:"provisioning"`
	Outbox struct {
		Disabled  bool
		Interval  time.Duration
		BatchSize int `toml:"batch_size"`
	} `toml:"outbox"`
	Log struct {
		// ship records to the log collector over nats
		Ship bool
	} `toml:"log"`
}

// Secrets are read from PAYGATE_* env vars and override the file.
type Secrets struct {
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
	NatsUser         string `envconfig:"NATS_USER"`
	NatsPassword     string `envconfig:"NATS_PASSWORD"`
	AccessKey        string `envconfig:"ACCESS_KEY"`
	SealKey          string `envconfig:"SEAL_KEY"`
}

func ReadConfig() *Config {
	byte_config, err := os.ReadFile(os.Getenv("CONFIG"))
	if err != nil {
		panic(err)
	}

	var secrets Secrets
	if err := envconfig.Process("paygate", &secrets); err != nil {
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

	if secrets.PostgresPassword != "" {
		config.Postgres.Password = secrets.PostgresPassword
	}
	if secrets.NatsUser != "" {
		config.Nats.User = secrets.NatsUser
	}
	if secrets.NatsPassword != "" {
		config.Nats.Password = secrets.NatsPassword
	}
	if secrets.AccessKey != "" {
		config.PrivateKey = secrets.AccessKey
	}
	if secrets.SealKey != "" {
		config.SealKey = secrets.SealKey
	}

	config.setDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Nats.Servers = FormatServers(config.Nats.TomlServers, config.Nats.User, config.Nats.Password)

	return &config, nil
}

func (c *Config) setDefaults() {
	if c.Nats.RequestTimeout <= 0 {
		c.Nats.RequestTimeout = DefaultRequestTimeout
	}
	if c.Provisioning.RegistryCacheTTL <= 0 {
		c.Provisioning.RegistryCacheTTL = DefaultRegistryCacheTTL
	}
	if c.Provisioning.QRCacheTTL <= 0 {
		c.Provisioning.QRCacheTTL = DefaultQRCacheTTL
	}
	if c.Outbox.Interval <= 0 {
		c.Outbox.Interval = DefaultOutboxInterval
	}
	if c.Outbox.BatchSize <= 0 {
		c.Outbox.BatchSize = DefaultOutboxBatchSize
	}
	if c.Postgres.Ssl_mode == "" {
		c.Postgres.Ssl_mode = "disable"
	}
}

func (c *Config) validate() error {
	if len(c.Nats.TomlServers) == 0 {
		return errors.New("config: nats.servers is empty")
	}
	if c.Api.Ipv4 == "" {
		return errors.New("config: web.ipv4 is empty")
	}
	if c.PrivateKey == "" {
		return errors.New("config: private_key is empty")
	}
	if c.Prod_env && c.SealKey == "" {
		return errors.New("config: seal_key is required in prod")
	}
	return nil
}

// comma separated nats urls with credentials
func FormatServers(servers []string, user, pass string) string {
	urls := make([]string, 0, len(servers))
	for _, x := range servers {
		if user != "" {
			urls = append(urls, fmt.Sprintf("nats://%s:%s@%s", user, pass, x))
			continue
		}
		urls = append(urls, "nats://"+x)
	}
	return strings.Join(urls, ",")
}
