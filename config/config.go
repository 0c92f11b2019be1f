package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppID     string          `yaml:"app_id"`
	Web       WebConfig       `yaml:"web"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Backend   BackendConfig   `yaml:"backend"`
	Messaging MessagingConfig `yaml:"messaging"`
	Notify    NotifyConfig    `yaml:"notify"`
	Auth      AuthConfig      `yaml:"auth"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Driver   string         `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// BackendConfig points at the remote REST data store holding the domain
// collections (installations, equipment, events, consumables, activity log).
type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

type MessagingConfig struct {
	Backend             string        `yaml:"backend"` // "kafka" or "mqtt"
	Brokers             []string      `yaml:"brokers"`
	BrokerURL           string        `yaml:"broker_url"`
	EventsTopic         string        `yaml:"events_topic"`
	ClientID            string        `yaml:"client_id"`
	OutboxDrainInterval time.Duration `yaml:"outbox_drain_interval"`
}

type NotifyConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
}

type AuthConfig struct {
	AdminUser     string `yaml:"admin_user"`
	AdminPassHash string `yaml:"admin_pass_hash"`
	SessionSecret string `yaml:"session_secret"`
}

func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.AppID == "" {
		c.AppID = "expotrack"
	}
	if c.Web.Host == "" {
		c.Web.Host = "0.0.0.0"
	}
	if c.Web.Port == 0 {
		c.Web.Port = 8090
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.SQLite.Path == "" {
		c.Database.SQLite.Path = "expotrack.db"
	}
	if c.Database.Postgres.Port == 0 {
		c.Database.Postgres.Port = 5432
	}
	if c.Database.Postgres.SSLMode == "" {
		c.Database.Postgres.SSLMode = "disable"
	}
	if c.Redis.Address == "" {
		c.Redis.Address = "127.0.0.1:6379"
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 10 * time.Second
	}
	if c.Messaging.Backend == "" {
		c.Messaging.Backend = "kafka"
	}
	if len(c.Messaging.Brokers) == 0 {
		c.Messaging.Brokers = []string{"127.0.0.1:9092"}
	}
	if c.Messaging.BrokerURL == "" {
		c.Messaging.BrokerURL = "tcp://127.0.0.1:1883"
	}
	if c.Messaging.EventsTopic == "" {
		c.Messaging.EventsTopic = "expotrack.events"
	}
	if c.Messaging.ClientID == "" {
		c.Messaging.ClientID = "expotrack-core"
	}
	if c.Messaging.OutboxDrainInterval == 0 {
		c.Messaging.OutboxDrainInterval = 5 * time.Second
	}
	if c.Notify.PollInterval == 0 {
		c.Notify.PollInterval = 5 * time.Minute
	}
	if c.Auth.AdminUser == "" {
		c.Auth.AdminUser = "admin"
	}
	if c.Auth.SessionSecret == "" {
		c.Auth.SessionSecret = "change-me"
	}
}

// Save writes the config back to disk. Used by the settings handlers.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
