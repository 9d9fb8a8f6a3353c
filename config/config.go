package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddress     = ":5000"
	defaultTrustedOrigin   = "http://localhost:5173"
	defaultCookieName      = "token"
	defaultTokenTTLMinutes = 60
	defaultCatalogCacheTTL = 60

	defaultCheckoutTopic      = "checkout-events"
	defaultNotificationsTopic = "checkout-notifications"
	defaultConsumerGroup      = "cardoctor-notifier"
)

var ErrMissingSecret = errors.New("session signing secret is not configured")

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Session  SessionConfig  `yaml:"session"`
	Security SecurityConfig `yaml:"security"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address        string `yaml:"address"`
	TrustedOrigin  string `yaml:"trusted_origin"`
	SwaggerEnabled bool   `yaml:"swagger_enabled"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	CheckoutTopic      string   `yaml:"checkout_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type SessionConfig struct {
	Secret       string `yaml:"secret"`
	TTLMinutes   int    `yaml:"ttl_minutes"`
	CookieName   string `yaml:"cookie_name"`
	CookieDomain string `yaml:"cookie_domain"`
	// InsecureCookie drops the Secure flag for plain-http local development.
	InsecureCookie bool `yaml:"insecure_cookie"`
}

// SecurityConfig holds the ownership policy switches. Both default to the
// as-built behaviour of the service.
type SecurityConfig struct {
	RequireOwnerFilter    bool `yaml:"require_owner_filter"`
	ProtectCheckoutWrites bool `yaml:"protect_checkout_writes"`
}

type CatalogConfig struct {
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// environment-only deployments have no config file
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnv(os.Getenv)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("ACCESS_TOKEN_SECRET"); v != "" {
		c.Session.Secret = v
	}
	if v := getenv("DB_USER"); v != "" {
		c.Database.User = v
	}
	if v := getenv("DB_PASS"); v != "" {
		c.Database.Password = v
	}
	if v := getenv("DATABASE_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := getenv("PORT"); v != "" {
		c.HTTP.Address = ":" + v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = defaultHTTPAddress
	}
	if c.HTTP.TrustedOrigin == "" {
		c.HTTP.TrustedOrigin = defaultTrustedOrigin
	}
	if c.Session.TTLMinutes <= 0 {
		c.Session.TTLMinutes = defaultTokenTTLMinutes
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = defaultCookieName
	}
	if c.Catalog.CacheTTLSeconds <= 0 {
		c.Catalog.CacheTTLSeconds = defaultCatalogCacheTTL
	}
	if c.Kafka.CheckoutTopic == "" {
		c.Kafka.CheckoutTopic = defaultCheckoutTopic
	}
	if c.Kafka.NotificationsTopic == "" {
		c.Kafka.NotificationsTopic = defaultNotificationsTopic
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = defaultConsumerGroup
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate reports configuration faults that must stop the process at startup.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return ErrMissingSecret
	}
	return nil
}
