package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Services ServicesConfig `yaml:"services"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	History  HistoryConfig  `yaml:"history"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServicesConfig struct {
	Redis RedisConfig `yaml:"redis"`
	Nats  NatsConfig  `yaml:"nats"`
}

type NatsConfig struct {
	Url     string `yaml:"url"`
	Subject string `yaml:"subject"`
	Enabled bool   `yaml:"enabled"`
}

type RedisConfig struct {
	Host    string `yaml:"host"`
	Enabled bool   `yaml:"enabled"`
}

// AlertsConfig controls which assessments are published to NATS. Threshold is a risk percentage.
type AlertsConfig struct {
	Threshold float64 `yaml:"threshold"`
}

type HistoryConfig struct {
	Enabled          bool `yaml:"enabled"`
	RetentionMinutes int  `yaml:"retentionMinutes"`
	MaxEntries       int  `yaml:"maxEntries"`
}

func (h HistoryConfig) Retention() time.Duration {
	return time.Duration(h.RetentionMinutes) * time.Minute
}

type AuthConfig struct {
	Enabled bool     `yaml:"enabled"`
	Clients []string `yaml:"clients"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var (
	ErrInvalidThreshold = errors.New("alert threshold must be between 0 and 100")
	ErrMissingNatsURL   = errors.New("provide a valid nats URL")
	ErrMissingRedisHost = errors.New("provide a valid redis host")
	ErrHistoryNeedRedis = errors.New("history requires redis to be enabled")
	ErrNoAuthClients    = errors.New("auth is enabled but no clients are listed")
)

func Default() Config {
	return Config{
		Services: ServicesConfig{
			Nats: NatsConfig{Subject: "fraud.alerts"},
		},
		Alerts: AlertsConfig{Threshold: 45},
		History: HistoryConfig{
			RetentionMinutes: 24 * 60,
			MaxEntries:       500,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Alerts.Threshold < 0 || c.Alerts.Threshold > 100 {
		return ErrInvalidThreshold
	}
	if c.Services.Nats.Enabled && c.Services.Nats.Url == "" {
		return ErrMissingNatsURL
	}
	if c.Services.Redis.Enabled && c.Services.Redis.Host == "" {
		return ErrMissingRedisHost
	}
	if c.History.Enabled && !c.Services.Redis.Enabled {
		return ErrHistoryNeedRedis
	}
	if c.Auth.Enabled && len(c.Auth.Clients) == 0 {
		return ErrNoAuthClients
	}
	return nil
}

// LoadSecrets builds the API key to secret map from API_KEY_<client> and API_SECRET_<client>.
func LoadSecrets(clients []string) (map[string][]byte, error) {
	secrets := map[string][]byte{}

	for _, id := range clients {
		key := os.Getenv(fmt.Sprintf("API_KEY_%s", id))
		secret := os.Getenv(fmt.Sprintf("API_SECRET_%s", id))
		if key == "" || secret == "" {
			return nil, fmt.Errorf("could not load api key for client %s", id)
		}
		secrets[key] = []byte(secret)
	}

	return secrets, nil
}
