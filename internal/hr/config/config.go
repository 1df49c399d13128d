// Package config loads the HR service configuration from a YAML file and
// applies HR_* environment overrides, reading a .env file when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "internal/hr/config/config.yaml"

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config struct for YAML configuration
type Config struct {
	GRPCPort       int      `yaml:"GRPC_PORT"`
	HTTPPort       int      `yaml:"HTTP_PORT"`
	Storage        string   `yaml:"STORAGE"`
	DBHost         string   `yaml:"DB_HOST"`
	DBPort         int      `yaml:"DB_PORT"`
	DBUser         string   `yaml:"DB_USER"`
	DBPassword     string   `yaml:"DB_PASSWORD"`
	DBName         string   `yaml:"DB_NAME"`
	DBSSLMode      string   `yaml:"DB_SSLMODE"`
	SQLitePath     string   `yaml:"SQLITE_PATH"`
	KafkaEnabled   bool     `yaml:"KAFKA_ENABLED"`
	KafkaBrokers   []string `yaml:"KAFKA_BROKERS"`
	Topic          string   `yaml:"TOPIC"`
	ConsumerGroup  string   `yaml:"CONSUMER_GROUP"`
	LogDevelopment bool     `yaml:"LOG_DEVELOPMENT"`
}

// Load reads the YAML file at path, then applies environment overrides.
// An empty path falls back to CONFIG_PATH and then DefaultPath.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	for _, v := range []struct {
		key string
		dst *string
	}{
		{"HR_STORAGE", &c.Storage},
		{"HR_DB_HOST", &c.DBHost},
		{"HR_DB_USER", &c.DBUser},
		{"HR_DB_PASSWORD", &c.DBPassword},
		{"HR_DB_NAME", &c.DBName},
		{"HR_DB_SSLMODE", &c.DBSSLMode},
		{"HR_SQLITE_PATH", &c.SQLitePath},
		{"HR_TOPIC", &c.Topic},
		{"HR_CONSUMER_GROUP", &c.ConsumerGroup},
	} {
		if raw, ok := os.LookupEnv(v.key); ok {
			*v.dst = raw
		}
	}

	for _, v := range []struct {
		key string
		dst *int
	}{
		{"HR_GRPC_PORT", &c.GRPCPort},
		{"HR_HTTP_PORT", &c.HTTPPort},
		{"HR_DB_PORT", &c.DBPort},
	} {
		if raw, ok := os.LookupEnv(v.key); ok {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("config: %s: %w", v.key, err)
			}
			*v.dst = n
		}
	}

	if raw, ok := os.LookupEnv("HR_KAFKA_ENABLED"); ok {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("config: HR_KAFKA_ENABLED: %w", err)
		}
		c.KafkaEnabled = enabled
	}
	if raw, ok := os.LookupEnv("HR_KAFKA_BROKERS"); ok {
		c.KafkaBrokers = strings.Split(raw, ",")
	}
	return nil
}

func (c *Config) validateAndNormalize() error {
	if c.GRPCPort == 0 {
		c.GRPCPort = 50051
	}
	if c.HTTPPort == 0 {
		c.HTTPPort = 8080
	}
	if c.Storage == "" {
		c.Storage = StorageMemory
	}

	switch c.Storage {
	case StorageMemory:
	case StorageSQLite:
		if c.SQLitePath == "" {
			c.SQLitePath = "hr.db"
		}
	case StoragePostgres:
		if c.DBHost == "" {
			return fmt.Errorf("config: DB_HOST must be set")
		}
		if c.DBPort == 0 {
			c.DBPort = 5432
		}
		if c.DBUser == "" {
			return fmt.Errorf("config: DB_USER must be set")
		}
		if c.DBName == "" {
			return fmt.Errorf("config: DB_NAME must be set")
		}
		if c.DBSSLMode == "" {
			c.DBSSLMode = "disable"
		}
	default:
		return fmt.Errorf("config: unsupported STORAGE %q", c.Storage)
	}

	if c.KafkaEnabled {
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("config: KAFKA_BROKERS must be set when Kafka is enabled")
		}
	}
	if c.Topic == "" {
		c.Topic = "hr.events"
	}
	if c.ConsumerGroup == "" {
		c.ConsumerGroup = "hr-audit"
	}
	return nil
}
