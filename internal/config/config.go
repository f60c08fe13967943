// Package config loads statdash settings from a YAML file, STATDASH_* env vars and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StoreBackendSheets   = "sheets"
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

const envPrefix = "STATDASH"

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Log       LogConfig       `mapstructure:"log"`
	BPS       BPSConfig       `mapstructure:"bps"`
	Store     StoreConfig     `mapstructure:"store"`
	Sync      SyncConfig      `mapstructure:"sync"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

type HTTPConfig struct {
	Addr           string   `mapstructure:"addr" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// AdminSecret signs admin session tokens. Empty disables the admin check.
	AdminSecret string `mapstructure:"admin_secret"`
}

type LogConfig struct {
	Level    string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Encoding string `mapstructure:"encoding" validate:"omitempty,oneof=json console"`
}

// BPSConfig describes the upstream statistics WebAPI.
type BPSConfig struct {
	BaseURL       string        `mapstructure:"base_url" validate:"required,url"`
	APIKey        string        `mapstructure:"api_key" validate:"required"`
	DomainID      string        `mapstructure:"domain_id" validate:"required"`
	Referer       string        `mapstructure:"referer"`
	Origin        string        `mapstructure:"origin"`
	UserAgent     string        `mapstructure:"user_agent"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gte=0"`
	ChunkSize     int           `mapstructure:"chunk_size" validate:"gte=1"`
	MaxPages      int           `mapstructure:"max_pages" validate:"gte=1"`
	MaxRetries    uint64        `mapstructure:"max_retries"`
	RetryInterval time.Duration `mapstructure:"retry_interval" validate:"gte=0"`
}

type StoreConfig struct {
	Backend         string `mapstructure:"backend" validate:"oneof=sheets postgres memory"`
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
	DSN             string `mapstructure:"dsn"`
	DataTable       string `mapstructure:"data_table" validate:"required"`
	CatalogTable    string `mapstructure:"catalog_table" validate:"required"`
	ReadPageSize    int    `mapstructure:"read_page_size" validate:"gte=1"`
	InsertBatchSize int    `mapstructure:"insert_batch_size" validate:"gte=1"`
	// AtomicReplace runs delete+insert in one transaction on backends that support it.
	AtomicReplace bool `mapstructure:"atomic_replace"`
}

type SyncConfig struct {
	// Interval of the scheduled full run in `serve`; zero disables it.
	Interval time.Duration `mapstructure:"interval" validate:"gte=0"`
}

type DashboardConfig struct {
	CacheSize int `mapstructure:"cache_size" validate:"gte=1"`
}

// SetDefaults registers every known key so that env overrides work for all of them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("http.admin_secret", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")

	v.SetDefault("bps.base_url", "https://webapi.bps.go.id/v1/api")
	v.SetDefault("bps.api_key", "")
	v.SetDefault("bps.domain_id", "7601")
	v.SetDefault("bps.referer", "https://webapi.bps.go.id/developer/")
	v.SetDefault("bps.origin", "https://webapi.bps.go.id")
	v.SetDefault("bps.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("bps.timeout", 30*time.Second)
	v.SetDefault("bps.chunk_size", 2)
	v.SetDefault("bps.max_pages", 20)
	v.SetDefault("bps.max_retries", 2)
	v.SetDefault("bps.retry_interval", 500*time.Millisecond)

	v.SetDefault("store.backend", StoreBackendSheets)
	v.SetDefault("store.spreadsheet_id", "")
	v.SetDefault("store.credentials_file", "")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.data_table", "Data")
	v.SetDefault("store.catalog_table", "Konfig")
	v.SetDefault("store.read_page_size", 500)
	v.SetDefault("store.insert_batch_size", 200)
	v.SetDefault("store.atomic_replace", false)

	v.SetDefault("sync.interval", time.Duration(0))

	v.SetDefault("dashboard.cache_size", 64)
}

// Load reads configuration into a validated Config. path may be empty.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("ReadInConfig: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints. Store identifiers are checked when the store is opened.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
