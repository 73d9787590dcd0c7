package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var ErrDefaultLocaleRequired = errors.New("pagebuilder config: default locale is required")

// ErrDefaultLocaleNotListed keeps the default locale inside the supported set.
var ErrDefaultLocaleNotListed = errors.New("pagebuilder config: default locale must be listed in locales")
var ErrStorageProviderUnknown = errors.New("pagebuilder config: storage provider is invalid")
var ErrStorageDirRequired = errors.New("pagebuilder config: storage directory is required for the file provider")
var ErrStorageDSNRequired = errors.New("pagebuilder config: storage dsn is required for database providers")

// ErrWatchRequiresFileStorage ensures change notifications only run against page files.
var ErrWatchRequiresFileStorage = errors.New("pagebuilder config: watch feature requires the file storage provider")
var ErrCacheTTLInvalid = errors.New("pagebuilder config: cache ttl must be zero or positive")
var ErrCommandTimeoutInvalid = errors.New("pagebuilder config: command timeout must be zero or positive")
var ErrLoggingProviderRequired = errors.New("pagebuilder config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("pagebuilder config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("pagebuilder config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("pagebuilder config: logging format is invalid")

// Storage providers understood by the container.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Config aggregates feature flags and adapter bindings for the page builder.
type Config struct {
	DefaultLocale string         `yaml:"default_locale"`
	Locales       []string       `yaml:"locales"`
	Storage       StorageConfig  `yaml:"storage"`
	Cache         CacheConfig    `yaml:"cache"`
	Editing       EditingConfig  `yaml:"editing"`
	Content       ContentConfig  `yaml:"content"`
	Commands      CommandsConfig `yaml:"commands"`
	Features      Features       `yaml:"features"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// StorageConfig selects where page documents live.
type StorageConfig struct {
	Provider string `yaml:"provider"`
	Dir      string `yaml:"dir"`
	DSN      string `yaml:"dsn"`
}

// CacheConfig captures cache behaviour toggles for database storage.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// EditingConfig controls how audiences and variant edits are resolved.
type EditingConfig struct {
	SegmentParam    string `yaml:"segment_param"`
	StrictOverrides bool   `yaml:"strict_overrides"`
}

// ContentConfig toggles write-time content processing.
type ContentConfig struct {
	SanitizeRichText bool `yaml:"sanitize_rich_text"`
	ValidateSchemas  bool `yaml:"validate_schemas"`
}

// CommandsConfig captures command-layer behaviour.
type CommandsConfig struct {
	Enabled bool          `yaml:"enabled"`
	Timeout time.Duration `yaml:"timeout"`
}

// Features toggles module functionality.
type Features struct {
	Logger bool `yaml:"logger"`
	Watch  bool `yaml:"watch"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns defaults suited to local editing: pages as JSON files
// in ./pages, schema validation and sanitizing on.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Locales:       []string{"en"},
		Storage: StorageConfig{
			Provider: StorageFile,
			Dir:      "pages",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Editing: EditingConfig{
			SegmentParam:    "segment",
			StrictOverrides: true,
		},
		Content: ContentConfig{
			SanitizeRichText: true,
			ValidateSchemas:  true,
		},
		Commands: CommandsConfig{
			Enabled: true,
			Timeout: 30 * time.Second,
		},
		Features: Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	locale := strings.TrimSpace(cfg.DefaultLocale)
	if locale == "" {
		return ErrDefaultLocaleRequired
	}
	if len(cfg.Locales) > 0 && !slices.Contains(cfg.Locales, locale) {
		return fmt.Errorf("%w: %s", ErrDefaultLocaleNotListed, locale)
	}

	provider := NormalizeProvider(cfg.Storage.Provider)
	switch provider {
	case StorageMemory:
	case StorageFile:
		if strings.TrimSpace(cfg.Storage.Dir) == "" {
			return ErrStorageDirRequired
		}
	case StorageSQLite, StoragePostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %q", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	if cfg.Features.Watch && provider != StorageFile {
		return ErrWatchRequiresFileStorage
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}

	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// NormalizeProvider lowercases a storage provider name; empty selects memory.
func NormalizeProvider(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	switch provider {
	case "":
		return StorageMemory
	case "sqlite3":
		return StorageSQLite
	case "postgresql", "pg":
		return StoragePostgres
	}
	return provider
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
