package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresDefaultLocale(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = " "

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDefaultLocaleRequired) {
		t.Fatalf("expected ErrDefaultLocaleRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresDefaultLocaleListed(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = "es"
	cfg.Locales = []string{"en", "fr"}

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDefaultLocaleNotListed) {
		t.Fatalf("expected ErrDefaultLocaleNotListed, got %v", err)
	}
}

func TestConfigValidate_StorageProviders(t *testing.T) {
	cases := []struct {
		name    string
		storage runtimeconfig.StorageConfig
		want    error
	}{
		{name: "memory", storage: runtimeconfig.StorageConfig{Provider: "memory"}},
		{name: "empty defaults to memory", storage: runtimeconfig.StorageConfig{}},
		{name: "file requires dir", storage: runtimeconfig.StorageConfig{Provider: "file"}, want: runtimeconfig.ErrStorageDirRequired},
		{name: "sqlite requires dsn", storage: runtimeconfig.StorageConfig{Provider: "sqlite"}, want: runtimeconfig.ErrStorageDSNRequired},
		{name: "postgres alias", storage: runtimeconfig.StorageConfig{Provider: "PostgreSQL", DSN: "postgres://localhost/pages"}},
		{name: "unknown", storage: runtimeconfig.StorageConfig{Provider: "redis"}, want: runtimeconfig.ErrStorageProviderUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			cfg.Storage = tc.storage
			err := cfg.Validate()
			if tc.want == nil && err != nil {
				t.Fatalf("Validate() returned unexpected error: %v", err)
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidate_WatchRequiresFileStorage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Watch = true
	cfg.Storage = runtimeconfig.StorageConfig{Provider: "sqlite", DSN: "file:pages.db"}

	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrWatchRequiresFileStorage) {
		t.Fatalf("expected ErrWatchRequiresFileStorage, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeDurations(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.DefaultTTL = -time.Second
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCacheTTLInvalid) {
		t.Fatalf("expected ErrCacheTTLInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Commands.Timeout = -time.Second
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCommandTimeoutInvalid) {
		t.Fatalf("expected ErrCommandTimeoutInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenFeatureEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingLevelAndFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := runtimeconfig.Parse([]byte(`
default_locale: es
locales: [en, es]
storage:
  provider: sqlite
  dsn: "file:pages.db?cache=shared"
cache:
  enabled: true
  default_ttl: 5m
editing:
  segment_param: audience
features:
  logger: true
logging:
  provider: gologger
  level: debug
  format: json
  focus: [pagebuilder.pages]
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.DefaultLocale != "es" || len(cfg.Locales) != 2 {
		t.Fatalf("unexpected locales %q %v", cfg.DefaultLocale, cfg.Locales)
	}
	if cfg.Storage.Provider != "sqlite" || cfg.Storage.DSN == "" {
		t.Fatalf("unexpected storage %+v", cfg.Storage)
	}
	if !cfg.Cache.Enabled || cfg.Cache.DefaultTTL != 5*time.Minute {
		t.Fatalf("unexpected cache %+v", cfg.Cache)
	}
	if cfg.Editing.SegmentParam != "audience" || !cfg.Editing.StrictOverrides {
		t.Fatalf("expected segment param override with default strictness, got %+v", cfg.Editing)
	}
	if !cfg.Content.SanitizeRichText || !cfg.Content.ValidateSchemas {
		t.Fatalf("expected content defaults to survive, got %+v", cfg.Content)
	}
	if cfg.Logging.Provider != "gologger" || len(cfg.Logging.Focus) != 1 {
		t.Fatalf("unexpected logging %+v", cfg.Logging)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := runtimeconfig.Parse([]byte("storage:\n  bucket: x\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestParseAcceptsEmptyDocument(t *testing.T) {
	cfg, err := runtimeconfig.Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Storage.Provider != runtimeconfig.StorageFile {
		t.Fatalf("expected defaults, got %+v", cfg.Storage)
	}
}

func TestLoadValidatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pagebuilder.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  provider: file\n  dir: \"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runtimeconfig.Load(path); !errors.Is(err, runtimeconfig.ErrStorageDirRequired) {
		t.Fatalf("expected ErrStorageDirRequired, got %v", err)
	}
	if _, err := runtimeconfig.Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}
