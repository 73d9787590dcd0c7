package pagebuilder_test

import (
	"errors"
	"testing"

	pagebuilder "github.com/goliatone/go-pagebuilder"
)

func TestConfigValidateWatchRequiresFileStorage(t *testing.T) {
	cfg := pagebuilder.DefaultConfig()
	cfg.Storage = pagebuilder.StorageConfig{Provider: pagebuilder.StorageMemory}
	cfg.Features.Watch = true

	if err := cfg.Validate(); !errors.Is(err, pagebuilder.ErrWatchRequiresFileStorage) {
		t.Fatalf("expected ErrWatchRequiresFileStorage, got %v", err)
	}
}

func TestConfigValidateDatabaseRequiresDSN(t *testing.T) {
	cfg := pagebuilder.DefaultConfig()
	cfg.Storage = pagebuilder.StorageConfig{Provider: pagebuilder.StoragePostgres}

	if err := cfg.Validate(); !errors.Is(err, pagebuilder.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := pagebuilder.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "invalid"

	if err := cfg.Validate(); !errors.Is(err, pagebuilder.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}
