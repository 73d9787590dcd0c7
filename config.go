package pagebuilder

import "github.com/goliatone/go-pagebuilder/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired    = runtimeconfig.ErrDefaultLocaleRequired
	ErrDefaultLocaleNotListed   = runtimeconfig.ErrDefaultLocaleNotListed
	ErrStorageProviderUnknown   = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDirRequired       = runtimeconfig.ErrStorageDirRequired
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrWatchRequiresFileStorage = runtimeconfig.ErrWatchRequiresFileStorage
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
	ErrCommandTimeoutInvalid    = runtimeconfig.ErrCommandTimeoutInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	StorageConfig  = runtimeconfig.StorageConfig
	CacheConfig    = runtimeconfig.CacheConfig
	EditingConfig  = runtimeconfig.EditingConfig
	ContentConfig  = runtimeconfig.ContentConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

const (
	StorageMemory   = runtimeconfig.StorageMemory
	StorageFile     = runtimeconfig.StorageFile
	StorageSQLite   = runtimeconfig.StorageSQLite
	StoragePostgres = runtimeconfig.StoragePostgres
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file over DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
