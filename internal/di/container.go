package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-pagebuilder/internal/commands"
	pagescmd "github.com/goliatone/go-pagebuilder/internal/commands/pages"
	"github.com/goliatone/go-pagebuilder/internal/identity"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/logging/console"
	"github.com/goliatone/go-pagebuilder/internal/logging/gologger"
	"github.com/goliatone/go-pagebuilder/internal/pages"
	"github.com/goliatone/go-pagebuilder/internal/registry"
	"github.com/goliatone/go-pagebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-pagebuilder/internal/validation"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Container wires the page builder: storage, component registry, validation
// and the page service with its command handlers.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	store       interfaces.PageStore
	registry    *registry.Registry
	definitions []registry.Definition
	idGenerator identity.Generator
	validator   *validation.Validator
	sanitizer   pages.Sanitizer

	pageSvc  pages.Service
	commands *pagescmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithCache overrides the default cache service used by database storage.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithBunDB stores pages in db regardless of the configured provider. The
// caller keeps ownership of the connection.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithStore overrides the page store binding.
func WithStore(store interfaces.PageStore) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithLoggerProvider overrides the logger provider derived from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithComponentDefinitions registers extra component types next to the
// built-in set before the registry is frozen.
func WithComponentDefinitions(defs ...registry.Definition) Option {
	return func(c *Container) {
		c.definitions = append(c.definitions, defs...)
	}
}

// WithIDGenerator overrides the generator used for new component IDs.
func WithIDGenerator(gen identity.Generator) Option {
	return func(c *Container) {
		c.idGenerator = gen
	}
}

// WithPageService overrides the default page service binding.
func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureStore(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.configureRegistry(); err != nil {
		c.Close()
		return nil, err
	}

	if c.Config.Content.ValidateSchemas {
		c.validator = validation.NewValidator(c.registry, validation.WithStrictOverrides(c.Config.Editing.StrictOverrides))
	}
	if c.Config.Content.SanitizeRichText {
		c.sanitizer = pages.NewHTMLSanitizer()
	}

	if c.pageSvc == nil {
		pageOpts := []pages.ServiceOption{
			pages.WithComponentFactory(c.registry),
			pages.WithLogger(logging.PagesLogger(c.loggerProvider)),
		}
		if c.validator != nil {
			pageOpts = append(pageOpts, pages.WithDocumentValidator(c.validator))
		}
		if c.sanitizer != nil {
			pageOpts = append(pageOpts, pages.WithSanitizer(c.sanitizer))
		}
		c.pageSvc = pages.NewService(c.store, pageOpts...)
	}

	if c.Config.Commands.Enabled {
		c.commands = pagescmd.NewHandlerSet(
			c.pageSvc,
			commands.CommandLogger(c.loggerProvider, "pages"),
			c.Config.Commands.Timeout,
		)
	}

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("configure go-logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{Writer: os.Stderr}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStore() error {
	if c.store != nil {
		return nil
	}

	storageLogger := logging.StorageLogger(c.loggerProvider)
	provider := runtimeconfig.NormalizeProvider(c.Config.Storage.Provider)

	if c.bunDB == nil {
		switch provider {
		case runtimeconfig.StorageMemory:
			c.store = pages.NewMemoryStore()
			return nil
		case runtimeconfig.StorageFile:
			store, err := pages.NewFileStore(c.Config.Storage.Dir, pages.WithFileLogger(storageLogger))
			if err != nil {
				return err
			}
			c.store = store
			return nil
		case runtimeconfig.StorageSQLite, runtimeconfig.StoragePostgres:
			db, err := openDatabase(provider, c.Config.Storage.DSN)
			if err != nil {
				return err
			}
			c.bunDB = db
			c.ownsDB = true
		default:
			return fmt.Errorf("%w: %q", runtimeconfig.ErrStorageProviderUnknown, c.Config.Storage.Provider)
		}
	}

	opts := []pages.BunStoreOption{pages.WithBunLogger(storageLogger)}
	if c.cacheService != nil {
		opts = append(opts, pages.WithBunCache(c.cacheService, c.keySerializer))
	}
	store, err := pages.NewBunStore(c.bunDB, opts...)
	if err != nil {
		return err
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensure page schema: %w", err)
	}
	c.store = store
	return nil
}

func openDatabase(provider, dsn string) (*bun.DB, error) {
	switch provider {
	case runtimeconfig.StorageSQLite:
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// sqlite serialises writers; one connection keeps in-memory DSNs shared.
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case runtimeconfig.StoragePostgres:
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	}
	return nil, fmt.Errorf("%w: %q", runtimeconfig.ErrStorageProviderUnknown, provider)
}

func (c *Container) configureRegistry() error {
	opts := []registry.Option{registry.WithLogger(logging.RegistryLogger(c.loggerProvider))}
	if c.idGenerator != nil {
		opts = append(opts, registry.WithIDGenerator(c.idGenerator))
	}
	reg := registry.New(opts...)
	if err := registry.RegisterBuiltins(reg); err != nil {
		return err
	}
	for _, def := range c.definitions {
		if err := reg.Register(def); err != nil {
			return fmt.Errorf("register component %q: %w", def.Type(), err)
		}
	}
	reg.Freeze()
	c.registry = reg
	return nil
}

// Close releases the database connection when the container opened it.
func (c *Container) Close() error {
	if c == nil || !c.ownsDB || c.bunDB == nil {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	c.ownsDB = false
	if err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}

// LoggerProvider returns the configured provider, or nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) Store() interfaces.PageStore {
	return c.store
}

// Registry returns the frozen component registry.
func (c *Container) Registry() *registry.Registry {
	return c.registry
}

// Validator returns the schema validator, or nil when validation is disabled.
func (c *Container) Validator() *validation.Validator {
	return c.validator
}

func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

// PageCommands returns the page command handlers, or nil when commands are disabled.
func (c *Container) PageCommands() *pagescmd.HandlerSet {
	return c.commands
}

// CacheService exposes the cache fronting database storage, if any.
func (c *Container) CacheService() repocache.CacheService {
	return c.cacheService
}
