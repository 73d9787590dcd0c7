package bootstrap

import (
	"fmt"
	"strings"

	pagebuilder "github.com/goliatone/go-pagebuilder"
	pagescmd "github.com/goliatone/go-pagebuilder/internal/commands/pages"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// Options captures configuration for CLI bootstraps. Non-empty fields
// override values read from ConfigPath.
type Options struct {
	ConfigPath     string
	Dir            string
	Verbose        bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the page builder module with the CLI logger and the
// dispatcher subscriptions of its command handlers.
type Module struct {
	Module        *pagebuilder.Module
	Logger        interfaces.Logger
	subscriptions []pagescmd.Subscription
}

// BuildModule constructs a page builder module for CLI use and subscribes its
// command handlers to the go-command dispatcher.
func BuildModule(opts Options) (*Module, error) {
	cfg := pagebuilder.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := pagebuilder.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dir := strings.TrimSpace(opts.Dir); dir != "" {
		cfg.Storage = pagebuilder.StorageConfig{Provider: pagebuilder.StorageFile, Dir: dir}
		cfg.Features.Watch = false
	}
	if opts.Verbose {
		cfg.Features.Logger = true
		cfg.Logging.Level = "debug"
	}
	cfg.Commands.Enabled = true

	var moduleOpts []pagebuilder.Option
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, pagebuilder.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := pagebuilder.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise page builder module: %w", err)
	}

	provider := module.Container().LoggerProvider()
	return &Module{
		Module:        module,
		Logger:        logging.ModuleLogger(provider, "pagebuilder.cli"),
		subscriptions: module.Commands().Subscribe(),
	}, nil
}

// Close releases dispatcher subscriptions and module resources.
func (m *Module) Close() error {
	if m == nil {
		return nil
	}
	for _, sub := range m.subscriptions {
		sub.Unsubscribe()
	}
	m.subscriptions = nil
	if m.Module == nil {
		return nil
	}
	return m.Module.Close()
}

