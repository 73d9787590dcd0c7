package commands

import (
	"strings"

	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// CommandLogger scopes the commands logger to one handler area such as
// "pages". Entries carry the area under command_module so rejected and failed
// commands can be filtered per area.
func CommandLogger(provider interfaces.LoggerProvider, area string) interfaces.Logger {
	area = strings.ToLower(strings.TrimSpace(area))
	if area == "" {
		area = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"component":      "command",
		"command_module": area,
	})
}

// EnsureLogger returns logger, or a no-op logger when nil.
func EnsureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger != nil {
		return logger
	}
	return logging.NoOp()
}
