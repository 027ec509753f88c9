package sl

import (
	"log/slog"
	"strings"
)

// Module returns a module attribute for scoping a logger to a component.
func Module(name string) slog.Attr {
	return slog.String("module", name)
}

// Err returns an error attribute.
func Err(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Secret returns an attribute with all but the last four characters masked.
func Secret(key, value string) slog.Attr {
	if len(value) <= 4 {
		return slog.String(key, strings.Repeat("*", len(value)))
	}
	return slog.String(key, strings.Repeat("*", len(value)-4)+value[len(value)-4:])
}
