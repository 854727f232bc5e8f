package options

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	Path  string
	Level string
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.Flags().StringVar(&o.Path, "log-path", "",
		"Write logs to this file, overriding log.path.")
	cmd.Flags().StringVar(&o.Level, "log-level", "",
		`Log level, one of "debug", "info", "warn" or "error", overriding log.level.`)
}

// Logger opens the log destination. Flags win over the configured path and
// level; with no path at all logs are discarded, since the kiosk owns the
// terminal. The returned close func is never nil.
func (o *LogOptions) Logger(path, level string) (*slog.Logger, func() error, error) {
	if o.Path != "" {
		path = o.Path
	}
	if o.Level != "" {
		level = o.Level
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}

	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl})), f.Close, nil
}
