package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"banket/internal/config"

	"github.com/rs/zerolog"
)

// New builds the console's root logger. JSON to stdout unless the config
// says otherwise; with output=file the returned closer owns the handle.
func New(cfg config.LoggingConfig, app config.AppConfig) (*zerolog.Logger, io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	level := zerolog.InfoLevel
	if name := strings.ToLower(strings.TrimSpace(cfg.Level)); name != "" {
		parsed, err := zerolog.ParseLevel(name)
		if err != nil {
			return nil, nil, fmt.Errorf("unknown logging.level: %q", cfg.Level)
		}
		level = parsed
	}

	var (
		out    io.Writer = os.Stdout
		closer io.Closer
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Output)) {
	case "", "stdout":
	case "stderr":
		out = os.Stderr
	case "file":
		if cfg.FilePath == "" {
			return nil, nil, fmt.Errorf("logging.output=file requires logging.file_path")
		}
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
		closer = file
	default:
		return nil, nil, fmt.Errorf("unknown logging.output: %q", cfg.Output)
	}

	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", app.Name).
		Str("env", app.Environment).
		Str("version", app.Version).
		Logger()

	return &logger, closer, nil
}
