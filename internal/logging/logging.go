// Package logging configures the process-wide zerolog logger. The TUI owns
// the terminal, so logs go to a file in the log directory rather than
// stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const fileName = "keywarden.log"

// Open creates a JSON file logger in dir at the given level. dir is created
// if missing. The KEYWARDEN_LOG_LEVEL environment variable overrides level
// when set. The returned closer releases the log file.
func Open(dir, level string) (zerolog.Logger, io.Closer, error) {
	if env := os.Getenv("KEYWARDEN_LOG_LEVEL"); env != "" {
		level = env
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: bad level %q: %w", level, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: mkdir %q: %w", dir, err)
	}
	path := filepath.Join(dir, fileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: open %q: %w", path, err)
	}

	log := zerolog.New(f).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return log, f, nil
}
