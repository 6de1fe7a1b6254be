package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
)

// Logger is the process-wide structured logger. It discards everything
// until Initialize enables debug output; the TUI owns the terminal, so logs
// only ever go to a file.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Initialize points Logger at a per-run JSON log file when debug is
// enabled, via the flag or WTM_DEBUG=1.
func Initialize(debug bool) (string, error) {
	if os.Getenv("WTM_DEBUG") == "1" {
		debug = true
	}
	if !debug {
		return "", nil
	}
	dir, err := logDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve log directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(dir, uuid.New().String()+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}
	Logger = slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Logger.Info("debug logging initialized", "log_file", path)
	return path, nil
}

func logDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "wtm"), nil
	case "linux":
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(home, ".local", "state")
		}
		return filepath.Join(stateHome, "wtm"), nil
	default:
		return filepath.Join(home, ".wtm", "logs"), nil
	}
}
