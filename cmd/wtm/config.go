package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const defaultRefreshSeconds = 5

type Config struct {
	Editor         string `json:"editor,omitempty"`
	RefreshSeconds *int   `json:"refresh_seconds,omitempty"`
	WorktreesDir   string `json:"worktrees_dir,omitempty"`
}

// LoadConfig reads ~/.wtm/config.json. A missing file is not an error; it
// yields the zero config.
func LoadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.Editor = strings.TrimSpace(cfg.Editor)
	cfg.WorktreesDir = strings.TrimSpace(cfg.WorktreesDir)
	return cfg, nil
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wtm", "config.json"), nil
}

// worktreesRoot resolves the per-user directory new worktrees are created
// under: the config override when set, otherwise ~/.worktrees.
func worktreesRoot(cfg Config) (string, error) {
	if cfg.WorktreesDir != "" {
		return cfg.WorktreesDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".worktrees"), nil
}

func (c Config) refreshSeconds() int {
	if c.RefreshSeconds != nil && *c.RefreshSeconds >= 0 {
		return *c.RefreshSeconds
	}
	return defaultRefreshSeconds
}
