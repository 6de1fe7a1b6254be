package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor != "" || cfg.RefreshSeconds != nil || cfg.WorktreesDir != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigParsesFields(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.MkdirAll(filepath.Join(home, ".wtm"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `{"editor": " vim ", "refresh_seconds": 10, "worktrees_dir": "/tmp/trees"}`
	if err := os.WriteFile(filepath.Join(home, ".wtm", "config.json"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Editor != "vim" {
		t.Fatalf("expected editor trimmed to vim, got %q", cfg.Editor)
	}
	if cfg.RefreshSeconds == nil || *cfg.RefreshSeconds != 10 {
		t.Fatalf("expected refresh_seconds 10, got %v", cfg.RefreshSeconds)
	}
	if cfg.WorktreesDir != "/tmp/trees" {
		t.Fatalf("expected worktrees dir, got %q", cfg.WorktreesDir)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.MkdirAll(filepath.Join(home, ".wtm"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(home, ".wtm", "config.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWorktreesRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := worktreesRoot(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != filepath.Join(home, ".worktrees") {
		t.Fatalf("expected default root under home, got %q", got)
	}

	got, err = worktreesRoot(Config{WorktreesDir: "/custom/trees"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/custom/trees" {
		t.Fatalf("expected override respected, got %q", got)
	}
}

func TestRefreshSeconds(t *testing.T) {
	if got := (Config{}).refreshSeconds(); got != defaultRefreshSeconds {
		t.Fatalf("expected default %d, got %d", defaultRefreshSeconds, got)
	}
	zero := 0
	if got := (Config{RefreshSeconds: &zero}).refreshSeconds(); got != 0 {
		t.Fatalf("expected explicit zero to disable refresh, got %d", got)
	}
	negative := -3
	if got := (Config{RefreshSeconds: &negative}).refreshSeconds(); got != defaultRefreshSeconds {
		t.Fatalf("expected negative value ignored, got %d", got)
	}
}
