package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/mohdali/git-worktree-manager/logging"
)

// resolveEditor picks the editor command: --editor flag, then config, then
// $VISUAL, then $EDITOR, then `code` if it is on PATH. Empty means none
// found.
func resolveEditor(flagEditor string, cfg Config) string {
	if flagEditor != "" {
		return flagEditor
	}
	if cfg.Editor != "" {
		return cfg.Editor
	}
	if e := os.Getenv("VISUAL"); e != "" {
		return e
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if _, err := exec.LookPath("code"); err == nil {
		return "code"
	}
	return ""
}

// openInEditor launches the editor on a directory, fire and forget. A
// missing editor is a reported condition, never fatal.
func openInEditor(editor string, path string) error {
	if editor == "" {
		return fmt.Errorf("no editor found; set --editor, $VISUAL, or $EDITOR")
	}
	cmd := exec.Command(editor, path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start editor: %w", err)
	}
	logging.Logger.Info("editor launched", "editor", editor, "path", path)
	go func() {
		if err := cmd.Wait(); err != nil {
			logging.Logger.Warn("editor exited with error", "editor", editor, "error", err)
		}
	}()
	return nil
}
