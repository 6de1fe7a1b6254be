package ui

import (
	"fmt"
	"strings"
)

// StatusInfo is the render-ready view of one worktree's status snapshot.
type StatusInfo struct {
	Loaded       bool
	Unavailable  bool
	HasChanges   bool
	RemoteExists bool
	Added        int
	Modified     int
	Deleted      int
	Untracked    int
	Ahead        int
	Behind       int
}

// StatusIndicator renders the compact per-worktree status string: dirty
// counts as +a ~m -d ?u, sync state as ↑ahead ↓behind, ✓ when fully clean,
// and a ⊘ marker when the branch has no remote counterpart (ahead/behind
// are suppressed in that case).
func StatusIndicator(info StatusInfo) string {
	if !info.Loaded {
		return "…"
	}
	if info.Unavailable {
		return "-"
	}
	var parts []string
	if info.Added > 0 {
		parts = append(parts, fmt.Sprintf("+%d", info.Added))
	}
	if info.Modified > 0 {
		parts = append(parts, fmt.Sprintf("~%d", info.Modified))
	}
	if info.Deleted > 0 {
		parts = append(parts, fmt.Sprintf("-%d", info.Deleted))
	}
	if info.Untracked > 0 {
		parts = append(parts, fmt.Sprintf("?%d", info.Untracked))
	}
	if !info.RemoteExists {
		parts = append(parts, "⊘ no remote")
	} else {
		if info.Ahead > 0 {
			parts = append(parts, fmt.Sprintf("↑%d", info.Ahead))
		}
		if info.Behind > 0 {
			parts = append(parts, fmt.Sprintf("↓%d", info.Behind))
		}
	}
	if len(parts) == 0 {
		return "✓"
	}
	return strings.Join(parts, " ")
}
