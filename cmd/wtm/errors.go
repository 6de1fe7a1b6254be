package main

import (
	"fmt"
	"strings"
)

// ValidationError reports a branch name rejected before any subprocess ran.
type ValidationError struct {
	Branch string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid branch name %q", e.Branch)
}

// NameConflictError reports a target worktree path that already exists.
type NameConflictError struct {
	Path string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("worktree path already exists: %s", e.Path)
}

// ToolError carries a failed git invocation verbatim; git's own diagnostics
// are more precise than anything a wrapper message could add.
type ToolError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", e.ExitCode)
	}
	return fmt.Sprintf("git %s: %s", strings.Join(e.Args, " "), msg)
}

// RemovalError reports that every step of the removal fallback ladder
// failed, with the diagnostics from each attempt.
type RemovalError struct {
	Path     string
	Attempts []string
}

func (e *RemovalError) Error() string {
	return fmt.Sprintf("failed to remove worktree %s: %s", e.Path, strings.Join(e.Attempts, "; "))
}

// RepositoryError reports that the working directory is not inside a git
// repository, or that listing worktrees failed.
type RepositoryError struct {
	Reason string
	Err    error
}

func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *RepositoryError) Unwrap() error { return e.Err }
