package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mohdali/git-worktree-manager/logging"
)

// WorktreeManager wraps every git invocation the tool makes. It is a
// stateless facade: each call resolves the repository root fresh and runs
// git with an explicit working directory.
type WorktreeManager struct {
	cwd           string
	worktreesRoot string
	git           gitRunner
}

func NewWorktreeManager(cwd string, worktreesRoot string, git gitRunner) *WorktreeManager {
	if strings.TrimSpace(cwd) == "" {
		cwd, _ = os.Getwd()
	}
	return &WorktreeManager{cwd: cwd, worktreesRoot: worktreesRoot, git: git}
}

func (m *WorktreeManager) repoRoot() (string, error) {
	res, err := m.git.Run(m.cwd, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", &RepositoryError{Reason: "failed to run git", Err: err}
	}
	root := strings.TrimSpace(res.Stdout)
	if res.ExitCode != 0 || root == "" {
		return "", &RepositoryError{Reason: "not in a git repository"}
	}
	return root, nil
}

// ListWorktrees returns the repository's worktrees in porcelain-list order.
func (m *WorktreeManager) ListWorktrees() ([]Worktree, error) {
	root, err := m.repoRoot()
	if err != nil {
		return nil, err
	}
	res, err := m.git.Run(root, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, &RepositoryError{Reason: "failed to list worktrees", Err: err}
	}
	if res.ExitCode != 0 {
		return nil, &RepositoryError{Reason: "failed to list worktrees", Err: &ToolError{
			Args:     []string{"worktree", "list", "--porcelain"},
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}}
	}
	return parseWorktreeList(res.Stdout), nil
}

func parseWorktreeList(output string) []Worktree {
	var worktrees []Worktree
	var current *Worktree
	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			current = nil
		case strings.HasPrefix(line, "worktree "):
			worktrees = append(worktrees, Worktree{Path: strings.TrimPrefix(line, "worktree ")})
			current = &worktrees[len(worktrees)-1]
		case strings.HasPrefix(line, "HEAD "):
			if current != nil {
				current.Commit = strings.TrimPrefix(line, "HEAD ")
			}
		case strings.HasPrefix(line, "branch "):
			if current != nil {
				current.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
			}
		}
	}
	return worktrees
}

// CreateWorktree validates the branch name, derives a unique target folder
// under the worktrees root, and runs `git worktree add -b`. Validation
// failures never reach the subprocess layer.
func (m *WorktreeManager) CreateWorktree(branch string) (Worktree, error) {
	branch = strings.TrimSpace(branch)
	if !validateBranchName(branch) {
		return Worktree{}, &ValidationError{Branch: branch}
	}
	root, err := m.repoRoot()
	if err != nil {
		return Worktree{}, err
	}
	if err := os.MkdirAll(m.worktreesRoot, 0o755); err != nil {
		return Worktree{}, fmt.Errorf("failed to create worktrees root: %w", err)
	}
	target := filepath.Join(m.worktreesRoot, generateWorktreeFolder(branch))
	if _, statErr := os.Stat(target); statErr == nil {
		return Worktree{}, &NameConflictError{Path: target}
	}
	args := []string{"worktree", "add", "-b", branch, target}
	res, err := m.git.Run(root, args...)
	if err != nil {
		return Worktree{}, err
	}
	if res.ExitCode != 0 {
		return Worktree{}, &ToolError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	logging.Logger.Info("worktree created", "branch", branch, "path", target)
	return Worktree{Path: target, Branch: branch}, nil
}

// RemoveWorktree removes a worktree through an ordered fallback ladder:
// `git worktree remove --force`, then clearing read-only bits and retrying,
// then deleting the directory directly and pruning the registration. Each
// step runs only after the previous one failed; diagnostics from every
// attempt end up in the RemovalError.
func (m *WorktreeManager) RemoveWorktree(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("worktree path required")
	}
	root, err := m.repoRoot()
	if err != nil {
		return err
	}

	var attempts []string

	ok, diag := m.tryWorktreeRemove(root, path)
	if ok {
		return nil
	}
	attempts = append(attempts, diag)

	if err := clearReadOnly(path); err != nil {
		attempts = append(attempts, fmt.Sprintf("clear read-only: %v", err))
	} else {
		ok, diag = m.tryWorktreeRemove(root, path)
		if ok {
			return nil
		}
		attempts = append(attempts, "after clearing read-only: "+diag)
	}

	if err := os.RemoveAll(path); err != nil {
		attempts = append(attempts, fmt.Sprintf("remove directory: %v", err))
		return &RemovalError{Path: path, Attempts: attempts}
	}
	res, err := m.git.Run(root, "worktree", "prune")
	if err != nil {
		attempts = append(attempts, fmt.Sprintf("prune: %v", err))
		return &RemovalError{Path: path, Attempts: attempts}
	}
	if res.ExitCode != 0 {
		attempts = append(attempts, "prune: "+strings.TrimSpace(res.Stderr))
		return &RemovalError{Path: path, Attempts: attempts}
	}
	logging.Logger.Info("worktree removed via prune fallback", "path", path)
	return nil
}

func (m *WorktreeManager) tryWorktreeRemove(root string, path string) (bool, string) {
	res, err := m.git.Run(root, "worktree", "remove", "--force", path)
	if err != nil {
		return false, fmt.Sprintf("worktree remove: %v", err)
	}
	if res.ExitCode != 0 {
		return false, "worktree remove: " + strings.TrimSpace(res.Stderr)
	}
	return true, ""
}

func clearReadOnly(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return os.Chmod(p, info.Mode().Perm()|0o200)
	})
}

// PushBranch pushes the branch with upstream creation from inside the
// worktree. The combined output is returned raw for display.
func (m *WorktreeManager) PushBranch(path string, branch string) (bool, string) {
	res, err := m.git.Run(path, "push", "-u", "origin", branch)
	if err != nil {
		return false, err.Error()
	}
	return res.ExitCode == 0, res.Combined()
}

// QueryStatus gathers one status snapshot for a worktree: dirty-file counts
// from porcelain status, the current branch, and (for non-detached
// checkouts with a same-named remote ref) the ahead/behind counts.
func (m *WorktreeManager) QueryStatus(path string) (StatusSnapshot, error) {
	var snap StatusSnapshot

	res, err := m.git.Run(path, "status", "--porcelain")
	if err != nil {
		return snap, err
	}
	if res.ExitCode != 0 {
		return snap, &ToolError{Args: []string{"status", "--porcelain"}, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	countStatusLines(res.Stdout, &snap)

	res, err = m.git.Run(path, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return snap, err
	}
	branch := strings.TrimSpace(res.Stdout)
	if res.ExitCode != 0 || branch == "" || branch == "HEAD" {
		// Detached checkouts are excluded from remote comparison.
		return snap, nil
	}
	snap.Branch = branch

	// Remote existence is checked before any ahead/behind query; counting
	// against a nonexistent remote ref is meaningless.
	res, err = m.git.Run(path, "show-ref", "--verify", "--quiet", "refs/remotes/origin/"+branch)
	if err != nil {
		return snap, err
	}
	if res.ExitCode != 0 {
		return snap, nil
	}
	snap.RemoteExists = true

	res, err = m.git.Run(path, "rev-list", "--left-right", "--count", "origin/"+branch+"...HEAD")
	if err != nil {
		return snap, err
	}
	if res.ExitCode == 0 {
		snap.Behind, snap.Ahead = parseLeftRightCounts(res.Stdout)
	}
	return snap, nil
}

func countStatusLines(output string, snap *StatusSnapshot) {
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 2 {
			continue
		}
		snap.HasChanges = true
		code := line[:2]
		switch {
		case code == "??":
			snap.Untracked++
		case strings.ContainsRune(code, 'A'):
			snap.Added++
		case strings.ContainsRune(code, 'D'):
			snap.Deleted++
		default:
			snap.Modified++
		}
	}
}

// parseLeftRightCounts parses `rev-list --left-right --count origin/b...HEAD`
// output: left is commits only on the remote (behind), right only on HEAD
// (ahead). Output that is not exactly two numbers leaves both counts at
// zero, matching the lenient original behavior.
func parseLeftRightCounts(output string) (behind int, ahead int) {
	fields := strings.Fields(strings.TrimSpace(output))
	if len(fields) != 2 {
		logging.Logger.Debug("unexpected rev-list output", "output", output)
		return 0, 0
	}
	left, errL := strconv.Atoi(fields[0])
	right, errR := strconv.Atoi(fields[1])
	if errL != nil || errR != nil {
		logging.Logger.Debug("unexpected rev-list output", "output", output)
		return 0, 0
	}
	return left, right
}
