package main

import (
	"bytes"
	"errors"
	"os/exec"
)

var errGitNotInstalled = errors.New("git not installed")

type gitResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func (r gitResult) Combined() string {
	if r.Stdout == "" {
		return r.Stderr
	}
	if r.Stderr == "" {
		return r.Stdout
	}
	return r.Stdout + r.Stderr
}

// gitRunner runs one git command with an explicit working directory. Every
// invocation carries its own directory, so nothing ever mutates the
// process-wide cwd.
type gitRunner interface {
	Run(dir string, args ...string) (gitResult, error)
}

type execGitRunner struct {
	gitPath string
}

func newExecGitRunner() (*execGitRunner, error) {
	path, err := exec.LookPath("git")
	if err != nil {
		return nil, errGitNotInstalled
	}
	return &execGitRunner{gitPath: path}, nil
}

// Run executes git and captures stdout/stderr. A non-zero exit is reported
// through ExitCode, not through the error return; the error is reserved for
// failures to spawn the process at all.
func (r *execGitRunner) Run(dir string, args ...string) (gitResult, error) {
	cmd := exec.Command(r.gitPath, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	res := gitResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}
