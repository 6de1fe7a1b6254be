package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mohdali/git-worktree-manager/logging"
)

func newRootCommand() *cobra.Command {
	var refreshSeconds int
	var editorFlag string
	var debug bool

	root := &cobra.Command{
		Use:           "wtm [branch]",
		Short:         "Interactive Git worktree manager",
		Long:          "wtm lists, creates, and deletes Git worktrees.\n\nWith no argument it opens the interactive session; with a branch name it\ncreates a worktree for that branch and exits.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := logging.Initialize(debug); err != nil {
				fmt.Fprintln(os.Stderr, "wtm warning:", err)
			}
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("refresh") {
				refreshSeconds = cfg.refreshSeconds()
			}
			if refreshSeconds < 0 {
				return fmt.Errorf("refresh interval must be non-negative")
			}

			root, err := worktreesRoot(cfg)
			if err != nil {
				return err
			}
			runner, err := newExecGitRunner()
			if err != nil {
				return err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			mgr := NewWorktreeManager(cwd, root, runner)
			editor := resolveEditor(editorFlag, cfg)

			if len(args) == 1 {
				return runDirectCreate(mgr, editor, args[0])
			}
			return runSession(mgr, cwd, editor, time.Duration(refreshSeconds)*time.Second)
		},
	}

	root.Flags().IntVar(&refreshSeconds, "refresh", defaultRefreshSeconds, "status refresh interval in seconds, 0 disables")
	root.Flags().StringVar(&editorFlag, "editor", "", "editor command used to open worktrees")
	root.Flags().BoolVar(&debug, "debug", false, "write debug logs to a file")
	return root
}

func runSession(mgr *WorktreeManager, cwd string, editor string, refreshInterval time.Duration) error {
	m := newSessionModel(sessionOptions{
		mgr:             mgr,
		cache:           NewStatusCache(mgr.QueryStatus),
		cwd:             cwd,
		editor:          editor,
		refreshInterval: refreshInterval,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// runDirectCreate is the CreatingNew success path without the interactive
// loop: create the worktree, open the editor, print the path.
func runDirectCreate(mgr *WorktreeManager, editor string, branch string) error {
	created, err := mgr.CreateWorktree(branch)
	if err != nil {
		return err
	}
	fmt.Println(created.Path)
	if err := openInEditor(editor, created.Path); err != nil {
		fmt.Fprintln(os.Stderr, "wtm warning:", err)
	}
	return nil
}
