package main

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	newBranchNameKey = "new_branch_name"
	confirmFieldKey  = "confirm_result"
)

func wtmHuhTheme() *huh.Theme {
	t := *huh.ThemeCharm()
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(lipgloss.Color("#7D56F4"))
	t.Focused.Next = t.Focused.FocusedButton
	return &t
}

func newBranchForm(branch *string, suggestions []string) *huh.Form {
	input := huh.NewInput().
		Key(newBranchNameKey).
		Title("Branch name").
		Placeholder("feature/my-branch").
		Inline(true).
		Suggestions(suggestions).
		Value(branch).
		Validate(func(value string) error {
			value = strings.TrimSpace(value)
			if value == "" {
				// empty submission is reported by the session, not the form
				return nil
			}
			if !validateBranchName(value) {
				return errors.New("branch name contains characters git rejects")
			}
			return nil
		})

	return huh.NewForm(huh.NewGroup(input)).
		WithTheme(wtmHuhTheme()).
		WithShowHelp(false)
}

func newConfirmForm(title string, description string, result *bool) *huh.Form {
	confirm := huh.NewConfirm().
		Key(confirmFieldKey).
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(result)

	return huh.NewForm(huh.NewGroup(confirm)).
		WithTheme(wtmHuhTheme()).
		WithShowHelp(false)
}
