package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	uiview "github.com/mohdali/git-worktree-manager/ui"
)

type sessionState int

const (
	stateListing sessionState = iota
	stateConfirmDelete
	stateCreating
	stateExited
)

type model struct {
	mgr             *WorktreeManager
	cache           *StatusCache
	editor          string
	refreshInterval time.Duration

	state     sessionState
	cwd       string
	worktrees []Worktree
	selected  int
	statuses  map[string]StatusSnapshot

	spin          spinner.Model
	busy          bool
	busyLabel     string
	busyStartedAt time.Time

	errMsg  string
	infoMsg string

	confirmForm    *huh.Form
	deleteTarget   Worktree
	deleteWarnings []string

	createForm  *huh.Form
	suggestions []string

	refreshDeadline time.Time
	tickSeq         int

	width  int
	height int
}

type sessionOptions struct {
	mgr             *WorktreeManager
	cache           *StatusCache
	cwd             string
	editor          string
	refreshInterval time.Duration
}

func newSessionModel(opts sessionOptions) model {
	m := model{
		mgr:             opts.mgr,
		cache:           opts.cache,
		cwd:             opts.cwd,
		editor:          opts.editor,
		refreshInterval: opts.refreshInterval,
		statuses:        map[string]StatusSnapshot{},
		spin:            newSpinner(),
	}
	if m.refreshInterval > 0 {
		m.refreshDeadline = time.Now().Add(m.refreshInterval)
	}
	return m
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
	return s
}

type worktreesLoadedMsg struct {
	worktrees []Worktree
	err       error
}

type statusesRefreshedMsg struct {
	statuses map[string]StatusSnapshot
}

type statusLoadedMsg struct {
	path string
	snap StatusSnapshot
}

type suggestionsMsg struct {
	branches []string
}

type refreshTickMsg struct {
	seq int
}

type pushDoneMsg struct {
	path   string
	branch string
	ok     bool
	output string
}

type deleteDoneMsg struct {
	path string
	err  error
}

type createDoneMsg struct {
	created Worktree
	err     error
}

func loadWorktreesCmd(mgr *WorktreeManager) tea.Cmd {
	return func() tea.Msg {
		worktrees, err := mgr.ListWorktrees()
		return worktreesLoadedMsg{worktrees: worktrees, err: err}
	}
}

func bulkRefreshCmd(cache *StatusCache, paths []string) tea.Cmd {
	return func() tea.Msg {
		cache.BulkRefresh(context.Background(), paths)
		return statusesRefreshedMsg{statuses: cache.Snapshot()}
	}
}

func clearAndRefreshCmd(cache *StatusCache, paths []string) tea.Cmd {
	return func() tea.Msg {
		cache.Clear()
		cache.BulkRefresh(context.Background(), paths)
		return statusesRefreshedMsg{statuses: cache.Snapshot()}
	}
}

func loadStatusCmd(cache *StatusCache, path string) tea.Cmd {
	return func() tea.Msg {
		return statusLoadedMsg{path: path, snap: cache.GetOrLoad(path)}
	}
}

func suggestionsCmd(mgr *WorktreeManager) tea.Cmd {
	return func() tea.Msg {
		root, err := mgr.repoRoot()
		if err != nil {
			return suggestionsMsg{}
		}
		branches, err := recentLocalBranches(root, 40)
		if err != nil {
			return suggestionsMsg{}
		}
		return suggestionsMsg{branches: branches}
	}
}

func pushBranchCmd(mgr *WorktreeManager, path string, branch string) tea.Cmd {
	return func() tea.Msg {
		ok, output := mgr.PushBranch(path, branch)
		return pushDoneMsg{path: path, branch: branch, ok: ok, output: output}
	}
}

func deleteWorktreeCmd(mgr *WorktreeManager, path string) tea.Cmd {
	return func() tea.Msg {
		return deleteDoneMsg{path: path, err: mgr.RemoveWorktree(path)}
	}
}

func createWorktreeCmd(mgr *WorktreeManager, branch string) tea.Cmd {
	return func() tea.Msg {
		created, err := mgr.CreateWorktree(branch)
		return createDoneMsg{created: created, err: err}
	}
}

func scheduleRefreshTick(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return refreshTickMsg{seq: seq}
	})
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, loadWorktreesCmd(m.mgr), suggestionsCmd(m.mgr)}
	if m.refreshInterval > 0 {
		cmds = append(cmds, scheduleRefreshTick(m.tickSeq, m.refreshInterval))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case refreshTickMsg:
		return m.handleRefreshTick(msg)

	case worktreesLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.worktrees = excludeCurrent(msg.worktrees, m.cwd)
		m.selected = clampIndex(m.selected, len(m.worktrees))
		return m, bulkRefreshCmd(m.cache, worktreePaths(m.worktrees))

	case statusesRefreshedMsg:
		m.statuses = msg.statuses
		return m, nil

	case statusLoadedMsg:
		m.statuses = copyStatuses(m.statuses)
		m.statuses[msg.path] = msg.snap
		return m, nil

	case suggestionsMsg:
		m.suggestions = msg.branches
		return m, nil

	case pushDoneMsg:
		m.busy = false
		m.cache.Invalidate(msg.path)
		if msg.ok {
			m.infoMsg = fmt.Sprintf("Pushed %s", msg.branch)
			m.errMsg = ""
		} else {
			m.errMsg = strings.TrimSpace(msg.output)
		}
		return m, loadStatusCmd(m.cache, msg.path)

	case deleteDoneMsg:
		m.busy = false
		m.state = stateListing
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.cache.Invalidate(msg.path)
		m.infoMsg = fmt.Sprintf("Removed %s", msg.path)
		m.errMsg = ""
		m.selected = 0
		return m, loadWorktreesCmd(m.mgr)

	case createDoneMsg:
		m.busy = false
		m.state = stateListing
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.infoMsg = fmt.Sprintf("Created %s at %s", msg.created.Branch, msg.created.Path)
		m.errMsg = ""
		if err := openInEditor(m.editor, msg.created.Path); err != nil {
			m.errMsg = err.Error()
		}
		return m, loadWorktreesCmd(m.mgr)

	case tea.KeyMsg:
		// Active interaction pushes the background refresh out.
		if m.refreshInterval > 0 {
			m.refreshDeadline = time.Now().Add(m.refreshInterval)
		}
		return m.handleKey(msg)
	}

	return m.forwardToForm(msg)
}

func (m model) handleRefreshTick(msg refreshTickMsg) (tea.Model, tea.Cmd) {
	if m.refreshInterval <= 0 || msg.seq != m.tickSeq {
		return m, nil
	}
	now := time.Now()
	if now.Before(m.refreshDeadline) {
		return m, scheduleRefreshTick(m.tickSeq, time.Until(m.refreshDeadline))
	}
	m.refreshDeadline = now.Add(m.refreshInterval)
	return m, tea.Batch(
		clearAndRefreshCmd(m.cache, worktreePaths(m.worktrees)),
		scheduleRefreshTick(m.tickSeq, m.refreshInterval),
	)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateConfirmDelete || m.state == stateCreating {
		if msg.String() == "esc" {
			m.state = stateListing
			m.confirmForm = nil
			m.createForm = nil
			return m, nil
		}
		return m.forwardToForm(msg)
	}
	if m.busy {
		if msg.String() == "ctrl+c" {
			m.state = stateExited
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.state = stateExited
		return m, tea.Quit

	case "up", "k":
		m.selected = clampIndex(m.selected-1, len(m.worktrees))
		return m, nil

	case "down", "j":
		m.selected = clampIndex(m.selected+1, len(m.worktrees))
		return m, nil

	case "enter", "o":
		wt, ok := m.selectedWorktree()
		if !ok {
			return m, nil
		}
		if err := openInEditor(m.editor, wt.Path); err != nil {
			m.errMsg = err.Error()
		} else {
			m.infoMsg = "Opened " + wt.Path
			m.errMsg = ""
		}
		return m, nil

	case "p":
		wt, ok := m.selectedWorktree()
		if !ok || wt.Branch == "" {
			return m, nil
		}
		m.busy = true
		m.busyLabel = "Pushing " + wt.Branch
		m.busyStartedAt = time.Now()
		return m, pushBranchCmd(m.mgr, wt.Path, wt.Branch)

	case "d":
		wt, ok := m.selectedWorktree()
		if !ok {
			return m, nil
		}
		m.deleteTarget = wt
		snap, loaded := m.cache.Get(wt.Path)
		m.deleteWarnings = deleteWarnings(wt, snap, loaded)
		m.confirmForm = newConfirmForm(
			fmt.Sprintf("Delete worktree %s?", wt.Branch),
			wt.Path,
			new(bool),
		)
		m.state = stateConfirmDelete
		return m, m.confirmForm.Init()

	case "n":
		m.createForm = newBranchForm(new(string), m.suggestions)
		m.state = stateCreating
		return m, m.createForm.Init()

	case "r":
		m.infoMsg = ""
		return m, tea.Batch(
			loadWorktreesCmd(m.mgr),
			suggestionsCmd(m.mgr),
		)
	}
	return m, nil
}

func (m model) forwardToForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateConfirmDelete:
		if m.confirmForm == nil {
			return m, nil
		}
		form, cmd := m.confirmForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.confirmForm = f
		}
		if m.confirmForm.State == huh.StateCompleted {
			confirmed := m.confirmForm.GetBool(confirmFieldKey)
			m.confirmForm = nil
			if !confirmed {
				m.state = stateListing
				return m, nil
			}
			m.busy = true
			m.busyLabel = "Removing " + m.deleteTarget.Branch
			m.busyStartedAt = time.Now()
			return m, deleteWorktreeCmd(m.mgr, m.deleteTarget.Path)
		}
		return m, cmd

	case stateCreating:
		if m.createForm == nil {
			return m, nil
		}
		form, cmd := m.createForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.createForm = f
		}
		if m.createForm.State == huh.StateCompleted {
			branch := strings.TrimSpace(m.createForm.GetString(newBranchNameKey))
			m.createForm = nil
			if branch == "" {
				m.state = stateListing
				m.errMsg = "branch name is required"
				return m, nil
			}
			m.busy = true
			m.busyLabel = "Creating " + branch
			m.busyStartedAt = time.Now()
			return m, createWorktreeCmd(m.mgr, branch)
		}
		return m, cmd
	}
	return m, nil
}

func (m model) selectedWorktree() (Worktree, bool) {
	if m.selected < 0 || m.selected >= len(m.worktrees) {
		return Worktree{}, false
	}
	return m.worktrees[m.selected], true
}

// deleteWarnings derives the pre-confirmation warnings from the cached
// snapshot of the worktree about to be removed.
func deleteWarnings(wt Worktree, snap StatusSnapshot, loaded bool) []string {
	var warnings []string
	if !loaded || snap.Unavailable {
		return warnings
	}
	if snap.HasChanges {
		warnings = append(warnings, "Worktree has uncommitted changes.")
	}
	if !snap.RemoteExists {
		warnings = append(warnings, fmt.Sprintf("Branch %s does not exist on the remote.", wt.Branch))
	}
	if snap.Ahead > 0 {
		warnings = append(warnings, fmt.Sprintf("Branch has %d unpushed commit(s).", snap.Ahead))
	}
	return warnings
}

func excludeCurrent(worktrees []Worktree, cwd string) []Worktree {
	out := make([]Worktree, 0, len(worktrees))
	for _, wt := range worktrees {
		if containsPath(wt.Path, cwd) {
			continue
		}
		out = append(out, wt)
	}
	return out
}

func containsPath(parent string, child string) bool {
	parent = filepath.Clean(parent)
	child = filepath.Clean(child)
	if parent == child {
		return true
	}
	return strings.HasPrefix(child, parent+string(filepath.Separator))
}

func clampIndex(index int, length int) int {
	if length == 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index >= length {
		return length - 1
	}
	return index
}

func worktreePaths(worktrees []Worktree) []string {
	paths := make([]string, 0, len(worktrees))
	for _, wt := range worktrees {
		paths = append(paths, wt.Path)
	}
	return paths
}

func copyStatuses(statuses map[string]StatusSnapshot) map[string]StatusSnapshot {
	out := make(map[string]StatusSnapshot, len(statuses))
	for k, v := range statuses {
		out[k] = v
	}
	return out
}

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFF7DB")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
	errorStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	infoStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	secondaryStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectorNormalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("251"))
	selectorSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7D56F4")).
				Bold(true)
	selectorDisabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectorHeaderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
)

func viewStyles() uiview.Styles {
	return uiview.Styles{
		Header:    func(s string) string { return selectorHeaderStyle.Render(s) },
		Normal:    func(s string) string { return selectorNormalStyle.Render(s) },
		Selected:  func(s string) string { return selectorSelectedStyle.Render(s) },
		Disabled:  func(s string) string { return selectorDisabledStyle.Render(s) },
		Secondary: func(s string) string { return secondaryStyle.Render(s) },
		Link:      termenv.Hyperlink,
	}
}

func (m model) View() string {
	if m.state == stateExited {
		return ""
	}
	var b strings.Builder
	b.WriteString(bannerStyle.Render("wtm"))
	b.WriteString("\n\n")

	if m.busy {
		elapsed := ""
		if !m.busyStartedAt.IsZero() {
			elapsed = fmt.Sprintf(" (%ds)", int(time.Since(m.busyStartedAt).Seconds()))
		}
		b.WriteString(m.spin.View())
		b.WriteString(" ")
		b.WriteString(m.busyLabel)
		b.WriteString(elapsed)
		b.WriteString("...\n")
		return b.String()
	}

	switch m.state {
	case stateCreating:
		b.WriteString("New worktree:\n\n")
		if m.createForm != nil {
			b.WriteString(m.createForm.View())
			b.WriteString("\n")
		}
		b.WriteString(secondaryStyle.Render("Enter to create, esc to cancel."))
		b.WriteString("\n")

	case stateConfirmDelete:
		for _, warning := range m.deleteWarnings {
			b.WriteString(warnStyle.Render("! " + warning))
			b.WriteString("\n")
		}
		if len(m.deleteWarnings) > 0 {
			b.WriteString("\n")
		}
		if m.confirmForm != nil {
			b.WriteString(m.confirmForm.View())
			b.WriteString("\n")
		}

	default:
		b.WriteString(renderWorktreeList(m))
		b.WriteString("\n")
		b.WriteString(secondaryStyle.Render("↑/↓ move · enter open · p push · d delete · n new · r refresh · q quit"))
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	if m.infoMsg != "" {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(m.infoMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func renderWorktreeList(m model) string {
	rows := make([]uiview.WorktreeRow, 0, len(m.worktrees))
	for _, wt := range m.worktrees {
		rows = append(rows, uiview.WorktreeRow{
			BranchLabel: branchLabel(wt),
			StatusLabel: uiview.StatusIndicator(statusInfoFor(m.statuses, wt.Path)),
			PathLabel:   wt.Path,
			PathURL:     "file://" + wt.Path,
		})
	}
	return uiview.RenderWorktreeList(rows, m.selected, viewStyles())
}

func branchLabel(wt Worktree) string {
	if wt.Branch == "" {
		return "(detached)"
	}
	return wt.Branch
}

func statusInfoFor(statuses map[string]StatusSnapshot, path string) uiview.StatusInfo {
	snap, ok := statuses[path]
	return uiview.StatusInfo{
		Loaded:       ok,
		Unavailable:  snap.Unavailable,
		HasChanges:   snap.HasChanges,
		RemoteExists: snap.RemoteExists,
		Added:        snap.Added,
		Modified:     snap.Modified,
		Deleted:      snap.Deleted,
		Untracked:    snap.Untracked,
		Ahead:        snap.Ahead,
		Behind:       snap.Behind,
	}
}
