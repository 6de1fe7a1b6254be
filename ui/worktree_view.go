package ui

import "strings"

type WorktreeRow struct {
	BranchLabel string
	StatusLabel string
	PathLabel   string
	PathURL     string
}

type Styles struct {
	Header    func(string) string
	Normal    func(string) string
	Selected  func(string) string
	Disabled  func(string) string
	Secondary func(string) string
	Link      func(url string, text string) string
}

func RenderWorktreeList(rows []WorktreeRow, cursor int, styles Styles) string {
	const (
		branchWidth = 32
		statusWidth = 24
		pathWidth   = 48
	)
	var b strings.Builder
	header := formatWorktreeLine("Branch", "Status", "Path", branchWidth, statusWidth, pathWidth)
	b.WriteString(styles.Header("  " + header))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString("  ")
		b.WriteString(styles.Disabled("No other worktrees."))
		b.WriteString("\n")
		return b.String()
	}
	for i, row := range rows {
		line := PadOrTrim(row.BranchLabel, branchWidth) + " " +
			PadOrTrim(row.StatusLabel, statusWidth) + " " +
			pathCell(row, pathWidth, styles)
		if i == cursor {
			b.WriteString("> " + styles.Selected(line))
		} else {
			b.WriteString("  " + styles.Normal(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// pathCell lays the path out at its column width before any hyperlink is
// applied: the link wraps only the visible text, so trimming never cuts
// into an escape sequence and the sequence is always terminated.
func pathCell(row WorktreeRow, width int, styles Styles) string {
	cell := PadOrTrim(row.PathLabel, width)
	if styles.Link == nil || row.PathURL == "" {
		return cell
	}
	text := strings.TrimRight(cell, " ")
	return styles.Link(row.PathURL, text) + cell[len(text):]
}

func formatWorktreeLine(branch string, status string, path string, branchWidth int, statusWidth int, pathWidth int) string {
	return PadOrTrim(branch, branchWidth) + " " +
		PadOrTrim(status, statusWidth) + " " +
		PadOrTrim(path, pathWidth)
}

// PadOrTrim pads a value with spaces to the given width, or trims it with a
// trailing ellipsis when it is too long.
func PadOrTrim(value string, width int) string {
	runes := []rune(value)
	if len(runes) <= width {
		return value + strings.Repeat(" ", width-len(runes))
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
