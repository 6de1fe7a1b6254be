package ui

import (
	"strings"
	"testing"
)

func plainStyles() Styles {
	identity := func(s string) string { return s }
	return Styles{
		Header:    identity,
		Normal:    identity,
		Selected:  func(s string) string { return "[" + s + "]" },
		Disabled:  identity,
		Secondary: identity,
	}
}

func TestRenderWorktreeListMarksCursorRow(t *testing.T) {
	rows := []WorktreeRow{
		{BranchLabel: "feature/a", StatusLabel: "✓", PathLabel: "/w/a"},
		{BranchLabel: "feature/b", StatusLabel: "…", PathLabel: "/w/b"},
	}
	out := RenderWorktreeList(rows, 1, plainStyles())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "  Branch") {
		t.Fatalf("expected header line, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  ") || strings.Contains(lines[1], "[") {
		t.Fatalf("expected unselected first row, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "> [") || !strings.Contains(lines[2], "feature/b") {
		t.Fatalf("expected cursor on second row, got %q", lines[2])
	}
}

func TestRenderWorktreeListHyperlinkWrapsVisibleTextOnly(t *testing.T) {
	styles := plainStyles()
	styles.Link = func(url string, text string) string {
		return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
	}
	path := "/home/user/.worktrees/new-feature_ab12cd34"
	out := RenderWorktreeList([]WorktreeRow{{
		BranchLabel: "feature/new-feature",
		StatusLabel: "✓",
		PathLabel:   path,
		PathURL:     "file://" + path,
	}}, 0, styles)

	if !strings.Contains(out, "\x1b]8;;file://"+path+"\x1b\\") {
		t.Fatalf("expected the full URL in the hyperlink opener:\n%q", out)
	}
	if !strings.Contains(out, "\x1b\\"+path+"\x1b]8;;\x1b\\") {
		t.Fatalf("expected the visible path wrapped by a terminated hyperlink:\n%q", out)
	}
	if got := strings.Count(out, "\x1b]8;;\x1b\\"); got != 1 {
		t.Fatalf("expected exactly one hyperlink terminator, got %d:\n%q", got, out)
	}
}

func TestRenderWorktreeListTrimsPathBeforeHyperlinking(t *testing.T) {
	styles := plainStyles()
	var linkedURL, linkedText string
	styles.Link = func(url string, text string) string {
		linkedURL = url
		linkedText = text
		return text
	}
	long := "/home/user/.worktrees/" + strings.Repeat("a", 40)
	out := RenderWorktreeList([]WorktreeRow{{
		BranchLabel: "feature/long",
		PathLabel:   long,
		PathURL:     "file://" + long,
	}}, 0, styles)

	want := string([]rune(long)[:47]) + "…"
	if linkedText != want {
		t.Fatalf("expected hyperlink over the trimmed visible text %q, got %q", want, linkedText)
	}
	if linkedURL != "file://"+long {
		t.Fatalf("expected the untrimmed URL, got %q", linkedURL)
	}
	if !strings.Contains(out, want) {
		t.Fatalf("expected trimmed path text in output:\n%q", out)
	}
}

func TestRenderWorktreeListEmpty(t *testing.T) {
	out := RenderWorktreeList(nil, 0, plainStyles())
	if !strings.Contains(out, "No other worktrees.") {
		t.Fatalf("expected empty notice, got %q", out)
	}
}

func TestPadOrTrim(t *testing.T) {
	tests := []struct {
		value string
		width int
		want  string
	}{
		{value: "abc", width: 5, want: "abc  "},
		{value: "abc", width: 3, want: "abc"},
		{value: "abcdef", width: 4, want: "abc…"},
		{value: "héllo", width: 5, want: "héllo"},
		{value: "héllø!", width: 5, want: "héll…"},
		{value: "ab", width: 1, want: "a"},
	}
	for _, tc := range tests {
		if got := PadOrTrim(tc.value, tc.width); got != tc.want {
			t.Fatalf("PadOrTrim(%q, %d) = %q, want %q", tc.value, tc.width, got, tc.want)
		}
	}
}
