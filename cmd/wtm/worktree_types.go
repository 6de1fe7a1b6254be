package main

// Worktree is one entry from `git worktree list --porcelain`. The path is
// the unique key; the whole list is replaced on every refresh.
type Worktree struct {
	Path   string
	Branch string
	Commit string
}

// StatusSnapshot is the per-worktree sync state gathered by QueryStatus.
// Ahead and Behind are only meaningful when RemoteExists is true; they are
// forced to zero otherwise.
type StatusSnapshot struct {
	Branch       string
	HasChanges   bool
	RemoteExists bool
	Ahead        int
	Behind       int
	Added        int
	Modified     int
	Deleted      int
	Untracked    int

	// Unavailable marks a best-effort placeholder stored when the status
	// query for this path failed during a bulk refresh.
	Unavailable bool
}
