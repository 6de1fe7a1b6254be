package main

import (
	"sort"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// recentLocalBranches lists local branch names ordered by most recent
// commit, for the create-form suggestions. Read-only queries go through
// go-git in-process; anything that mutates the repository still goes
// through the git binary.
func recentLocalBranches(repoRoot string, limit int) ([]string, error) {
	repo, err := git.PlainOpenWithOptions(repoRoot, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	iter, err := repo.Branches()
	if err != nil {
		return nil, err
	}
	type branchTime struct {
		name string
		when time.Time
	}
	var branches []branchTime
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		entry := branchTime{name: ref.Name().Short()}
		if commit, cErr := repo.CommitObject(ref.Hash()); cErr == nil {
			entry.when = commit.Committer.When
		}
		branches = append(branches, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(branches, func(i, j int) bool {
		return branches[i].when.After(branches[j].when)
	})
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.name)
		if limit > 0 && len(names) >= limit {
			break
		}
	}
	return names, nil
}
