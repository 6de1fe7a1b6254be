package main

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
)

var (
	folderUnsafeChars  = regexp.MustCompile(`[^A-Za-z0-9_-]`)
	folderHyphenRuns   = regexp.MustCompile(`-{2,}`)
	branchForbiddenSet = "~^:?*[]\\"
)

// deriveFolderName maps a branch name to a folder-safe base name: the
// segment after the final '/', with anything outside [A-Za-z0-9_-] replaced
// by '-', hyphen runs collapsed, and leading/trailing hyphens trimmed.
// Total; empty input yields an empty string.
func deriveFolderName(branch string) string {
	name := branch
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = folderUnsafeChars.ReplaceAllString(name, "-")
	name = folderHyphenRuns.ReplaceAllString(name, "-")
	return strings.Trim(name, "-")
}

// validateBranchName reports whether a branch name is safe to hand to git
// and to derive a directory name from. Deliberately stricter than
// git-check-ref-format.
func validateBranchName(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	if strings.ContainsAny(name, branchForbiddenSet) {
		return false
	}
	if strings.Contains(name, "@{") || strings.Contains(name, "..") {
		return false
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return false
	}
	return true
}

// generateWorktreeFolder derives the folder base name and appends a random
// 8-hex-char suffix so repeated creations of similar branch names
// (feature/x, bugfix/x) land in distinct directories.
func generateWorktreeFolder(branch string) string {
	return deriveFolderName(branch) + "_" + randomHexSuffix()
}

func randomHexSuffix() string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// keep the derivation total
		return "00000000"
	}
	return hex.EncodeToString(buf[:])
}
