// Package ignore matches relative paths against a set of excluded directory names.
package ignore

import (
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDirNames are the directories pruned when no other set is configured.
var DefaultDirNames = []string{".git", ".gradle", "build", "out", ".idea"}

// DirNames is a set of directory names (not paths, not patterns).
// A path is excluded when any of its components equals a member.
type DirNames struct {
	names map[string]struct{}
}

// NewDirNames builds a DirNames set. Empty names are dropped.
func NewDirNames(names ...string) *DirNames {
	dn := &DirNames{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		if name == "" {
			continue
		}
		dn.names[name] = struct{}{}
	}
	return dn
}

// Names returns the members in sorted order.
func (dn *DirNames) Names() []string {
	if dn == nil {
		return nil
	}
	out := make([]string, 0, len(dn.names))
	for name := range dn.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of excluded names.
func (dn *DirNames) Len() int {
	if dn == nil {
		return 0
	}
	return len(dn.names)
}

// MatchesName reports whether a single path component is excluded.
func (dn *DirNames) MatchesName(name string) bool {
	if dn == nil {
		return false
	}
	_, ok := dn.names[name]
	return ok
}

// MatchesPath reports whether any component of the relative path is excluded.
func (dn *DirNames) MatchesPath(rel string) bool {
	matches, _ := dn.MatchesPathWithName(rel)
	return matches
}

// MatchesPathWithName is MatchesPath that also returns the first excluded
// component it found.
func (dn *DirNames) MatchesPathWithName(rel string) (bool, string) {
	if dn.Len() == 0 {
		return false, ""
	}
	for _, part := range strings.Split(normalizePath(rel), "/") {
		if part == "" || part == "." {
			continue
		}
		if dn.MatchesName(part) {
			return true, part
		}
	}
	return false, ""
}

// normalizePath converts OS-specific path separators to forward slashes.
func normalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
