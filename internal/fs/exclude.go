package fs

import (
	"path"
	"path/filepath"
	"strings"
)

// defaultExcludePatterns are always applied regardless of config.
// Office leaves "~$" owner files beside open documents; they are locks, not content.
// ".tmp-*" are CopyFile's own partial writes.
var defaultExcludePatterns = []string{"~$*", ".tmp-*"}

type excludePattern struct {
	glob      string
	wholePath bool // pattern contains '/' and is matched against the relative path
}

// ExcludeMatcher decides which files are left out of a copy.
// Matching ignores case because profile folders come from case-insensitive
// Windows filesystems. A pattern with '/' is matched against the slash
// separated path relative to the folder being copied, any other pattern
// against the base name.
type ExcludeMatcher struct {
	patterns []excludePattern
}

// NewExcludeMatcher compiles raw patterns. Blank entries and '#' comments are dropped.
func NewExcludeMatcher(raw []string) *ExcludeMatcher {
	m := &ExcludeMatcher{}
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" || strings.HasPrefix(r, "#") {
			continue
		}
		r = strings.ToLower(filepath.ToSlash(r))
		m.patterns = append(m.patterns, excludePattern{glob: r, wholePath: strings.Contains(r, "/")})
	}
	return m
}

// Match reports whether relativePath is excluded.
func (m *ExcludeMatcher) Match(relativePath string) bool {
	if relativePath == "" {
		return false
	}
	rel := strings.ToLower(filepath.ToSlash(relativePath))
	base := path.Base(rel)

	for _, p := range m.patterns {
		subject := base
		if p.wholePath {
			subject = rel
		}
		// A malformed pattern never matches.
		if ok, err := path.Match(p.glob, subject); err == nil && ok {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns.
func (m *ExcludeMatcher) Len() int { return len(m.patterns) }
