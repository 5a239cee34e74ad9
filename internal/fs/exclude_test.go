package fs

import (
	"path/filepath"
	"testing"
)

func TestNewExcludeMatcher(t *testing.T) {
	t.Run("skips blank lines and comments", func(t *testing.T) {
		t.Parallel()
		m := NewExcludeMatcher([]string{"", "  ", "# comment", "*.tmp"})
		if m.Len() != 1 {
			t.Fatalf("expected 1 pattern, got %d", m.Len())
		}
		if m.patterns[0].glob != "*.tmp" {
			t.Errorf("expected *.tmp, got %s", m.patterns[0].glob)
		}
	})

	t.Run("classifies path vs basename patterns", func(t *testing.T) {
		t.Parallel()
		m := NewExcludeMatcher([]string{"*.tmp", "Cache/index.dat"})
		if m.patterns[0].wholePath {
			t.Error("*.tmp should not be a path pattern")
		}
		if !m.patterns[1].wholePath {
			t.Error("Cache/index.dat should be a path pattern")
		}
	})
}

func TestExcludeMatcher_Match(t *testing.T) {
	tests := []struct {
		name         string
		patterns     []string
		relativePath string
		want         bool
	}{
		{
			name:         "office owner file",
			patterns:     defaultExcludePatterns,
			relativePath: "~$Normal.dotm",
			want:         true,
		},
		{
			name:         "owner file in subdirectory",
			patterns:     defaultExcludePatterns,
			relativePath: filepath.Join("Document Themes", "~$Theme.thmx"),
			want:         true,
		},
		{
			name:         "regular template is kept",
			patterns:     defaultExcludePatterns,
			relativePath: "Normal.dotm",
			want:         false,
		},
		{
			name:         "matching ignores case",
			patterns:     []string{"*.TMP"},
			relativePath: "scratch.tmp",
			want:         true,
		},
		{
			name:         "path pattern matches relative path",
			patterns:     []string{"Outlook/*.srs"},
			relativePath: filepath.Join("Outlook", "Outlook.srs"),
			want:         true,
		},
		{
			name:         "path pattern does not match elsewhere",
			patterns:     []string{"Outlook/*.srs"},
			relativePath: filepath.Join("Word", "Outlook.srs"),
			want:         false,
		},
		{
			name:         "malformed pattern never matches",
			patterns:     []string{"[abc"},
			relativePath: "a",
			want:         false,
		},
		{
			name:         "no patterns matches nothing",
			patterns:     nil,
			relativePath: "anything.txt",
			want:         false,
		},
		{
			name:         "empty path",
			patterns:     []string{"*"},
			relativePath: "",
			want:         false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewExcludeMatcher(tt.patterns)
			if got := m.Match(tt.relativePath); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.relativePath, got, tt.want)
			}
		})
	}
}
