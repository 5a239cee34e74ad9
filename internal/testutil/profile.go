package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"profilesave/internal/profile"
)

// NewTestUser creates an empty profile root in a temp directory and returns
// an ActiveUser for it.
func NewTestUser(t *testing.T, name string) profile.ActiveUser {
	t.Helper()

	root := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("creating profile root: %v", err)
	}
	u, err := profile.NewActiveUser(name, root, "S-1-5-21-1000")
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return u
}

// WriteFiles creates each file in files (relative path → content) under dir,
// creating parent directories as needed.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("creating parent of %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", rel, err)
		}
	}
}

// ReadTree returns every regular file under dir as slash-separated relative
// path → content. A missing dir yields an empty map.
func ReadTree(t *testing.T, dir string) map[string]string {
	t.Helper()

	out := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return filepath.SkipDir
			}
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("reading tree %s: %v", dir, err)
	}
	return out
}
