package fs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"profilesave/internal/profile"
)

// OSFilesystemManager is the real filesystem implementation of FilesystemManager.
// Files matching its exclusion patterns are invisible to Match.
type OSFilesystemManager struct {
	exclude *ExcludeMatcher
}

// NewOSFilesystemManager creates a filesystem manager that skips files
// matching any of the exclude patterns in addition to the defaults.
func NewOSFilesystemManager(exclude []string) *OSFilesystemManager {
	patterns := append(append([]string{}, defaultExcludePatterns...), exclude...)
	return &OSFilesystemManager{exclude: NewExcludeMatcher(patterns)}
}

// Match returns the relative paths of regular files under dir whose base
// name matches pattern, sorted. Matching ignores case.
func (m *OSFilesystemManager) Match(dir string, pattern string, recursive bool) ([]string, error) {
	pattern = strings.ToLower(pattern)
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	var matches []string
	add := func(rel string, d fs.DirEntry) {
		if !d.Type().IsRegular() {
			return
		}
		if ok, _ := filepath.Match(pattern, strings.ToLower(d.Name())); !ok {
			return
		}
		if m.exclude.Match(rel) {
			return
		}
		matches = append(matches, rel)
	}

	if recursive {
		err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(dir, p)
			if err != nil {
				return err
			}
			add(rel, d)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking directory: %w", err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading directory: %w", err)
		}
		for _, entry := range entries {
			add(entry.Name(), entry)
		}
	}

	sort.Strings(matches)
	return matches, nil
}

// IsDir reports whether path exists and is a directory.
func (m *OSFilesystemManager) IsDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.IsDir(), nil
}

// MkdirAll creates path and any missing parents.
func (m *OSFilesystemManager) MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return nil
}

// CopyFile copies src to dst through a temp file in dst's directory and an
// atomic rename, so an interrupted copy never leaves a truncated dst.
func (m *OSFilesystemManager) CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", src)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, in)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if written != info.Size() {
		return fmt.Errorf("size mismatch copying %s: expected %d bytes, got %d", src, info.Size(), written)
	}

	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Chtimes(tmpPath, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("setting file times: %w", err)
	}

	// Windows refuses to rename over a read-only file.
	if existing, err := os.Lstat(dst); err == nil && existing.Mode().IsRegular() && existing.Mode().Perm()&0200 == 0 {
		if err := os.Chmod(dst, existing.Mode().Perm()|0200); err != nil {
			return fmt.Errorf("making destination writable: %w", err)
		}
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("replacing destination: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that OSFilesystemManager implements profile.FilesystemManager interface
var _ profile.FilesystemManager = (*OSFilesystemManager)(nil)
