//go:build unix

package platform

import (
	"os"
	"path/filepath"

	"profilesave/internal/profile"
)

// XDGDocuments finds the documents folder from the user's XDG
// configuration, falling back to ~/Documents.
type XDGDocuments struct{}

// DocumentsDir returns the documents folder of u if it exists.
func (XDGDocuments) DocumentsDir(u profile.ActiveUser) (string, bool) {
	home := u.ProfileRoot()

	if f, err := os.Open(filepath.Join(home, ".config", "user-dirs.dirs")); err == nil {
		dir, ok := parseUserDirs(f, home)
		f.Close()
		if ok && isDir(dir) {
			return dir, true
		}
	}

	dir := filepath.Join(home, "Documents")
	if isDir(dir) {
		return dir, true
	}
	return "", false
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

var _ profile.DocumentsLocator = XDGDocuments{}

// NewDocumentsLocator returns the documents lookup for this platform.
func NewDocumentsLocator() profile.DocumentsLocator { return XDGDocuments{} }
