//go:build windows

package platform

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"

	"profilesave/internal/profile"
)

const userShellFolders = `Software\Microsoft\Windows\CurrentVersion\Explorer\User Shell Folders`

// RegistryDocuments reads the "Personal" shell folder from the user's
// registry hive under HKEY_USERS\<SID>. The hive is only present while the
// user is logged on; otherwise <profile>\Documents is used if it exists.
type RegistryDocuments struct{}

// DocumentsDir returns the documents folder of u if it exists.
func (RegistryDocuments) DocumentsDir(u profile.ActiveUser) (string, bool) {
	if dir, ok := personalFolder(u); ok && isDir(dir) {
		return dir, true
	}
	dir := filepath.Join(u.ProfileRoot(), "Documents")
	if isDir(dir) {
		return dir, true
	}
	return "", false
}

func personalFolder(u profile.ActiveUser) (string, bool) {
	if u.SecurityID() == "" {
		return "", false
	}
	k, err := registry.OpenKey(registry.USERS, u.SecurityID()+`\`+userShellFolders, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()

	value, _, err := k.GetStringValue("Personal")
	if err != nil || value == "" {
		return "", false
	}

	// %USERPROFILE% must expand to the target user's profile, not ours.
	value = replaceFold(value, "%USERPROFILE%", u.ProfileRoot())
	expanded, err := registry.ExpandString(value)
	if err != nil {
		return "", false
	}
	return filepath.Clean(expanded), true
}

func replaceFold(s, old, repl string) string {
	i := strings.Index(strings.ToUpper(s), strings.ToUpper(old))
	if i < 0 {
		return s
	}
	return s[:i] + repl + s[i+len(old):]
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

var _ profile.DocumentsLocator = RegistryDocuments{}

// NewDocumentsLocator returns the documents lookup for this platform.
func NewDocumentsLocator() profile.DocumentsLocator { return RegistryDocuments{} }
