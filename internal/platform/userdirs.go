package platform

import (
	"bufio"
	"io"
	"path/filepath"
	"strings"
)

// parseUserDirs reads an XDG user-dirs.dirs file and returns the documents
// folder with $HOME replaced by home. ok is false when the file does not
// name one or names $HOME itself, which XDG uses to mean "disabled".
func parseUserDirs(r io.Reader, home string) (dir string, ok bool) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found || strings.TrimSpace(key) != "XDG_DOCUMENTS_DIR" {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		switch {
		case value == "$HOME" || value == "$HOME/":
			return "", false
		case strings.HasPrefix(value, "$HOME/"):
			return filepath.Join(home, filepath.FromSlash(strings.TrimPrefix(value, "$HOME/"))), true
		case filepath.IsAbs(value):
			return filepath.Clean(value), true
		}
	}
	return "", false
}
