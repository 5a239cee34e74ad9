//go:build unix

package platform

import (
	"fmt"
	"os"
	"os/user"
	"strconv"

	"golang.org/x/sys/unix"

	"profilesave/internal/profile"
)

// consoleDevice is owned by the logged-in desktop user on macOS and on
// Linux systems where the display manager hands the console over.
const consoleDevice = "/dev/console"

// ConsoleSession reports the owner of the interactive console.
type ConsoleSession struct{}

// ConsoleUser returns the owner of /dev/console when that is not root,
// then the invoking user of sudo, then the current user.
func (ConsoleSession) ConsoleUser() (string, error) {
	var st unix.Stat_t
	if err := unix.Stat(consoleDevice, &st); err == nil && st.Uid != 0 {
		u, err := user.LookupId(strconv.FormatUint(uint64(st.Uid), 10))
		if err == nil {
			return u.Username, nil
		}
	}

	if name := os.Getenv("SUDO_USER"); name != "" && name != "root" {
		return name, nil
	}

	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("current user: %w", err)
	}
	return u.Username, nil
}

var _ profile.SessionInspector = ConsoleSession{}
