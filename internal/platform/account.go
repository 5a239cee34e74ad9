// Package platform binds the profile core to the operating system: account
// lookup, the console session owner, the documents folder and running processes.
package platform

import (
	"fmt"
	"os/user"

	"profilesave/internal/profile"
)

// OSAccounts looks accounts up through os/user. On Windows the returned
// SecurityID is the account SID; elsewhere it is the numeric UID.
type OSAccounts struct{}

// LookupAccount resolves name to an ActiveUser rooted at the account's home directory.
func (OSAccounts) LookupAccount(name string) (profile.ActiveUser, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return profile.ActiveUser{}, fmt.Errorf("looking up user: %w", err)
	}
	if u.HomeDir == "" {
		return profile.ActiveUser{}, fmt.Errorf("user %s has no profile directory", u.Username)
	}
	return profile.NewActiveUser(u.Username, u.HomeDir, u.Uid)
}

var _ profile.AccountLookup = OSAccounts{}
