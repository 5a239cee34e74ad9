package profile

import (
	"fmt"
	"path/filepath"
)

// ActiveUser is the account whose profile is backed up or restored.
// It is resolved once per run and never modified afterwards.
type ActiveUser struct {
	accountName string
	profileRoot string
	securityID  string
}

// NewActiveUser validates its inputs and returns an ActiveUser.
// profileRoot must be absolute.
func NewActiveUser(accountName, profileRoot, securityID string) (ActiveUser, error) {
	if accountName == "" {
		return ActiveUser{}, fmt.Errorf("account name is empty")
	}
	if !filepath.IsAbs(profileRoot) {
		return ActiveUser{}, fmt.Errorf("profile root is not absolute: %q", profileRoot)
	}
	return ActiveUser{
		accountName: accountName,
		profileRoot: filepath.Clean(profileRoot),
		securityID:  securityID,
	}, nil
}

// AccountName returns the login name, including any domain prefix.
func (u ActiveUser) AccountName() string { return u.accountName }

// ProfileRoot returns the absolute root of the user's account data.
func (u ActiveUser) ProfileRoot() string { return u.profileRoot }

// SecurityID returns the account SID on Windows or the numeric UID elsewhere.
func (u ActiveUser) SecurityID() string { return u.securityID }

// IsZero reports whether u was never resolved.
func (u ActiveUser) IsZero() bool { return u.accountName == "" }

func (u ActiveUser) String() string {
	return fmt.Sprintf("%s (%s)", u.accountName, u.profileRoot)
}
