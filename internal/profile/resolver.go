package profile

import (
	"fmt"
	"strings"
)

// SessionInspector reports who owns the interactive desktop session.
type SessionInspector interface {
	// ConsoleUser returns the account name of the foreground session owner.
	ConsoleUser() (string, error)
}

// AccountLookup maps an account name to its profile.
type AccountLookup interface {
	LookupAccount(name string) (ActiveUser, error)
}

// Resolver determines which user profile a run targets.
type Resolver struct {
	sessions SessionInspector
	accounts AccountLookup
	logger   Logger
}

// NewResolver creates a Resolver.
func NewResolver(sessions SessionInspector, accounts AccountLookup, logger Logger) *Resolver {
	return &Resolver{
		sessions: sessions,
		accounts: accounts,
		logger:   logger,
	}
}

// Resolve returns the explicitly named user when explicit is non-empty,
// otherwise the owner of the interactive console session.
// Every failure wraps ErrUserResolution.
func (r *Resolver) Resolve(explicit string) (ActiveUser, error) {
	name := strings.TrimSpace(explicit)
	source := "explicit"
	if name == "" {
		source = "console"
		owner, err := r.sessions.ConsoleUser()
		if err != nil {
			return ActiveUser{}, fmt.Errorf("%w: finding console session owner: %w", ErrUserResolution, err)
		}
		name = owner
	}
	if name == "" {
		return ActiveUser{}, fmt.Errorf("%w: no interactive session owner", ErrUserResolution)
	}

	u, err := r.accounts.LookupAccount(name)
	if err != nil {
		return ActiveUser{}, fmt.Errorf("%w: looking up account %q: %w", ErrUserResolution, name, err)
	}

	r.logger.Info("user resolved", "source", source, "account", u.AccountName(), "profile", u.ProfileRoot())
	return u, nil
}
