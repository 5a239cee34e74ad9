//go:build windows

package platform

import (
	"fmt"
	"os/user"

	"golang.org/x/sys/windows"

	"profilesave/internal/profile"
)

// noConsoleSession is returned by WTSGetActiveConsoleSessionId when no
// session is attached to the physical console.
const noConsoleSession = 0xFFFFFFFF

// ConsoleSession reports the owner of the active console session.
type ConsoleSession struct{}

// ConsoleUser returns DOMAIN\name of the user logged on at the console.
// Querying another session's token needs SYSTEM; when that is refused and
// this process already runs in the console session, its own user is returned.
func (ConsoleSession) ConsoleUser() (string, error) {
	session := windows.WTSGetActiveConsoleSessionId()
	if session == noConsoleSession {
		return "", fmt.Errorf("no active console session")
	}

	var token windows.Token
	if err := windows.WTSQueryUserToken(session, &token); err != nil {
		return currentUserInSession(session, err)
	}
	defer token.Close()

	tu, err := token.GetTokenUser()
	if err != nil {
		return "", fmt.Errorf("reading session token user: %w", err)
	}
	account, domain, _, err := tu.User.Sid.LookupAccount("")
	if err != nil {
		return "", fmt.Errorf("looking up session SID: %w", err)
	}
	if domain == "" {
		return account, nil
	}
	return domain + `\` + account, nil
}

func currentUserInSession(session uint32, queryErr error) (string, error) {
	var own uint32
	if err := windows.ProcessIdToSessionId(windows.GetCurrentProcessId(), &own); err != nil {
		return "", fmt.Errorf("querying console session token: %w", queryErr)
	}
	if own != session {
		return "", fmt.Errorf("querying console session token: %w", queryErr)
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("current user: %w", err)
	}
	return u.Username, nil
}

var _ profile.SessionInspector = ConsoleSession{}
