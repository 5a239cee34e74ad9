package main

import (
	"fmt"
	"strings"

	"profilesave/internal/profile"
)

// switches are the key=value arguments of an unattended run.
type switches struct {
	action profile.Action
	path   string
	items  []profile.ItemKey
	user   string
}

// parseSwitches parses arguments such as "action=backup", "path=D:\Backup"
// and "items=Templates,Signatures". Keys are case-insensitive and may carry
// a leading "/". action and path are required; items defaults to all.
func parseSwitches(args []string) (switches, error) {
	var sw switches
	var action string
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return switches{}, fmt.Errorf("expected key=value, got %q", arg)
		}
		key = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(key), "/"))
		value = strings.Trim(strings.TrimSpace(value), `"`)

		switch key {
		case "action":
			action = value
		case "path":
			sw.path = value
		case "items":
			items, err := profile.ParseItemKeys(value)
			if err != nil {
				return switches{}, err
			}
			sw.items = items
		case "user":
			sw.user = value
		default:
			return switches{}, fmt.Errorf("unknown switch %q", key)
		}
	}

	a, err := profile.ParseAction(action)
	if err != nil {
		return switches{}, err
	}
	sw.action = a

	if sw.path == "" {
		return switches{}, fmt.Errorf("%w: path", profile.ErrMissingArgument)
	}
	return sw, nil
}
