package profile

import "errors"

var (
	// ErrUserResolution means no target user profile could be determined. Fatal to the run.
	ErrUserResolution = errors.New("user resolution failed")

	// ErrMissingArgument means a mandatory argument (action, backup root) was not supplied.
	ErrMissingArgument = errors.New("missing argument")

	// ErrUnknownItem means an item name does not match any supported key.
	ErrUnknownItem = errors.New("unknown item")

	// ErrItemNotFound marks an item that was skipped because there was nothing to copy.
	// It is reported, never returned from Backup or Restore.
	ErrItemNotFound = errors.New("item not found")

	// ErrCopyIO aborts the current backup or restore. Items copied before the
	// failure are left in place.
	ErrCopyIO = errors.New("copy failed")

	// ErrApplicationsRunning means restore was refused because monitored
	// applications still hold the profile files open.
	ErrApplicationsRunning = errors.New("applications still running")
)
