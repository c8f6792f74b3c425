package editor

import "errors"

var (
	// ErrProfileNotFound indicates no profile has the requested id.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrLayoutNotFound indicates no saved layout or preset has the requested id.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrLastProfile indicates an attempt to delete the only remaining profile.
	ErrLastProfile = errors.New("cannot delete the last profile")

	// ErrNothingToCopy indicates the signature has no visible content to copy.
	ErrNothingToCopy = errors.New("nothing to copy")

	// ErrNoClipboard indicates no clipboard is available for copying.
	ErrNoClipboard = errors.New("clipboard unavailable")

	// ErrEmptyName indicates a blank profile or layout name.
	ErrEmptyName = errors.New("name is empty")
)
