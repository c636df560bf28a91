package provision

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrConfiguration marks a missing or malformed connection parameter.
	ErrConfiguration = errors.New("configuration error")

	// ErrCredential marks unreadable or unusable auth material.
	ErrCredential = errors.New("credential error")
)
