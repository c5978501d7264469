package gghud

import "errors"

// Errors reported while building overlay resources. None of them escape
// System; they end up in the log and leave the resource invalid.
var (
	// ErrBackendUnavailable is returned when no host backend is supplied.
	ErrBackendUnavailable = errors.New("gghud: backend unavailable")

	// ErrManagerUnavailable is returned when the backend has no overlay,
	// material or texture manager yet.
	ErrManagerUnavailable = errors.New("gghud: resource manager unavailable")

	// ErrNameInUse is returned when a resource name is already registered
	// with the host.
	ErrNameInUse = errors.New("gghud: resource name in use")

	// ErrUnknownAnchor is returned when an anchor name cannot be parsed.
	ErrUnknownAnchor = errors.New("gghud: unknown anchor")
)
