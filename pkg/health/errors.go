package health

import "errors"

var (
	// ErrCheckTimeout marks a check that did not finish before the probe deadline.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckPanicked marks a check that panicked; the panic is recovered.
	ErrCheckPanicked = errors.New("health: check panicked")
)
