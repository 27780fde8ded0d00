package qrimage

import "errors"

var (
	// ErrNotInitialized reports a drawing call issued while no document is
	// in progress, or Begin called while one already is.
	ErrNotInitialized = errors.New("no document in progress")

	// ErrUnsupportedOperation reports a path operation outside the closed
	// set understood by the backends.
	ErrUnsupportedOperation = errors.New("unsupported path operation")

	// ErrMissingCapability reports a backend whose underlying engine could
	// not be initialized.
	ErrMissingCapability = errors.New("missing rendering capability")
)
