package segment

import "errors"

// Sentinel errors returned (wrapped) by this package and its collaborators.
// Callers should test with errors.Is.
var (
	// ErrNotFound is returned when an image source path does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for non-numeric or non-finite thresholds,
	// unknown modes, cutoffs outside 0-255 and out-of-range channel values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientComponents is returned when top-K selection is asked for
	// more components than exist.
	ErrInsufficientComponents = errors.New("insufficient components")
)
