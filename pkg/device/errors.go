package device

import "errors"

var (
	// ErrNotFound indicates the device id is not in the catalog
	ErrNotFound = errors.New("device not found")

	// ErrWrongType indicates the device exists but a verb for a different
	// type was applied to it (e.g. toggling a camera as a light)
	ErrWrongType = errors.New("device has wrong type for this operation")

	// ErrInvalidState indicates a status/data patch violates the device
	// type's state schema
	ErrInvalidState = errors.New("invalid state for device type")
)
