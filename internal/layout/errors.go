package layout

import "errors"

var (
	// ErrLayoutNotFound indicates the layout doesn't exist.
	ErrLayoutNotFound = errors.New("layout not found")
	// ErrInvalidInput indicates invalid layout input.
	ErrInvalidInput = errors.New("invalid layout input")
)
