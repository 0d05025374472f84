package registry

import "errors"

var (
	// ErrUnknownType indicates the module type is not registered.
	ErrUnknownType = errors.New("unknown module type")
	// ErrDuplicateType indicates the module type is already registered.
	ErrDuplicateType = errors.New("module type already registered")
	// ErrInvalidDefinition indicates the definition failed validation.
	ErrInvalidDefinition = errors.New("invalid module definition")
)
