package connection

import "errors"

var (
	// ErrPortNotFound indicates a referenced module port doesn't exist.
	ErrPortNotFound = errors.New("port not found")
	// ErrIncompatiblePorts indicates the port data types don't match.
	ErrIncompatiblePorts = errors.New("incompatible port data types")
	// ErrInvalidDirection indicates the ports can't serve the requested roles.
	ErrInvalidDirection = errors.New("invalid port direction")
	// ErrSelfConnection indicates source and target are the same module.
	ErrSelfConnection = errors.New("cannot connect a module to itself")
	// ErrPortCapacity indicates a port is already at max connections.
	ErrPortCapacity = errors.New("port at connection capacity")
)
