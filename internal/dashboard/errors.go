package dashboard

import "errors"

// ErrModuleNotFound indicates the module id isn't live on the dashboard.
var ErrModuleNotFound = errors.New("module not found")
