package binding

import (
	"errors"
	"fmt"
)

// ErrModuleNotFound is returned when a module path does not resolve to a
// loadable module on the current platform.
var ErrModuleNotFound = errors.New("module not found")

// ErrAlreadyLoaded is returned when Load is called on a loader that already
// holds a module and has not been unloaded.
var ErrAlreadyLoaded = errors.New("module already loaded")

// ErrNotLoaded is returned when an operation requires a loaded module.
var ErrNotLoaded = errors.New("module not loaded")

// ErrNotResolved is returned when an operation requires a resolved entry
// point table.
var ErrNotResolved = errors.New("entry points not resolved")

// ErrNotInitialized is returned when a detection or release operation is
// attempted before the module was initialized.
var ErrNotInitialized = errors.New("module not initialized")

// ErrInitFailed is returned when the module reports initialization failure.
// The underlying reason is internal to the module and not interpreted here.
var ErrInitFailed = errors.New("module initialization failed")

// ErrRegistrationFailed is returned when the module rejects a callback
// registration.
var ErrRegistrationFailed = errors.New("callback registration rejected")

// ErrDetectionFailed is returned when the module reports a failed detection
// call. The caller decides whether to skip the frame or abort.
var ErrDetectionFailed = errors.New("detection failed")

// ErrReleaseFailed is returned when the module reports a failed teardown.
var ErrReleaseFailed = errors.New("module release failed")

// ErrSymbolNotFound is the cause recorded in a SymbolError when the module
// does not export a required name.
var ErrSymbolNotFound = errors.New("symbol not found")

// ErrUnexpectedSymbolType is the cause recorded in a SymbolError when an
// exported symbol does not have the signature the contract requires.
var ErrUnexpectedSymbolType = errors.New("unexpected symbol type")

// SymbolError reports which required export could not be resolved and why.
// Resolution is all-or-nothing, so a single SymbolError leaves the loader
// without any callable entry point.
type SymbolError struct {
	Name string
	Err  error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("symbol %s: %v", e.Name, e.Err)
}

func (e *SymbolError) Unwrap() error {
	return e.Err
}
