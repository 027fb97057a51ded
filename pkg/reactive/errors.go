package reactive

import (
	"fmt"
	"log"
)

// ErrorHandler consumes an error raised inside a user watcher together with
// the owning scope and a human-readable context string.
type ErrorHandler func(err error, scope *Scope, info string)

// errorHandler is the process-wide sink for user-watcher failures.
var errorHandler ErrorHandler

// SetErrorHandler installs the process-wide error handler. With none
// installed, errors are logged.
func SetErrorHandler(h ErrorHandler) {
	errorHandler = h
}

// HandleError routes err to the installed handler. One failing watcher must
// not abort the surrounding update cycle, so callers invoke this instead of
// propagating user errors.
func HandleError(err error, scope *Scope, info string) {
	if errorHandler != nil {
		errorHandler(err, scope, info)
		return
	}
	log.Printf("lumos: error in %s: %v", info, err)
}

// WarnHandler receives non-fatal developer warnings (reactive misuse such as
// adding a property to root state). Replace it to escalate or silence them.
var WarnHandler = func(msg string, scope *Scope) {
	log.Printf("lumos: %s", msg)
}

func warn(msg string, scope *Scope) {
	if WarnHandler != nil {
		WarnHandler(msg, scope)
	}
}

// recoveredError normalizes a recover() result into an error.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
