// Package errs defines the error taxonomy shared across layers.
// Every failure surfaces to the immediate caller wrapped around one of these
// sentinels; there is no internal suppression or retry. Callers branch with
// errors.Is and the CLI maps each sentinel to a human-readable message.
package errs

import (
	"errors"
	"fmt"
)

// Document layer.
var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtraction        = errors.New("text extraction failed")
)

// Model selection layer.
var ErrUnknownModel = errors.New("unknown model")

// Invocation layer.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrRateLimit      = errors.New("rate limited")
	ErrRequest        = errors.New("request rejected")
	ErrTransport      = errors.New("transport failure")
)

// Wrap attaches context to a sentinel so errors.Is still matches it.
func Wrap(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{sentinel}, args...)...)
}
