// errors.go defines sentinel errors for argument validation failures.
//
// Separated to centralise error definitions. These errors are used with
// errors.Is() for type-safe error checking by both the CLI and the MCP
// tool handlers.
//
// Design: Sentinel errors (not error types) because validation failures
// don't carry additional context beyond the category. Detailed messages
// are provided by wrapping these with fmt.Errorf in the validation functions.

package validate

import "errors"

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrPathTooLong     = errors.New("path too long")
	ErrContentTooLarge = errors.New("content too large")
)
