// Package validate provides input validation for tool arguments.
//
// Validation here is purely syntactic: required values are present and
// sizes are within bounds. Containment is the workspace package's job and
// always runs after these checks.
package validate

import (
	"fmt"
	"strings"
)

// Required rejects an empty or whitespace-only argument.
func Required(name, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
	}
	return nil
}

// Path validates a caller-supplied path before it reaches the workspace guard.
//
// Validation rules:
//   - Empty paths rejected
//   - Null bytes rejected (the OS would truncate the path at the byte)
//   - Max length enforced if maxLen > 0 (0 means no limit)
func Path(p string, maxLen int) error {
	if p == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidArgument)
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("%w: null byte in path", ErrInvalidArgument)
	}
	if maxLen > 0 && len(p) > maxLen {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrPathTooLong, len(p), maxLen)
	}
	return nil
}
