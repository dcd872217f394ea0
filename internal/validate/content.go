// content.go implements file content validation.
//
// Separated because content validation is intentionally minimal - we only
// check size, not format. Files written into the workspace can hold any
// bytes the caller provides.

package validate

import "fmt"

// Content validates file content size.
// A maxLen of 0 or less means no limit.
func Content(content string, maxLen int64) error {
	if maxLen > 0 && int64(len(content)) > maxLen {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrContentTooLarge, len(content), maxLen)
	}
	return nil
}
