// admit.go implements the lexical containment check.
//
// Separated from workspace.go because Admit is pure: it never touches the
// filesystem, so it can classify paths that do not exist yet (write targets,
// directories about to be created) and is trivially table-testable.
//
// Design: containment is decided by filepath.Rel and a segment comparison on
// the result, never by string prefix. "/ws-evil" shares a prefix with "/ws"
// but Rel yields "../ws-evil", which is rejected; a child literally named
// "..cache" yields "..cache", which is admitted.

package workspace

import (
	"path/filepath"
	"strings"
)

// Admit reports whether candidate is root itself or lexically inside it.
// Relative candidates are interpreted against root. Root should be absolute;
// a relative root or paths on different volumes are rejected.
func Admit(candidate, root string) bool {
	root = filepath.Clean(root)
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(root, candidate)
	}
	rel, err := filepath.Rel(root, filepath.Clean(candidate))
	if err != nil {
		return false
	}
	if rel == "." || rel == "" {
		return true
	}
	if filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
