package workspace

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdmit(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "ws")
	sep := string(filepath.Separator)

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"root itself", root, true},
		{"root trailing separator", root + sep, true},
		{"relative dot", ".", true},
		{"empty relative", "", true},
		{"direct child", filepath.Join(root, "a.txt"), true},
		{"nested child", filepath.Join(root, "src", "a", "b.go"), true},
		{"relative child", filepath.Join("src", "a.ts"), true},
		{"nonexistent descendant", filepath.Join(root, "no", "such", "file"), true},
		{"child named dotdot-prefix", filepath.Join(root, "..cache"), true},
		{"inner traversal that stays inside", filepath.Join(root, "a", "..", "b"), true},
		{"sibling sharing name prefix", root + "-evil", false},
		{"sibling sharing name prefix child", filepath.Join(root+"-evil", "x"), false},
		{"parent", filepath.Dir(root), false},
		{"dotdot sibling", root + sep + ".." + sep + "sibling", false},
		{"relative dotdot", "..", false},
		{"relative escape", filepath.Join("..", "etc", "passwd"), false},
		{"absolute outside", filepath.Join(string(filepath.Separator), "etc", "passwd"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Admit(tt.candidate, root), "Admit(%q, %q)", tt.candidate, root)
		})
	}
}

func TestAdmit_RelativeRootRejectsAbsolute(t *testing.T) {
	assert.False(t, Admit(filepath.Join(string(filepath.Separator), "ws", "a"), "ws"))
}
