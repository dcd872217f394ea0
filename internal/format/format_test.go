package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1.0K"},
		{1536, "1.5K"},
		{5 << 20, "5.0M"},
		{3 << 30, "3.0G"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanSize(tt.in))
	}
}

func TestList(t *testing.T) {
	var sb strings.Builder
	_ = List(&sb, []Entry{{Name: "src", IsDir: true}, {Name: "a.txt"}, {Name: "l", Symlink: true}})
	assert.Equal(t, "src/\na.txt\nl@\n", sb.String())
}

func TestLong(t *testing.T) {
	var sb strings.Builder
	mod := time.Date(2026, 1, 2, 3, 4, 0, 0, time.Local)
	_ = Long(&sb, []Entry{{Name: "src", IsDir: true, ModTime: mod}, {Name: "a.txt", Size: 2048, ModTime: mod}})

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TYPE"))
	assert.Contains(t, lines[1], "dir")
	assert.Contains(t, lines[1], "src/")
	assert.Contains(t, lines[2], "2.0K")
	assert.Contains(t, lines[2], "2026-01-02 03:04")

	sb.Reset()
	_ = Long(&sb, nil)
	assert.Empty(t, sb.String())
}

func TestTree(t *testing.T) {
	var sb strings.Builder
	_ = Tree(&sb, []Entry{
		{Path: "src", IsDir: true},
		{Path: "src/b.go"},
		{Path: "src/a.go"},
		{Path: "README.md"},
	})
	want := "├── README.md\n" +
		"└── src/\n" +
		"    ├── a.go\n" +
		"    └── b.go\n"
	assert.Equal(t, want, sb.String())
}
