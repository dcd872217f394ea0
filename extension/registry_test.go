package extension

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name  string
	tools []MCPTool
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }
func (e testExtension) MCPTools() []MCPTool        { return e.tools }

func TestRegister_PanicOnDuplicate(t *testing.T) {
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	assert.Panics(t, func() { Register(testExtension{name: name}) })
}

func TestRegister_OrderAndTools(t *testing.T) {
	Register(testExtension{name: "test-first", tools: []MCPTool{{Tool: mcp.NewTool("one")}}})
	Register(testExtension{name: "test-second", tools: []MCPTool{{Tool: mcp.NewTool("two")}, {Tool: mcp.NewTool("three")}}})

	names := Names()
	first, second := -1, -1
	for i, n := range names {
		switch n {
		case "test-first":
			first = i
		case "test-second":
			second = i
		}
	}
	assert.Less(t, first, second)
	assert.NotNil(t, Get("test-first"))
	assert.Nil(t, Get("missing"))

	var tools []string
	for _, tl := range Tools() {
		tools = append(tools, tl.Tool.Name)
	}
	assert.Subset(t, tools, []string{"one", "two", "three"})
}
