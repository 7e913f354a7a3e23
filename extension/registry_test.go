package extension

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/docq/internal/config"
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

func TestRegistry_Lookup(t *testing.T) {
	noop := func(context.Context, Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) { return nil, nil }
	Register(testExtension{name: "test-a", tools: []MCPTool{{Tool: mcp.NewTool("a_one"), Handler: noop}}})
	Register(testExtension{name: "test-b", tools: []MCPTool{{Tool: mcp.NewTool("b_one"), Handler: noop}}})

	require.NotNil(t, Get("test-a"))
	assert.Nil(t, Get("test-missing"))

	var names []string
	for _, e := range All() {
		names = append(names, e.Name())
	}
	assert.Less(t, indexOf(names, "test-a"), indexOf(names, "test-b"), "registration order is kept")

	var tools []string
	for _, tl := range Tools() {
		tools = append(tools, tl.Tool.Name)
	}
	assert.Less(t, indexOf(tools, "a_one"), indexOf(tools, "b_one"))
}

func TestNewContext(t *testing.T) {
	cfg := &config.Config{}
	c := NewContext(nil, cfg)
	assert.Same(t, cfg, c.Config())
	assert.Nil(t, c.Service())
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
