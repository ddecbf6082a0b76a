package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	mcp_internal "github.com/N4W-Facility/Toolkit-SbN-CAF/internal/mcp"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

func TestMCPServerTools(t *testing.T) {
	baseCfg := &contract.Config{
		TablesDir: ".",
		Edition:   schema.EditionES,
	}
	s := mcp_internal.NewMCPServer(baseCfg)

	for _, name := range []string{
		"prioritize_solutions",
		"validate_reference_tables",
		"list_barriers",
		"get_taxonomy",
	} {
		tool := s.GetTool(name)
		require.NotNil(t, tool, "Tool %s should exist", name)
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		TablesDir: ".",
		Edition:   schema.EditionES,
	}
	s := mcp_internal.NewMCPServer(baseCfg)

	ctx := context.Background()

	t.Run("prioritize_solutions malformed barrier code", func(t *testing.T) {
		tool := s.GetTool("prioritize_solutions")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "prioritize_solutions",
				Arguments: map[string]any{
					"assessment": "basin.csv",
					"barriers":   "GB0101,bogus",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `malformed barrier code "bogus"`)
	})

	t.Run("validate_reference_tables invalid edition", func(t *testing.T) {
		tool := s.GetTool("validate_reference_tables")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "validate_reference_tables",
				Arguments: map[string]any{
					"editions": "es,de",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `invalid edition "de"`)
	})

	t.Run("get_taxonomy invalid edition", func(t *testing.T) {
		tool := s.GetTool("get_taxonomy")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_taxonomy",
				Arguments: map[string]any{
					"edition": "fr",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, `invalid edition "fr"`)
	})

	t.Run("list_barriers missing tables", func(t *testing.T) {
		tool := s.GetTool("list_barriers")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "list_barriers",
				Arguments: map[string]any{},
			},
		}

		// The base config points at a directory without reference tables,
		// so loading fails and the handler reports it as a tool error.
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "could not load reference tables")
	})
}
