// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
)

// NewMCPServer initializes and configures the SbN MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"SbN Prioritization Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
	}

	// --- 1. Tool: prioritize_solutions ---
	s.AddTool(mcp.NewTool("prioritize_solutions",
		mcp.WithDescription("Rank Nature-based Solutions for a basin from indicator measurements and present barriers."),
		mcp.WithString("assessment", mcp.Description("Path to the assessment CSV with indicator measurements."), mcp.Required()),
		mcp.WithString("basin", mcp.Description("Basin identifier for the assessment.")),
		mcp.WithString("barriers", mcp.Description("Comma-separated barrier codes present in the basin (e.g. GB0101,GB0203a).")),
		mcp.WithString("edition", mcp.Description("Language edition of the reference tables (es, en, pt)."), mcp.Enum("es", "en", "pt")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handlePrioritizeSolutions)

	// --- 2. Tool: validate_reference_tables ---
	s.AddTool(mcp.NewTool("validate_reference_tables",
		mcp.WithDescription("Validate the reference tables and cross-check language editions for structural consistency."),
		mcp.WithString("editions", mcp.Description("Comma-separated editions to cross-check (e.g. es,en,pt).")),
	), h.handleValidateReferenceTables)

	// --- 3. Tool: list_barriers ---
	s.AddTool(mcp.NewTool("list_barriers",
		mcp.WithDescription("List the governance barrier registry, optionally filtered to one group."),
		mcp.WithString("group", mcp.Description("Barrier group code to filter by.")),
		mcp.WithString("edition", mcp.Description("Language edition of the reference tables (es, en, pt)."), mcp.Enum("es", "en", "pt")),
	), h.handleListBarriers)

	// --- 4. Tool: get_taxonomy ---
	s.AddTool(mcp.NewTool("get_taxonomy",
		mcp.WithDescription("Get the four-level solution taxonomy, either the whole forest or the subtree under one node."),
		mcp.WithNumber("node_id", mcp.Description("Node id to get the subtree of (omit for the whole forest).")),
		mcp.WithString("edition", mcp.Description("Language edition of the reference tables (es, en, pt)."), mcp.Enum("es", "en", "pt")),
	), h.handleGetTaxonomy)

	return s
}

// StartMCPServer starts the SbN MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
