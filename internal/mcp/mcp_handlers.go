package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/core"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/core/refset"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

func (h *toolHandler) handlePrioritizeSolutions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.AssessmentFile = request.GetString("assessment", "")
	if b := request.GetString("basin", ""); b != "" {
		cfg.BasinID = b
	}
	if codes := request.GetString("barriers", ""); codes != "" {
		cfg.SelectedBarriers = cfg.SelectedBarriers[:0]
		for _, part := range strings.Split(codes, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if !schema.BarrierCodePattern.MatchString(part) {
				return mcp.NewToolResultError(fmt.Sprintf("malformed barrier code %q", part)), nil
			}
			cfg.SelectedBarriers = append(cfg.SelectedBarriers, part)
		}
	}
	if ed, errResult := editionArg(request, cfg); errResult != nil {
		return errResult, nil
	} else if ed != "" {
		cfg.Edition = ed
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	ranked, refs, err := core.GetPriorityResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("prioritization failed: %v", err)), nil
	}

	type solutionResult struct {
		schema.PriorityScore
		Solution string `json:"solution"`
	}
	enriched := make([]solutionResult, 0, len(ranked))
	for _, s := range ranked {
		label := ""
		if node, err := refs.Taxonomy.Node(s.SbNID); err == nil {
			label = node.Label
		}
		enriched = append(enriched, solutionResult{PriorityScore: s, Solution: label})
	}
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleValidateReferenceTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if eds := request.GetString("editions", ""); eds != "" {
		cfg.Editions = cfg.Editions[:0]
		for _, part := range strings.Split(eds, ",") {
			part = strings.TrimSpace(strings.ToLower(part))
			if part == "" {
				continue
			}
			ed := schema.Edition(part)
			if _, ok := schema.ValidEditions[ed]; !ok {
				return mcp.NewToolResultError(fmt.Sprintf("invalid edition %q", part)), nil
			}
			cfg.Editions = append(cfg.Editions, ed)
		}
	}

	summaries, err := core.GetValidationSummaries(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(summaries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListBarriers(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if ed, errResult := editionArg(request, cfg); errResult != nil {
		return errResult, nil
	} else if ed != "" {
		cfg.Edition = ed
	}

	refs, err := core.LoadRefSet(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not load reference tables: %v", err)), nil
	}

	var barriers []schema.Barrier
	if group := request.GetString("group", ""); group != "" {
		barriers, err = refs.Barriers.BarriersForGroup(group)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("unknown barrier group %q", group)), nil
		}
	} else {
		for _, g := range refs.Barriers.Groups() {
			inGroup, err := refs.Barriers.BarriersForGroup(g)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("could not list barriers: %v", err)), nil
			}
			barriers = append(barriers, inGroup...)
		}
	}

	jsonData, _ := json.MarshalIndent(barriers, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTaxonomy(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if ed, errResult := editionArg(request, cfg); errResult != nil {
		return errResult, nil
	} else if ed != "" {
		cfg.Edition = ed
	}

	refs, err := core.LoadRefSet(cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("could not load reference tables: %v", err)), nil
	}

	var nodes []schema.TaxonomyNode
	if nodeID := request.GetInt("node_id", 0); nodeID != 0 {
		node, err := refs.Taxonomy.Node(nodeID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("unknown taxonomy node %d", nodeID)), nil
		}
		nodes = collectSubtree(refs, node)
	} else {
		for _, root := range refs.Taxonomy.Roots() {
			nodes = append(nodes, collectSubtree(refs, root)...)
		}
	}

	jsonData, _ := json.MarshalIndent(nodes, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// collectSubtree returns a node and its descendants in pre-order.
func collectSubtree(refs *refset.RefSet, node schema.TaxonomyNode) []schema.TaxonomyNode {
	nodes := []schema.TaxonomyNode{node}
	children, err := refs.Taxonomy.ChildrenOf(node.ID)
	if err != nil {
		return nodes
	}
	for _, child := range children {
		nodes = append(nodes, collectSubtree(refs, child)...)
	}
	return nodes
}

// editionArg extracts and validates the optional edition argument.
func editionArg(request mcp.CallToolRequest, cfg *contract.Config) (schema.Edition, *mcp.CallToolResult) {
	raw := request.GetString("edition", "")
	if raw == "" {
		return "", nil
	}
	ed := schema.Edition(strings.ToLower(raw))
	if _, ok := schema.ValidEditions[ed]; !ok {
		return "", mcp.NewToolResultError(fmt.Sprintf("invalid edition %q", raw))
	}
	return ed, nil
}
