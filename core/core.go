// Package core has core logic for loading reference tables, scoring and
// ranking Nature-based Solutions.
package core

import (
	"context"
	"time"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/core/refset"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/outwriter"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/parquet"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/refstore"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// ExecutorFunc defines the function signature for executing the different
// toolkit commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecutePrioritize runs a full prioritization pass for one basin and writes
// the ranked results. It serves as the main entry point for the
// 'prioritize' command.
func ExecutePrioritize(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ranked, refs, err := GetPriorityResults(ctx, cfg)
	if err != nil {
		return err
	}
	persistRun(ctx, cfg, ranked)
	duration := time.Since(start)

	if cfg.Output == schema.ParquetOut {
		return parquet.WriteScores(ranked, solutionNames(refs), cfg)
	}
	report := outwriter.ScoreReport{
		Scores:         ranked,
		SolutionNames:  solutionNames(refs),
		IndicatorNames: indicatorNames(refs),
		BasinID:        cfg.BasinID,
	}
	return outwriter.WriteScoreResults(report, cfg, duration)
}

// GetPriorityResults loads the reference tables and the basin assessment,
// runs the engine and returns the ranked scores capped at cfg.ResultLimit.
// It is shared by the CLI commands and the MCP handlers.
func GetPriorityResults(ctx context.Context, cfg *contract.Config) ([]schema.PriorityScore, *refset.RefSet, error) {
	refs, err := resolveRefSet(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	input, err := LoadAssessment(cfg)
	if err != nil {
		return nil, nil, err
	}
	engine := NewEngine(refs)
	ranked, err := engine.Compute(ctx, input, cfg.SelectedBarriers)
	if err != nil {
		return nil, nil, err
	}
	if len(ranked) > cfg.ResultLimit {
		ranked = ranked[:cfg.ResultLimit]
	}
	return ranked, refs, nil
}

// resolveRefSet loads the reference tables from the store when --from-store
// is set, or from the edition files otherwise.
func resolveRefSet(ctx context.Context, cfg *contract.Config) (*refset.RefSet, error) {
	if !cfg.FromStore {
		return LoadRefSet(cfg)
	}
	store := refstore.Manager.GetRefStore()
	if store == nil {
		return nil, contract.NewPreconditionError("reference store is not initialized")
	}
	taxRows, indRows, wRows, bRows, err := store.LoadEdition(ctx, cfg.Edition)
	if err != nil {
		return nil, err
	}
	return refset.NewRefSet(taxRows, indRows, wRows, bRows)
}

// persistRun records a completed prioritization pass in the run store.
// Persistence is best effort: a broken store never fails the command.
func persistRun(ctx context.Context, cfg *contract.Config, ranked []schema.PriorityScore) {
	store := refstore.Manager.GetRunStore()
	if store == nil {
		return
	}
	if err := store.SaveRun(ctx, cfg.BasinID, string(cfg.Edition), cfg.SelectedBarriers, ranked); err != nil {
		contract.LogWarn("could not persist prioritization run", err)
	}
}

// ExecuteValidate loads every requested edition, reports row counts and
// cross-checks each edition against the first for structural consistency.
// It serves as the main entry point for the 'validate' command.
func ExecuteValidate(ctx context.Context, cfg *contract.Config) error {
	summaries, err := GetValidationSummaries(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.WriteValidationSummary(summaries, cfg)
}

// GetValidationSummaries loads and cross-checks the requested editions. It
// is shared by the CLI commands and the MCP handlers.
func GetValidationSummaries(ctx context.Context, cfg *contract.Config) ([]schema.EditionSummary, error) {
	editions := cfg.Editions
	if len(editions) == 0 {
		editions = []schema.Edition{cfg.Edition}
	}

	var baseline *refset.RefSet
	summaries := make([]schema.EditionSummary, 0, len(editions))
	for _, ed := range editions {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		refs, err := LoadRefSetEdition(cfg, ed)
		if err != nil {
			return nil, err
		}
		summary := schema.EditionSummary{
			Edition:    ed,
			Taxonomy:   refs.Taxonomy.Len(),
			Indicators: refs.Indicators.Len(),
			Weights:    refs.Weights.Len(),
			Barriers:   refs.Barriers.Len(),
			Consistent: true,
		}
		if baseline == nil {
			baseline = refs
		} else if err := refset.CompareEditions(baseline, refs); err != nil {
			summary.Consistent = false
			summary.Detail = err.Error()
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ExecuteTaxonomy prints the solution taxonomy, either the whole forest or
// the subtree under one node. It serves as the main entry point for the
// 'taxonomy' command.
func ExecuteTaxonomy(ctx context.Context, cfg *contract.Config, nodeID int) error {
	refs, err := resolveRefSet(ctx, cfg)
	if err != nil {
		return err
	}

	var roots []schema.TaxonomyNode
	if nodeID == 0 {
		roots = refs.Taxonomy.Roots()
	} else {
		node, err := refs.Taxonomy.Node(nodeID)
		if err != nil {
			return err
		}
		roots = []schema.TaxonomyNode{node}
	}

	var entries []outwriter.TreeEntry
	var walk func(node schema.TaxonomyNode, depth int) error
	walk = func(node schema.TaxonomyNode, depth int) error {
		entries = append(entries, outwriter.TreeEntry{Node: node, Depth: depth})
		children, err := refs.Taxonomy.ChildrenOf(node.ID)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := walk(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range roots {
		if err := walk(root, 0); err != nil {
			return err
		}
	}
	return outwriter.WriteTaxonomyTree(entries, cfg)
}

// ExecuteBarriers prints the barrier registry, optionally filtered to one
// group. It serves as the main entry point for the 'barriers' command.
func ExecuteBarriers(ctx context.Context, cfg *contract.Config, groupCode string) error {
	refs, err := resolveRefSet(ctx, cfg)
	if err != nil {
		return err
	}

	var barriers []schema.Barrier
	if groupCode == "" {
		for _, g := range refs.Barriers.Groups() {
			inGroup, err := refs.Barriers.BarriersForGroup(g)
			if err != nil {
				return err
			}
			barriers = append(barriers, inGroup...)
		}
	} else {
		barriers, err = refs.Barriers.BarriersForGroup(groupCode)
		if err != nil {
			return err
		}
	}

	subcategories := make(map[int]string, len(barriers))
	for _, b := range barriers {
		if _, seen := subcategories[b.SubcategoryID]; seen {
			continue
		}
		node, err := refs.Taxonomy.Node(b.SubcategoryID)
		if err != nil {
			return err
		}
		subcategories[b.SubcategoryID] = node.Label
	}
	return outwriter.WriteBarrierListing(barriers, subcategories, cfg)
}

// ExecuteExport runs a prioritization pass and writes the ranked results to
// a file, defaulting to Parquet. It serves as the main entry point for the
// 'export' command.
func ExecuteExport(ctx context.Context, cfg *contract.Config) error {
	if cfg.Output == schema.TextOut {
		cfg.Output = schema.ParquetOut
	}
	if cfg.OutputFile == "" {
		return contract.NewPreconditionError("export requires --output-file")
	}
	return ExecutePrioritize(ctx, cfg)
}

// ExecuteStoreSync reads and validates the configured edition from files and
// writes it to the reference store. It serves as the main entry point for
// the 'store sync' command.
func ExecuteStoreSync(ctx context.Context, cfg *contract.Config) error {
	store := refstore.Manager.GetRefStore()
	if store == nil {
		return contract.NewPreconditionError("store sync requires a store backend other than none")
	}
	taxRows, indRows, wRows, bRows, err := LoadEditionRows(cfg, cfg.Edition)
	if err != nil {
		return err
	}
	// Validate before persisting so the store never holds a broken edition.
	if _, err := refset.NewRefSet(taxRows, indRows, wRows, bRows); err != nil {
		return err
	}
	return store.SaveEdition(ctx, cfg.Edition, taxRows, indRows, wRows, bRows)
}

// solutionNames maps each solution id to its taxonomy label.
func solutionNames(refs *refset.RefSet) map[int]string {
	names := make(map[int]string)
	for _, id := range refs.Taxonomy.Solutions() {
		if node, err := refs.Taxonomy.Node(id); err == nil {
			names[id] = node.Label
		}
	}
	return names
}

// indicatorNames maps each indicator id to its display name.
func indicatorNames(refs *refset.RefSet) map[int]string {
	names := make(map[int]string)
	for _, id := range refs.Indicators.SolutionIDs() {
		for _, ind := range refs.Indicators.IndicatorsFor(id) {
			names[ind.ID] = ind.Name
		}
	}
	return names
}
