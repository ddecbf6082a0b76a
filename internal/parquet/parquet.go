// Package parquet exports prioritization results to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/internal/contract"
	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// PriorityRecord represents one ranked solution in a Parquet export.
type PriorityRecord struct {
	// Rank is the 1-based position after sorting by final score
	Rank int32 `parquet:"rank,snappy"`

	// SbNID is the objective node id of the solution
	SbNID int32 `parquet:"sbn_id,snappy"`

	// Solution is the taxonomy label of the solution
	Solution string `parquet:"solution,snappy"`

	// CompositeScore is the weighted sum of normalized measurements
	CompositeScore float64 `parquet:"composite_indicator_score,snappy"`

	// BarrierPenalty is the mean severity of linked selected barriers
	BarrierPenalty float64 `parquet:"barrier_penalty,snappy"`

	// FinalScore is the composite score after the barrier gate
	FinalScore float64 `parquet:"final_score,snappy"`

	// Band is the display band derived from the final score
	Band string `parquet:"band,snappy"`

	// BasinID identifies the assessed basin (nullable)
	BasinID *string `parquet:"basin_id,optional,snappy"`

	// ExportTime is when the export was written (stored as TIMESTAMP with nanosecond precision)
	ExportTime time.Time `parquet:"export_time,snappy"`
}

// WriteScores writes ranked scores to the configured output file.
func WriteScores(scores []schema.PriorityScore, solutionNames map[int]string, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return contract.NewPreconditionError("parquet output requires --output-file")
	}
	records := BuildPriorityRecords(scores, solutionNames, cfg.BasinID)
	if err := WritePriorityRecordsParquet(records, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// BuildPriorityRecords converts engine output into Parquet records.
func BuildPriorityRecords(scores []schema.PriorityScore, solutionNames map[int]string, basinID string) []PriorityRecord {
	now := time.Now()
	var basin *string
	if basinID != "" {
		basin = &basinID
	}
	records := make([]PriorityRecord, 0, len(scores))
	for _, s := range scores {
		records = append(records, PriorityRecord{
			Rank:           int32(s.Rank),
			SbNID:          int32(s.SbNID),
			Solution:       solutionNames[s.SbNID],
			CompositeScore: s.CompositeIndicatorScore,
			BarrierPenalty: s.BarrierPenalty,
			FinalScore:     s.FinalScore,
			Band:           s.Label,
			BasinID:        basin,
			ExportTime:     now,
		})
	}
	return records
}

// WritePriorityRecordsParquet writes a slice of PriorityRecord structs to a Parquet file.
func WritePriorityRecordsParquet(data []PriorityRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the PriorityRecord struct tags
	writer := parquet.NewGenericWriter[PriorityRecord](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
