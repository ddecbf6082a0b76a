//go:build basic

package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSbnPrioritizeEndToEnd runs the full prioritization pipeline against a
// known table bundle and checks the ranked output.
func TestSbnPrioritizeEndToEnd(t *testing.T) {
	dir := writeReferenceTables(t)
	sbnPath := getSbnBinary()

	cmd := exec.Command(sbnPath, "prioritize", filepath.Join(dir, "basin.csv"),
		"--tables", dir,
		"--basin", "rio-claro",
		"--barriers", "GB0101",
		"--detail",
		"--store-backend", "none")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", output)

	// Solution 1 composites to 0.68 and halves to 0.34 under the barrier.
	text := string(output)
	assert.Contains(t, text, "Reducir sedimentos")
	assert.Contains(t, text, "0.34")
	assert.Contains(t, text, "0.68")
	assert.Contains(t, text, "rio-claro")
}

// TestSbnValidateAndListings runs the read-only commands.
func TestSbnValidateAndListings(t *testing.T) {
	dir := writeReferenceTables(t)
	sbnPath := getSbnBinary()

	for _, args := range [][]string{
		{"validate", "--tables", dir, "--store-backend", "none"},
		{"taxonomy", "--tables", dir, "--store-backend", "none"},
		{"barriers", "--tables", dir, "--store-backend", "none"},
		{"version"},
	} {
		cmd := exec.Command(sbnPath, args...)
		output, err := cmd.CombinedOutput()
		require.NoError(t, err, "args %v output: %s", args, output)
	}
}

// TestSbnStoreLifecycleSQLite syncs, reads back and clears a SQLite store.
func TestSbnStoreLifecycleSQLite(t *testing.T) {
	dir := writeReferenceTables(t)
	dbPath := filepath.Join(t.TempDir(), "store.db")
	sbnPath := getSbnBinary()

	env := append(os.Environ(),
		"SBN_STORE_BACKEND=sqlite",
		"SBN_STORE_CONNECT="+dbPath,
	)

	run := func(args ...string) string {
		cmd := exec.Command(sbnPath, args...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		require.NoError(t, err, "args %v output: %s", args, output)
		return string(output)
	}

	run("store", "sync", "--tables", dir)

	statusOut := run("store", "status")
	assert.Contains(t, statusOut, "sqlite")

	// Prioritize straight from the store, no table files needed.
	prioritizeOut := run("prioritize", filepath.Join(dir, "basin.csv"),
		"--tables", dir, "--from-store", "--basin", "rio-claro")
	assert.True(t, strings.Contains(prioritizeOut, "rio-claro"), "output: %s", prioritizeOut)

	run("store", "clear")
}

// TestSbnExportParquet exports results to a Parquet file.
func TestSbnExportParquet(t *testing.T) {
	dir := writeReferenceTables(t)
	outFile := filepath.Join(t.TempDir(), "scores.parquet")
	sbnPath := getSbnBinary()

	cmd := exec.Command(sbnPath, "export", filepath.Join(dir, "basin.csv"),
		"--tables", dir,
		"--output-file", outFile,
		"--store-backend", "none")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", output)

	info, err := os.Stat(outFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
