package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/N4W-Facility/Toolkit-SbN-CAF/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	DefaultEdition     = schema.EditionES
)

// Config holds the validated runtime configuration for a toolkit invocation.
// Fields needing complex parsing (editions, barrier selections) are populated
// by ProcessAndValidate from the raw viper input.
type Config struct {
	TablesDir        string              // Directory holding the reference table editions
	Edition          schema.Edition      // Language edition to load
	Editions         []schema.Edition    // Editions to cross-check (validate command)
	AssessmentFile   string              // CSV with per-basin indicator measurements
	BasinID          string              // Basin identifier for the assessment
	SelectedBarriers []string            // Barrier codes marked present for the basin
	DisabledGroups   map[string]struct{} // Barrier groups switched off for the basin
	ResultLimit      int                 // Maximum number of solutions to show
	Detail           bool                // Print per-solution component columns
	Explain          bool                // Print normalized per-indicator contributions
	Precision        int                 // Decimal precision for numeric columns (1-4)
	Output           schema.OutputMode   // text, csv, json or parquet
	OutputFile       string              // Optional path to write output to
	Width            int                 // Terminal width override (0 = auto-detect)
	Color            bool                // Colored labels in table output
	StoreBackend     schema.StoreBackend // Reference store backend
	StoreConnect     string              // Connection string for mysql/postgresql stores
	FromStore        bool                // Load reference tables from the store instead of files
}

// Clone returns a copy of the configuration for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	clone.SelectedBarriers = append([]string(nil), c.SelectedBarriers...)
	clone.Editions = append([]schema.Edition(nil), c.Editions...)
	if c.DisabledGroups != nil {
		clone.DisabledGroups = make(map[string]struct{}, len(c.DisabledGroups))
		for k := range c.DisabledGroups {
			clone.DisabledGroups[k] = struct{}{}
		}
	}
	return &clone
}

// ConfigRawInput holds the raw values resolved by viper from flags, env and
// config file. Everything is a plain string or int; ProcessAndValidate does
// the parsing.
type ConfigRawInput struct {
	TablesDir     string `mapstructure:"tables"`
	Edition       string `mapstructure:"edition"`
	Editions      string `mapstructure:"editions"`
	Assessment    string `mapstructure:"assessment"`
	Basin         string `mapstructure:"basin"`
	Barriers      string `mapstructure:"barriers"`
	DisableGroups string `mapstructure:"disable-groups"`
	ResultLimit   int    `mapstructure:"limit"`
	Detail        bool   `mapstructure:"detail"`
	Explain       bool   `mapstructure:"explain"`
	Precision     int    `mapstructure:"precision"`
	Output        string `mapstructure:"output"`
	OutputFile    string `mapstructure:"output-file"`
	Width         int    `mapstructure:"width"`
	Color         string `mapstructure:"color"`
	StoreBackend  string `mapstructure:"store-backend"`
	StoreConnect  string `mapstructure:"store-connect"`
	FromStore     bool   `mapstructure:"from-store"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Tables directory ---
	tablesDir := input.TablesDir
	if tablesDir == "" {
		tablesDir = "."
	}
	abs, err := filepath.Abs(tablesDir)
	if err != nil {
		return fmt.Errorf("invalid tables directory %q: %w", tablesDir, err)
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return fmt.Errorf("tables directory %q does not exist or is not a directory", tablesDir)
	}
	cfg.TablesDir = abs

	// --- 2. Edition ---
	ed := schema.Edition(strings.ToLower(input.Edition))
	if ed == "" {
		ed = DefaultEdition
	}
	if _, ok := schema.ValidEditions[ed]; !ok {
		return fmt.Errorf("invalid edition %q. must be one of es, en, pt", input.Edition)
	}
	cfg.Edition = ed

	// --- 3. Editions list (cross-edition check) ---
	cfg.Editions = cfg.Editions[:0]
	if input.Editions != "" {
		for _, part := range strings.Split(input.Editions, ",") {
			part = strings.TrimSpace(strings.ToLower(part))
			if part == "" {
				continue
			}
			e := schema.Edition(part)
			if _, ok := schema.ValidEditions[e]; !ok {
				return fmt.Errorf("invalid edition %q in --editions", part)
			}
			cfg.Editions = append(cfg.Editions, e)
		}
	}

	// --- 4. Assessment and basin ---
	cfg.AssessmentFile = input.Assessment
	cfg.BasinID = strings.TrimSpace(input.Basin)

	// --- 5. Barrier selections ---
	cfg.SelectedBarriers = cfg.SelectedBarriers[:0]
	if input.Barriers != "" {
		for _, part := range strings.Split(input.Barriers, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if !schema.BarrierCodePattern.MatchString(part) {
				return fmt.Errorf("malformed barrier code %q (expected GBnnnn or GBnnnnx)", part)
			}
			cfg.SelectedBarriers = append(cfg.SelectedBarriers, part)
		}
	}
	cfg.DisabledGroups = nil
	if input.DisableGroups != "" {
		cfg.DisabledGroups = make(map[string]struct{})
		for _, part := range strings.Split(input.DisableGroups, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				cfg.DisabledGroups[part] = struct{}{}
			}
		}
	}

	// --- 6. ResultLimit ---
	if input.ResultLimit <= 0 || input.ResultLimit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.ResultLimit)
	}
	cfg.ResultLimit = input.ResultLimit

	// --- 7. Precision and output ---
	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output %q. must be text, csv, json or parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	// --- 8. Display toggles ---
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width
	cfg.Color = parseBoolish(input.Color, true)

	// --- 9. Reference store ---
	backend := schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend %q. must be sqlite, mysql, postgresql or none", input.StoreBackend)
	}
	cfg.StoreBackend = backend
	cfg.StoreConnect = input.StoreConnect
	if (backend == schema.MySQLBackend || backend == schema.PostgreSQLBackend) && cfg.StoreConnect == "" {
		return fmt.Errorf("store backend %s requires --store-connect", backend)
	}
	cfg.FromStore = input.FromStore
	if cfg.FromStore && backend == schema.NoneBackend {
		return fmt.Errorf("--from-store requires a store backend other than none")
	}

	return nil
}

// parseBoolish interprets yes/no style flag values, falling back to def.
func parseBoolish(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}
