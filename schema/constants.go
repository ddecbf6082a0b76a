package schema

import "regexp"

// Custom string types for type safety.
type (
	// Level is a taxonomy hierarchy level.
	Level string

	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the database backend for the reference store.
	StoreBackend string

	// EngineState tracks the prioritization engine lifecycle.
	EngineState string

	// Edition is a language edition of the reference tables.
	Edition string
)

// Taxonomy levels from root to leaf.
const (
	CategoryLevel    Level = "category"
	SubcategoryLevel Level = "subcategory"
	ActivityLevel    Level = "activity"
	ObjectiveLevel   Level = "objective" // Concrete solution
)

// LevelOrder lists the four levels from root to leaf.
var LevelOrder = []Level{CategoryLevel, SubcategoryLevel, ActivityLevel, ObjectiveLevel}

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All reference store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// Engine lifecycle states.
const (
	EngineUninitialized EngineState = "uninitialized"
	EngineLoaded        EngineState = "loaded" // All four reference tables validated
	EngineReady         EngineState = "ready"  // Loaded plus a non-empty assessment
	EngineComputing     EngineState = "computing"
	EngineCompleted     EngineState = "completed"
	EngineFailed        EngineState = "failed"
)

// Language editions of the reference tables.
const (
	EditionES Edition = "es" // default, the authoring language
	EditionEN Edition = "en"
	EditionPT Edition = "pt"
)

// AllEditions lists the parallel language editions shipped with the toolkit.
var AllEditions = []Edition{EditionES, EditionEN, EditionPT}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid reference store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidEditions lists all valid language editions.
var ValidEditions = map[Edition]struct{}{
	EditionES: {},
	EditionEN: {},
	EditionPT: {},
}

// WeightSumTolerance is the permitted deviation of a solution's weight sum
// from 1.0 before the weight matrix is rejected at load.
const WeightSumTolerance = 1e-6

// BarrierCodePattern validates barrier codes (e.g. GB0101, GB0203a).
var BarrierCodePattern = regexp.MustCompile(`^GB\d{4}[a-z]?$`)
