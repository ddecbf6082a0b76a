package contract

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// Priority label constants.
const (
	HighValue     = "High"     // Strong candidate for the basin
	ModerateValue = "Moderate" // Viable with reservations
	LowValue      = "Low"      // Weak indicator fit or heavy barriers
	MarginalValue = "Marginal" // Effectively ruled out
)

// Color variables for console output.
var (
	HighColor     = color.New(color.FgGreen, color.Bold) // highColor marks the solutions worth implementing first.
	ModerateColor = color.New(color.FgCyan)              // moderateColor marks viable second-tier solutions.
	LowColor      = color.New(color.FgYellow)            // lowColor marks solutions needing barrier removal or better data.
	MarginalColor = color.New(color.FgRed)               // marginalColor marks solutions the barriers rule out.
)

// GetPlainLabel returns a plain text priority band for a final score in [0,1].
// This is the core logic used for CSV, JSON and table printing.
func GetPlainLabel(finalScore float64) string {
	switch {
	case finalScore >= 0.70:
		return HighValue
	case finalScore >= 0.45:
		return ModerateValue
	case finalScore >= 0.20:
		return LowValue
	default:
		return MarginalValue
	}
}

// GetColorLabel returns a colored priority band for console output.
// It uses GetPlainLabel to determine the string and then applies the color.
func GetColorLabel(finalScore float64) string {
	text := GetPlainLabel(finalScore)

	switch text {
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	case LowValue:
		return LowColor.Sprint(text)
	default:
		return MarginalColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateLabel shortens a taxonomy label for table display, keeping the
// leading text which carries the distinguishing words in all three editions.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if maxWidth <= 3 || len(runes) <= maxWidth {
		return label
	}
	return string(runes[:maxWidth-3]) + "..."
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the
// reference store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sbn_refstore.db"
	}
	return filepath.Join(homeDir, ".sbn_refstore.db")
}
