// Package output exports simulation results in pluggable formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/quanttiger/quantlib/internal/simulation"
)

// Writer defines a pluggable result exporter. Implementations should be
// deterministic for a given result.
type Writer interface {
	Write(w io.Writer, result *simulation.Result) error
	// Name returns the canonical format identifier.
	Name() string
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"json-pretty": "json",
	"csv-paths":   "csv",
}

// NormalizeFormatName lowers, trims and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// ForFormat returns the writer for a format name. The precision controls
// how many significant digits the text formats emit; values outside 1..17
// fall back to the shortest exact representation.
func ForFormat(format string, precision int) (Writer, error) {
	switch NormalizeFormatName(format) {
	case "csv":
		return &CSVWriter{Precision: precision}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format '%s' (supported: %s)",
			format, strings.Join(AvailableFormats(), ", "))
	}
}

// AvailableFormats returns the canonical format names.
func AvailableFormats() []string {
	names := []string{"csv", "json"}
	sort.Strings(names)
	return names
}
