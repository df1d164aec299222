package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/quanttiger/quantlib/internal/montecarlo"
	"github.com/quanttiger/quantlib/internal/simulation"
)

// JSONWriter exports the full result, weights included, as an indented
// JSON document.
type JSONWriter struct{}

// pathsDocument is the JSON shape of an exported result.
type pathsDocument struct {
	Scenario string            `json:"scenario,omitempty"`
	Times    []float64         `json:"times"`
	Weights  []float64         `json:"weights"`
	Paths    []montecarlo.Path `json:"paths"`
}

// Name returns the canonical format identifier.
func (j *JSONWriter) Name() string { return "json" }

// Write emits the result as JSON.
func (j *JSONWriter) Write(w io.Writer, result *simulation.Result) error {
	doc := pathsDocument{
		Scenario: result.ScenarioName,
		Times:    result.Times,
		Weights:  result.Weights,
		Paths:    result.Paths,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
