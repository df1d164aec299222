package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/quanttiger/quantlib/internal/montecarlo"
	"github.com/quanttiger/quantlib/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *simulation.Result {
	return &simulation.Result{
		ScenarioName: "export test",
		Times:        []float64{0, 0.5, 1.0},
		Paths: []montecarlo.Path{
			{100, 101.5, 102.25},
			{100, 99.125, 98.5},
		},
		Weights: []float64{1, 1},
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	writer := &CSVWriter{Precision: 6}
	require.NoError(t, writer.Write(&buf, sampleResult()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, []string{"time", "path_1", "path_2"}, records[0])
	assert.Equal(t, []string{"0", "100", "100"}, records[1])
	assert.Equal(t, []string{"0.5", "101.5", "99.125"}, records[2])
	assert.Equal(t, []string{"1", "102.25", "98.5"}, records[3])
}

func TestCSVWriterPrecision(t *testing.T) {
	result := &simulation.Result{
		Times:   []float64{0},
		Paths:   []montecarlo.Path{{1.23456789}},
		Weights: []float64{1},
	}

	var buf bytes.Buffer
	writer := &CSVWriter{Precision: 3}
	require.NoError(t, writer.Write(&buf, result))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "1.23", records[1][1])

	// Out-of-range precision falls back to the shortest exact form.
	buf.Reset()
	writer = &CSVWriter{Precision: 0}
	require.NoError(t, writer.Write(&buf, result))
	records, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "1.23456789", records[1][1])
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	writer := &JSONWriter{}
	require.NoError(t, writer.Write(&buf, sampleResult()))

	var doc struct {
		Scenario string      `json:"scenario"`
		Times    []float64   `json:"times"`
		Weights  []float64   `json:"weights"`
		Paths    [][]float64 `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "export test", doc.Scenario)
	assert.Equal(t, []float64{0, 0.5, 1.0}, doc.Times)
	assert.Equal(t, []float64{1, 1}, doc.Weights)
	require.Len(t, doc.Paths, 2)
	assert.Equal(t, []float64{100, 101.5, 102.25}, doc.Paths[0])
}

func TestForFormat(t *testing.T) {
	writer, err := ForFormat("csv", 6)
	require.NoError(t, err)
	assert.Equal(t, "csv", writer.Name())

	writer, err = ForFormat(" JSON ", 6)
	require.NoError(t, err)
	assert.Equal(t, "json", writer.Name())

	writer, err = ForFormat("json-pretty", 6)
	require.NoError(t, err)
	assert.Equal(t, "json", writer.Name())

	_, err = ForFormat("parquet", 6)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Contains(t, err.Error(), "csv, json")
}

func TestAvailableFormats(t *testing.T) {
	assert.Equal(t, []string{"csv", "json"}, AvailableFormats())
}
