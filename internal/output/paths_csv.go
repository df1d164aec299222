package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/quanttiger/quantlib/internal/simulation"
)

// CSVWriter exports paths as a CSV table with one row per grid time and one
// column per path.
type CSVWriter struct {
	Precision int
}

// Name returns the canonical format identifier.
func (c *CSVWriter) Name() string { return "csv" }

// Write emits the result as CSV. The header names the time column and
// numbers the paths from 1.
func (c *CSVWriter) Write(w io.Writer, result *simulation.Result) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, len(result.Paths)+1)
	header = append(header, "time")
	for i := range result.Paths {
		header = append(header, fmt.Sprintf("path_%d", i+1))
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := make([]string, len(result.Paths)+1)
	for t := range result.Times {
		row[0] = c.formatValue(result.Times[t])
		for p, path := range result.Paths {
			row[p+1] = c.formatValue(path[t])
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write data row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

func (c *CSVWriter) formatValue(v float64) string {
	precision := c.Precision
	if precision < 1 || precision > 17 {
		precision = -1
	}
	return strconv.FormatFloat(v, 'g', precision, 64)
}
