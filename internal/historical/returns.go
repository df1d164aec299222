// Package historical loads observed return series from CSV files and
// calibrates process parameters from them.
package historical

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// ReturnSeries holds equally spaced period returns in observation order.
type ReturnSeries struct {
	returns []float64
}

// NewReturnSeries creates a return series from the given values.
func NewReturnSeries(returns []float64) (*ReturnSeries, error) {
	if len(returns) == 0 {
		return nil, fmt.Errorf("historical: return series must not be empty")
	}
	out := make([]float64, len(returns))
	copy(out, returns)
	return &ReturnSeries{returns: out}, nil
}

// LoadReturnSeries reads a return series from a CSV file. The return value
// is taken from the last column of each row, so both bare single-column
// files and date,value files work; rows whose last column does not parse as
// a number (headers included) are skipped.
func LoadReturnSeries(filePath string) (*ReturnSeries, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var returns []float64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}

		if len(record) == 0 {
			continue
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[len(record)-1]), 64)
		if err != nil {
			continue // Skip headers and malformed rows
		}

		returns = append(returns, value)
	}

	if len(returns) == 0 {
		return nil, fmt.Errorf("no usable return values found in %s", filePath)
	}

	return &ReturnSeries{returns: returns}, nil
}

// Count returns the number of observations.
func (r *ReturnSeries) Count() int { return len(r.returns) }

// Mean returns the sample mean of the observations.
func (r *ReturnSeries) Mean() float64 { return stat.Mean(r.returns, nil) }

// StdDev returns the sample standard deviation of the observations.
func (r *ReturnSeries) StdDev() float64 { return stat.StdDev(r.returns, nil) }

// CalibrateGBM estimates geometric Brownian motion drift and volatility
// from the series, treated as log returns over periods of length dt years.
// The drift includes the Ito correction, mean/dt + sigma^2/2.
func (r *ReturnSeries) CalibrateGBM(dt float64) (drift, volatility float64, err error) {
	if err := r.checkCalibration(dt); err != nil {
		return 0, 0, err
	}
	volatility = r.StdDev() / math.Sqrt(dt)
	drift = r.Mean()/dt + 0.5*volatility*volatility
	return drift, volatility, nil
}

// CalibrateArithmetic estimates arithmetic Brownian motion drift and
// volatility from the series, treated as level changes over periods of
// length dt years.
func (r *ReturnSeries) CalibrateArithmetic(dt float64) (drift, volatility float64, err error) {
	if err := r.checkCalibration(dt); err != nil {
		return 0, 0, err
	}
	return r.Mean() / dt, r.StdDev() / math.Sqrt(dt), nil
}

func (r *ReturnSeries) checkCalibration(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("historical: observation spacing must be positive, got %v", dt)
	}
	if r.Count() < 2 {
		return fmt.Errorf("historical: calibration requires at least 2 observations, got %d", r.Count())
	}
	return nil
}
