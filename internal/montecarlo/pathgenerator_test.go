package montecarlo

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/quanttiger/quantlib/pkg/timegrid"
)

// scriptedGenerator replays a fixed list of variate vectors, cycling when
// exhausted. It lets tests pin down exact path values.
type scriptedGenerator struct {
	draws  [][]float64
	weight float64
	calls  int
	last   Sequence
}

func newScriptedGenerator(weight float64, draws ...[]float64) *scriptedGenerator {
	return &scriptedGenerator{
		draws:  draws,
		weight: weight,
		last:   Sequence{Values: make([]float64, len(draws[0])), Weight: 1.0},
	}
}

func (g *scriptedGenerator) Dimension() int { return len(g.draws[0]) }

func (g *scriptedGenerator) NextSequence() Sequence {
	g.last = Sequence{Values: g.draws[g.calls%len(g.draws)], Weight: g.weight}
	g.calls++
	return g.last.Clone()
}

func (g *scriptedGenerator) LastSequence() Sequence { return g.last.Clone() }

// additiveProcess moves by drift*dt plus the raw shock. With zero drift the
// path values are just the running sum of shocks over the initial value.
type additiveProcess struct {
	initial float64
	drift   float64
}

func (p additiveProcess) X0() float64 { return p.initial }

func (p additiveProcess) Expectation(t0, x0, dt float64) float64 { return x0 + p.drift*dt }

func (p additiveProcess) Evolve(t0, x0, dt, dw float64) float64 {
	return p.Apply(p.Expectation(t0, x0, dt), math.Sqrt(dt)*dw)
}

func (p additiveProcess) Apply(x0, dx float64) float64 { return x0 + dx }

func TestPathGeneratorDimensionMismatch(t *testing.T) {
	process := additiveProcess{initial: 100}
	gen := newScriptedGenerator(1.0, []float64{0.1, -0.2, 0.3})

	t.Run("UniformGrid", func(t *testing.T) {
		_, err := NewPathGenerator(process, 1.0, 2, gen, false)
		if err == nil {
			t.Fatal("Expected error for dimension 3 against 2 time steps")
		}
		var confErr *ConfigurationError
		if !errors.As(err, &confErr) {
			t.Fatalf("Expected ConfigurationError, got %T", err)
		}
		if confErr.Dimension != 3 || confErr.TimeSteps != 2 {
			t.Errorf("Expected dimensions 3 and 2 in error, got %d and %d", confErr.Dimension, confErr.TimeSteps)
		}
		if !strings.Contains(err.Error(), "(3)") || !strings.Contains(err.Error(), "(2)") {
			t.Errorf("Expected both values in message, got %q", err.Error())
		}
	})

	t.Run("ExplicitGrid", func(t *testing.T) {
		grid, err := timegrid.New([]float64{0, 0.5, 1.0})
		if err != nil {
			t.Fatalf("Failed to build grid: %v", err)
		}
		_, err = NewPathGeneratorWithGrid(process, grid, gen, false)
		var confErr *ConfigurationError
		if !errors.As(err, &confErr) {
			t.Fatalf("Expected ConfigurationError, got %v", err)
		}
	})
}

func TestPathGeneratorNext(t *testing.T) {
	process := additiveProcess{initial: 100}
	gen := newScriptedGenerator(1.0, []float64{0.1, -0.2})
	pg, err := NewPathGenerator(process, 1.0, 2, gen, false)
	if err != nil {
		t.Fatalf("Failed to create path generator: %v", err)
	}

	sample := pg.Next()

	t.Run("PathLength", func(t *testing.T) {
		if len(sample.Path) != 3 {
			t.Errorf("Expected path length 3, got %d", len(sample.Path))
		}
	})

	t.Run("InitialValue", func(t *testing.T) {
		if sample.Path[0] != 100 {
			t.Errorf("Expected path to start at 100, got %v", sample.Path[0])
		}
	})

	t.Run("AccumulatedShocks", func(t *testing.T) {
		want := []float64{100, 100.1, 99.9}
		for i, w := range want {
			if math.Abs(sample.Path[i]-w) > 1e-12 {
				t.Errorf("Expected path[%d] = %v, got %v", i, w, sample.Path[i])
			}
		}
	})

	t.Run("Weight", func(t *testing.T) {
		if sample.Weight != 1.0 {
			t.Errorf("Expected weight 1.0, got %v", sample.Weight)
		}
	})
}

func TestPathGeneratorDriftRouting(t *testing.T) {
	// Unequal step widths reach Expectation through the correct dt.
	process := additiveProcess{initial: 100, drift: 1.0}
	gen := newScriptedGenerator(1.0, []float64{0.1, -0.2})
	grid, err := timegrid.New([]float64{0, 0.25, 1.0})
	if err != nil {
		t.Fatalf("Failed to build grid: %v", err)
	}
	pg, err := NewPathGeneratorWithGrid(process, grid, gen, false)
	if err != nil {
		t.Fatalf("Failed to create path generator: %v", err)
	}

	sample := pg.Next()
	want := []float64{100, 100.35, 100.9}
	for i, w := range want {
		if math.Abs(sample.Path[i]-w) > 1e-12 {
			t.Errorf("Expected path[%d] = %v, got %v", i, w, sample.Path[i])
		}
	}
}

func TestPathGeneratorAntithetic(t *testing.T) {
	process := additiveProcess{initial: 100}

	t.Run("BeforeAnyDraw", func(t *testing.T) {
		gen := newScriptedGenerator(1.0, []float64{0.1, -0.2})
		pg, err := NewPathGenerator(process, 1.0, 2, gen, false)
		if err != nil {
			t.Fatalf("Failed to create path generator: %v", err)
		}
		_, err = pg.Antithetic()
		if !errors.Is(err, ErrNoPreviousDraw) {
			t.Errorf("Expected ErrNoPreviousDraw, got %v", err)
		}
	})

	t.Run("MirrorsLastDraw", func(t *testing.T) {
		gen := newScriptedGenerator(0.25, []float64{0.1, -0.2})
		pg, err := NewPathGenerator(process, 1.0, 2, gen, false)
		if err != nil {
			t.Fatalf("Failed to create path generator: %v", err)
		}
		pg.Next()
		anti, err := pg.Antithetic()
		if err != nil {
			t.Fatalf("Antithetic failed: %v", err)
		}
		want := []float64{100, 99.9, 100.1}
		for i, w := range want {
			if math.Abs(anti.Path[i]-w) > 1e-12 {
				t.Errorf("Expected antithetic path[%d] = %v, got %v", i, w, anti.Path[i])
			}
		}
		if anti.Weight != 0.25 {
			t.Errorf("Expected antithetic weight 0.25, got %v", anti.Weight)
		}
	})

	t.Run("Repeatable", func(t *testing.T) {
		gen := newScriptedGenerator(1.0, []float64{0.1, -0.2})
		pg, err := NewPathGenerator(process, 1.0, 2, gen, false)
		if err != nil {
			t.Fatalf("Failed to create path generator: %v", err)
		}
		pg.Next()
		first, err := pg.Antithetic()
		if err != nil {
			t.Fatalf("Antithetic failed: %v", err)
		}
		second, err := pg.Antithetic()
		if err != nil {
			t.Fatalf("Antithetic failed: %v", err)
		}
		for i := range first.Path {
			if first.Path[i] != second.Path[i] {
				t.Errorf("Expected repeated antithetic calls to match at %d: %v vs %v", i, first.Path[i], second.Path[i])
			}
		}
	})

	t.Run("TracksLatestDraw", func(t *testing.T) {
		gen := newScriptedGenerator(1.0, []float64{0.1, -0.2}, []float64{0.3, 0.4})
		pg, err := NewPathGenerator(process, 1.0, 2, gen, false)
		if err != nil {
			t.Fatalf("Failed to create path generator: %v", err)
		}
		pg.Next()
		pg.Next()
		anti, err := pg.Antithetic()
		if err != nil {
			t.Fatalf("Antithetic failed: %v", err)
		}
		want := []float64{100, 99.7, 99.3}
		for i, w := range want {
			if math.Abs(anti.Path[i]-w) > 1e-12 {
				t.Errorf("Expected antithetic path[%d] = %v, got %v", i, w, anti.Path[i])
			}
		}
	})
}

func TestPathGeneratorBridge(t *testing.T) {
	// Two uniform steps over [0, 1]: the bridge maps variates [v0, v1] to
	// cumulative values [0.5*v0+0.5*v1, v0], so [0.5, 0.5] becomes [0.5, 0.5]
	// and differencing yields shocks [0.5, 0.0].
	process := additiveProcess{initial: 100}
	gen := newScriptedGenerator(1.0, []float64{0.5, 0.5})
	pg, err := NewPathGenerator(process, 1.0, 2, gen, true)
	if err != nil {
		t.Fatalf("Failed to create path generator: %v", err)
	}

	sample := pg.Next()
	want := []float64{100, 100.5, 100.5}
	for i, w := range want {
		if math.Abs(sample.Path[i]-w) > 1e-12 {
			t.Errorf("Expected bridged path[%d] = %v, got %v", i, w, sample.Path[i])
		}
	}

	anti, err := pg.Antithetic()
	if err != nil {
		t.Fatalf("Antithetic failed: %v", err)
	}
	wantAnti := []float64{100, 99.5, 99.5}
	for i, w := range wantAnti {
		if math.Abs(anti.Path[i]-w) > 1e-12 {
			t.Errorf("Expected bridged antithetic path[%d] = %v, got %v", i, w, anti.Path[i])
		}
	}
}

func TestPathGeneratorDeterminism(t *testing.T) {
	process := additiveProcess{initial: 100}

	build := func() *PathGenerator {
		gen, err := NewGaussianSequenceGenerator(12, 42)
		if err != nil {
			t.Fatalf("Failed to create generator: %v", err)
		}
		pg, err := NewPathGenerator(process, 1.0, 12, gen, false)
		if err != nil {
			t.Fatalf("Failed to create path generator: %v", err)
		}
		return pg
	}

	first := build()
	second := build()
	for draw := 0; draw < 5; draw++ {
		a := first.Next()
		b := second.Next()
		for i := range a.Path {
			if a.Path[i] != b.Path[i] {
				t.Fatalf("Expected identical paths for identical seeds, draw %d diverged at %d: %v vs %v", draw, i, a.Path[i], b.Path[i])
			}
		}
	}
}

func TestPathGeneratorOwnedSamples(t *testing.T) {
	process := additiveProcess{initial: 100}
	gen := newScriptedGenerator(1.0, []float64{0.1, -0.2})
	pg, err := NewPathGenerator(process, 1.0, 2, gen, false)
	if err != nil {
		t.Fatalf("Failed to create path generator: %v", err)
	}

	first := pg.Next()
	first.Path[1] = -999

	anti, err := pg.Antithetic()
	if err != nil {
		t.Fatalf("Antithetic failed: %v", err)
	}
	if math.Abs(anti.Path[1]-99.9) > 1e-12 {
		t.Errorf("Expected antithetic path unaffected by caller mutation, got %v", anti.Path[1])
	}

	second := pg.Next()
	if math.Abs(second.Path[1]-100.1) > 1e-12 {
		t.Errorf("Expected fresh sample unaffected by caller mutation, got %v", second.Path[1])
	}
}

func TestPathGeneratorAccessors(t *testing.T) {
	process := additiveProcess{initial: 100}
	gen := newScriptedGenerator(1.0, []float64{0.1, -0.2, 0.3, 0.1})
	pg, err := NewPathGenerator(process, 2.0, 4, gen, false)
	if err != nil {
		t.Fatalf("Failed to create path generator: %v", err)
	}
	if pg.Size() != 4 {
		t.Errorf("Expected size 4, got %d", pg.Size())
	}
	if pg.TimeGrid().Horizon() != 2.0 {
		t.Errorf("Expected horizon 2.0, got %v", pg.TimeGrid().Horizon())
	}
	if pg.TimeGrid().Steps() != 4 {
		t.Errorf("Expected 4 steps, got %d", pg.TimeGrid().Steps())
	}
}
