package regression

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"
)

// Anscombe's quartet. Sets I-III share x values.
var (
	quartetX   = []float64{10, 8, 13, 9, 11, 14, 6, 4, 12, 7, 5}
	quartetIVX = []float64{8, 8, 8, 8, 8, 8, 8, 19, 8, 8, 8}
	quartetY   = map[string][]float64{
		"I":   {8.04, 6.95, 7.58, 8.81, 8.33, 9.96, 7.24, 4.26, 10.84, 4.82, 5.68},
		"II":  {9.14, 8.14, 8.74, 8.77, 9.26, 8.10, 6.13, 3.10, 9.13, 7.26, 4.74},
		"III": {7.46, 6.77, 12.74, 7.11, 7.81, 8.84, 6.08, 5.39, 8.15, 6.42, 5.73},
		"IV":  {6.58, 5.76, 7.71, 8.84, 8.47, 7.04, 5.25, 12.50, 5.56, 7.91, 6.89},
	}
)

func quartet(label string) []Point {
	xs := quartetX
	if label == "IV" {
		xs = quartetIVX
	}
	points := make([]Point, len(xs))
	for i := range xs {
		points[i] = Point{X: xs[i], Y: quartetY[label][i]}
	}
	return points
}

func ssr(points []Point, l Line) float64 {
	var sum float64
	for _, p := range points {
		r := p.Y - l.At(p.X)
		sum += r * r
	}
	return sum
}

func TestFit(t *testing.T) {
	tests := []struct {
		name          string
		points        []Point
		wantSlope     float64
		wantIntercept float64
		epsilon       float64
	}{
		{
			name:          "identity",
			points:        []Point{{1, 1}, {2, 2}, {3, 3}},
			wantSlope:     1,
			wantIntercept: 0,
			epsilon:       1e-12,
		},
		{
			name:          "two points",
			points:        []Point{{0, 1}, {2, 5}},
			wantSlope:     2,
			wantIntercept: 1,
			epsilon:       1e-12,
		},
		{
			name:          "horizontal",
			points:        []Point{{-1, 4}, {0, 4}, {7, 4}},
			wantSlope:     0,
			wantIntercept: 4,
			epsilon:       1e-12,
		},
		{
			name:          "negative slope with noise",
			points:        []Point{{1, 9.9}, {2, 8.1}, {3, 6.0}, {4, 3.9}, {5, 2.1}},
			wantSlope:     -1.98,
			wantIntercept: 11.94,
			epsilon:       1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := Fit(tt.points)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(line.Slope-tt.wantSlope) > tt.epsilon {
				t.Errorf("Slope = %v, expected %v", line.Slope, tt.wantSlope)
			}
			if math.Abs(line.Intercept-tt.wantIntercept) > tt.epsilon {
				t.Errorf("Intercept = %v, expected %v", line.Intercept, tt.wantIntercept)
			}
		})
	}
}

func TestFitErrors(t *testing.T) {
	tests := []struct {
		name    string
		points  []Point
		wantErr error
	}{
		{"nil input", nil, ErrEmptyInput},
		{"empty input", []Point{}, ErrEmptyInput},
		{"single point", []Point{{3, 4}}, ErrDegenerateInput},
		{"single x value", []Point{{1, 1}, {1, 5}}, ErrDegenerateInput},
		{"repeated fractional x", []Point{{0.1, 1}, {0.1, 2}, {0.1, 3}}, ErrDegenerateInput},
		{"overflowing sums", []Point{{1e200, 1}, {2e200, 2}}, ErrDegenerateInput},
		{"NaN y", []Point{{1, math.NaN()}, {2, 1}}, ErrDegenerateInput},
		{"infinite x", []Point{{math.Inf(1), 1}, {2, 1}}, ErrDegenerateInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := Fit(tt.points)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, expected %v", err, tt.wantErr)
			}
			if line != (Line{}) {
				t.Errorf("expected zero Line on error, got %+v", line)
			}
		})
	}
}

func TestFitQuartet(t *testing.T) {
	for _, label := range []string{"I", "II", "III", "IV"} {
		t.Run(label, func(t *testing.T) {
			line, err := Fit(quartet(label))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(line.Slope-0.5) > 0.01 {
				t.Errorf("Slope = %.4f, expected ~0.5", line.Slope)
			}
			if math.Abs(line.Intercept-3.0) > 0.01 {
				t.Errorf("Intercept = %.4f, expected ~3.0", line.Intercept)
			}
		})
	}
}

func TestFitMatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(40)
		points := make([]Point, n)
		xs := make([]float64, n)
		ys := make([]float64, n)
		for i := range points {
			x := rng.Float64()*100 - 50
			y := 3*x - 7 + rng.NormFloat64()*5
			points[i] = Point{X: x, Y: y}
			xs[i], ys[i] = x, y
		}

		line, err := Fit(points)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}

		alpha, beta := stat.LinearRegression(xs, ys, nil, false)
		if math.Abs(line.Slope-beta) > 1e-6 {
			t.Errorf("trial %d: Slope = %v, gonum = %v", trial, line.Slope, beta)
		}
		if math.Abs(line.Intercept-alpha) > 1e-6 {
			t.Errorf("trial %d: Intercept = %v, gonum = %v", trial, line.Intercept, alpha)
		}
	}
}

func TestFitMinimizesResiduals(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 10; trial++ {
		points := make([]Point, 6)
		for i := range points {
			points[i] = Point{X: float64(i), Y: rng.Float64() * 10}
		}

		best, err := Fit(points)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}
		bestSSR := ssr(points, best)

		// Any perturbed line on a small grid around the fit must do no better
		for ds := -1.0; ds <= 1.0; ds += 0.05 {
			for di := -2.0; di <= 2.0; di += 0.1 {
				candidate := Line{Slope: best.Slope + ds, Intercept: best.Intercept + di}
				if got := ssr(points, candidate); got < bestSSR-1e-9 {
					t.Fatalf("trial %d: line %+v has SSR %.6f < fitted %.6f", trial, candidate, got, bestSSR)
				}
			}
		}
	}
}

func TestFitIdempotent(t *testing.T) {
	points := quartet("III")

	first, err := Fit(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := Fit(points)

	if math.Float64bits(first.Slope) != math.Float64bits(second.Slope) ||
		math.Float64bits(first.Intercept) != math.Float64bits(second.Intercept) {
		t.Errorf("Fit not bit-identical across calls: %+v vs %+v", first, second)
	}
}

func TestSample(t *testing.T) {
	line := Line{Slope: 0.5, Intercept: 3}

	points, err := line.Sample(1, 20, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 20 {
		t.Fatalf("expected 20 points, got %d", len(points))
	}
	if points[0] != (Point{X: 1, Y: 3.5}) {
		t.Errorf("first point = %+v", points[0])
	}
	if points[19] != (Point{X: 20, Y: 13}) {
		t.Errorf("last point = %+v", points[19])
	}

	fractional, err := line.Sample(0, 1, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fractional) != 11 {
		t.Errorf("expected 11 points for 0..1 step 0.1, got %d", len(fractional))
	}

	invalid := [][3]float64{
		{1, 20, 0},
		{1, 20, -1},
		{20, 1, 1},
		{math.NaN(), 1, 1},
		{1, math.NaN(), 1},
		{1, 20, math.NaN()},
		{1, 20, math.Inf(1)},
		{1, math.Inf(1), 1},
		{0, 1e300, 1e-300},
		{0, MaxSamples, 1},
	}
	for _, r := range invalid {
		if _, err := line.Sample(r[0], r[1], r[2]); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("Sample(%v, %v, %v) err = %v, expected ErrInvalidRange", r[0], r[1], r[2], err)
		}
	}
}
