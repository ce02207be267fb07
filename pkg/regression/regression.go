// Package regression fits ordinary least-squares lines to (x, y) point sets.
package regression

import (
	"errors"
	"math"
)

var (
	// ErrEmptyInput is returned when no points are supplied.
	ErrEmptyInput = errors.New("regression: no points supplied")

	// ErrDegenerateInput is returned when the points do not span at least two
	// distinct x values, which leaves the slope undefined.
	ErrDegenerateInput = errors.New("regression: fewer than two distinct x values")

	// ErrInvalidRange is returned by Line.Sample for an empty, non-advancing
	// or unbounded range.
	ErrInvalidRange = errors.New("regression: invalid sample range")
)

// MaxSamples caps the number of points Line.Sample will produce.
const MaxSamples = 1 << 20

// Point is a single observation.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Sample returns points on the line for x = from, from+step, ... up to and
// including to.
func (l Line) Sample(from, to, step float64) ([]Point, error) {
	if !finite(from) || !finite(to) || !finite(step) || step <= 0 || to < from {
		return nil, ErrInvalidRange
	}

	// Derive x from the step count so rounding doesn't accumulate over the range
	steps := math.Floor((to-from)/step + 1e-9)
	if !finite(steps) || steps >= MaxSamples {
		return nil, ErrInvalidRange
	}
	count := int(steps) + 1
	points := make([]Point, count)
	for i := range points {
		x := from + float64(i)*step
		points[i] = Point{X: x, Y: l.At(x)}
	}
	return points, nil
}

// Fit computes the least-squares line through points in a single pass.
//
//	slope     = (n·Σxy − Σx·Σy) / (n·Σx² − (Σx)²)
//	intercept = (Σy − slope·Σx) / n
func Fit(points []Point) (Line, error) {
	if len(points) == 0 {
		return Line{}, ErrEmptyInput
	}

	var sumX, sumY, sumXY, sumXX float64
	distinct := false
	firstX := points[0].X

	for _, p := range points {
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumXX += p.X * p.X
		if p.X != firstX {
			distinct = true
		}
	}

	n := float64(len(points))
	denom := n*sumXX - sumX*sumX
	if !distinct || denom == 0 || !finite(denom) {
		return Line{}, ErrDegenerateInput
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	// Overflowing sums or non-finite inputs leave no usable line
	if !finite(slope) || !finite(intercept) {
		return Line{}, ErrDegenerateInput
	}
	return Line{Slope: slope, Intercept: intercept}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
