package regression

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive statistics Anscombe's quartet is known for:
// four very different point sets that share (nearly) all of these values.
type Summary struct {
	N           int     `json:"n"`
	MeanX       float64 `json:"meanX"`
	MeanY       float64 `json:"meanY"`
	VarianceX   float64 `json:"varianceX"`
	VarianceY   float64 `json:"varianceY"`
	Correlation float64 `json:"correlation"`
	Line        Line    `json:"line"`
}

// Summarize computes sample means, unbiased variances, the Pearson
// correlation and the least-squares line for points.
func Summarize(points []Point) (Summary, error) {
	line, err := Fit(points)
	if err != nil {
		return Summary{}, err
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}

	meanX, varX := stat.MeanVariance(xs, nil)
	meanY, varY := stat.MeanVariance(ys, nil)

	return Summary{
		N:           len(points),
		MeanX:       meanX,
		MeanY:       meanY,
		VarianceX:   varX,
		VarianceY:   varY,
		Correlation: stat.Correlation(xs, ys, nil),
		Line:        line,
	}, nil
}

// LabeledPoint is a Point tagged with the dataset it belongs to, as found in
// a table that stores several point sets side by side.
type LabeledPoint struct {
	Label string
	Point
}

// Partition groups rows by label. Each group keeps the rows' original order.
func Partition(rows []LabeledPoint) map[string][]Point {
	groups := make(map[string][]Point)
	for _, r := range rows {
		groups[r.Label] = append(groups[r.Label], r.Point)
	}
	return groups
}

// Labels returns the distinct labels of groups in sorted order.
func Labels(groups map[string][]Point) []string {
	labels := make([]string, 0, len(groups))
	for l := range groups {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
