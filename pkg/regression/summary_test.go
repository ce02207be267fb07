package regression

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestSummarizeQuartet(t *testing.T) {
	for _, label := range []string{"I", "II", "III", "IV"} {
		t.Run(label, func(t *testing.T) {
			s, err := Summarize(quartet(label))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			checks := []struct {
				name     string
				got      float64
				expected float64
				epsilon  float64
			}{
				{"MeanX", s.MeanX, 9, 1e-9},
				{"VarianceX", s.VarianceX, 11, 1e-9},
				{"MeanY", s.MeanY, 7.50, 0.01},
				{"VarianceY", s.VarianceY, 4.125, 0.005},
				{"Correlation", s.Correlation, 0.816, 0.002},
				{"Slope", s.Line.Slope, 0.5, 0.01},
			}
			for _, c := range checks {
				if math.Abs(c.got-c.expected) > c.epsilon {
					t.Errorf("%s = %.4f, expected %.4f ± %.4f", c.name, c.got, c.expected, c.epsilon)
				}
			}
			if s.N != 11 {
				t.Errorf("N = %d, expected 11", s.N)
			}
		})
	}
}

func TestSummarizeErrors(t *testing.T) {
	if _, err := Summarize(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("err = %v, expected ErrEmptyInput", err)
	}
	if _, err := Summarize([]Point{{2, 1}, {2, 3}}); !errors.Is(err, ErrDegenerateInput) {
		t.Errorf("err = %v, expected ErrDegenerateInput", err)
	}
}

func TestPartition(t *testing.T) {
	rows := []LabeledPoint{
		{Label: "II", Point: Point{X: 1, Y: 2}},
		{Label: "I", Point: Point{X: 3, Y: 4}},
		{Label: "II", Point: Point{X: 5, Y: 6}},
		{Label: "I", Point: Point{X: 7, Y: 8}},
	}

	groups := Partition(rows)

	expected := map[string][]Point{
		"I":  {{3, 4}, {7, 8}},
		"II": {{1, 2}, {5, 6}},
	}
	if !reflect.DeepEqual(groups, expected) {
		t.Errorf("Partition = %v, expected %v", groups, expected)
	}

	if labels := Labels(groups); !reflect.DeepEqual(labels, []string{"I", "II"}) {
		t.Errorf("Labels = %v", labels)
	}
}
