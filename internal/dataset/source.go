package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/chrissnell/wxcharts/pkg/precip"
	"github.com/chrissnell/wxcharts/pkg/regression"
)

// WeatherSource supplies daily weather records in chronological order.
type WeatherSource interface {
	Records(ctx context.Context) ([]precip.WeatherRecord, error)
}

// AnscombeSource supplies labeled point sets.
type AnscombeSource interface {
	Points(ctx context.Context) ([]regression.LabeledPoint, error)
}

// CSVSource reads weather records from a CSV file on every call.
type CSVSource struct {
	Path       string
	DateLayout string
}

// NewCSVSource returns a source for the file at path.
func NewCSVSource(path, layout string) *CSVSource {
	return &CSVSource{Path: path, DateLayout: layout}
}

func (s *CSVSource) Records(ctx context.Context) ([]precip.WeatherRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("dataset: opening weather file: %w", err)
	}
	defer f.Close()

	return ReadWeather(f, s.DateLayout)
}

// CSVAnscombeSource reads the quartet table from a CSV file on every call.
type CSVAnscombeSource struct {
	Path string
}

func NewCSVAnscombeSource(path string) *CSVAnscombeSource {
	return &CSVAnscombeSource{Path: path}
}

func (s *CSVAnscombeSource) Points(ctx context.Context) ([]regression.LabeledPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("dataset: opening anscombe file: %w", err)
	}
	defer f.Close()

	return ReadAnscombe(f)
}
