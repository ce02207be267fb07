// Package charts assembles renderer-ready chart data from the dataset sources.
// Values are returned raw; formatting for display is the renderer's job.
package charts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chrissnell/wxcharts/internal/dataset"
	"github.com/chrissnell/wxcharts/pkg/precip"
	"github.com/chrissnell/wxcharts/pkg/regression"
)

// ErrUnknownDataset is returned for a quartet label not present in the source.
var ErrUnknownDataset = errors.New("charts: unknown dataset")

// SampleRange is the x range a fitted line is sampled over.
type SampleRange struct {
	From, To, Step float64
}

// AnscombeChart is one scatter plot with its regression line.
type AnscombeChart struct {
	Dataset    string             `json:"dataset"`
	Points     []regression.Point `json:"points"`
	Line       regression.Line    `json:"line"`
	LinePoints []regression.Point `json:"linePoints"`
	Summary    regression.Summary `json:"summary"`
}

// PrecipChart is the cumulative monthly precipitation chart.
type PrecipChart struct {
	Start  time.Time              `json:"start"`
	End    time.Time              `json:"end"`
	Days   int                    `json:"days"`
	Series []precip.MonthlySeries `json:"series"`
}

// TemperatureBar is one day's min/max temperature.
type TemperatureBar struct {
	Date    time.Time `json:"date"`
	MinTemp float64   `json:"minTemp"`
	MaxTemp float64   `json:"maxTemp"`
}

// TemperatureChart is the daily temperature bar chart with its yearly markers.
type TemperatureChart struct {
	Start    time.Time        `json:"start"`
	End      time.Time        `json:"end"`
	Bars     []TemperatureBar `json:"bars"`
	Extremes precip.Extremes  `json:"extremes"`
}

// Service computes chart data. Every call reads its source and recomputes.
type Service struct {
	anscombe dataset.AnscombeSource
	weather  dataset.WeatherSource
	sample   SampleRange
}

// NewService creates a service over the given sources.
func NewService(anscombe dataset.AnscombeSource, weather dataset.WeatherSource, sample SampleRange) *Service {
	return &Service{
		anscombe: anscombe,
		weather:  weather,
		sample:   sample,
	}
}

// Anscombe returns the chart for one quartet label.
func (s *Service) Anscombe(ctx context.Context, label string) (AnscombeChart, error) {
	rows, err := s.anscombe.Points(ctx)
	if err != nil {
		return AnscombeChart{}, err
	}

	points, ok := regression.Partition(rows)[label]
	if !ok {
		return AnscombeChart{}, fmt.Errorf("%w: %q", ErrUnknownDataset, label)
	}
	return s.anscombeChart(label, points)
}

// AnscombeAll returns a chart per label, ordered by label.
func (s *Service) AnscombeAll(ctx context.Context) ([]AnscombeChart, error) {
	rows, err := s.anscombe.Points(ctx)
	if err != nil {
		return nil, err
	}

	groups := regression.Partition(rows)
	result := make([]AnscombeChart, 0, len(groups))
	for _, label := range regression.Labels(groups) {
		chart, err := s.anscombeChart(label, groups[label])
		if err != nil {
			return nil, err
		}
		result = append(result, chart)
	}
	return result, nil
}

func (s *Service) anscombeChart(label string, points []regression.Point) (AnscombeChart, error) {
	summary, err := regression.Summarize(points)
	if err != nil {
		return AnscombeChart{}, fmt.Errorf("dataset %s: %w", label, err)
	}

	linePoints, err := summary.Line.Sample(s.sample.From, s.sample.To, s.sample.Step)
	if err != nil {
		return AnscombeChart{}, fmt.Errorf("dataset %s: %w", label, err)
	}

	return AnscombeChart{
		Dataset:    label,
		Points:     points,
		Line:       summary.Line,
		LinePoints: linePoints,
		Summary:    summary,
	}, nil
}

// Precipitation returns the running monthly totals of the weather source.
func (s *Service) Precipitation(ctx context.Context) (PrecipChart, error) {
	records, err := s.weather.Records(ctx)
	if err != nil {
		return PrecipChart{}, err
	}

	start, end, err := precip.Span(records)
	if err != nil {
		return PrecipChart{}, err
	}

	return PrecipChart{
		Start:  start,
		End:    end,
		Days:   len(records),
		Series: precip.Aggregate(records),
	}, nil
}

// Temperature returns daily bars and the yearly low/high.
func (s *Service) Temperature(ctx context.Context) (TemperatureChart, error) {
	records, err := s.weather.Records(ctx)
	if err != nil {
		return TemperatureChart{}, err
	}

	extremes, err := precip.FindExtremes(records)
	if err != nil {
		return TemperatureChart{}, err
	}
	start, end, _ := precip.Span(records)

	bars := make([]TemperatureBar, len(records))
	for i, r := range records {
		bars[i] = TemperatureBar{Date: r.Date, MinTemp: r.MinTemp, MaxTemp: r.MaxTemp}
	}

	return TemperatureChart{
		Start:    start,
		End:      end,
		Bars:     bars,
		Extremes: extremes,
	}, nil
}
