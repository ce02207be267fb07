// Package precip turns a daily weather record sequence into cumulative
// month-by-month precipitation series and temperature extremes.
package precip

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyInput is returned by operations that need at least one record.
var ErrEmptyInput = errors.New("precip: no records supplied")

// WeatherRecord is one day of observations.
type WeatherRecord struct {
	Date    time.Time `json:"date"`
	MinTemp float64   `json:"minTemp"`
	MaxTemp float64   `json:"maxTemp"`
	Precip  float64   `json:"precip"`
}

// SeriesPoint is a running monthly precipitation total. Index is the 1-based
// position of the contributing record within the whole input.
type SeriesPoint struct {
	Index int     `json:"index"`
	Total float64 `json:"total"`
}

// MonthlySeries holds the running totals of one contiguous run of records
// sharing a calendar month.
type MonthlySeries struct {
	Year   int           `json:"year"`
	Month  time.Month    `json:"month"`
	Points []SeriesPoint `json:"points"`
}

// Last returns the final point of the series.
func (s MonthlySeries) Last() SeriesPoint {
	if len(s.Points) == 0 {
		return SeriesPoint{}
	}
	return s.Points[len(s.Points)-1]
}

// Total is the accumulated precipitation of the run.
func (s MonthlySeries) Total() float64 {
	return s.Last().Total
}

// MalformedRecordError reports an input row that cannot become a WeatherRecord.
type MalformedRecordError struct {
	Row   int // 1-based data row, 0 when unknown
	Field string
	Value string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("precip: malformed record at row %d: %s %q: %v", e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("precip: malformed %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
