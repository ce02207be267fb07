package precip

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDateLayout is the MM-DD-YYYY layout used by the NYC weather dataset.
const DefaultDateLayout = "01-02-2006"

// Extreme marks the day a temperature extreme occurred. Index is 0-based.
type Extreme struct {
	Index int       `json:"index"`
	Date  time.Time `json:"date"`
	Temp  float64   `json:"temp"`
}

// Extremes holds the lowest minimum and highest maximum temperature.
type Extremes struct {
	Low  Extreme `json:"low"`
	High Extreme `json:"high"`
}

// FindExtremes scans records for the lowest MinTemp and highest MaxTemp. The
// first occurrence wins on ties.
func FindExtremes(records []WeatherRecord) (Extremes, error) {
	if len(records) == 0 {
		return Extremes{}, ErrEmptyInput
	}

	first := records[0]
	ex := Extremes{
		Low:  Extreme{Index: 0, Date: first.Date, Temp: first.MinTemp},
		High: Extreme{Index: 0, Date: first.Date, Temp: first.MaxTemp},
	}
	for i, r := range records[1:] {
		if r.MinTemp < ex.Low.Temp {
			ex.Low = Extreme{Index: i + 1, Date: r.Date, Temp: r.MinTemp}
		}
		if r.MaxTemp > ex.High.Temp {
			ex.High = Extreme{Index: i + 1, Date: r.Date, Temp: r.MaxTemp}
		}
	}
	return ex, nil
}

// Span returns the dates of the first and last record in input order.
func Span(records []WeatherRecord) (start, end time.Time, err error) {
	if len(records) == 0 {
		return time.Time{}, time.Time{}, ErrEmptyInput
	}
	return records[0].Date, records[len(records)-1].Date, nil
}

// ParseDate parses a day-precision date. An empty layout means DefaultDateLayout.
func ParseDate(s, layout string) (time.Time, error) {
	if layout == "" {
		layout = DefaultDateLayout
	}
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &MalformedRecordError{
			Field: "date",
			Value: s,
			Err:   fmt.Errorf("expected layout %s: %w", layout, err),
		}
	}
	return t, nil
}
