// Package dataset loads point sets and daily weather records from CSV files,
// SQLite databases and a remoteweather TimescaleDB.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/chrissnell/wxcharts/pkg/precip"
	"github.com/chrissnell/wxcharts/pkg/regression"
)

// MalformedRowError reports a CSV row with a value that isn't usable.
type MalformedRowError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("dataset: row %d: column %s value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

var errNegativePrecip = errors.New("precipitation cannot be negative")

// header maps column names to their index in a CSV row.
type header map[string]int

func readHeader(r *csv.Reader, required ...string) (header, error) {
	names, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("dataset: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: reading header: %w", err)
	}

	h := make(header, len(names))
	for i, n := range names {
		h[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(n, "\ufeff")))] = i
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("dataset: missing required column %q", col)
		}
	}
	return h, nil
}

func (h header) get(row []string, col string) string {
	i := h[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value")
	}
	return f, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr
}

// ReadAnscombe reads a table with dataset, x and y columns.
func ReadAnscombe(r io.Reader) ([]regression.LabeledPoint, error) {
	cr := newReader(r)
	h, err := readHeader(cr, "dataset", "x", "y")
	if err != nil {
		return nil, err
	}

	var rows []regression.LabeledPoint
	for rowNum := 1; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: reading row %d: %w", rowNum, err)
		}

		p := regression.LabeledPoint{Label: h.get(row, "dataset")}
		for _, col := range []string{"x", "y"} {
			v := h.get(row, col)
			f, err := parseFloat(v)
			if err != nil {
				return nil, &MalformedRowError{Row: rowNum, Column: col, Value: v, Err: err}
			}
			if col == "x" {
				p.X = f
			} else {
				p.Y = f
			}
		}
		rows = append(rows, p)
	}

	return rows, nil
}

// ReadWeather reads a table with date, min_temp, max_temp and precip columns.
// Rows are returned in file order.
func ReadWeather(r io.Reader, layout string) ([]precip.WeatherRecord, error) {
	cr := newReader(r)
	h, err := readHeader(cr, "date", "min_temp", "max_temp", "precip")
	if err != nil {
		return nil, err
	}

	var records []precip.WeatherRecord
	for rowNum := 1; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: reading row %d: %w", rowNum, err)
		}

		rec, err := weatherRecord(
			h.get(row, "date"), h.get(row, "min_temp"), h.get(row, "max_temp"), h.get(row, "precip"), layout)
		if err != nil {
			var malformed *precip.MalformedRecordError
			if errors.As(err, &malformed) {
				malformed.Row = rowNum
			}
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// weatherRecord validates the textual fields of one day.
func weatherRecord(date, minTemp, maxTemp, rain, layout string) (precip.WeatherRecord, error) {
	d, err := precip.ParseDate(date, layout)
	if err != nil {
		return precip.WeatherRecord{}, err
	}

	rec := precip.WeatherRecord{Date: d}
	fields := []struct {
		name string
		val  string
		dst  *float64
	}{
		{"min_temp", minTemp, &rec.MinTemp},
		{"max_temp", maxTemp, &rec.MaxTemp},
		{"precip", rain, &rec.Precip},
	}
	for _, f := range fields {
		v, err := parseFloat(f.val)
		if err != nil {
			return precip.WeatherRecord{}, &precip.MalformedRecordError{Field: f.name, Value: f.val, Err: err}
		}
		*f.dst = v
	}

	if rec.Precip < 0 {
		return precip.WeatherRecord{}, &precip.MalformedRecordError{Field: "precip", Value: rain, Err: errNegativePrecip}
	}
	return rec, nil
}
