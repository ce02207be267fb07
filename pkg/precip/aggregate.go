package precip

import "time"

type monthKey struct {
	year  int
	month time.Month
}

func keyOf(t time.Time) monthKey {
	return monthKey{year: t.Year(), month: t.Month()}
}

// foldState is the accumulator threaded through Aggregate.
type foldState struct {
	done    []MonthlySeries
	key     monthKey
	total   float64
	current []SeriesPoint
}

func (s foldState) flush() foldState {
	if len(s.current) > 0 {
		s.done = append(s.done, MonthlySeries{
			Year:   s.key.year,
			Month:  s.key.month,
			Points: s.current,
		})
		s.current = nil
	}
	return s
}

func (s foldState) step(i int, r WeatherRecord) foldState {
	k := keyOf(r.Date)
	if len(s.current) > 0 && k == s.key {
		s.total += r.Precip
		s.current = append(s.current, SeriesPoint{Index: i + 1, Total: s.total})
		return s
	}

	s = s.flush()
	s.key = k
	s.total = r.Precip
	s.current = []SeriesPoint{{Index: i + 1, Total: s.total}}
	return s
}

// Aggregate produces one cumulative series per contiguous run of records
// sharing a (year, month). Records are taken in the order given and are not
// sorted: a month interrupted by another month yields two series.
func Aggregate(records []WeatherRecord) []MonthlySeries {
	state := foldState{done: []MonthlySeries{}}
	for i, r := range records {
		state = state.step(i, r)
	}
	return state.flush().done
}
