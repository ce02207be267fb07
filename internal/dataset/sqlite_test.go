package dataset

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/chrissnell/wxcharts/pkg/precip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSourceRoundTrip(t *testing.T) {
	ctx := context.Background()

	src, err := NewSQLiteSource(filepath.Join(t.TempDir(), "weather.db"), precip.DefaultDateLayout)
	require.NoError(t, err)
	defer src.Close()

	require.NoError(t, src.Init(ctx))

	day := func(m time.Month, d int) time.Time { return time.Date(2016, m, d, 0, 0, 0, 0, time.UTC) }
	in := []precip.WeatherRecord{
		{Date: day(time.March, 31), MinTemp: 40, MaxTemp: 55, Precip: 0.2},
		{Date: day(time.April, 1), MinTemp: 41, MaxTemp: 60, Precip: 0},
		// Out of order on purpose; the table preserves insertion order
		{Date: day(time.March, 30), MinTemp: 38, MaxTemp: 50, Precip: 0.4},
	}
	require.NoError(t, src.Insert(ctx, in))

	out, err := src.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	series := precip.Aggregate(out)
	assert.Len(t, series, 3)
}

func TestSQLiteSourceMalformedDate(t *testing.T) {
	ctx := context.Background()

	src, err := NewSQLiteSource(filepath.Join(t.TempDir(), "weather.db"), precip.DefaultDateLayout)
	require.NoError(t, err)
	defer src.Close()
	require.NoError(t, src.Init(ctx))

	_, err = src.db.ExecContext(ctx, `INSERT INTO weather_daily (date, min_temp, max_temp, precip) VALUES ('not-a-date', 1, 2, 0)`)
	require.NoError(t, err)

	_, err = src.Records(ctx)
	var malformed *precip.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 1, malformed.Row)
	assert.Equal(t, "date", malformed.Field)
}

func TestBucketsToRecords(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	nyc := time.FixedZone("EDT", -4*60*60)

	buckets := []DailyBucket{
		{Bucket: time.Date(2016, time.May, 1, 0, 0, 0, 0, time.UTC), MinOutTemp: f(45), MaxOutTemp: f(61), PeriodRain: f(0.3)},
		{Bucket: time.Date(2016, time.May, 1, 20, 0, 0, 0, nyc), MinOutTemp: f(47), MaxOutTemp: f(66)},
	}

	records, err := bucketsToRecords(buckets)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0.3, records[0].Precip)
	assert.Equal(t, 0.0, records[1].Precip)
	// 20:00 EDT is 00:00 UTC the following day
	assert.Equal(t, time.Date(2016, time.May, 2, 0, 0, 0, 0, time.UTC), records[1].Date)

	_, err = bucketsToRecords([]DailyBucket{{Bucket: time.Now(), MaxOutTemp: f(1)}})
	var malformed *precip.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "outtemp", malformed.Field)
}
