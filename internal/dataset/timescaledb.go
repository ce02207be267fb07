package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/chrissnell/wxcharts/internal/database"
	"github.com/chrissnell/wxcharts/pkg/precip"
	"gorm.io/gorm"
)

// DailyBucket is a row of remoteweather's weather_1d continuous aggregate.
type DailyBucket struct {
	Bucket     time.Time `gorm:"column:bucket"`
	MinOutTemp *float64  `gorm:"column:min_outtemp"`
	MaxOutTemp *float64  `gorm:"column:max_outtemp"`
	PeriodRain *float64  `gorm:"column:period_rain"`
}

// TimescaleSource reads one station's daily buckets for [Start, End).
type TimescaleSource struct {
	DB      *gorm.DB
	Station string
	Start   time.Time
	End     time.Time
}

// NewTimescaleSource connects to the database at connectionString.
func NewTimescaleSource(connectionString, station string, start, end time.Time) (*TimescaleSource, error) {
	db, err := database.CreateConnection(connectionString)
	if err != nil {
		return nil, fmt.Errorf("dataset: could not connect to TimescaleDB: %w", err)
	}
	return &TimescaleSource{DB: db, Station: station, Start: start, End: end}, nil
}

// Close releases the connection pool.
func (s *TimescaleSource) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *TimescaleSource) Records(ctx context.Context) ([]precip.WeatherRecord, error) {
	var buckets []DailyBucket

	err := s.DB.WithContext(ctx).
		Table("weather_1d").
		Select("bucket, min_outtemp, max_outtemp, period_rain").
		Where("stationname = ? AND bucket >= ? AND bucket < ?", s.Station, s.Start, s.End).
		Order("bucket").
		Find(&buckets).Error
	if err != nil {
		return nil, fmt.Errorf("error querying weather_1d for %s: %w", s.Station, err)
	}

	return bucketsToRecords(buckets)
}

// bucketsToRecords converts aggregate rows. A day without temperature data is
// malformed; a day without rain data had no rain.
func bucketsToRecords(buckets []DailyBucket) ([]precip.WeatherRecord, error) {
	records := make([]precip.WeatherRecord, 0, len(buckets))
	for i, b := range buckets {
		day := b.Bucket.UTC()
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

		if b.MinOutTemp == nil || b.MaxOutTemp == nil {
			return nil, &precip.MalformedRecordError{
				Row:   i + 1,
				Field: "outtemp",
				Value: day.Format(precip.DefaultDateLayout),
				Err:   fmt.Errorf("no temperature readings for day"),
			}
		}

		rec := precip.WeatherRecord{
			Date:    day,
			MinTemp: *b.MinOutTemp,
			MaxTemp: *b.MaxOutTemp,
		}
		if b.PeriodRain != nil {
			rec.Precip = *b.PeriodRain
		}
		if rec.Precip < 0 {
			return nil, &precip.MalformedRecordError{Row: i + 1, Field: "period_rain", Value: fmt.Sprint(rec.Precip), Err: errNegativePrecip}
		}
		records = append(records, rec)
	}
	return records, nil
}
