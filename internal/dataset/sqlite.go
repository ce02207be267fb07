package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chrissnell/wxcharts/pkg/precip"
	_ "modernc.org/sqlite"
)

const createWeatherDailySQL = `CREATE TABLE IF NOT EXISTS weather_daily (
	date     TEXT NOT NULL,
	min_temp REAL NOT NULL,
	max_temp REAL NOT NULL,
	precip   REAL NOT NULL
)`

// Rows come back in insertion order, which is the order the aggregator relies on.
const selectWeatherDailySQL = `SELECT date, min_temp, max_temp, precip FROM weather_daily ORDER BY rowid`

// SQLiteSource reads daily records from a weather_daily table.
type SQLiteSource struct {
	db         *sql.DB
	dbPath     string
	dateLayout string
}

// NewSQLiteSource opens the database at dbPath. Dates are stored as text in
// dateLayout.
func NewSQLiteSource(dbPath, dateLayout string) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteSource{
		db:         db,
		dbPath:     dbPath,
		dateLayout: dateLayout,
	}, nil
}

// Init creates the weather_daily table if it doesn't exist.
func (s *SQLiteSource) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createWeatherDailySQL); err != nil {
		return fmt.Errorf("failed to create weather_daily table: %w", err)
	}
	return nil
}

// Insert appends records to weather_daily in a single transaction.
func (s *SQLiteSource) Insert(ctx context.Context, records []precip.WeatherRecord) error {
	layout := s.dateLayout
	if layout == "" {
		layout = precip.DefaultDateLayout
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO weather_daily (date, min_temp, max_temp, precip) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Date.Format(layout), r.MinTemp, r.MaxTemp, r.Precip); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert record for %s: %w", r.Date.Format(layout), err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteSource) Records(ctx context.Context) ([]precip.WeatherRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectWeatherDailySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather_daily: %w", err)
	}
	defer rows.Close()

	var records []precip.WeatherRecord
	for rowNum := 1; rows.Next(); rowNum++ {
		var date string
		var rec precip.WeatherRecord
		if err := rows.Scan(&date, &rec.MinTemp, &rec.MaxTemp, &rec.Precip); err != nil {
			return nil, fmt.Errorf("failed to scan weather_daily row %d: %w", rowNum, err)
		}

		rec.Date, err = precip.ParseDate(date, s.dateLayout)
		if err != nil {
			var malformed *precip.MalformedRecordError
			if errors.As(err, &malformed) {
				malformed.Row = rowNum
			}
			return nil, err
		}
		if rec.Precip < 0 {
			return nil, &precip.MalformedRecordError{Row: rowNum, Field: "precip", Value: fmt.Sprint(rec.Precip), Err: errNegativePrecip}
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteSource) Close() error {
	return s.db.Close()
}
