package config

import (
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/wxcharts/pkg/regression"
)

// Weather source types
const (
	SourceCSV         = "csv"
	SourceSQLite      = "sqlite"
	SourceTimescaleDB = "timescaledb"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	LoadConfig() (*ConfigData, error)
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Server     ServerData     `json:"server"`
	Anscombe   AnscombeData   `json:"anscombe"`
	Weather    WeatherData    `json:"weather"`
	Regression RegressionData `json:"regression"`
	Logging    LoggingData    `json:"logging"`
}

type ServerData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
	Cert       string `json:"cert,omitempty"`
	Key        string `json:"key,omitempty"`
}

type AnscombeData struct {
	Path string `json:"path"`
}

// WeatherData selects where daily weather records come from.
type WeatherData struct {
	Source           string    `json:"source"`
	Path             string    `json:"path,omitempty"`
	DateLayout       string    `json:"date_layout,omitempty"`
	ConnectionString string    `json:"connection_string,omitempty"`
	Station          string    `json:"station,omitempty"`
	Start            time.Time `json:"start,omitempty"`
	End              time.Time `json:"end,omitempty"`
}

// RegressionData is the x range the fitted line is sampled over.
type RegressionData struct {
	SampleFrom float64 `json:"sample_from"`
	SampleTo   float64 `json:"sample_to"`
	SampleStep float64 `json:"sample_step"`
}

type LoggingData struct {
	File       string `json:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty"`
}

// ApplyDefaults fills unset fields.
func (c *ConfigData) ApplyDefaults() {
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Weather.Source == "" {
		c.Weather.Source = SourceCSV
	}
	if c.Weather.DateLayout == "" {
		c.Weather.DateLayout = "01-02-2006"
	}
	if c.Regression.SampleStep == 0 && c.Regression.SampleFrom == 0 && c.Regression.SampleTo == 0 {
		// The quartet charts draw the fitted line across x = 1..20
		c.Regression = RegressionData{SampleFrom: 1, SampleTo: 20, SampleStep: 1}
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = 50
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = 3
	}
}

// Validate reports the first configuration problem found.
func (c *ConfigData) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if (c.Server.Cert == "") != (c.Server.Key == "") {
		return fmt.Errorf("server.cert and server.key must be set together")
	}
	if c.Anscombe.Path == "" {
		return fmt.Errorf("anscombe.path is required")
	}

	switch c.Weather.Source {
	case SourceCSV, SourceSQLite:
		if c.Weather.Path == "" {
			return fmt.Errorf("weather.path is required for source %q", c.Weather.Source)
		}
	case SourceTimescaleDB:
		if c.Weather.ConnectionString == "" {
			return fmt.Errorf("weather.connection_string is required for source %q", c.Weather.Source)
		}
		if c.Weather.Station == "" {
			return fmt.Errorf("weather.station is required for source %q", c.Weather.Source)
		}
		if c.Weather.Start.IsZero() || !c.Weather.End.After(c.Weather.Start) {
			return fmt.Errorf("weather.start and weather.end must form a non-empty range")
		}
	default:
		return fmt.Errorf("unsupported weather.source %q. Use 'csv', 'sqlite' or 'timescaledb'", c.Weather.Source)
	}

	r := c.Regression
	for _, v := range []float64{r.SampleFrom, r.SampleTo, r.SampleStep} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("regression sample range %v..%v step %v is invalid", r.SampleFrom, r.SampleTo, r.SampleStep)
		}
	}
	if r.SampleStep <= 0 || r.SampleTo < r.SampleFrom || (r.SampleTo-r.SampleFrom)/r.SampleStep >= regression.MaxSamples {
		return fmt.Errorf("regression sample range %v..%v step %v is invalid",
			c.Regression.SampleFrom, c.Regression.SampleTo, c.Regression.SampleStep)
	}
	return nil
}
