package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const yamlDateLayout = "2006-01-02"

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

type serverYAML struct {
	ListenAddr string `yaml:"listen_addr,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	Cert       string `yaml:"cert,omitempty"`
	Key        string `yaml:"key,omitempty"`
}

type weatherYAML struct {
	Source           string `yaml:"source,omitempty"`
	Path             string `yaml:"path,omitempty"`
	DateLayout       string `yaml:"date_layout,omitempty"`
	ConnectionString string `yaml:"connection_string,omitempty"`
	Station          string `yaml:"station,omitempty"`
	Start            string `yaml:"start,omitempty"`
	End              string `yaml:"end,omitempty"`
}

type regressionYAML struct {
	SampleFrom float64 `yaml:"sample_from"`
	SampleTo   float64 `yaml:"sample_to"`
	SampleStep float64 `yaml:"sample_step"`
}

type loggingYAML struct {
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
}

// LoadConfig reads, defaults and validates the YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}
	return Parse(cfgFile)
}

// Parse decodes YAML configuration bytes.
func Parse(data []byte) (*ConfigData, error) {
	var yamlConfig struct {
		Server   serverYAML `yaml:"server,omitempty"`
		Anscombe struct {
			Path string `yaml:"path"`
		} `yaml:"anscombe"`
		Weather    weatherYAML    `yaml:"weather"`
		Regression regressionYAML `yaml:"regression,omitempty"`
		Logging    loggingYAML    `yaml:"logging,omitempty"`
	}

	if err := yaml.UnmarshalStrict(data, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Server: ServerData(yamlConfig.Server),
		Anscombe: AnscombeData{
			Path: yamlConfig.Anscombe.Path,
		},
		Weather: WeatherData{
			Source:           yamlConfig.Weather.Source,
			Path:             yamlConfig.Weather.Path,
			DateLayout:       yamlConfig.Weather.DateLayout,
			ConnectionString: yamlConfig.Weather.ConnectionString,
			Station:          yamlConfig.Weather.Station,
		},
		Regression: RegressionData(yamlConfig.Regression),
		Logging:    LoggingData(yamlConfig.Logging),
	}

	var err error
	if config.Weather.Start, err = parseDay("weather.start", yamlConfig.Weather.Start); err != nil {
		return nil, err
	}
	if config.Weather.End, err = parseDay("weather.end", yamlConfig.Weather.End); err != nil {
		return nil, err
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func parseDay(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(yamlDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: expected YYYY-MM-DD: %w", field, err)
	}
	return t, nil
}
