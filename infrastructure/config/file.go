package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML overlay read from CONFIG_FILE. Unset keys leave the
// defaults alone.
type FileConfig struct {
	ServerAddress    string `yaml:"server_address"`
	Environment      string `yaml:"environment"`
	LogLevel         string `yaml:"log_level"`
	AWSRegion        string `yaml:"aws_region"`
	DynamoDBEndpoint string `yaml:"dynamodb_endpoint"`
	TablePrefix      string `yaml:"table_prefix"`
	StoreDriver      string `yaml:"store_driver"`
	EventBusName     string `yaml:"event_bus_name"`
	OTLPEndpoint     string `yaml:"otlp_endpoint"`
	EnableMetrics    *bool  `yaml:"enable_metrics"`
	EnableTracing    *bool  `yaml:"enable_tracing"`
	EnableCORS       *bool  `yaml:"enable_cors"`
}

// LoadFile reads and decodes a YAML configuration file
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file FileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &file, nil
}

// Apply copies every key set in the file onto cfg
func (f *FileConfig) Apply(cfg *Config) {
	setString(&cfg.ServerAddress, f.ServerAddress)
	if f.Environment != "" {
		cfg.Environment = Environment(f.Environment)
		if f.TablePrefix == "" {
			cfg.TablePrefix = defaultTablePrefix(cfg.Environment)
		}
	}
	setString(&cfg.LogLevel, f.LogLevel)
	setString(&cfg.AWSRegion, f.AWSRegion)
	setString(&cfg.DynamoDBEndpoint, f.DynamoDBEndpoint)
	setString(&cfg.TablePrefix, f.TablePrefix)
	setString(&cfg.StoreDriver, f.StoreDriver)
	setString(&cfg.EventBusName, f.EventBusName)
	setString(&cfg.OTLPEndpoint, f.OTLPEndpoint)
	setBool(&cfg.EnableMetrics, f.EnableMetrics)
	setBool(&cfg.EnableTracing, f.EnableTracing)
	setBool(&cfg.EnableCORS, f.EnableCORS)
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func setBool(dst *bool, value *bool) {
	if value != nil {
		*dst = *value
	}
}
