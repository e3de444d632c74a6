package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Environment is the deployment environment
type Environment string

const (
	EnvDevelopment Environment = "Development"
	EnvTesting     Environment = "Testing"
	EnvProduction  Environment = "Production"
)

// Store drivers
const (
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   Environment

	// AWS configuration
	AWSRegion        string
	DynamoDBEndpoint string // empty for the regional endpoint
	TablePrefix      string
	StoreDriver      string
	EventBusName     string // empty disables event publication

	// Lambda configuration
	IsLambda bool

	// Logging
	LogLevel string

	// Observability
	OTLPEndpoint string

	// Optional YAML overlay, watched for log level changes
	ConfigFile string

	// Feature flags
	EnableMetrics bool
	EnableTracing bool
	EnableCORS    bool
}

// LoadConfig loads configuration from defaults, the optional CONFIG_FILE
// overlay and environment variables, in that order of precedence.
func LoadConfig() (*Config, error) {
	env := Environment(getEnv("DEPLOY_ENV", string(EnvDevelopment)))

	cfg := &Config{
		ServerAddress: ":8080",
		Environment:   env,
		AWSRegion:     "us-east-1",
		TablePrefix:   defaultTablePrefix(env),
		StoreDriver:   DriverDynamoDB,
		LogLevel:      "info",
		EnableCORS:    true,
		ConfigFile:    getEnv("CONFIG_FILE", ""),
	}

	if cfg.ConfigFile != "" {
		file, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		file.Apply(cfg)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = Environment(getEnv("DEPLOY_ENV", string(c.Environment)))
	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", c.DynamoDBEndpoint)
	c.TablePrefix = getEnv("TABLE_PREFIX", c.TablePrefix)
	c.StoreDriver = strings.ToLower(getEnv("STORE_DRIVER", c.StoreDriver))
	c.EventBusName = getEnv("EVENT_BUS_NAME", c.EventBusName)
	c.IsLambda = getEnv("AWS_LAMBDA_FUNCTION_NAME", "") != "" || getEnvBool("IS_LAMBDA", c.IsLambda)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.OTLPEndpoint)
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
}

// Validate checks if the configuration is consistent
func (c *Config) Validate() error {
	switch c.Environment {
	case EnvDevelopment, EnvTesting, EnvProduction:
	default:
		return fmt.Errorf("DEPLOY_ENV must be one of Development, Testing, Production; got %q", c.Environment)
	}

	switch c.StoreDriver {
	case DriverDynamoDB, DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q; got %q", DriverDynamoDB, DriverMemory, c.StoreDriver)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	if c.EnableTracing && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required when tracing is enabled")
	}

	if c.IsProduction() && c.StoreDriver != DriverDynamoDB {
		return fmt.Errorf("the %s store driver cannot be used in production", c.StoreDriver)
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Level returns the configured log level, defaulting to info
func (c *Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func defaultTablePrefix(env Environment) string {
	switch env {
	case EnvProduction:
		return "starwars_"
	case EnvTesting:
		return "starwars_test_"
	default:
		return "starwars_dev_"
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return value == "yes"
	}
	return parsed
}
