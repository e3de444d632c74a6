package di

import (
	"context"
	"fmt"

	"starwars/application/ports"
	"starwars/application/services"
	domainports "starwars/domain/ports"
	"starwars/infrastructure/config"
	"starwars/infrastructure/messaging/eventbridge"
	"starwars/infrastructure/persistence/abstractions"
	"starwars/infrastructure/persistence/dynamodb"
	"starwars/infrastructure/persistence/memory"
	"starwars/infrastructure/persistence/resilience"
	"starwars/interfaces/http/rest"
	"starwars/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProvideLogLevel creates the adjustable level shared by the logger and the
// config watcher
func ProvideLogLevel(cfg *config.Config) zap.AtomicLevel {
	return zap.NewAtomicLevelAt(cfg.Level())
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("environment", string(cfg.Environment))), nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client. DYNAMODB_ENDPOINT points
// it at DynamoDB Local.
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideDataClient guards the DynamoDB client with a circuit breaker. Both
// stores and the provisioner share it.
func ProvideDataClient(client *awsdynamodb.Client, logger *zap.Logger) dynamodb.DynamoDBAPI {
	return resilience.NewBreakerClient(client, resilience.DefaultBreakerConfig(), logger)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideEventPublisher creates the lifecycle event publisher. Without a
// configured bus events are only logged.
func ProvideEventPublisher(
	client *awseventbridge.Client,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return eventbridge.NewNoopPublisher(logger)
	}
	return eventbridge.NewEventBridgePublisher(client, cfg.EventBusName, logger, metrics)
}

// ProvideMetrics creates the Prometheus collector, or nil when metrics are
// disabled
func ProvideMetrics(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector("starwars")
}

// ProvideTracing installs the OTLP tracer provider when tracing is enabled.
// A nil provider is safe to shut down.
func ProvideTracing(ctx context.Context, cfg *config.Config) (*observability.TracerProvider, error) {
	if !cfg.EnableTracing {
		return nil, nil
	}
	return observability.InitTracing(ctx, "starwars-api", string(cfg.Environment), cfg.OTLPEndpoint)
}

// Stores holds the two entity stores, which must be built together because
// each checks references against the other
type Stores struct {
	Films   domainports.FilmStore
	Planets domainports.PlanetStore
}

// ProvideStores creates the film and planet stores for the configured driver
func ProvideStores(
	client dynamodb.DynamoDBAPI,
	cfg *config.Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) (Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverDynamoDB:
		films := dynamodb.NewStore(client, abstractions.FilmCollection(), cfg.TablePrefix, logger, dynamodb.WithMetrics(metrics))
		planets := dynamodb.NewStore(client, abstractions.PlanetCollection(), cfg.TablePrefix, logger, dynamodb.WithMetrics(metrics))
		films.SetPeer(planets)
		planets.SetPeer(films)
		return Stores{Films: films, Planets: planets}, nil
	case config.DriverMemory:
		films := memory.NewStore(abstractions.FilmCollection(), logger, memory.WithMetrics(metrics))
		planets := memory.NewStore(abstractions.PlanetCollection(), logger, memory.WithMetrics(metrics))
		films.SetPeer(planets)
		planets.SetPeer(films)
		return Stores{Films: films, Planets: planets}, nil
	default:
		return Stores{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// ProvideFilmStore extracts the film store
func ProvideFilmStore(stores Stores) domainports.FilmStore {
	return stores.Films
}

// ProvidePlanetStore extracts the planet store
func ProvidePlanetStore(stores Stores) domainports.PlanetStore {
	return stores.Planets
}

// ProvideProvisioner creates the collection provisioner used by the
// collections command
func ProvideProvisioner(client dynamodb.DynamoDBAPI, cfg *config.Config, logger *zap.Logger) *dynamodb.Provisioner {
	return dynamodb.NewProvisioner(client, cfg.TablePrefix, cfg.IsProduction(), logger)
}

// ProvideFilmService creates the film use cases
func ProvideFilmService(store domainports.FilmStore, publisher ports.EventPublisher, logger *zap.Logger) *services.FilmService {
	return services.NewFilmService(store, publisher, logger)
}

// ProvidePlanetService creates the planet use cases
func ProvidePlanetService(store domainports.PlanetStore, publisher ports.EventPublisher, logger *zap.Logger) *services.PlanetService {
	return services.NewPlanetService(store, publisher, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	films *services.FilmService,
	planets *services.PlanetService,
	metrics *observability.Collector,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(films, planets, metrics, cfg.EnableCORS, logger)
}

// ProvideConfigWatcher watches CONFIG_FILE and applies log level changes
// without a restart. It returns nil when no file is configured.
func ProvideConfigWatcher(cfg *config.Config, level zap.AtomicLevel, logger *zap.Logger) (*config.ConfigWatcher, error) {
	if cfg.ConfigFile == "" {
		return nil, nil
	}

	watcher, err := config.NewConfigWatcher(cfg.ConfigFile, logger)
	if err != nil {
		return nil, err
	}

	watcher.OnChange(func(file *config.FileConfig) {
		if file.LogLevel == "" {
			return
		}
		parsed, err := zapcore.ParseLevel(file.LogLevel)
		if err != nil {
			logger.Warn("Ignoring invalid log level", zap.String("log_level", file.LogLevel))
			return
		}
		level.SetLevel(parsed)
		logger.Info("Log level changed", zap.String("log_level", parsed.String()))
	})

	return watcher, nil
}
