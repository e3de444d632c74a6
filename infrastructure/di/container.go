package di

import (
	"context"

	"starwars/application/services"
	"starwars/infrastructure/config"
	"starwars/infrastructure/persistence/dynamodb"
	"starwars/interfaces/http/rest"
	"starwars/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	LogLevel      zap.AtomicLevel
	Metrics       *observability.Collector
	Tracing       *observability.TracerProvider
	FilmService   *services.FilmService
	PlanetService *services.PlanetService
	Router        *rest.Router
	Provisioner   *dynamodb.Provisioner
	ConfigWatcher *config.ConfigWatcher
}

// Shutdown stops background work and flushes telemetry
func (c *Container) Shutdown(ctx context.Context) error {
	if c.ConfigWatcher != nil {
		c.ConfigWatcher.Stop()
	}
	err := c.Tracing.Shutdown(ctx)
	_ = c.Logger.Sync()
	return err
}
