package services

import (
	"context"
	"errors"
	"time"

	"starwars/application/ports"
	"starwars/domain/core/entities"
	"starwars/domain/events"
	domainports "starwars/domain/ports"

	"go.uber.org/zap"
)

// PlanetInput carries the caller supplied planet fields
type PlanetInput struct {
	Name       string
	Climate    *string
	Diameter   *string
	Population *string
	Films      []string
}

func (in PlanetInput) fields() domainports.PlanetFields {
	films := in.Films
	if films == nil {
		films = []string{}
	}
	return domainports.PlanetFields{
		Name:       in.Name,
		Climate:    in.Climate,
		Diameter:   in.Diameter,
		Population: in.Population,
		Films:      films,
	}
}

// PlanetService implements the planet use cases on top of the planet store
type PlanetService struct {
	store     domainports.PlanetStore
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewPlanetService creates a new planet service
func NewPlanetService(store domainports.PlanetStore, publisher ports.EventPublisher, logger *zap.Logger) *PlanetService {
	return &PlanetService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Create registers a new planet. A name that is already taken is reported as
// a conflict.
func (s *PlanetService) Create(ctx context.Context, input PlanetInput) (*entities.PlanetRepresentation, error) {
	planet, err := entities.CreatePlanet(ctx, input.fields(), s.store)
	if err != nil {
		return nil, alreadyRegistered(err)
	}
	if planet == nil {
		return nil, errors.New("planet was created but could not be read back")
	}

	rep, err := planet.Representation()
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.NewEntityChanged("planet", events.ActionCreated, planet.ID, planet.Name, time.Now().UTC()))
	return &rep, nil
}

// Update replaces the planet fields. It returns nil when the planet does not
// exist.
func (s *PlanetService) Update(ctx context.Context, id string, input PlanetInput) (*entities.PlanetRepresentation, error) {
	planet, err := entities.UpdatePlanet(ctx, id, input.fields(), s.store)
	if err != nil {
		return nil, alreadyRegistered(err)
	}
	if planet == nil {
		return nil, nil
	}

	rep, err := planet.Representation()
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.NewEntityChanged("planet", events.ActionUpdated, planet.ID, planet.Name, time.Now().UTC()))
	return &rep, nil
}

// GetByID returns the planet, or nil when it does not exist
func (s *PlanetService) GetByID(ctx context.Context, id string) (*entities.PlanetRepresentation, error) {
	planet, err := entities.GetPlanetByID(ctx, id, s.store)
	if err != nil || planet == nil {
		return nil, err
	}

	rep, err := planet.Representation()
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// Remove deletes the planet. Removing an unknown planet succeeds and
// publishes nothing.
func (s *PlanetService) Remove(ctx context.Context, id string) error {
	removed, err := entities.RemovePlanet(ctx, id, s.store)
	if err != nil || !removed {
		return err
	}

	publish(ctx, s.publisher, s.logger, events.NewEntityChanged("planet", events.ActionRemoved, canonicalID(id), "", time.Now().UTC()))
	return nil
}
