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

// FilmInput carries the caller supplied film fields
type FilmInput struct {
	Title       string
	ReleaseDate *string
	Director    *string
	Planets     []string
}

func (in FilmInput) fields() domainports.FilmFields {
	planets := in.Planets
	if planets == nil {
		planets = []string{}
	}
	return domainports.FilmFields{
		Title:       in.Title,
		ReleaseDate: in.ReleaseDate,
		Director:    in.Director,
		Planets:     planets,
	}
}

// FilmService implements the film use cases on top of the film store
type FilmService struct {
	store     domainports.FilmStore
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewFilmService creates a new film service
func NewFilmService(store domainports.FilmStore, publisher ports.EventPublisher, logger *zap.Logger) *FilmService {
	return &FilmService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Create registers a new film. A title that is already taken is reported as
// a conflict.
func (s *FilmService) Create(ctx context.Context, input FilmInput) (*entities.FilmRepresentation, error) {
	film, err := entities.CreateFilm(ctx, input.fields(), s.store)
	if err != nil {
		return nil, alreadyRegistered(err)
	}
	if film == nil {
		return nil, errors.New("film was created but could not be read back")
	}

	rep, err := film.Representation()
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.NewEntityChanged("film", events.ActionCreated, film.ID, film.Title, time.Now().UTC()))
	return &rep, nil
}

// Update replaces the film fields. It returns nil when the film does not
// exist.
func (s *FilmService) Update(ctx context.Context, id string, input FilmInput) (*entities.FilmRepresentation, error) {
	film, err := entities.UpdateFilm(ctx, id, input.fields(), s.store)
	if err != nil {
		return nil, alreadyRegistered(err)
	}
	if film == nil {
		return nil, nil
	}

	rep, err := film.Representation()
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.NewEntityChanged("film", events.ActionUpdated, film.ID, film.Title, time.Now().UTC()))
	return &rep, nil
}

// GetByID returns the film, or nil when it does not exist
func (s *FilmService) GetByID(ctx context.Context, id string) (*entities.FilmRepresentation, error) {
	film, err := entities.GetFilmByID(ctx, id, s.store)
	if err != nil || film == nil {
		return nil, err
	}

	rep, err := film.Representation()
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// Remove deletes the film. Removing an unknown film succeeds and publishes
// nothing.
func (s *FilmService) Remove(ctx context.Context, id string) error {
	removed, err := entities.RemoveFilm(ctx, id, s.store)
	if err != nil || !removed {
		return err
	}

	publish(ctx, s.publisher, s.logger, events.NewEntityChanged("film", events.ActionRemoved, canonicalID(id), "", time.Now().UTC()))
	return nil
}
