package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"starwars/domain/events"
	"starwars/infrastructure/persistence/abstractions"
	"starwars/infrastructure/persistence/memory"
	pkgerrors "starwars/pkg/errors"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	return m.Called(ctx, batch).Error(0)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e events.DomainEvent) bool { return e.GetEventType() == eventType })
}

func setup(publisher *mockPublisher) (*FilmService, *PlanetService) {
	logger := zap.NewNop()
	films := memory.NewStore(abstractions.FilmCollection(), logger)
	planets := memory.NewStore(abstractions.PlanetCollection(), logger)
	films.SetPeer(planets)
	planets.SetPeer(films)
	return NewFilmService(films, publisher, logger), NewPlanetService(planets, publisher, logger)
}

func TestFilmService_Create(t *testing.T) {
	ctx := context.Background()
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, eventOfType("film.created")).Return(nil).Once()
	films, _ := setup(publisher)

	rep, err := films.Create(ctx, FilmInput{Title: "A New Hope"})

	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, "A New Hope", rep.Title)
	assert.Equal(t, []string{}, rep.Planets)
	assert.Equal(t, rep.Created, rep.Edited)
	publisher.AssertExpectations(t)
}

func TestFilmService_Create_AlreadyRegistered(t *testing.T) {
	ctx := context.Background()
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	films, _ := setup(publisher)

	_, err := films.Create(ctx, FilmInput{Title: "A New Hope"})
	require.NoError(t, err)

	_, err = films.Create(ctx, FilmInput{Title: "A New Hope"})

	require.Error(t, err)
	assert.True(t, IsAlreadyRegistered(err))
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypeConflict))
	assert.ErrorIs(t, err, pkgerrors.ErrDuplicateEntity)
	assert.Equal(t, "Film with title A New Hope already exists", pkgerrors.MessageOf(err))
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestFilmService_Create_InvalidReferenceIsNotAConflict(t *testing.T) {
	publisher := new(mockPublisher)
	films, _ := setup(publisher)

	_, err := films.Create(context.Background(), FilmInput{
		Title:   "A New Hope",
		Planets: []string{"6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
	})

	require.ErrorIs(t, err, pkgerrors.ErrInvalidReference)
	assert.False(t, IsAlreadyRegistered(err))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestFilmService_PublishFailureDoesNotFailRequest(t *testing.T) {
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus down"))
	films, _ := setup(publisher)

	rep, err := films.Create(context.Background(), FilmInput{Title: "Empire"})

	require.NoError(t, err)
	assert.NotNil(t, rep)
}

func TestFilmService_UpdateGetRemove(t *testing.T) {
	ctx := context.Background()
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	films, planets := setup(publisher)

	hoth, err := planets.Create(ctx, PlanetInput{Name: "Hoth"})
	require.NoError(t, err)
	created, err := films.Create(ctx, FilmInput{Title: "Empire"})
	require.NoError(t, err)

	updated, err := films.Update(ctx, created.ID, FilmInput{Title: "The Empire Strikes Back", Planets: []string{hoth.ID}})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, created.Created, updated.Created)
	assert.Equal(t, []string{hoth.ID}, updated.Planets)

	got, err := films.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, films.Remove(ctx, created.ID))
	got, err = films.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	publisher.AssertCalled(t, "Publish", mock.Anything, eventOfType("film.updated"))
	publisher.AssertCalled(t, "Publish", mock.Anything, eventOfType("film.removed"))
}

func TestFilmService_UpdateMissingReturnsNil(t *testing.T) {
	publisher := new(mockPublisher)
	films, _ := setup(publisher)

	rep, err := films.Update(context.Background(), "6ba7b810-9dad-11d1-80b4-00c04fd430c8", FilmInput{Title: "Ghost"})

	require.NoError(t, err)
	assert.Nil(t, rep)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestFilmService_RemoveUnknownPublishesNothing(t *testing.T) {
	publisher := new(mockPublisher)
	films, _ := setup(publisher)

	require.NoError(t, films.Remove(context.Background(), "6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPlanetService_RemovePublishesOnce(t *testing.T) {
	ctx := context.Background()
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	_, planets := setup(publisher)

	hoth, err := planets.Create(ctx, PlanetInput{Name: "Hoth"})
	require.NoError(t, err)

	require.NoError(t, planets.Remove(ctx, strings.ToUpper(hoth.ID)))
	require.NoError(t, planets.Remove(ctx, hoth.ID))

	publisher.AssertNumberOfCalls(t, "Publish", 2)
	publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e events.DomainEvent) bool {
		return e.GetEventType() == "planet.removed" && e.GetAggregateID() == hoth.ID
	}))
}

func TestPlanetService_AlreadyRegisteredOnUpdate(t *testing.T) {
	ctx := context.Background()
	publisher := new(mockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	_, planets := setup(publisher)

	_, err := planets.Create(ctx, PlanetInput{Name: "Hoth"})
	require.NoError(t, err)
	dagobah, err := planets.Create(ctx, PlanetInput{Name: "Dagobah"})
	require.NoError(t, err)

	_, err = planets.Update(ctx, dagobah.ID, PlanetInput{Name: "Hoth"})

	require.Error(t, err)
	assert.True(t, IsAlreadyRegistered(err))
	assert.Equal(t, "Planet with name Hoth already exists", pkgerrors.MessageOf(err))
}

func TestPlanetService_GetByIDMalformed(t *testing.T) {
	_, planets := setup(new(mockPublisher))

	rep, err := planets.GetByID(context.Background(), "abc")

	assert.Nil(t, rep)
	require.ErrorIs(t, err, pkgerrors.ErrInvalidIdentifier)
	assert.Equal(t, "abc is not a valid planet id.", pkgerrors.MessageOf(err))
}
