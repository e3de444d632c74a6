package entities

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"starwars/domain/ports"
)

type mockPlanetStore struct {
	mock.Mock
}

func (m *mockPlanetStore) Persist(ctx context.Context, fields ports.PlanetFields) (string, error) {
	args := m.Called(ctx, fields)
	return args.String(0), args.Error(1)
}

func (m *mockPlanetStore) Update(ctx context.Context, id string, fields ports.PlanetFields) error {
	return m.Called(ctx, id, fields).Error(0)
}

func (m *mockPlanetStore) GetByID(ctx context.Context, id string) (*ports.StoredDocument[ports.PlanetFields], error) {
	args := m.Called(ctx, id)
	if doc := args.Get(0); doc != nil {
		return doc.(*ports.StoredDocument[ports.PlanetFields]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlanetStore) Remove(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

const planetID = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"

func TestUpdatePlanet_KeepsCreated(t *testing.T) {
	ctx := context.Background()
	store := new(mockPlanetStore)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	edited := created.Add(time.Hour)
	fields := ports.PlanetFields{Name: "Tatooine", Climate: strPtr("arid"), Films: []string{filmID}}

	store.On("Update", ctx, planetID, fields).Return(nil)
	store.On("GetByID", ctx, planetID).Return(&ports.StoredDocument[ports.PlanetFields]{
		ID: planetID, Fields: fields, Created: created, Edited: edited,
	}, nil)

	planet, err := UpdatePlanet(ctx, planetID, fields, store)

	require.NoError(t, err)
	require.NotNil(t, planet)
	assert.Equal(t, created, planet.Created)
	assert.True(t, planet.Edited.After(planet.Created))
	assert.Equal(t, []string{filmID}, planet.Films)
}

func TestGetPlanetByID_Absent(t *testing.T) {
	ctx := context.Background()
	store := new(mockPlanetStore)
	store.On("GetByID", ctx, planetID).Return(nil, nil)

	planet, err := GetPlanetByID(ctx, planetID, store)

	require.NoError(t, err)
	assert.Nil(t, planet)
}

func TestPlanetRepresentation(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	planet := &Planet{ID: planetID, Name: "Hoth", Created: now, Edited: now}

	rep, err := planet.Representation()

	require.NoError(t, err)
	assert.Equal(t, "Hoth", rep.Name)
	assert.Equal(t, []string{}, rep.Films)
	assert.Equal(t, rep.Created, rep.Edited)

	_, err = (&Planet{ID: planetID, Name: "Hoth"}).Representation()
	assert.ErrorIs(t, err, ErrIncompleteRecord)
}
