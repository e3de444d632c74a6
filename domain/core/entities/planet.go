package entities

import (
	"context"
	"fmt"
	"time"

	"starwars/domain/core/valueobjects"
	"starwars/domain/ports"
)

// Planet is a planet record as read back from the store.
type Planet struct {
	ID         string
	Name       string
	Climate    *string
	Diameter   *string
	Population *string
	Films      []string
	Created    time.Time
	Edited     time.Time
}

// PlanetRepresentation is the external shape of a planet.
type PlanetRepresentation struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Climate    *string  `json:"climate"`
	Diameter   *string  `json:"diameter"`
	Population *string  `json:"population"`
	Films      []string `json:"films"`
	Created    string   `json:"created"`
	Edited     string   `json:"edited"`
}

// CreatePlanet persists a new planet and returns it as stored.
func CreatePlanet(ctx context.Context, fields ports.PlanetFields, store ports.PlanetStore) (*Planet, error) {
	id, err := store.Persist(ctx, fields)
	if err != nil {
		return nil, err
	}
	return GetPlanetByID(ctx, id, store)
}

// UpdatePlanet replaces the planet fields and returns the planet as stored.
// The result is nil when no planet has the given id.
func UpdatePlanet(ctx context.Context, id string, fields ports.PlanetFields, store ports.PlanetStore) (*Planet, error) {
	if err := store.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return GetPlanetByID(ctx, id, store)
}

// GetPlanetByID returns the planet with the given id, or nil when absent.
func GetPlanetByID(ctx context.Context, id string, store ports.PlanetStore) (*Planet, error) {
	doc, err := store.GetByID(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return &Planet{
		ID:         doc.ID,
		Name:       doc.Fields.Name,
		Climate:    doc.Fields.Climate,
		Diameter:   doc.Fields.Diameter,
		Population: doc.Fields.Population,
		Films:      nonNil(doc.Fields.Films),
		Created:    doc.Created,
		Edited:     doc.Edited,
	}, nil
}

// RemovePlanet deletes the planet with the given id and reports whether it
// existed.
func RemovePlanet(ctx context.Context, id string, store ports.PlanetStore) (bool, error) {
	return store.Remove(ctx, id)
}

// Representation renders the planet for API consumers.
func (p *Planet) Representation() (PlanetRepresentation, error) {
	if p.Created.IsZero() || p.Edited.IsZero() {
		return PlanetRepresentation{}, fmt.Errorf("planet %s: %w", p.ID, ErrIncompleteRecord)
	}

	return PlanetRepresentation{
		ID:         p.ID,
		Name:       p.Name,
		Climate:    p.Climate,
		Diameter:   p.Diameter,
		Population: p.Population,
		Films:      nonNil(p.Films),
		Created:    valueobjects.ISOTimestamp(p.Created),
		Edited:     valueobjects.ISOTimestamp(p.Edited),
	}, nil
}
