package abstractions

import (
	"context"
	"fmt"
	"strings"

	"starwars/domain/core/valueobjects"
	"starwars/domain/ports"
	pkgerrors "starwars/pkg/errors"
)

// CollectionDefinition describes one document collection and the peer
// collection its reference list points into.
type CollectionDefinition struct {
	Name            string // table suffix, e.g. "films"
	Resource        string // label used in messages, e.g. "Film"
	NaturalKeyField string // unique field, e.g. "title"
	PeerField       string // reference list field, e.g. "planets"
	PeerCollection  string // collection the references resolve against
	PeerResource    string // singular peer label, e.g. "planet"
}

// ResourceName returns the lowercase resource label
func (d CollectionDefinition) ResourceName() string {
	return strings.ToLower(d.Resource)
}

// TableName returns the table backing the collection
func (d CollectionDefinition) TableName(prefix string) string {
	return prefix + d.Name
}

// PeerTableName returns the table backing the peer collection
func (d CollectionDefinition) PeerTableName(prefix string) string {
	return prefix + d.PeerCollection
}

// PeerResolver counts how many of ids resolve to documents in a collection.
// Repeated ids are counted once.
type PeerResolver interface {
	CountExisting(ctx context.Context, ids []string) (int, error)
}

// Collection binds a definition to the fields type stored in it. Every
// EntityStore implementation is configured with one.
type Collection[F any] struct {
	CollectionDefinition
	NaturalKey func(F) string
	Peers      func(F) []string
	WithPeers  func(F, []string) F
}

// CanonicalID parses a document id of this collection and returns its
// canonical spelling.
func (c Collection[F]) CanonicalID(id string) (string, error) {
	parsed, err := valueobjects.NewEntityIDFromString(id)
	if err != nil {
		return "", pkgerrors.NewInvalidIdentifierError(id, c.ResourceName())
	}
	return parsed.String(), nil
}

// Normalize checks that the natural key is present and that every peer
// reference is a well formed id. The returned fields carry a fresh peer
// slice holding the canonical ids, so stores never share the caller's slice.
func (c Collection[F]) Normalize(fields F) (F, error) {
	if strings.TrimSpace(c.NaturalKey(fields)) == "" {
		return fields, pkgerrors.NewValidationError(fmt.Sprintf("%s is required", c.NaturalKeyField))
	}

	peers := c.Peers(fields)
	if peers == nil {
		return fields, nil
	}

	canonical := make([]string, len(peers))
	for i, id := range peers {
		parsed, err := valueobjects.NewEntityIDFromString(id)
		if err != nil {
			return fields, pkgerrors.NewInvalidIdentifierError(id, c.PeerResource)
		}
		canonical[i] = parsed.String()
	}
	return c.WithPeers(fields, canonical), nil
}

// CheckResolved compares the number of resolved peer documents with the
// number of requested references. Repeated ids in a request never resolve
// to more than one document, so such a request fails.
func (c Collection[F]) CheckResolved(resolved, requested int) error {
	if resolved != requested {
		return pkgerrors.NewInvalidReferenceError(c.PeerCollection)
	}
	return nil
}

var (
	FilmsDefinition = CollectionDefinition{
		Name:            "films",
		Resource:        "Film",
		NaturalKeyField: "title",
		PeerField:       "planets",
		PeerCollection:  "planets",
		PeerResource:    "planet",
	}

	PlanetsDefinition = CollectionDefinition{
		Name:            "planets",
		Resource:        "Planet",
		NaturalKeyField: "name",
		PeerField:       "films",
		PeerCollection:  "films",
		PeerResource:    "film",
	}
)

// Definitions lists every collection the service owns
func Definitions() []CollectionDefinition {
	return []CollectionDefinition{FilmsDefinition, PlanetsDefinition}
}

// FilmCollection is the films collection configuration
func FilmCollection() Collection[ports.FilmFields] {
	return Collection[ports.FilmFields]{
		CollectionDefinition: FilmsDefinition,
		NaturalKey:           func(f ports.FilmFields) string { return f.Title },
		Peers:                func(f ports.FilmFields) []string { return f.Planets },
		WithPeers: func(f ports.FilmFields, ids []string) ports.FilmFields {
			f.Planets = ids
			return f
		},
	}
}

// PlanetCollection is the planets collection configuration
func PlanetCollection() Collection[ports.PlanetFields] {
	return Collection[ports.PlanetFields]{
		CollectionDefinition: PlanetsDefinition,
		NaturalKey:           func(p ports.PlanetFields) string { return p.Name },
		Peers:                func(p ports.PlanetFields) []string { return p.Films },
		WithPeers: func(p ports.PlanetFields, ids []string) ports.PlanetFields {
			p.Films = ids
			return p
		},
	}
}
