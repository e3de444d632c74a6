package ports

import (
	"context"
	"time"
)

// StoredDocument is a document as held by an entity store: the store assigned
// id, the caller supplied fields and the store maintained timestamps.
type StoredDocument[F any] struct {
	ID      string
	Fields  F
	Created time.Time
	Edited  time.Time
}

// EntityStore persists documents of one collection and checks their
// references against a peer collection on every write.
//
// Implementations report expected failures with the store error kinds from
// pkg/errors (ErrDuplicateEntity, ErrInvalidReference, ErrInvalidIdentifier)
// so callers can match them with errors.Is.
type EntityStore[F any] interface {
	// Persist validates fields, checks peer references and inserts a new
	// document. It returns the assigned id.
	Persist(ctx context.Context, fields F) (string, error)

	// Update replaces the mutable fields of the document with the given id.
	// An id that matches no document is a no-op.
	Update(ctx context.Context, id string, fields F) error

	// GetByID returns the document with the given id, or nil when absent.
	GetByID(ctx context.Context, id string) (*StoredDocument[F], error)

	// Remove deletes the document with the given id and reports whether a
	// document was deleted. Absent ids are a no-op.
	Remove(ctx context.Context, id string) (bool, error)
}

// FilmFields are the caller supplied fields of a film document.
type FilmFields struct {
	Title       string   `json:"title"`
	ReleaseDate *string  `json:"release_date,omitempty"`
	Director    *string  `json:"director,omitempty"`
	Planets     []string `json:"planets"`
}

// PlanetFields are the caller supplied fields of a planet document.
type PlanetFields struct {
	Name       string   `json:"name"`
	Climate    *string  `json:"climate,omitempty"`
	Diameter   *string  `json:"diameter,omitempty"`
	Population *string  `json:"population,omitempty"`
	Films      []string `json:"films"`
}

// FilmStore and PlanetStore are the two store configurations the domain uses.
type (
	FilmStore   = EntityStore[FilmFields]
	PlanetStore = EntityStore[PlanetFields]
)
