package entities

import (
	"context"
	"fmt"
	"time"

	"starwars/domain/core/valueobjects"
	"starwars/domain/ports"
)

// Film is a film record as read back from the store.
type Film struct {
	ID          string
	Title       string
	ReleaseDate *string
	Director    *string
	Planets     []string
	Created     time.Time
	Edited      time.Time
}

// FilmRepresentation is the external shape of a film.
type FilmRepresentation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate *string  `json:"release_date"`
	Director    *string  `json:"director"`
	Planets     []string `json:"planets"`
	Created     string   `json:"created"`
	Edited      string   `json:"edited"`
}

// CreateFilm persists a new film and returns it as stored.
func CreateFilm(ctx context.Context, fields ports.FilmFields, store ports.FilmStore) (*Film, error) {
	id, err := store.Persist(ctx, fields)
	if err != nil {
		return nil, err
	}
	return GetFilmByID(ctx, id, store)
}

// UpdateFilm replaces the film fields and returns the film as stored. The
// result is nil when no film has the given id.
func UpdateFilm(ctx context.Context, id string, fields ports.FilmFields, store ports.FilmStore) (*Film, error) {
	if err := store.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return GetFilmByID(ctx, id, store)
}

// GetFilmByID returns the film with the given id, or nil when absent.
func GetFilmByID(ctx context.Context, id string, store ports.FilmStore) (*Film, error) {
	doc, err := store.GetByID(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return filmFromDocument(doc), nil
}

// RemoveFilm deletes the film with the given id and reports whether it
// existed.
func RemoveFilm(ctx context.Context, id string, store ports.FilmStore) (bool, error) {
	return store.Remove(ctx, id)
}

// Representation renders the film for API consumers.
func (f *Film) Representation() (FilmRepresentation, error) {
	if f.Created.IsZero() || f.Edited.IsZero() {
		return FilmRepresentation{}, fmt.Errorf("film %s: %w", f.ID, ErrIncompleteRecord)
	}

	return FilmRepresentation{
		ID:          f.ID,
		Title:       f.Title,
		ReleaseDate: f.ReleaseDate,
		Director:    f.Director,
		Planets:     nonNil(f.Planets),
		Created:     valueobjects.ISOTimestamp(f.Created),
		Edited:      valueobjects.ISOTimestamp(f.Edited),
	}, nil
}

func filmFromDocument(doc *ports.StoredDocument[ports.FilmFields]) *Film {
	return &Film{
		ID:          doc.ID,
		Title:       doc.Fields.Title,
		ReleaseDate: doc.Fields.ReleaseDate,
		Director:    doc.Fields.Director,
		Planets:     nonNil(doc.Fields.Planets),
		Created:     doc.Created,
		Edited:      doc.Edited,
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
