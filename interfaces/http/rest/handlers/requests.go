package handlers

import (
	"starwars/application/services"
)

// FilmRequest represents the request body for creating or updating a film
type FilmRequest struct {
	Title       *string  `json:"title" validate:"required"`
	ReleaseDate *string  `json:"release_date,omitempty"`
	Director    *string  `json:"director,omitempty"`
	Planets     []string `json:"planets,omitempty"`
}

// ToInput converts the request into the film use case input
func (r FilmRequest) ToInput() services.FilmInput {
	input := services.FilmInput{
		ReleaseDate: r.ReleaseDate,
		Director:    r.Director,
		Planets:     orEmpty(r.Planets),
	}
	if r.Title != nil {
		input.Title = *r.Title
	}
	return input
}

// PlanetRequest represents the request body for creating or updating a planet
type PlanetRequest struct {
	Name       *string  `json:"name" validate:"required"`
	Climate    *string  `json:"climate,omitempty"`
	Diameter   *string  `json:"diameter,omitempty"`
	Population *string  `json:"population,omitempty"`
	Films      []string `json:"films,omitempty"`
}

// ToInput converts the request into the planet use case input
func (r PlanetRequest) ToInput() services.PlanetInput {
	input := services.PlanetInput{
		Climate:    r.Climate,
		Diameter:   r.Diameter,
		Population: r.Population,
		Films:      orEmpty(r.Films),
	}
	if r.Name != nil {
		input.Name = *r.Name
	}
	return input
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
