package handlers

import (
	"context"
	"fmt"
	"net/http"

	"starwars/application/services"
	"starwars/domain/core/entities"
	"starwars/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FilmService is the set of film use cases the handler depends on
type FilmService interface {
	Create(ctx context.Context, input services.FilmInput) (*entities.FilmRepresentation, error)
	Update(ctx context.Context, id string, input services.FilmInput) (*entities.FilmRepresentation, error)
	GetByID(ctx context.Context, id string) (*entities.FilmRepresentation, error)
	Remove(ctx context.Context, id string) error
}

// FilmHandler handles film-related HTTP requests
type FilmHandler struct {
	service      FilmService
	errorHandler *errors.ErrorHandler
	logger       *zap.Logger
}

// NewFilmHandler creates a new film handler
func NewFilmHandler(service FilmService, errorHandler *errors.ErrorHandler, logger *zap.Logger) *FilmHandler {
	return &FilmHandler{
		service:      service,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// CreateFilm handles POST /api/films
//
//	@Summary	Create a film
//	@Tags		films
//	@Accept		json
//	@Produce	json
//	@Param		film	body		FilmRequest	true	"Film"
//	@Success	201		{object}	entities.FilmRepresentation
//	@Failure	400		{object}	errors.ErrorResponse
//	@Failure	409		{object}	errors.ErrorResponse
//	@Router		/api/films [post]
func (h *FilmHandler) CreateFilm(w http.ResponseWriter, r *http.Request) {
	var req FilmRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, msg)
		return
	}

	film, err := h.service.Create(r.Context(), req.ToInput())
	if err != nil {
		h.fail(w, r, err, req.Title)
		return
	}

	respondJSON(w, http.StatusCreated, film)
}

// GetFilm handles GET /api/films/{id}
//
//	@Summary	Get a film
//	@Tags		films
//	@Produce	json
//	@Param		id	path		string	true	"Film id"
//	@Success	200	{object}	entities.FilmRepresentation
//	@Failure	400	{object}	errors.ErrorResponse
//	@Failure	404	{object}	errors.ErrorResponse
//	@Router		/api/films/{id} [get]
func (h *FilmHandler) GetFilm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	film, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	if film == nil {
		h.notFound(w, r, id)
		return
	}

	respondJSON(w, http.StatusOK, film)
}

// UpdateFilm handles PUT /api/films/{id}
//
//	@Summary	Replace a film
//	@Tags		films
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Film id"
//	@Param		film	body		FilmRequest	true	"Film"
//	@Success	200		{object}	entities.FilmRepresentation
//	@Failure	400		{object}	errors.ErrorResponse
//	@Failure	404		{object}	errors.ErrorResponse
//	@Failure	409		{object}	errors.ErrorResponse
//	@Router		/api/films/{id} [put]
func (h *FilmHandler) UpdateFilm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req FilmRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, msg)
		return
	}

	film, err := h.service.Update(r.Context(), id, req.ToInput())
	if err != nil {
		h.fail(w, r, err, req.Title)
		return
	}
	if film == nil {
		h.notFound(w, r, id)
		return
	}

	respondJSON(w, http.StatusOK, film)
}

// DeleteFilm handles DELETE /api/films/{id}
//
//	@Summary	Delete a film
//	@Tags		films
//	@Param		id	path	string	true	"Film id"
//	@Success	204
//	@Failure	400	{object}	errors.ErrorResponse
//	@Router		/api/films/{id} [delete]
func (h *FilmHandler) DeleteFilm(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *FilmHandler) fail(w http.ResponseWriter, r *http.Request, err error, title *string) {
	fields := []zap.Field{zap.String("resource", "Film")}
	if title != nil {
		fields = append(fields, zap.String("title", *title))
	}
	h.errorHandler.Handle(w, r, err, fields...)
}

func (h *FilmHandler) notFound(w http.ResponseWriter, r *http.Request, id string) {
	h.errorHandler.Handle(w, r, errors.NewNotFoundError(fmt.Sprintf("Film with id %s was not found", id)),
		zap.String("resource", "Film"),
	)
}
