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

// PlanetService is the set of planet use cases the handler depends on
type PlanetService interface {
	Create(ctx context.Context, input services.PlanetInput) (*entities.PlanetRepresentation, error)
	Update(ctx context.Context, id string, input services.PlanetInput) (*entities.PlanetRepresentation, error)
	GetByID(ctx context.Context, id string) (*entities.PlanetRepresentation, error)
	Remove(ctx context.Context, id string) error
}

// PlanetHandler handles planet-related HTTP requests
type PlanetHandler struct {
	service      PlanetService
	errorHandler *errors.ErrorHandler
	logger       *zap.Logger
}

// NewPlanetHandler creates a new planet handler
func NewPlanetHandler(service PlanetService, errorHandler *errors.ErrorHandler, logger *zap.Logger) *PlanetHandler {
	return &PlanetHandler{
		service:      service,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// CreatePlanet handles POST /api/planets
//
//	@Summary	Create a planet
//	@Tags		planets
//	@Accept		json
//	@Produce	json
//	@Param		planet	body		PlanetRequest	true	"Planet"
//	@Success	201		{object}	entities.PlanetRepresentation
//	@Failure	400		{object}	errors.ErrorResponse
//	@Failure	409		{object}	errors.ErrorResponse
//	@Router		/api/planets [post]
func (h *PlanetHandler) CreatePlanet(w http.ResponseWriter, r *http.Request) {
	var req PlanetRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, msg)
		return
	}

	planet, err := h.service.Create(r.Context(), req.ToInput())
	if err != nil {
		h.fail(w, r, err, req.Name)
		return
	}

	respondJSON(w, http.StatusCreated, planet)
}

// GetPlanet handles GET /api/planets/{id}
//
//	@Summary	Get a planet
//	@Tags		planets
//	@Produce	json
//	@Param		id	path		string	true	"Planet id"
//	@Success	200	{object}	entities.PlanetRepresentation
//	@Failure	400	{object}	errors.ErrorResponse
//	@Failure	404	{object}	errors.ErrorResponse
//	@Router		/api/planets/{id} [get]
func (h *PlanetHandler) GetPlanet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	planet, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	if planet == nil {
		h.notFound(w, r, id)
		return
	}

	respondJSON(w, http.StatusOK, planet)
}

// UpdatePlanet handles PUT /api/planets/{id}
//
//	@Summary	Replace a planet
//	@Tags		planets
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string		true	"Planet id"
//	@Param		planet	body		PlanetRequest	true	"Planet"
//	@Success	200		{object}	entities.PlanetRepresentation
//	@Failure	400		{object}	errors.ErrorResponse
//	@Failure	404		{object}	errors.ErrorResponse
//	@Failure	409		{object}	errors.ErrorResponse
//	@Router		/api/planets/{id} [put]
func (h *PlanetHandler) UpdatePlanet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PlanetRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, msg)
		return
	}

	planet, err := h.service.Update(r.Context(), id, req.ToInput())
	if err != nil {
		h.fail(w, r, err, req.Name)
		return
	}
	if planet == nil {
		h.notFound(w, r, id)
		return
	}

	respondJSON(w, http.StatusOK, planet)
}

// DeletePlanet handles DELETE /api/planets/{id}
//
//	@Summary	Delete a planet
//	@Tags		planets
//	@Param		id	path	string	true	"Planet id"
//	@Success	204
//	@Failure	400	{object}	errors.ErrorResponse
//	@Router		/api/planets/{id} [delete]
func (h *PlanetHandler) DeletePlanet(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PlanetHandler) fail(w http.ResponseWriter, r *http.Request, err error, name *string) {
	fields := []zap.Field{zap.String("resource", "Planet")}
	if name != nil {
		fields = append(fields, zap.String("name", *name))
	}
	h.errorHandler.Handle(w, r, err, fields...)
}

func (h *PlanetHandler) notFound(w http.ResponseWriter, r *http.Request, id string) {
	h.errorHandler.Handle(w, r, errors.NewNotFoundError(fmt.Sprintf("Planet with id %s was not found", id)),
		zap.String("resource", "Planet"),
	)
}
