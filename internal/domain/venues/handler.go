package venues

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/middleware"
	"tour-planning-assistant/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/venues", func(vr chi.Router) {
		vr.Post("/", createVenueHandler(svc))
		vr.Get("/", listVenuesHandler(svc))
		vr.Get("/{venueID}", getVenueHandler(svc))
		vr.Patch("/{venueID}", updateVenueHandler(svc))
	})
}

type createVenueRequest struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}

type updateVenueRequest struct {
	Name     *string `json:"name"`
	City     *string `json:"city"`
	Capacity *int    `json:"capacity"`
}

// VenueResponse también lo usa el dashboard.
type VenueResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createVenueHandler godoc
// @Summary Crear venue
// @Tags venues
// @Accept json
// @Produce json
// @Param payload body createVenueRequest true "Datos del venue; capacity > 0"
// @Success 201 {object} VenueResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /venues [post]
func createVenueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		var req createVenueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidJSON, "invalid json")
			return
		}

		v, err := svc.Create(r.Context(), CreateInput{
			Name:     req.Name,
			City:     req.City,
			Capacity: req.Capacity,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respond.JSON(w, http.StatusCreated, ToResponse(v))
	}
}

// listVenuesHandler godoc
// @Summary Listar venues
// @Tags venues
// @Produce json
// @Param city query string false "Filtra por ciudad"
// @Param q query string false "Texto libre en nombre/ciudad"
// @Param limit query int false "1-200, default 50"
// @Success 200 {array} VenueResponse
// @Router /venues [get]
func listVenuesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		q := r.URL.Query()
		filter := ListFilter{
			City:  q.Get("city"),
			Query: q.Get("q"),
		}
		if n, err := strconv.Atoi(q.Get("limit")); err == nil {
			filter.Limit = n
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			respond.Internal(w)
			return
		}

		out := make([]VenueResponse, 0, len(items))
		for _, v := range items {
			out = append(out, ToResponse(v))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// getVenueHandler godoc
// @Summary Obtener venue
// @Tags venues
// @Produce json
// @Param venueID path string true "ID del venue"
// @Success 200 {object} VenueResponse
// @Failure 404 {object} map[string]string
// @Router /venues/{venueID} [get]
func getVenueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "venueID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, ToResponse(v))
	}
}

// updateVenueHandler godoc
// @Summary Actualizar venue (PATCH)
// @Tags venues
// @Accept json
// @Produce json
// @Param venueID path string true "ID del venue"
// @Param payload body updateVenueRequest true "Campos a modificar"
// @Success 200 {object} VenueResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /venues/{venueID} [patch]
func updateVenueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		var req updateVenueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidJSON, "invalid json")
			return
		}

		v, err := svc.Update(r.Context(), chi.URLParam(r, "venueID"), UpdateInput{
			Name:     req.Name,
			City:     req.City,
			Capacity: req.Capacity,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, ToResponse(v))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "venue not found")
	case errors.Is(err, schedule.ErrInvalidCapacity):
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidCapacity, "capacity must be a positive integer")
	case errors.Is(err, ErrInvalidInput):
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, strings.TrimPrefix(err.Error(), "invalid input: "))
	default:
		respond.Internal(w)
	}
}

func ToResponse(v schedule.Venue) VenueResponse {
	return VenueResponse{
		ID:        v.ID,
		Name:      v.Name,
		City:      v.City,
		Capacity:  v.Capacity,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
