package bands

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tour-planning-assistant/internal/middleware"
	"tour-planning-assistant/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/bands", func(br chi.Router) {
		br.Post("/", createBandHandler(svc))
		br.Get("/", listBandsHandler(svc))
		br.Get("/{bandID}", getBandHandler(svc))
	})
}

type createBandRequest struct {
	Name  string `json:"name"`
	Genre string `json:"genre"`
}

type BandResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Genre     string    `json:"genre,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createBandHandler godoc
// @Summary Crear banda
// @Tags bands
// @Accept json
// @Produce json
// @Param payload body createBandRequest true "Nombre y género"
// @Success 201 {object} BandResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bands [post]
func createBandHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		var req createBandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidJSON, "invalid json")
			return
		}

		b, err := svc.Create(r.Context(), CreateInput{Name: req.Name, Genre: req.Genre})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, ToResponse(b))
	}
}

// listBandsHandler godoc
// @Summary Listar bandas
// @Tags bands
// @Produce json
// @Param q query string false "Texto libre en nombre/género"
// @Param limit query int false "1-200, default 50"
// @Success 200 {array} BandResponse
// @Router /bands [get]
func listBandsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		q := r.URL.Query()
		filter := ListFilter{Query: q.Get("q")}
		if n, err := strconv.Atoi(q.Get("limit")); err == nil {
			filter.Limit = n
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			respond.Internal(w)
			return
		}

		out := make([]BandResponse, 0, len(items))
		for _, b := range items {
			out = append(out, ToResponse(b))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// getBandHandler godoc
// @Summary Obtener banda
// @Tags bands
// @Produce json
// @Param bandID path string true "ID de la banda"
// @Success 200 {object} BandResponse
// @Failure 404 {object} map[string]string
// @Router /bands/{bandID} [get]
func getBandHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "bandID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, ToResponse(b))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "band not found")
	case errors.Is(err, ErrInvalidInput):
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, strings.TrimPrefix(err.Error(), "invalid input: "))
	default:
		respond.Internal(w)
	}
}

func ToResponse(b Band) BandResponse {
	return BandResponse{
		ID:        b.ID,
		Name:      b.Name,
		Genre:     b.Genre,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
