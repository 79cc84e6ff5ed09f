package tours

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tour-planning-assistant/internal/domain/schedule"
	"tour-planning-assistant/internal/middleware"
	"tour-planning-assistant/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

const (
	dateLayout         = "2006-01-02"
	maxDurationMinutes = int(maxEventDuration / time.Minute)
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/tours", func(tr chi.Router) {
		tr.Post("/", createTourHandler(svc))
		tr.Get("/", listToursHandler(svc))
		tr.Post("/import", importTourHandler(svc))

		tr.Route("/{tourID}", func(one chi.Router) {
			one.Get("/", getTourHandler(svc))
			one.Patch("/", updateTourHandler(svc))
			one.Delete("/", deleteTourHandler(svc))
			one.Post("/status", transitionTourHandler(svc))
			one.Get("/validate", validateTourHandler(svc))

			one.Post("/events", addEventHandler(svc))
			one.Delete("/events/{eventID}", removeEventHandler(svc))
			one.Post("/events/{eventID}/status", transitionEventHandler(svc))
		})
	})

	r.Get("/events", listEventsHandler(svc))
	r.Get("/events/{eventID}", getEventHandler(svc))
}

// -------------------------
// DTOs
// -------------------------

type createTourRequest struct {
	Name      string `json:"name"`
	Artist    string `json:"artist"`
	BandID    string `json:"band_id"`
	Notes     string `json:"notes"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`
}

type updateTourRequest struct {
	Name      *string `json:"name"`
	Artist    *string `json:"artist"`
	BandID    *string `json:"band_id"`
	Notes     *string `json:"notes"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type addEventRequest struct {
	VenueID         string    `json:"venue_id"`
	StartsAt        time.Time `json:"starts_at"` // RFC3339
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes"`
}

// ImportRequest es el formato de intercambio de tours; también lo lee `tourplanner check`.
type ImportRequest struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Artist    string               `json:"artist"`
	BandID    string               `json:"band_id"`
	Notes     string               `json:"notes"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Status    string               `json:"status"`
	Events    []ImportEventRequest `json:"events"`
}

type ImportEventRequest struct {
	ID              string    `json:"id"`
	VenueID         string    `json:"venue_id"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
}

type EventResponse struct {
	ID              string    `json:"id"`
	TourID          string    `json:"tour_id"`
	VenueID         string    `json:"venue_id"`
	StartsAt        time.Time `json:"starts_at"`
	EndsAt          time.Time `json:"ends_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type TourResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Artist    string          `json:"artist,omitempty"`
	BandID    string          `json:"band_id,omitempty"`
	StartDate string          `json:"start_date,omitempty"`
	EndDate   string          `json:"end_date,omitempty"`
	Status    string          `json:"status"`
	Notes     string          `json:"notes,omitempty"`
	Events    []EventResponse `json:"events"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ViolationResponse struct {
	Code         string `json:"code"`
	EventID      string `json:"event_id,omitempty"`
	OtherEventID string `json:"other_event_id,omitempty"`
	VenueID      string `json:"venue_id,omitempty"`
	Message      string `json:"message"`
}

type validationResponse struct {
	TourID     string              `json:"tour_id"`
	Valid      bool                `json:"valid"`
	Violations []ViolationResponse `json:"violations"`
}

type importResponse struct {
	Tour       TourResponse        `json:"tour"`
	Valid      bool                `json:"valid"`
	Violations []ViolationResponse `json:"violations"`
}

// -------------------------
// Handlers
// -------------------------

// createTourHandler godoc
// @Summary Crear tour (status PLANNING, sin eventos)
// @Tags tours
// @Accept json
// @Produce json
// @Param payload body createTourRequest true "Nombre y rango de fechas (YYYY-MM-DD)"
// @Success 201 {object} TourResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /tours [post]
func createTourHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		var req createTourRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidJSON, "invalid json")
			return
		}

		start, err := parseDate(req.StartDate)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, "start_date must be YYYY-MM-DD")
			return
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, "end_date must be YYYY-MM-DD")
			return
		}

		t, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:      req.Name,
			Artist:    req.Artist,
			BandID:    req.BandID,
			Notes:     req.Notes,
			StartDate: start,
			EndDate:   end,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, ToResponse(t))
	}
}

// listToursHandler godoc
// @Summary Listar tours
// @Tags tours
// @Produce json
// @Param status query string false "Uno o varios, separados por coma"
// @Param from query string false "YYYY-MM-DD"
// @Param to query string false "YYYY-MM-DD"
// @Param band_id query string false "Filtra por banda"
// @Param limit query int false "1-200, default 50"
// @Success 200 {array} TourResponse
// @Router /tours [get]
func listToursHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		q := r.URL.Query()
		filter := ListFilter{BandID: q.Get("band_id")}
		if raw := strings.TrimSpace(q.Get("status")); raw != "" {
			for _, s := range strings.Split(raw, ",") {
				filter.Statuses = append(filter.Statuses, schedule.TourStatus(strings.ToUpper(strings.TrimSpace(s))))
			}
		}
		var err error
		if filter.From, err = parseOptionalTime(q.Get("from")); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, "from must be YYYY-MM-DD or RFC3339")
			return
		}
		if filter.To, err = parseOptionalTime(q.Get("to")); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, "to must be YYYY-MM-DD or RFC3339")
			return
		}
		if n, err := strconv.Atoi(q.Get("limit")); err == nil {
			filter.Limit = n
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]TourResponse, 0, len(items))
		for _, t := range items {
			out = append(out, ToResponse(t))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// getTourHandler godoc
// @Summary Obtener tour con sus eventos
// @Tags tours
// @Produce json
// @Param tourID path string true "ID del tour"
// @Success 200 {object} TourResponse
// @Failure 404 {object} map[string]string
// @Router /tours/{tourID} [get]
func getTourHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		t, err := svc.GetByID(r.Context(), chi.URLParam(r, "tourID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, ToResponse(t))
	}
}

// updateTourHandler godoc
// @Summary Actualizar tour (PATCH)
// @Tags tours
// @Accept json
// @Produce json
// @Param tourID path string true "ID del tour"
// @Param payload body updateTourRequest true "Campos a modificar"
// @Success 200 {object} TourResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tours/{tourID} [patch]
func updateTourHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		var req updateTourRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidJSON, "invalid json")
			return
		}

		in := UpdateInput{Name: req.Name, Artist: req.Artist, BandID: req.BandID, Notes: req.Notes}
		if req.StartDate != nil {
			d, err := parseDate(*req.StartDate)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, "start_date must be YYYY-MM-DD")
				return
			}
			in.StartDate = &d
		}
		if req.EndDate != nil {
			d, err := parseDate(*req.EndDate)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, "end_date must be YYYY-MM-DD")
				return
			}
			in.EndDate = &d
		}

		t, err := svc.Update(r.Context(), chi.URLParam(r, "tourID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, ToResponse(t))
	}
}

// deleteTourHandler godoc
// @Summary Borrar tour y sus eventos
// @Tags tours
// @Param tourID path string true "ID del tour"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /tours/{tourID} [delete]
func deleteTourHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "tourID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// transitionTourHandler godoc
// @Summary Cambiar status del tour
// @Tags tours
// @Accept json
// @Produce json
// @Param tourID path string true "ID del tour"
// @Param payload body statusRequest true "PLANNING|CONFIRMED|IN_PROGRESS|COMPLETED|CANCELLED"
// @Success 200 {object} TourResponse
// @Failure 409 {object} map[string]string
// @Router /tours/{tourID}/status [post]
func transitionTourHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidJSON, "invalid json")
			return
		}

		to := schedule.TourStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
		t, err := svc.TransitionStatus(r.Context(), chi.URLParam(r, "tourID"), to)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, ToResponse(t))
	}
}

// addEventHandler godoc
// @Summary Agregar evento al tour
// @Tags tours
// @Accept json
// @Produce json
// @Param tourID path string true "ID del tour"
// @Param payload body addEventRequest true "venue_id, starts_at (RFC3339), duration_minutes opcional"
// @Success 201 {object} EventResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tours/{tourID}/events [post]
func addEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		var req addEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidJSON, "invalid json")
			return
		}
		d, err := durationOf(req.DurationMinutes)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, err.Error())
			return
		}

		_, e, err := svc.AddEvent(r.Context(), chi.URLParam(r, "tourID"), AddEventInput{
			VenueID:  req.VenueID,
			StartsAt: req.StartsAt,
			Duration: d,
			Notes:    req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, EventToResponse(e))
	}
}

// removeEventHandler godoc
// @Summary Quitar evento del tour
// @Tags tours
// @Produce json
// @Param tourID path string true "ID del tour"
// @Param eventID path string true "ID del evento"
// @Success 200 {object} TourResponse
// @Failure 404 {object} map[string]string
// @Router /tours/{tourID}/events/{eventID} [delete]
func removeEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		t, err := svc.RemoveEvent(r.Context(), chi.URLParam(r, "tourID"), chi.URLParam(r, "eventID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, ToResponse(t))
	}
}

// transitionEventHandler godoc
// @Summary Cambiar status de un evento
// @Tags tours
// @Accept json
// @Produce json
// @Param tourID path string true "ID del tour"
// @Param eventID path string true "ID del evento"
// @Param payload body statusRequest true "UNCONFIRMED|CONFIRMED|CANCELLED"
// @Success 200 {object} EventResponse
// @Failure 409 {object} map[string]string
// @Router /tours/{tourID}/events/{eventID}/status [post]
func transitionEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidJSON, "invalid json")
			return
		}

		to := schedule.EventStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
		e, err := svc.TransitionEventStatus(r.Context(), chi.URLParam(r, "tourID"), chi.URLParam(r, "eventID"), to)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, EventToResponse(e))
	}
}

// validateTourHandler godoc
// @Summary Validar invariantes del tour (nunca falla por violaciones)
// @Tags tours
// @Produce json
// @Param tourID path string true "ID del tour"
// @Success 200 {object} validationResponse
// @Failure 404 {object} map[string]string
// @Router /tours/{tourID}/validate [get]
func validateTourHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		tourID := chi.URLParam(r, "tourID")
		vs, err := svc.Validate(r.Context(), tourID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, validationResponse{
			TourID:     tourID,
			Valid:      len(vs) == 0,
			Violations: ViolationsToResponse(vs),
		})
	}
}

// importTourHandler godoc
// @Summary Importar tour externo; guarda tal cual y devuelve violaciones
// @Tags tours
// @Accept json
// @Produce json
// @Param payload body ImportRequest true "Tour con eventos"
// @Success 201 {object} importResponse
// @Failure 400 {object} map[string]string
// @Router /tours/import [post]
func importTourHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			respond.Unauthorized(w)
			return
		}

		var req ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidJSON, "invalid json")
			return
		}

		in, err := req.ToInput()
		if err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, err.Error())
			return
		}

		t, vs, err := svc.Import(r.Context(), claims.UserID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, importResponse{
			Tour:       ToResponse(t),
			Valid:      len(vs) == 0,
			Violations: ViolationsToResponse(vs),
		})
	}
}

// listEventsHandler godoc
// @Summary Listar eventos de todos los tours (cronológico)
// @Tags events
// @Produce json
// @Param from query string false "YYYY-MM-DD o RFC3339"
// @Param to query string false "YYYY-MM-DD o RFC3339"
// @Param status query string false "UNCONFIRMED|CONFIRMED|CANCELLED"
// @Param venue_id query string false "Filtra por venue"
// @Param limit query int false "1-200, default 50"
// @Success 200 {array} EventResponse
// @Router /events [get]
func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		q := r.URL.Query()
		filter := EventFilter{
			Status:  schedule.EventStatus(strings.ToUpper(strings.TrimSpace(q.Get("status")))),
			VenueID: strings.TrimSpace(q.Get("venue_id")),
		}
		var err error
		if filter.From, err = parseOptionalTime(q.Get("from")); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, "from must be YYYY-MM-DD or RFC3339")
			return
		}
		if filter.To, err = parseOptionalTime(q.Get("to")); err != nil {
			respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, "to must be YYYY-MM-DD or RFC3339")
			return
		}
		if n, err := strconv.Atoi(q.Get("limit")); err == nil {
			filter.Limit = n
		}

		items, err := svc.ListEvents(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]EventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, EventToResponse(e))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// getEventHandler godoc
// @Summary Obtener evento por id
// @Tags events
// @Produce json
// @Param eventID path string true "ID del evento"
// @Success 200 {object} EventResponse
// @Failure 404 {object} map[string]string
// @Router /events/{eventID} [get]
func getEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			respond.Unauthorized(w)
			return
		}

		e, err := svc.GetEvent(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, EventToResponse(e))
	}
}

// -------------------------
// Helpers
// -------------------------

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrVenueNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "venue not found")
	case errors.Is(err, ErrBandNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "band not found")
	case errors.Is(err, ErrNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "tour not found")
	case errors.Is(err, schedule.ErrNotFound):
		respond.Error(w, http.StatusNotFound, respond.CodeNotFound, "event not found")
	case errors.Is(err, schedule.ErrDateOutOfRange):
		respond.Error(w, http.StatusBadRequest, respond.CodeDateOutOfRange, err.Error())
	case errors.Is(err, schedule.ErrInvalidDateRange):
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidDateRange, err.Error())
	case errors.Is(err, schedule.ErrVenueConflict):
		respond.Error(w, http.StatusConflict, respond.CodeVenueConflict, err.Error())
	case errors.Is(err, schedule.ErrDuplicateEvent):
		respond.Error(w, http.StatusConflict, respond.CodeDuplicateEvent, err.Error())
	case errors.Is(err, schedule.ErrIllegalTransition):
		respond.Error(w, http.StatusConflict, respond.CodeIllegalTransition, err.Error())
	case errors.Is(err, ErrInvalidInput):
		respond.Error(w, http.StatusBadRequest, respond.CodeInvalidInput, strings.TrimPrefix(err.Error(), "invalid input: "))
	default:
		respond.Internal(w)
	}
}

// ToInput convierte el formato de intercambio a ImportInput.
func (req ImportRequest) ToInput() (ImportInput, error) {
	in := ImportInput{
		ID:     req.ID,
		Name:   req.Name,
		Artist: req.Artist,
		BandID: req.BandID,
		Notes:  req.Notes,
		Status: schedule.TourStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
	}

	var err error
	if strings.TrimSpace(req.StartDate) != "" {
		if in.StartDate, err = parseDate(req.StartDate); err != nil {
			return ImportInput{}, errors.New("start_date must be YYYY-MM-DD")
		}
	}
	if strings.TrimSpace(req.EndDate) != "" {
		if in.EndDate, err = parseDate(req.EndDate); err != nil {
			return ImportInput{}, errors.New("end_date must be YYYY-MM-DD")
		}
	}

	for _, e := range req.Events {
		d, err := durationOf(e.DurationMinutes)
		if err != nil {
			return ImportInput{}, err
		}
		in.Events = append(in.Events, ImportEvent{
			ID:       e.ID,
			VenueID:  e.VenueID,
			StartsAt: e.StartsAt,
			Duration: d,
			Status:   schedule.EventStatus(strings.ToUpper(strings.TrimSpace(e.Status))),
			Notes:    e.Notes,
		})
	}
	return in, nil
}

// durationOf valida los minutos antes de multiplicar para no desbordar time.Duration.
func durationOf(minutes int) (time.Duration, error) {
	if minutes < 0 || minutes > maxDurationMinutes {
		return 0, fmt.Errorf("duration_minutes must be between 0 and %d", maxDurationMinutes)
	}
	return time.Duration(minutes) * time.Minute, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

// parseOptionalTime acepta YYYY-MM-DD o RFC3339; vacío => nil.
func parseOptionalTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ToResponse(t schedule.Tour) TourResponse {
	out := TourResponse{
		ID:        t.ID,
		Name:      t.Name,
		Artist:    t.Artist,
		BandID:    t.BandID,
		Status:    string(t.Status),
		Notes:     t.Notes,
		Events:    make([]EventResponse, 0, len(t.Events)),
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if !t.StartDate.IsZero() {
		out.StartDate = t.StartDate.Format(dateLayout)
	}
	if !t.EndDate.IsZero() {
		out.EndDate = t.EndDate.Format(dateLayout)
	}
	for _, e := range t.Events {
		out.Events = append(out.Events, EventToResponse(e))
	}
	return out
}

func EventToResponse(e schedule.Event) EventResponse {
	d := e.Duration
	if d <= 0 {
		d = schedule.DefaultEventDuration
	}
	return EventResponse{
		ID:              e.ID,
		TourID:          e.TourID,
		VenueID:         e.VenueID,
		StartsAt:        e.StartsAt,
		EndsAt:          e.EndsAt(),
		DurationMinutes: int(d / time.Minute),
		Status:          string(e.Status),
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
	}
}

func ViolationsToResponse(vs []schedule.Violation) []ViolationResponse {
	out := make([]ViolationResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, ViolationResponse{
			Code:         string(v.Code),
			EventID:      v.EventID,
			OtherEventID: v.OtherEventID,
			VenueID:      v.VenueID,
			Message:      v.Message,
		})
	}
	return out
}
