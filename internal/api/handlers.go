package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rah-0/launchpad/internal/apperr"
	"github.com/rah-0/launchpad/internal/launch"
	"github.com/rah-0/launchpad/internal/models"
	"github.com/rah-0/launchpad/internal/storage"
	"github.com/swaggo/swag"
)

// SessionHeader carries the caller's session ID
const SessionHeader = "X-Session-Id"

// Handler contains the dependencies needed for the API handlers
type Handler struct {
	Service *launch.Service
	Log     *slog.Logger
}

func NewHandler(svc *launch.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Handler{Service: svc, Log: log}
}

// RegisterRoutes registers all API routes with the provided http.ServeMux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Root path redirects to the OpenAPI document
	mux.HandleFunc("GET /{$}", h.HandleRoot)

	mux.HandleFunc("POST /launches", h.HandleCreateLaunch)
	mux.HandleFunc("GET /launches", h.HandleListLaunches)
	mux.HandleFunc("GET /launches/{id}", h.HandleGetLaunch)
	mux.HandleFunc("PUT /launches/{id}/status", h.HandleUpdateStatus)
	mux.HandleFunc("POST /launches/{id}/astronauts/{astronautId}", h.HandleAllocateAstronaut)
	mux.HandleFunc("DELETE /launches/{id}/astronauts/{astronautId}", h.HandleDeallocateAstronaut)

	// Test support: drops every launch and pending timer
	mux.HandleFunc("DELETE /clear", h.HandleClear)

	// Health check endpoint
	mux.HandleFunc("GET /health", h.HandleHealth)

	mux.HandleFunc("GET /swagger/doc.json", h.HandleSwaggerDoc)
}

// HandleCreateLaunch creates a launch for one of the caller's missions
// @Summary Create a launch
// @Description Validate the vehicle, payload and parameters and create a launch in READY_TO_LAUNCH
// @Tags launches
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Param launch body CreateLaunchRequest true "Launch to create"
// @Success 201 {object} CreateLaunchResponse "Launch created"
// @Failure 400 {object} ErrorResponse "Bad input"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 403 {object} ErrorResponse "Mission not accessible"
// @Router /launches [post]
func (h *Handler) HandleCreateLaunch(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var req CreateLaunchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validateCreateLaunch(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid launch request: "+err.Error())
		return
	}

	payload := models.Payload{Description: req.Payload.Description, Weight: req.Payload.Weight}
	id, err := h.Service.CreateLaunch(r.Context(), userID, req.MissionID, req.VehicleID, payload, req.Params)
	if err != nil {
		h.respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, CreateLaunchResponse{LaunchID: id})
}

// HandleListLaunches handles the GET /launches endpoint
// @Summary List launches
// @Description Launch IDs split into active and completed, optionally sorted
// @Tags launches
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Param sort query string false "Sort field ('id', 'state', 'vehicle', 'createdat')"
// @Param order query string false "Sort order ('asc' or 'desc')"
// @Success 200 {object} models.LaunchList "Launch IDs"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /launches [get]
func (h *Handler) HandleListLaunches(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	opts := storage.ParseSortOptions(r.URL.Query().Get("sort"), r.URL.Query().Get("order"))
	list, err := h.Service.List(r.Context(), userID, opts)
	if err != nil {
		h.respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, list)
}

// HandleGetLaunch retrieves a specific launch by ID
// @Summary Get launch by ID
// @Description Launch details including the mission snapshot, crew and payload orbit
// @Tags launches
// @Produce json
// @Param id path int true "Launch ID"
// @Success 200 {object} models.LaunchView "Launch details"
// @Failure 400 {object} ErrorResponse "Unknown launch"
// @Router /launches/{id} [get]
func (h *Handler) HandleGetLaunch(w http.ResponseWriter, r *http.Request) {
	launchID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	view, err := h.Service.Details(r.Context(), launchID)
	if err != nil {
		h.respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// HandleUpdateStatus applies an action to a launch
// @Summary Update launch status
// @Description Issue a state machine action; an illegal action or a fault is reported as bad input
// @Tags launches
// @Accept json
// @Produce json
// @Param id path int true "Launch ID"
// @Param action body StatusRequest true "Action to apply"
// @Success 204 "Action applied"
// @Failure 400 {object} ErrorResponse "Illegal action or fault"
// @Router /launches/{id}/status [put]
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	launchID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validateStatus(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid status request: "+err.Error())
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), req.Action, launchID); err != nil {
		h.respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAllocateAstronaut adds an astronaut to a launch's crew
// @Summary Allocate astronaut
// @Tags crew
// @Accept json
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Param id path int true "Launch ID"
// @Param astronautId path int true "Astronaut ID"
// @Param body body AllocateRequest true "Mission the launch belongs to"
// @Success 204 "Astronaut allocated"
// @Failure 400 {object} ErrorResponse "Bad input"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 403 {object} ErrorResponse "Mission not accessible"
// @Router /launches/{id}/astronauts/{astronautId} [post]
func (h *Handler) HandleAllocateAstronaut(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	launchID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	astronautID, ok := pathInt(w, r, "astronautId")
	if !ok {
		return
	}

	var req AllocateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validateAllocate(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid allocation request: "+err.Error())
		return
	}

	if err := h.Service.AllocateAstronaut(r.Context(), userID, astronautID, req.MissionID, launchID); err != nil {
		h.respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDeallocateAstronaut removes an astronaut from a launch's crew
// @Summary Deallocate astronaut
// @Tags crew
// @Produce json
// @Param X-Session-Id header string true "Session ID"
// @Param id path int true "Launch ID"
// @Param astronautId path int true "Astronaut ID"
// @Param missionId query int true "Mission the launch belongs to"
// @Success 204 "Astronaut deallocated"
// @Failure 400 {object} ErrorResponse "Bad input"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 403 {object} ErrorResponse "Mission not accessible"
// @Router /launches/{id}/astronauts/{astronautId} [delete]
func (h *Handler) HandleDeallocateAstronaut(w http.ResponseWriter, r *http.Request) {
	launchID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	astronautID, ok := pathInt(w, r, "astronautId")
	if !ok {
		return
	}
	missionID, err := strconv.Atoi(r.URL.Query().Get("missionId"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing or invalid missionId")
		return
	}

	// Session resolution happens inside launch control for this operation
	sessionID := r.Header.Get(SessionHeader)
	if err := h.Service.DeallocateAstronaut(r.Context(), sessionID, astronautID, missionID, launchID); err != nil {
		h.respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleClear handles the DELETE /clear endpoint
// @Summary Reset launch control
// @Description Cancel every pending timer and delete every launch
// @Tags system
// @Success 204 "Cleared"
// @Router /clear [delete]
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Reset(r.Context()); err != nil {
		h.respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRoot redirects to the OpenAPI document
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/swagger/doc.json", http.StatusFound)
}

// HandleSwaggerDoc serves the registered OpenAPI document
func (h *Handler) HandleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		respondWithError(w, http.StatusNotFound, "API documentation not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}

// HandleHealth handles the GET /health endpoint for healthcheck
// @Summary Health check
// @Description Returns 200 OK when the service is healthy
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string "Service status"
// @Router /health [get]
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// authenticate resolves the session header to a user, writing the error response
// itself when it fails
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, err := h.Service.ResolveSession(r.Context(), r.Header.Get(SessionHeader))
	if err != nil {
		h.respondWithAppError(w, err)
		return 0, false
	}
	return userID, true
}

// Helper functions for HTTP requests and responses

// decodeBody parses a strict JSON body into dst
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields() // Strict mode to catch malformed JSON

	if err := decoder.Decode(dst); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	return true
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid "+name+": "+r.PathValue(name))
		return 0, false
	}
	return v, true
}

// respondWithAppError maps a launch control error to its HTTP status
func (h *Handler) respondWithAppError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.Log.Error("Request failed", "error", err)
		respondWithError(w, status, "Internal server error")
		return
	}

	respondWithJSON(w, status, ErrorResponse{Error: err.Error(), Kind: string(apperr.KindOf(err))})
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
