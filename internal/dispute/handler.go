package dispute

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crewtab/tippool/pkg/middleware"
	"github.com/crewtab/tippool/pkg/response"
)

// Handler handles HTTP requests for dispute operations
type Handler struct {
	service *Service
}

// NewHandler creates a new dispute handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for dispute endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Post("/{id}/resolve", h.Resolve)

	return r
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrDisputeNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrAlreadyResolved):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrEmptyResolution):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "Failed to process dispute request")
	}
}

// Create handles POST /disputes
// @Summary      Open a dispute
// @Description  File a dispute about a tip amount, optionally referencing a specific pool
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        request body CreateDisputeRequest true "Dispute creation request"
// @Success      201 {object} response.APIResponse{data=DisputeResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /disputes [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Actor identity required")
		return
	}

	var req CreateDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	d, err := h.service.Create(r.Context(), actorID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, d.ToResponse())
}

// List handles GET /disputes
// @Summary      List disputes
// @Description  Get a paginated list of a restaurant's disputes, newest first, optionally filtered by status
// @Tags         disputes
// @Produce      json
// @Param        restaurant_id query int true "Restaurant ID"
// @Param        status query string false "Filter by status (open or resolved)"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]DisputeResponse}
// @Router       /disputes [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := strconv.ParseInt(r.URL.Query().Get("restaurant_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid restaurant ID")
		return
	}

	var status *Status
	if s := r.URL.Query().Get("status"); s != "" {
		st := Status(s)
		if st != StatusOpen && st != StatusResolved {
			response.BadRequest(w, "Invalid status filter")
			return
		}
		status = &st
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	disputes, total, err := h.service.ListByRestaurant(r.Context(), restaurantID, status, page, perPage)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]*DisputeResponse, len(disputes))
	for i, d := range disputes {
		resp[i] = d.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, resp, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	})
}

// GetByID handles GET /disputes/{id}
// @Summary      Get dispute by ID
// @Tags         disputes
// @Produce      json
// @Param        id path int true "Dispute ID"
// @Success      200 {object} response.APIResponse{data=DisputeResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /disputes/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid dispute ID")
		return
	}

	d, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, d.ToResponse())
}

// Resolve handles POST /disputes/{id}/resolve
// @Summary      Resolve a dispute
// @Description  Close a dispute with a resolution note; the referenced pool's amounts are never changed by resolution
// @Tags         disputes
// @Accept       json
// @Produce      json
// @Param        id path int true "Dispute ID"
// @Param        request body ResolveDisputeRequest true "Resolution note"
// @Success      200 {object} response.APIResponse{data=DisputeResponse}
// @Failure      409 {object} response.APIResponse
// @Router       /disputes/{id}/resolve [post]
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Actor identity required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid dispute ID")
		return
	}

	var req ResolveDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	d, err := h.service.Resolve(r.Context(), id, actorID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, d.ToResponse())
}
