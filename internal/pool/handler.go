package pool

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crewtab/tippool/internal/allocation"
	"github.com/crewtab/tippool/pkg/middleware"
	"github.com/crewtab/tippool/pkg/response"
)

// Handler handles HTTP requests for pool operations
type Handler struct {
	service *Service
}

// NewHandler creates a new pool handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for pool endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Post("/preview", h.Preview)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)

	// Lifecycle transitions
	r.Post("/{id}/approve", h.Approve)
	r.Post("/{id}/reopen", h.Reopen)
	r.Put("/{id}/items/{employeeId}", h.AdjustItem)

	r.Get("/{id}/audit", h.AuditTrail)

	return r
}

// writeServiceError maps service errors to HTTP responses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPoolNotFound), errors.Is(err, ErrItemNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrInvalidState):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrVersionConflict):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrSumMismatch),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, allocation.ErrInvalidInput),
		errors.Is(err, allocation.ErrNoEligibleParticipants),
		errors.Is(err, allocation.ErrUnknownMethod):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, "Failed to process pool request")
	}
}

func poolWithItemsResponse(pw *PoolWithItems) *PoolResponse {
	resp := pw.Pool.ToResponse()
	resp.Items = make([]*ItemResponse, len(pw.Items))
	for i, it := range pw.Items {
		resp.Items[i] = it.ToResponse()
	}
	return resp
}

// Create handles POST /pools
// @Summary      Create a tip pool
// @Description  Create a pool with shares computed by the equal, by_hours, by_role_weight or manual method; optionally approve it in the same step
// @Tags         pools
// @Accept       json
// @Produce      json
// @Param        request body CreatePoolRequest true "Pool creation request"
// @Success      201 {object} response.APIResponse{data=PoolResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /pools [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Actor identity required")
		return
	}

	var req CreatePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if len(req.Participants) == 0 {
		response.BadRequest(w, "At least one participant is required")
		return
	}

	result, err := h.service.Create(r.Context(), actorID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, poolWithItemsResponse(result))
}

// Preview handles POST /pools/preview
// @Summary      Preview a split
// @Description  Compute per-employee shares without persisting anything
// @Tags         pools
// @Accept       json
// @Produce      json
// @Param        request body PreviewRequest true "Preview request"
// @Success      200 {object} response.APIResponse{data=[]ItemResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /pools/preview [post]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	items, err := h.service.Preview(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]*ItemResponse, len(items))
	for i, it := range items {
		resp[i] = it.ToResponse()
	}
	response.JSON(w, http.StatusOK, resp)
}

// GetByID handles GET /pools/{id}
// @Summary      Get pool by ID
// @Description  Get a pool with all its items
// @Tags         pools
// @Produce      json
// @Param        id path int true "Pool ID"
// @Success      200 {object} response.APIResponse{data=PoolResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /pools/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid pool ID")
		return
	}

	result, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, poolWithItemsResponse(result))
}

// List handles GET /pools
// @Summary      List pools
// @Description  Get a paginated list of pools for a restaurant within a date range
// @Tags         pools
// @Produce      json
// @Param        restaurant_id query int true "Restaurant ID"
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]PoolResponse}
// @Router       /pools [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := strconv.ParseInt(r.URL.Query().Get("restaurant_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid restaurant ID")
		return
	}

	from, to, err := parseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	pools, total, err := h.service.ListByRestaurant(r.Context(), restaurantID, from, to, page, perPage)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]*PoolResponse, len(pools))
	for i, p := range pools {
		resp[i] = p.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, resp, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	})
}

// parseDateRange parses optional from/to query params, defaulting to the
// last 31 days ending today.
func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	to := time.Now().UTC().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -30)

	var err error
	if fromStr != "" {
		if from, err = time.Parse(dateLayout, fromStr); err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
	}
	if toStr != "" {
		if to, err = time.Parse(dateLayout, toStr); err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDate
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("end date is before start date")
	}
	return from, to, nil
}

// Approve handles POST /pools/{id}/approve
// @Summary      Approve a pool
// @Description  Transition a draft or reopened pool to approved; its amounts become authoritative for payroll
// @Tags         pools
// @Produce      json
// @Param        id path int true "Pool ID"
// @Success      200 {object} response.APIResponse{data=PoolResponse}
// @Failure      409 {object} response.APIResponse
// @Router       /pools/{id}/approve [post]
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Actor identity required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid pool ID")
		return
	}

	p, err := h.service.Approve(r.Context(), id, actorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// Reopen handles POST /pools/{id}/reopen
// @Summary      Reopen an approved pool
// @Description  Return an approved pool to an editable state without altering its item amounts
// @Tags         pools
// @Produce      json
// @Param        id path int true "Pool ID"
// @Success      200 {object} response.APIResponse{data=PoolResponse}
// @Failure      409 {object} response.APIResponse
// @Router       /pools/{id}/reopen [post]
func (h *Handler) Reopen(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Actor identity required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid pool ID")
		return
	}

	p, err := h.service.Reopen(r.Context(), id, actorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// AdjustItem handles PUT /pools/{id}/items/{employeeId}
// @Summary      Manually override one item
// @Description  Set one employee's amount and rebalance the remaining items so the pool total is conserved
// @Tags         pools
// @Accept       json
// @Produce      json
// @Param        id path int true "Pool ID"
// @Param        employeeId path int true "Employee ID"
// @Param        request body AdjustItemRequest true "New amount"
// @Success      200 {object} response.APIResponse{data=PoolResponse}
// @Failure      409 {object} response.APIResponse
// @Router       /pools/{id}/items/{employeeId} [put]
func (h *Handler) AdjustItem(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Actor identity required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid pool ID")
		return
	}
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid employee ID")
		return
	}

	var req AdjustItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	result, err := h.service.AdjustItem(r.Context(), id, employeeID, req.AmountCents, req.Version, actorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, poolWithItemsResponse(result))
}

// Delete handles DELETE /pools/{id}
// @Summary      Delete a draft pool
// @Description  Delete a pool that has never been approved; its items are removed with it
// @Tags         pools
// @Produce      json
// @Param        id path int true "Pool ID"
// @Success      200 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /pools/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid pool ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Pool deleted"})
}

// AuditTrail handles GET /pools/{id}/audit
// @Summary      Get a pool's audit trail
// @Description  Get the append-only list of lifecycle transitions for a pool, in chronological order
// @Tags         pools
// @Produce      json
// @Param        id path int true "Pool ID"
// @Success      200 {object} response.APIResponse{data=[]AuditEntryResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /pools/{id}/audit [get]
func (h *Handler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid pool ID")
		return
	}

	entries, err := h.service.AuditTrail(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]*AuditEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = e.ToResponse()
	}
	response.JSON(w, http.StatusOK, resp)
}
