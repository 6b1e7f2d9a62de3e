package declaration

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crewtab/tippool/pkg/middleware"
	"github.com/crewtab/tippool/pkg/response"
)

// Handler handles HTTP requests for declaration operations
type Handler struct {
	service *Service
}

// NewHandler creates a new declaration handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for declaration endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /declarations
// @Summary      Declare tips for a shift
// @Description  Record the authenticated employee's self-declared cash and credit tips for a date
// @Tags         declarations
// @Accept       json
// @Produce      json
// @Param        request body CreateDeclarationRequest true "Declaration request"
// @Success      201 {object} response.APIResponse{data=DeclarationResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /declarations [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Actor identity required")
		return
	}

	var req CreateDeclarationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	d, err := h.service.Create(r.Context(), employeeID, &req)
	if err != nil {
		if errors.Is(err, ErrNegativeAmount) || errors.Is(err, ErrInvalidDate) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create declaration")
		return
	}

	response.JSON(w, http.StatusCreated, d.ToResponse())
}

// List handles GET /declarations
// @Summary      List declarations
// @Description  Get an employee's declarations within a date range
// @Tags         declarations
// @Produce      json
// @Param        employee_id query int true "Employee ID"
// @Param        from query string true "Start date (YYYY-MM-DD)"
// @Param        to query string true "End date (YYYY-MM-DD)"
// @Success      200 {object} response.APIResponse{data=[]DeclarationResponse}
// @Router       /declarations [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(r.URL.Query().Get("employee_id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid employee ID")
		return
	}

	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		response.BadRequest(w, "Invalid start date")
		return
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		response.BadRequest(w, "Invalid end date")
		return
	}

	declarations, err := h.service.ListByEmployee(r.Context(), employeeID, from, to)
	if err != nil {
		response.InternalError(w, "Failed to list declarations")
		return
	}

	resp := make([]*DeclarationResponse, len(declarations))
	for i, d := range declarations {
		resp[i] = d.ToResponse()
	}
	response.JSON(w, http.StatusOK, resp)
}

// GetByID handles GET /declarations/{id}
// @Summary      Get declaration by ID
// @Tags         declarations
// @Produce      json
// @Param        id path int true "Declaration ID"
// @Success      200 {object} response.APIResponse{data=DeclarationResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /declarations/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid declaration ID")
		return
	}

	d, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrDeclarationNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get declaration")
		return
	}

	response.JSON(w, http.StatusOK, d.ToResponse())
}

// Delete handles DELETE /declarations/{id}
// @Summary      Delete a declaration
// @Description  Delete the authenticated employee's own declaration, e.g. to correct a same-day mistake
// @Tags         declarations
// @Produce      json
// @Param        id path int true "Declaration ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /declarations/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Actor identity required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid declaration ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, actorID); err != nil {
		switch {
		case errors.Is(err, ErrDeclarationNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to delete declaration")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Declaration deleted"})
}
