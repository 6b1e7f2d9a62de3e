package payroll

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crewtab/tippool/pkg/response"
)

// Handler handles HTTP requests for payroll tip queries
type Handler struct {
	service *Service
}

// NewHandler creates a new payroll handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for payroll endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/tips/{employeeId}", h.GetTipTotal)

	return r
}

// GetTipTotal handles GET /payroll/tips/{employeeId}
// @Summary      Get an employee's payroll tip total
// @Description  Produce exactly one tip amount per date over the pay period, with a per-date breakdown of which source (approved split or declaration) supplied it
// @Tags         payroll
// @Produce      json
// @Param        employeeId path int true "Employee ID"
// @Param        from query string true "Start date (YYYY-MM-DD)"
// @Param        to query string true "End date (YYYY-MM-DD)"
// @Success      200 {object} response.APIResponse{data=Total}
// @Failure      400 {object} response.APIResponse
// @Router       /payroll/tips/{employeeId} [get]
func (h *Handler) GetTipTotal(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeId"), 10, 64)
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

	total, err := h.service.GetTipTotal(r.Context(), employeeID, from, to)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) || errors.Is(err, ErrRangeTooWide) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to aggregate tips")
		return
	}

	response.JSON(w, http.StatusOK, total)
}
