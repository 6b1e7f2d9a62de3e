package pool

// PoolParticipant is one employee in a pool creation or preview request
type PoolParticipant struct {
	EmployeeID  int64    `json:"employee_id" validate:"required"`
	Hours       *float64 `json:"hours,omitempty"`        // For by_hours and by_role_weight
	RoleWeight  *float64 `json:"role_weight,omitempty"`  // For by_role_weight
	AmountCents *int64   `json:"amount_cents,omitempty"` // For manual pools
}

// CreatePoolRequest represents the request to create a tip pool
type CreatePoolRequest struct {
	RestaurantID     int64              `json:"restaurant_id" validate:"required"`
	PoolDate         string             `json:"pool_date" validate:"required"` // YYYY-MM-DD
	TotalAmountCents int64              `json:"total_amount_cents" validate:"gte=0"`
	AllocationMethod string             `json:"allocation_method" validate:"required,oneof=equal by_hours by_role_weight manual"`
	Participants     []*PoolParticipant `json:"participants" validate:"required,min=1"`
	Approve          bool               `json:"approve"` // Create and approve in one step
}

// PreviewRequest computes shares without persisting anything
type PreviewRequest struct {
	TotalAmountCents int64              `json:"total_amount_cents" validate:"gte=0"`
	AllocationMethod string             `json:"allocation_method" validate:"required"`
	Participants     []*PoolParticipant `json:"participants" validate:"required,min=1"`
}

// AdjustItemRequest represents the request to manually override one item.
// Version, when nonzero, must match the pool's current version; stale
// adjustments are rejected so concurrent edits cannot interleave.
type AdjustItemRequest struct {
	AmountCents int64 `json:"amount_cents" validate:"gte=0"`
	Version     int64 `json:"version,omitempty"`
}

// PoolResponse represents the response for a pool
type PoolResponse struct {
	ID               int64           `json:"id"`
	RestaurantID     int64           `json:"restaurant_id"`
	PoolDate         string          `json:"pool_date"`
	TotalAmountCents int64           `json:"total_amount_cents"`
	AllocationMethod string          `json:"allocation_method"`
	Status           Status          `json:"status"`
	Version          int64           `json:"version"`
	CreatedBy        int64           `json:"created_by"`
	CreatedAt        string          `json:"created_at"`
	ApprovedBy       *int64          `json:"approved_by,omitempty"`
	ApprovedAt       *string         `json:"approved_at,omitempty"`
	Items            []*ItemResponse `json:"items,omitempty"`
}

// ItemResponse represents the response for a pool item
type ItemResponse struct {
	ID             int64    `json:"id"`
	PoolID         int64    `json:"pool_id"`
	EmployeeID     int64    `json:"employee_id"`
	AmountCents    int64    `json:"amount_cents"`
	HoursWorked    *float64 `json:"hours_worked,omitempty"`
	RoleWeight     *float64 `json:"role_weight,omitempty"`
	ManualOverride bool     `json:"manual_override"`
}

// AuditEntryResponse represents the response for an audit entry
type AuditEntryResponse struct {
	ID         int64  `json:"id"`
	PoolID     int64  `json:"pool_id"`
	Action     string `json:"action"`
	ActorID    int64  `json:"actor_id"`
	OccurredAt string `json:"occurred_at"`
	Metadata   string `json:"metadata,omitempty"`
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02T15:04:05Z"
)

// ToResponse converts a Pool model to a PoolResponse DTO
func (p *Pool) ToResponse() *PoolResponse {
	resp := &PoolResponse{
		ID:               p.ID,
		RestaurantID:     p.RestaurantID,
		PoolDate:         p.PoolDate.Format(dateLayout),
		TotalAmountCents: p.TotalAmountCents,
		AllocationMethod: string(p.AllocationMethod),
		Status:           p.Status,
		Version:          p.Version,
		CreatedBy:        p.CreatedBy,
		CreatedAt:        p.CreatedAt.Format(timeLayout),
		ApprovedBy:       p.ApprovedBy,
	}
	if p.ApprovedAt != nil {
		at := p.ApprovedAt.Format(timeLayout)
		resp.ApprovedAt = &at
	}
	return resp
}

// ToResponse converts an Item model to an ItemResponse DTO
func (it *Item) ToResponse() *ItemResponse {
	return &ItemResponse{
		ID:             it.ID,
		PoolID:         it.PoolID,
		EmployeeID:     it.EmployeeID,
		AmountCents:    it.AmountCents,
		HoursWorked:    it.HoursWorked,
		RoleWeight:     it.RoleWeight,
		ManualOverride: it.ManualOverride,
	}
}

// ToResponse converts an AuditEntry model to an AuditEntryResponse DTO
func (e *AuditEntry) ToResponse() *AuditEntryResponse {
	return &AuditEntryResponse{
		ID:         e.ID,
		PoolID:     e.PoolID,
		Action:     string(e.Action),
		ActorID:    e.ActorID,
		OccurredAt: e.OccurredAt.Format(timeLayout),
		Metadata:   e.Metadata,
	}
}
