package dispute

// CreateDisputeRequest represents the request to open a dispute
type CreateDisputeRequest struct {
	RestaurantID int64  `json:"restaurant_id" validate:"required"`
	PoolID       *int64 `json:"pool_id,omitempty"`
	DisputeType  string `json:"dispute_type" validate:"required,min=1,max=50"`
	Message      string `json:"message" validate:"required,min=1,max=500"`
}

// ResolveDisputeRequest represents the request to resolve a dispute
type ResolveDisputeRequest struct {
	ResolutionNote string `json:"resolution_note" validate:"required,min=1,max=500"`
}

// DisputeResponse represents the response for a dispute
type DisputeResponse struct {
	ID             int64   `json:"id"`
	RestaurantID   int64   `json:"restaurant_id"`
	EmployeeID     int64   `json:"employee_id"`
	PoolID         *int64  `json:"pool_id,omitempty"`
	DisputeType    string  `json:"dispute_type"`
	Message        string  `json:"message"`
	Status         Status  `json:"status"`
	ResolutionNote *string `json:"resolution_note,omitempty"`
	CreatedAt      string  `json:"created_at"`
	ResolvedAt     *string `json:"resolved_at,omitempty"`
	ResolvedBy     *int64  `json:"resolved_by,omitempty"`
}

const timeLayout = "2006-01-02T15:04:05Z"

// ToResponse converts a Dispute model to a DisputeResponse DTO
func (d *Dispute) ToResponse() *DisputeResponse {
	resp := &DisputeResponse{
		ID:             d.ID,
		RestaurantID:   d.RestaurantID,
		EmployeeID:     d.EmployeeID,
		PoolID:         d.PoolID,
		DisputeType:    d.DisputeType,
		Message:        d.Message,
		Status:         d.Status,
		ResolutionNote: d.ResolutionNote,
		CreatedAt:      d.CreatedAt.Format(timeLayout),
		ResolvedBy:     d.ResolvedBy,
	}
	if d.ResolvedAt != nil {
		at := d.ResolvedAt.Format(timeLayout)
		resp.ResolvedAt = &at
	}
	return resp
}
