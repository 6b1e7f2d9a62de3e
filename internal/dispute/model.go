package dispute

import "time"

// Status represents the state of a dispute
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// Dispute represents an employee's challenge to a tip amount. Resolving a
// dispute never alters the referenced pool's amounts; a correction requires
// a new reopen/adjust/approve cycle on the pool itself.
type Dispute struct {
	ID             int64      `json:"id"`
	RestaurantID   int64      `json:"restaurant_id"`
	EmployeeID     int64      `json:"employee_id"`
	PoolID         *int64     `json:"pool_id,omitempty"`
	DisputeType    string     `json:"dispute_type"`
	Message        string     `json:"message"`
	Status         Status     `json:"status"`
	ResolutionNote *string    `json:"resolution_note,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy     *int64     `json:"resolved_by,omitempty"`
}
