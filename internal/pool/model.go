package pool

import (
	"time"

	"github.com/crewtab/tippool/internal/allocation"
)

// Status represents the lifecycle state of a tip pool
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusReopened Status = "reopened"
)

// CanTransitionTo reports whether a pool in status s may move to target.
// Approval is legal from draft or reopened; reopening only from approved.
func (s Status) CanTransitionTo(target Status) bool {
	switch target {
	case StatusApproved:
		return s == StatusDraft || s == StatusReopened
	case StatusReopened:
		return s == StatusApproved
	default:
		return false
	}
}

// Editable reports whether item amounts may still change in status s
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusReopened
}

// AuditAction identifies the lifecycle transition an audit entry records
type AuditAction string

const (
	AuditCreated      AuditAction = "created"
	AuditApproved     AuditAction = "approved"
	AuditReopened     AuditAction = "reopened"
	AuditItemAdjusted AuditAction = "item_adjusted"
)

// Pool represents a tip pool: a total amount split across employees for one
// service date at one restaurant
type Pool struct {
	ID               int64             `json:"id"`
	RestaurantID     int64             `json:"restaurant_id"`
	PoolDate         time.Time         `json:"pool_date"`
	TotalAmountCents int64             `json:"total_amount_cents"`
	AllocationMethod allocation.Method `json:"allocation_method"`
	Status           Status            `json:"status"`
	Version          int64             `json:"version"` // Bumped on every item mutation
	CreatedBy        int64             `json:"created_by"`
	CreatedAt        time.Time         `json:"created_at"`
	ApprovedBy       *int64            `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time        `json:"approved_at,omitempty"`
}

// Item represents one employee's share of a pool. Items are owned by their
// pool and are deleted with it.
type Item struct {
	ID             int64    `json:"id"`
	PoolID         int64    `json:"pool_id"`
	EmployeeID     int64    `json:"employee_id"`
	AmountCents    int64    `json:"amount_cents"`
	HoursWorked    *float64 `json:"hours_worked,omitempty"`
	RoleWeight     *float64 `json:"role_weight,omitempty"`
	ManualOverride bool     `json:"manual_override"`
}

// AuditEntry is one append-only record of a pool lifecycle transition.
// Entries are never mutated or deleted.
type AuditEntry struct {
	ID         int64       `json:"id"`
	PoolID     int64       `json:"pool_id"`
	Action     AuditAction `json:"action"`
	ActorID    int64       `json:"actor_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Metadata   string      `json:"metadata,omitempty"`
}

// PoolWithItems combines a pool with its items
type PoolWithItems struct {
	Pool  *Pool
	Items []*Item
}

// itemSum returns the sum of item amounts in cents
func itemSum(items []*Item) int64 {
	var sum int64
	for _, it := range items {
		sum += it.AmountCents
	}
	return sum
}
