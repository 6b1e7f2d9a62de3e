package dispute

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrDisputeNotFound = errors.New("dispute not found")
	ErrAlreadyResolved = errors.New("dispute is already resolved")
	ErrEmptyMessage    = errors.New("dispute message is required")
	ErrEmptyResolution = errors.New("resolution note is required")
)

// Store defines the persistence operations for disputes
type Store interface {
	Create(ctx context.Context, d *Dispute) (*Dispute, error)
	GetByID(ctx context.Context, id int64) (*Dispute, error)
	ListByRestaurant(ctx context.Context, restaurantID int64, status *Status, limit, offset int) ([]*Dispute, int, error)
	Resolve(ctx context.Context, id, resolverID int64, note string) (*Dispute, error)
}

// Service handles dispute business logic
type Service struct {
	store Store
}

// NewService creates a new dispute service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create opens a new dispute on behalf of an employee
func (s *Service) Create(ctx context.Context, employeeID int64, req *CreateDisputeRequest) (*Dispute, error) {
	if req.Message == "" {
		return nil, ErrEmptyMessage
	}
	disputeType := req.DisputeType
	if disputeType == "" {
		disputeType = "other"
	}

	return s.store.Create(ctx, &Dispute{
		RestaurantID: req.RestaurantID,
		EmployeeID:   employeeID,
		PoolID:       req.PoolID,
		DisputeType:  disputeType,
		Message:      req.Message,
		Status:       StatusOpen,
	})
}

// GetByID retrieves a dispute
func (s *Service) GetByID(ctx context.Context, id int64) (*Dispute, error) {
	return s.store.GetByID(ctx, id)
}

// ListByRestaurant retrieves disputes for a restaurant, optionally filtered
// by status
func (s *Service) ListByRestaurant(ctx context.Context, restaurantID int64, status *Status, page, perPage int) ([]*Dispute, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListByRestaurant(ctx, restaurantID, status, perPage, offset)
}

// Resolve closes a dispute with a resolution note. The referenced pool's
// amounts are untouched; if the dispute is upheld, the manager corrects the
// pool through a reopen/adjust/approve cycle, which keeps the audit trail
// complete.
func (s *Service) Resolve(ctx context.Context, id, resolverID int64, req *ResolveDisputeRequest) (*Dispute, error) {
	if req.ResolutionNote == "" {
		return nil, ErrEmptyResolution
	}

	d, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Status != StatusOpen {
		return nil, ErrAlreadyResolved
	}

	return s.store.Resolve(ctx, id, resolverID, req.ResolutionNote)
}
