package declaration

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Common errors
var (
	ErrDeclarationNotFound = errors.New("declaration not found")
	ErrNegativeAmount      = errors.New("declared amounts cannot be negative")
	ErrNotOwner            = errors.New("only the declaring employee can delete a declaration")
	ErrInvalidDate         = errors.New("date must be in YYYY-MM-DD format")
)

// Store defines the persistence operations for declarations
type Store interface {
	Create(ctx context.Context, d *Declaration) (*Declaration, error)
	GetByID(ctx context.Context, id int64) (*Declaration, error)
	ListByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]*Declaration, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles tip declaration business logic
type Service struct {
	store Store
}

// NewService creates a new declaration service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create records an employee's self-declared tips for a shift
func (s *Service) Create(ctx context.Context, employeeID int64, req *CreateDeclarationRequest) (*Declaration, error) {
	date, err := time.Parse(dateLayout, req.DeclarationDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.DeclarationDate)
	}
	if req.CashAmountCents < 0 || req.CreditAmountCents < 0 {
		return nil, ErrNegativeAmount
	}

	return s.store.Create(ctx, &Declaration{
		RestaurantID:      req.RestaurantID,
		EmployeeID:        employeeID,
		DeclarationDate:   date,
		CashAmountCents:   req.CashAmountCents,
		CreditAmountCents: req.CreditAmountCents,
	})
}

// GetByID retrieves a declaration
func (s *Service) GetByID(ctx context.Context, id int64) (*Declaration, error) {
	return s.store.GetByID(ctx, id)
}

// ListByEmployee retrieves an employee's declarations within a date range
func (s *Service) ListByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]*Declaration, error) {
	return s.store.ListByEmployee(ctx, employeeID, from, to)
}

// Delete removes a declaration, e.g. for a same-day correction before a new
// one is submitted. Only the declaring employee may delete it.
func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	d, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d.EmployeeID != actorID {
		return ErrNotOwner
	}
	return s.store.Delete(ctx, id)
}
