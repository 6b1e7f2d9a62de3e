package pool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/crewtab/tippool/internal/allocation"
)

// Common errors
var (
	ErrPoolNotFound    = errors.New("pool not found")
	ErrItemNotFound    = errors.New("pool item not found")
	ErrInvalidState    = errors.New("operation not allowed in the pool's current state")
	ErrSumMismatch     = errors.New("item amounts do not reconcile to the pool total")
	ErrVersionConflict = errors.New("pool was modified by a concurrent request")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
)

// Store defines the persistence operations the lifecycle needs. Every
// transition method is atomic: the status change, item mutations and audit
// entry persist together or not at all. Implementations must serialize
// transitions on the same pool.
type Store interface {
	// CreatePool persists a new draft pool with its items and a `created`
	// audit entry. When approve is set, the pool is approved in the same
	// transaction and an `approved` entry follows the `created` one.
	CreatePool(ctx context.Context, p *Pool, items []*Item, approve bool) (*PoolWithItems, error)

	// GetPool retrieves a pool with its items.
	GetPool(ctx context.Context, id int64) (*PoolWithItems, error)

	// ListPools retrieves pools for a restaurant within a date range.
	ListPools(ctx context.Context, restaurantID int64, from, to time.Time, limit, offset int) ([]*Pool, int, error)

	// ApprovePool transitions a draft or reopened pool to approved after
	// revalidating that the items sum to the pool total.
	ApprovePool(ctx context.Context, id, actorID int64) (*Pool, error)

	// ReopenPool transitions an approved pool back to an editable state,
	// leaving its item amounts untouched.
	ReopenPool(ctx context.Context, id, actorID int64) (*Pool, error)

	// ReplaceItems swaps a pool's items, bumps its version and records an
	// `item_adjusted` audit entry. Fails with ErrVersionConflict when
	// expectedVersion no longer matches.
	ReplaceItems(ctx context.Context, poolID, expectedVersion int64, items []*Item, actorID int64, metadata string) (*PoolWithItems, error)

	// DeletePool removes a draft pool and its items.
	DeletePool(ctx context.Context, id int64) error

	// AuditTrail returns a pool's audit entries in chronological order.
	AuditTrail(ctx context.Context, poolID int64) ([]*AuditEntry, error)
}

// Service owns the tip pool lifecycle: allocation on create, the
// draft -> approved -> reopened state machine, and manual adjustments
type Service struct {
	store      Store
	strategies *allocation.Factory
}

// NewService creates a new pool service with dependencies injected
func NewService(store Store, strategies *allocation.Factory) *Service {
	return &Service{store: store, strategies: strategies}
}

// Create builds the pool items with the requested allocation method and
// persists the pool, optionally approving it in the same transaction
func (s *Service) Create(ctx context.Context, actorID int64, req *CreatePoolRequest) (*PoolWithItems, error) {
	poolDate, err := time.Parse(dateLayout, req.PoolDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.PoolDate)
	}
	if req.TotalAmountCents < 0 {
		return nil, fmt.Errorf("%w: total %d", allocation.ErrInvalidInput, req.TotalAmountCents)
	}

	items, err := s.buildItems(req.AllocationMethod, req.TotalAmountCents, req.Participants)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		RestaurantID:     req.RestaurantID,
		PoolDate:         poolDate,
		TotalAmountCents: req.TotalAmountCents,
		AllocationMethod: allocation.Method(req.AllocationMethod),
		Status:           StatusDraft,
		CreatedBy:        actorID,
	}

	return s.store.CreatePool(ctx, p, items, req.Approve)
}

// Preview computes shares without persisting anything
func (s *Service) Preview(ctx context.Context, req *PreviewRequest) ([]*Item, error) {
	return s.buildItems(req.AllocationMethod, req.TotalAmountCents, req.Participants)
}

// buildItems turns request participants into items whose amounts sum exactly
// to totalCents. Manual pools carry caller-provided amounts, which must
// reconcile to the total up front; every other method delegates to the
// matching allocation strategy.
func (s *Service) buildItems(method string, totalCents int64, participants []*PoolParticipant) ([]*Item, error) {
	if allocation.Method(method) == allocation.MethodManual {
		return buildManualItems(totalCents, participants)
	}

	strategy, err := s.strategies.CreateFromString(method)
	if err != nil {
		return nil, err
	}

	inputs := make([]allocation.Participant, len(participants))
	for i, p := range participants {
		inputs[i] = allocation.Participant{
			EmployeeID: p.EmployeeID,
			Hours:      p.Hours,
			RoleWeight: p.RoleWeight,
		}
	}

	shares, err := strategy.Calculate(totalCents, inputs)
	if err != nil {
		return nil, err
	}

	items := make([]*Item, len(shares))
	for i, share := range shares {
		items[i] = &Item{
			EmployeeID:  share.EmployeeID,
			AmountCents: share.AmountCents,
			HoursWorked: participants[i].Hours,
			RoleWeight:  participants[i].RoleWeight,
		}
	}
	return items, nil
}

func buildManualItems(totalCents int64, participants []*PoolParticipant) ([]*Item, error) {
	if len(participants) == 0 {
		return nil, allocation.ErrNoEligibleParticipants
	}

	items := make([]*Item, len(participants))
	var sum int64
	for i, p := range participants {
		if p.AmountCents == nil {
			return nil, fmt.Errorf("%w: amount required for employee %d", allocation.ErrInvalidInput, p.EmployeeID)
		}
		if *p.AmountCents < 0 {
			return nil, fmt.Errorf("%w: negative amount for employee %d", allocation.ErrInvalidInput, p.EmployeeID)
		}
		sum += *p.AmountCents
		items[i] = &Item{
			EmployeeID:     p.EmployeeID,
			AmountCents:    *p.AmountCents,
			HoursWorked:    p.Hours,
			RoleWeight:     p.RoleWeight,
			ManualOverride: true,
		}
	}
	if sum != totalCents {
		return nil, fmt.Errorf("%w: items sum to %d, pool total is %d", ErrSumMismatch, sum, totalCents)
	}
	return items, nil
}

// Get retrieves a pool with its items
func (s *Service) Get(ctx context.Context, id int64) (*PoolWithItems, error) {
	return s.store.GetPool(ctx, id)
}

// ListByRestaurant retrieves pools for a restaurant within a date range
func (s *Service) ListByRestaurant(ctx context.Context, restaurantID int64, from, to time.Time, page, perPage int) ([]*Pool, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListPools(ctx, restaurantID, from, to, perPage, offset)
}

// Approve transitions a draft or reopened pool to approved. Approving an
// already-approved pool fails with ErrInvalidState rather than silently
// succeeding, so no duplicate audit entries can appear.
func (s *Service) Approve(ctx context.Context, poolID, actorID int64) (*Pool, error) {
	return s.store.ApprovePool(ctx, poolID, actorID)
}

// Reopen returns an approved pool to an editable state. Item amounts are
// kept as the starting point for edits.
func (s *Service) Reopen(ctx context.Context, poolID, actorID int64) (*Pool, error) {
	return s.store.ReopenPool(ctx, poolID, actorID)
}

// AdjustItem manually overrides one employee's amount and rebalances the
// remaining items so the pool total is conserved. Allowed only while the
// pool is draft or reopened.
func (s *Service) AdjustItem(ctx context.Context, poolID, employeeID, newAmountCents, version, actorID int64) (*PoolWithItems, error) {
	pw, err := s.store.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if !pw.Pool.Status.Editable() {
		return nil, fmt.Errorf("%w: pool is %s", ErrInvalidState, pw.Pool.Status)
	}
	if version == 0 {
		version = pw.Pool.Version
	}

	shares := make([]allocation.Share, len(pw.Items))
	for i, it := range pw.Items {
		shares[i] = allocation.Share{
			EmployeeID:     it.EmployeeID,
			AmountCents:    it.AmountCents,
			ManualOverride: it.ManualOverride,
		}
	}

	adjusted, err := allocation.ApplyManualOverride(shares, employeeID, newAmountCents, pw.Pool.TotalAmountCents)
	if err != nil {
		if errors.Is(err, allocation.ErrParticipantNotFound) {
			return nil, fmt.Errorf("%w: employee %d", ErrItemNotFound, employeeID)
		}
		return nil, err
	}

	items := make([]*Item, len(adjusted))
	for i, share := range adjusted {
		items[i] = &Item{
			PoolID:         poolID,
			EmployeeID:     share.EmployeeID,
			AmountCents:    share.AmountCents,
			HoursWorked:    pw.Items[i].HoursWorked,
			RoleWeight:     pw.Items[i].RoleWeight,
			ManualOverride: share.ManualOverride,
		}
	}

	metadata, _ := json.Marshal(map[string]int64{
		"employee_id":  employeeID,
		"amount_cents": newAmountCents,
	})

	return s.store.ReplaceItems(ctx, poolID, version, items, actorID, string(metadata))
}

// Delete removes a draft pool and its items. Approved and reopened pools
// carry payroll and audit weight and cannot be deleted.
func (s *Service) Delete(ctx context.Context, poolID int64) error {
	return s.store.DeletePool(ctx, poolID)
}

// AuditTrail returns a pool's audit entries in chronological order
func (s *Service) AuditTrail(ctx context.Context, poolID int64) ([]*AuditEntry, error) {
	entries, err := s.store.AuditTrail(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		// Every pool has at least a `created` entry; none means no pool.
		if _, err := s.store.GetPool(ctx, poolID); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
