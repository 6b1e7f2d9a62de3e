package pool

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewtab/tippool/internal/allocation"
)

// fakeStore is an in-memory Store with the same transition guards as the
// Postgres repository.
type fakeStore struct {
	nextID  int64
	pools   map[int64]*Pool
	items   map[int64][]*Item
	entries map[int64][]*AuditEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:  1,
		pools:   make(map[int64]*Pool),
		items:   make(map[int64][]*Item),
		entries: make(map[int64][]*AuditEntry),
	}
}

func (f *fakeStore) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) audit(poolID int64, action AuditAction, actorID int64, metadata string) {
	f.entries[poolID] = append(f.entries[poolID], &AuditEntry{
		ID:         f.id(),
		PoolID:     poolID,
		Action:     action,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
		Metadata:   metadata,
	})
}

func (f *fakeStore) CreatePool(_ context.Context, p *Pool, items []*Item, approve bool) (*PoolWithItems, error) {
	p.ID = f.id()
	p.Status = StatusDraft
	p.Version = 1
	p.CreatedAt = time.Now().UTC()
	for _, it := range items {
		it.ID = f.id()
		it.PoolID = p.ID
	}
	f.pools[p.ID] = p
	f.items[p.ID] = items
	f.audit(p.ID, AuditCreated, p.CreatedBy, "")

	if approve {
		now := time.Now().UTC()
		p.Status = StatusApproved
		p.ApprovedBy = &p.CreatedBy
		p.ApprovedAt = &now
		f.audit(p.ID, AuditApproved, p.CreatedBy, "")
	}
	return &PoolWithItems{Pool: p, Items: items}, nil
}

func (f *fakeStore) GetPool(_ context.Context, id int64) (*PoolWithItems, error) {
	p, ok := f.pools[id]
	if !ok {
		return nil, ErrPoolNotFound
	}
	return &PoolWithItems{Pool: p, Items: f.items[id]}, nil
}

func (f *fakeStore) ListPools(_ context.Context, restaurantID int64, from, to time.Time, limit, offset int) ([]*Pool, int, error) {
	var pools []*Pool
	for _, p := range f.pools {
		if p.RestaurantID == restaurantID && !p.PoolDate.Before(from) && !p.PoolDate.After(to) {
			pools = append(pools, p)
		}
	}
	return pools, len(pools), nil
}

func (f *fakeStore) ApprovePool(_ context.Context, id, actorID int64) (*Pool, error) {
	p, ok := f.pools[id]
	if !ok {
		return nil, ErrPoolNotFound
	}
	if !p.Status.CanTransitionTo(StatusApproved) {
		return nil, fmt.Errorf("%w: cannot approve a pool that is %s", ErrInvalidState, p.Status)
	}
	if itemSum(f.items[id]) != p.TotalAmountCents {
		return nil, ErrSumMismatch
	}
	now := time.Now().UTC()
	p.Status = StatusApproved
	p.ApprovedBy = &actorID
	p.ApprovedAt = &now
	f.audit(id, AuditApproved, actorID, "")
	return p, nil
}

func (f *fakeStore) ReopenPool(_ context.Context, id, actorID int64) (*Pool, error) {
	p, ok := f.pools[id]
	if !ok {
		return nil, ErrPoolNotFound
	}
	if !p.Status.CanTransitionTo(StatusReopened) {
		return nil, fmt.Errorf("%w: cannot reopen a pool that is %s", ErrInvalidState, p.Status)
	}
	p.Status = StatusReopened
	f.audit(id, AuditReopened, actorID, "")
	return p, nil
}

func (f *fakeStore) ReplaceItems(_ context.Context, poolID, expectedVersion int64, items []*Item, actorID int64, metadata string) (*PoolWithItems, error) {
	p, ok := f.pools[poolID]
	if !ok {
		return nil, ErrPoolNotFound
	}
	if !p.Status.Editable() {
		return nil, fmt.Errorf("%w: pool is %s", ErrInvalidState, p.Status)
	}
	if p.Version != expectedVersion {
		return nil, ErrVersionConflict
	}
	for _, it := range items {
		it.ID = f.id()
		it.PoolID = poolID
	}
	f.items[poolID] = items
	p.Version++
	f.audit(poolID, AuditItemAdjusted, actorID, metadata)
	return &PoolWithItems{Pool: p, Items: items}, nil
}

func (f *fakeStore) DeletePool(_ context.Context, id int64) error {
	p, ok := f.pools[id]
	if !ok {
		return ErrPoolNotFound
	}
	if p.Status != StatusDraft {
		return fmt.Errorf("%w: only draft pools can be deleted", ErrInvalidState)
	}
	delete(f.pools, id)
	delete(f.items, id)
	delete(f.entries, id)
	return nil
}

func (f *fakeStore) AuditTrail(_ context.Context, poolID int64) ([]*AuditEntry, error) {
	return f.entries[poolID], nil
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	return NewService(store, allocation.NewStrategyFactory()), store
}

func hoursParticipants(hours map[int64]float64, order ...int64) []*PoolParticipant {
	participants := make([]*PoolParticipant, 0, len(order))
	for _, id := range order {
		h := hours[id]
		participants = append(participants, &PoolParticipant{EmployeeID: id, Hours: &h})
	}
	return participants
}

func TestCreateDraftPool(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	result, err := svc.Create(ctx, 100, &CreatePoolRequest{
		RestaurantID:     1,
		PoolDate:         "2026-01-09",
		TotalAmountCents: 10000,
		AllocationMethod: "by_hours",
		Participants:     hoursParticipants(map[int64]float64{1: 5, 2: 3}, 1, 2),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, result.Pool.Status)
	require.Len(t, result.Items, 2)
	assert.Equal(t, int64(6250), result.Items[0].AmountCents)
	assert.Equal(t, int64(3750), result.Items[1].AmountCents)

	entries, err := svc.AuditTrail(ctx, result.Pool.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, AuditCreated, entries[0].Action)
	_ = store
}

func TestCreateDirectlyApproved(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	result, err := svc.Create(ctx, 100, &CreatePoolRequest{
		RestaurantID:     1,
		PoolDate:         "2026-01-09",
		TotalAmountCents: 30000,
		AllocationMethod: "equal",
		Participants: []*PoolParticipant{
			{EmployeeID: 1}, {EmployeeID: 2}, {EmployeeID: 3},
		},
		Approve: true,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, result.Pool.Status)
	require.NotNil(t, result.Pool.ApprovedBy)
	assert.Equal(t, int64(100), *result.Pool.ApprovedBy)

	entries, err := svc.AuditTrail(ctx, result.Pool.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, AuditCreated, entries[0].Action)
	assert.Equal(t, AuditApproved, entries[1].Action)
}

func TestCreateManualPool(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	amount := func(c int64) *int64 { return &c }

	t.Run("amounts must reconcile to the total", func(t *testing.T) {
		_, err := svc.Create(ctx, 100, &CreatePoolRequest{
			RestaurantID:     1,
			PoolDate:         "2026-01-09",
			TotalAmountCents: 10000,
			AllocationMethod: "manual",
			Participants: []*PoolParticipant{
				{EmployeeID: 1, AmountCents: amount(6000)},
				{EmployeeID: 2, AmountCents: amount(3000)},
			},
		})
		require.ErrorIs(t, err, ErrSumMismatch)
	})

	t.Run("valid manual amounts are persisted as overrides", func(t *testing.T) {
		result, err := svc.Create(ctx, 100, &CreatePoolRequest{
			RestaurantID:     1,
			PoolDate:         "2026-01-09",
			TotalAmountCents: 10000,
			AllocationMethod: "manual",
			Participants: []*PoolParticipant{
				{EmployeeID: 1, AmountCents: amount(6000)},
				{EmployeeID: 2, AmountCents: amount(4000)},
			},
		})
		require.NoError(t, err)
		assert.True(t, result.Items[0].ManualOverride)
		assert.True(t, result.Items[1].ManualOverride)
	})
}

func TestLifecycleLegality(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	draft, err := svc.Create(ctx, 100, &CreatePoolRequest{
		RestaurantID:     1,
		PoolDate:         "2026-01-09",
		TotalAmountCents: 10000,
		AllocationMethod: "equal",
		Participants:     []*PoolParticipant{{EmployeeID: 1}, {EmployeeID: 2}},
	})
	require.NoError(t, err)
	poolID := draft.Pool.ID

	// Reopening a draft is illegal.
	_, err = svc.Reopen(ctx, poolID, 100)
	require.ErrorIs(t, err, ErrInvalidState)

	// Approving a draft succeeds.
	approved, err := svc.Approve(ctx, poolID, 100)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	// Approving twice without a reopen fails cleanly.
	_, err = svc.Approve(ctx, poolID, 100)
	require.ErrorIs(t, err, ErrInvalidState)

	// Adjusting an approved pool is illegal.
	_, err = svc.AdjustItem(ctx, poolID, 1, 7000, 0, 100)
	require.ErrorIs(t, err, ErrInvalidState)

	// Deleting an approved pool is illegal.
	require.ErrorIs(t, svc.Delete(ctx, poolID), ErrInvalidState)

	// No duplicate audit entries from the failed transitions.
	entries, err := svc.AuditTrail(ctx, poolID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestReopenAdjustReapproveCycle(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 100, &CreatePoolRequest{
		RestaurantID:     1,
		PoolDate:         "2026-01-09",
		TotalAmountCents: 20000,
		AllocationMethod: "by_hours",
		Participants:     hoursParticipants(map[int64]float64{1: 4, 2: 4}, 1, 2),
		Approve:          true,
	})
	require.NoError(t, err)
	poolID := created.Pool.ID

	reopened, err := svc.Reopen(ctx, poolID, 200)
	require.NoError(t, err)
	assert.Equal(t, StatusReopened, reopened.Status)

	// Reopening keeps the item amounts as the editing starting point.
	pw, err := svc.Get(ctx, poolID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), pw.Items[0].AmountCents)

	adjusted, err := svc.AdjustItem(ctx, poolID, 1, 12000, 0, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), itemSum(adjusted.Items))
	assert.Equal(t, int64(12000), adjusted.Items[0].AmountCents)
	assert.True(t, adjusted.Items[0].ManualOverride)
	assert.Equal(t, int64(8000), adjusted.Items[1].AmountCents)

	_, err = svc.Approve(ctx, poolID, 200)
	require.NoError(t, err)

	entries, err := svc.AuditTrail(ctx, poolID)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	wantActions := []AuditAction{AuditCreated, AuditApproved, AuditReopened, AuditItemAdjusted, AuditApproved}
	for i, want := range wantActions {
		assert.Equal(t, want, entries[i].Action, "entry %d", i)
	}
	// Chronological with no gaps.
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].OccurredAt.Before(entries[i-1].OccurredAt))
	}
}

func TestAdjustItemVersionConflict(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 100, &CreatePoolRequest{
		RestaurantID:     1,
		PoolDate:         "2026-01-09",
		TotalAmountCents: 9000,
		AllocationMethod: "equal",
		Participants:     []*PoolParticipant{{EmployeeID: 1}, {EmployeeID: 2}, {EmployeeID: 3}},
	})
	require.NoError(t, err)

	staleVersion := created.Pool.Version

	// First adjustment bumps the version.
	_, err = svc.AdjustItem(ctx, created.Pool.ID, 1, 5000, staleVersion, 100)
	require.NoError(t, err)

	// A second adjustment against the stale version is rejected.
	_, err = svc.AdjustItem(ctx, created.Pool.ID, 2, 4000, staleVersion, 100)
	require.ErrorIs(t, err, ErrVersionConflict)
}

func TestAdjustItemUnknownEmployee(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 100, &CreatePoolRequest{
		RestaurantID:     1,
		PoolDate:         "2026-01-09",
		TotalAmountCents: 5000,
		AllocationMethod: "equal",
		Participants:     []*PoolParticipant{{EmployeeID: 1}},
	})
	require.NoError(t, err)

	_, err = svc.AdjustItem(ctx, created.Pool.ID, 42, 1000, 0, 100)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.Create(ctx, 100, &CreatePoolRequest{
			RestaurantID:     1,
			PoolDate:         "01/09/2026",
			TotalAmountCents: 100,
			AllocationMethod: "equal",
			Participants:     []*PoolParticipant{{EmployeeID: 1}},
		})
		require.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := svc.Create(ctx, 100, &CreatePoolRequest{
			RestaurantID:     1,
			PoolDate:         "2026-01-09",
			TotalAmountCents: 100,
			AllocationMethod: "by_seniority",
			Participants:     []*PoolParticipant{{EmployeeID: 1}},
		})
		require.ErrorIs(t, err, allocation.ErrUnknownMethod)
	})

	t.Run("zero total produces all-zero draft", func(t *testing.T) {
		result, err := svc.Create(ctx, 100, &CreatePoolRequest{
			RestaurantID:     1,
			PoolDate:         "2026-01-09",
			TotalAmountCents: 0,
			AllocationMethod: "equal",
			Participants:     []*PoolParticipant{{EmployeeID: 1}, {EmployeeID: 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), itemSum(result.Items))
	})
}

func TestDeleteDraft(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 100, &CreatePoolRequest{
		RestaurantID:     1,
		PoolDate:         "2026-01-09",
		TotalAmountCents: 100,
		AllocationMethod: "equal",
		Participants:     []*PoolParticipant{{EmployeeID: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.Pool.ID))

	_, err = svc.Get(ctx, created.Pool.ID)
	require.ErrorIs(t, err, ErrPoolNotFound)
}
