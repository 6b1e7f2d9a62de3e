package dispute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	disputes map[int64]*Dispute
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{disputes: make(map[int64]*Dispute), nextID: 1}
}

func (f *fakeStore) Create(_ context.Context, d *Dispute) (*Dispute, error) {
	d.ID = f.nextID
	f.nextID++
	d.CreatedAt = time.Now().UTC()
	f.disputes[d.ID] = d
	return d, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*Dispute, error) {
	d, ok := f.disputes[id]
	if !ok {
		return nil, ErrDisputeNotFound
	}
	return d, nil
}

func (f *fakeStore) ListByRestaurant(_ context.Context, restaurantID int64, status *Status, limit, offset int) ([]*Dispute, int, error) {
	var matched []*Dispute
	for id := f.nextID - 1; id >= 1; id-- {
		d, ok := f.disputes[id]
		if !ok || d.RestaurantID != restaurantID {
			continue
		}
		if status != nil && d.Status != *status {
			continue
		}
		matched = append(matched, d)
	}

	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeStore) Resolve(_ context.Context, id, resolverID int64, note string) (*Dispute, error) {
	d, ok := f.disputes[id]
	if !ok {
		return nil, ErrDisputeNotFound
	}
	if d.Status != StatusOpen {
		return nil, ErrAlreadyResolved
	}
	now := time.Now().UTC()
	d.Status = StatusResolved
	d.ResolutionNote = &note
	d.ResolvedAt = &now
	d.ResolvedBy = &resolverID
	return d, nil
}

func TestCreateDispute(t *testing.T) {
	svc := NewService(newFakeStore())

	poolID := int64(42)
	d, err := svc.Create(context.Background(), 7, &CreateDisputeRequest{
		RestaurantID: 1,
		PoolID:       &poolID,
		DisputeType:  "hours_wrong",
		Message:      "I worked 8 hours, not 5",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusOpen, d.Status)
	assert.Equal(t, int64(7), d.EmployeeID)
	require.NotNil(t, d.PoolID)
	assert.Equal(t, int64(42), *d.PoolID)
	assert.Nil(t, d.ResolutionNote)
}

func TestCreateDisputeValidation(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Create(context.Background(), 7, &CreateDisputeRequest{
		RestaurantID: 1,
		DisputeType:  "hours_wrong",
	})
	require.ErrorIs(t, err, ErrEmptyMessage)

	// Missing dispute type falls back to "other".
	d, err := svc.Create(context.Background(), 7, &CreateDisputeRequest{
		RestaurantID: 1,
		Message:      "something is off",
	})
	require.NoError(t, err)
	assert.Equal(t, "other", d.DisputeType)
}

func TestResolveDispute(t *testing.T) {
	svc := NewService(newFakeStore())

	d, err := svc.Create(context.Background(), 7, &CreateDisputeRequest{
		RestaurantID: 1,
		DisputeType:  "amount_wrong",
		Message:      "my share looks short",
	})
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), d.ID, 99, &ResolveDisputeRequest{
		ResolutionNote: "Pool 42 reopened and corrected",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolutionNote)
	assert.Equal(t, "Pool 42 reopened and corrected", *resolved.ResolutionNote)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, int64(99), *resolved.ResolvedBy)
	assert.NotNil(t, resolved.ResolvedAt)
}

func TestResolveDisputeTwice(t *testing.T) {
	svc := NewService(newFakeStore())

	d, err := svc.Create(context.Background(), 7, &CreateDisputeRequest{
		RestaurantID: 1,
		DisputeType:  "amount_wrong",
		Message:      "my share looks short",
	})
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), d.ID, 99, &ResolveDisputeRequest{ResolutionNote: "fixed"})
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), d.ID, 100, &ResolveDisputeRequest{ResolutionNote: "fixed again"})
	require.ErrorIs(t, err, ErrAlreadyResolved)
}

func TestResolveDisputeValidation(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Resolve(context.Background(), 1, 99, &ResolveDisputeRequest{})
	require.ErrorIs(t, err, ErrEmptyResolution)

	_, err = svc.Resolve(context.Background(), 404, 99, &ResolveDisputeRequest{ResolutionNote: "n/a"})
	require.ErrorIs(t, err, ErrDisputeNotFound)
}

func TestListDisputesByStatus(t *testing.T) {
	svc := NewService(newFakeStore())

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), int64(i+1), &CreateDisputeRequest{
			RestaurantID: 1,
			DisputeType:  "amount_wrong",
			Message:      "check my share",
		})
		require.NoError(t, err)
	}
	_, err := svc.Resolve(context.Background(), 2, 99, &ResolveDisputeRequest{ResolutionNote: "checked, correct"})
	require.NoError(t, err)

	open := StatusOpen
	disputes, total, err := svc.ListByRestaurant(context.Background(), 1, &open, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, disputes, 2)
	for _, d := range disputes {
		assert.Equal(t, StatusOpen, d.Status)
	}

	resolved := StatusResolved
	disputes, total, err = svc.ListByRestaurant(context.Background(), 1, &resolved, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, disputes, 1)
	assert.Equal(t, int64(2), disputes[0].ID)
}
