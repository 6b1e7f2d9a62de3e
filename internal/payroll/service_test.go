package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	sources *TipSources
}

func (f *fakeStore) ReadTipSources(_ context.Context, _ int64, _, _ time.Time) (*TipSources, error) {
	return f.sources, nil
}

func day(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func approvedAt(s string) time.Time {
	at, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return at
}

func TestGetTipTotalPrefersApprovedSplitOverDeclaration(t *testing.T) {
	// Employee declares $100 on 2026-01-09; the manager later approves a
	// pool giving them $80 for the same day. Payroll gets $80, not $180
	// and not $100.
	svc := NewService(&fakeStore{sources: &TipSources{
		ApprovedItems: []*ApprovedItem{
			{ItemID: 1, PoolID: 10, EmployeeID: 7, PoolDate: day("2026-01-09"), AmountCents: 8000, ApprovedAt: approvedAt("2026-01-10T09:00:00Z")},
		},
		Declarations: []*DeclaredTips{
			{DeclarationID: 5, EmployeeID: 7, DeclarationDate: day("2026-01-09"), CashCents: 6000, CreditCents: 4000},
		},
	}})

	total, err := svc.GetTipTotal(context.Background(), 7, day("2026-01-09"), day("2026-01-09"))
	require.NoError(t, err)

	assert.Equal(t, int64(8000), total.TotalCents)
	require.Len(t, total.Breakdown, 1)
	assert.Equal(t, SourceSplit, total.Breakdown[0].SourceType)
	require.NotNil(t, total.Breakdown[0].PoolID)
	assert.Equal(t, int64(10), *total.Breakdown[0].PoolID)
}

func TestGetTipTotalFallsBackToDeclaration(t *testing.T) {
	svc := NewService(&fakeStore{sources: &TipSources{
		Declarations: []*DeclaredTips{
			{DeclarationID: 5, EmployeeID: 7, DeclarationDate: day("2026-01-09"), CashCents: 2500, CreditCents: 1500},
		},
	}})

	total, err := svc.GetTipTotal(context.Background(), 7, day("2026-01-09"), day("2026-01-09"))
	require.NoError(t, err)

	assert.Equal(t, int64(4000), total.TotalCents)
	assert.Equal(t, SourceDeclaration, total.Breakdown[0].SourceType)
	require.NotNil(t, total.Breakdown[0].DeclarationID)
	assert.Equal(t, int64(5), *total.Breakdown[0].DeclarationID)
}

func TestGetTipTotalRangeAppliesPrecedencePerDate(t *testing.T) {
	// Day 1: split only. Day 2: declaration only. Day 3: both (split wins).
	// Day 4: nothing.
	svc := NewService(&fakeStore{sources: &TipSources{
		ApprovedItems: []*ApprovedItem{
			{ItemID: 1, PoolID: 10, EmployeeID: 7, PoolDate: day("2026-01-05"), AmountCents: 5000, ApprovedAt: approvedAt("2026-01-06T09:00:00Z")},
			{ItemID: 2, PoolID: 11, EmployeeID: 7, PoolDate: day("2026-01-07"), AmountCents: 7000, ApprovedAt: approvedAt("2026-01-08T09:00:00Z")},
		},
		Declarations: []*DeclaredTips{
			{DeclarationID: 5, EmployeeID: 7, DeclarationDate: day("2026-01-06"), CashCents: 3000},
			{DeclarationID: 6, EmployeeID: 7, DeclarationDate: day("2026-01-07"), CashCents: 9999},
		},
	}})

	total, err := svc.GetTipTotal(context.Background(), 7, day("2026-01-05"), day("2026-01-08"))
	require.NoError(t, err)

	assert.Equal(t, int64(5000+3000+7000), total.TotalCents)
	require.Len(t, total.Breakdown, 4)
	assert.Equal(t, SourceSplit, total.Breakdown[0].SourceType)
	assert.Equal(t, SourceDeclaration, total.Breakdown[1].SourceType)
	assert.Equal(t, SourceSplit, total.Breakdown[2].SourceType)
	assert.Equal(t, int64(7000), total.Breakdown[2].AmountCents)
	assert.Equal(t, SourceNone, total.Breakdown[3].SourceType)
	assert.Equal(t, int64(0), total.Breakdown[3].AmountCents)
}

func TestGetTipTotalDuplicateApprovedPools(t *testing.T) {
	// Two approved pools for the same (employee, date) should never happen,
	// but the aggregator keeps the latest approval and never sums them.
	svc := NewService(&fakeStore{sources: &TipSources{
		ApprovedItems: []*ApprovedItem{
			{ItemID: 1, PoolID: 10, EmployeeID: 7, PoolDate: day("2026-01-09"), AmountCents: 8000, ApprovedAt: approvedAt("2026-01-10T09:00:00Z")},
			{ItemID: 2, PoolID: 11, EmployeeID: 7, PoolDate: day("2026-01-09"), AmountCents: 6500, ApprovedAt: approvedAt("2026-01-10T12:00:00Z")},
		},
	}})

	total, err := svc.GetTipTotal(context.Background(), 7, day("2026-01-09"), day("2026-01-09"))
	require.NoError(t, err)

	assert.Equal(t, int64(6500), total.TotalCents)
	require.NotNil(t, total.Breakdown[0].PoolID)
	assert.Equal(t, int64(11), *total.Breakdown[0].PoolID)
}

func TestGetTipTotalMergesSplitShiftDeclarations(t *testing.T) {
	svc := NewService(&fakeStore{sources: &TipSources{
		Declarations: []*DeclaredTips{
			{DeclarationID: 5, EmployeeID: 7, DeclarationDate: day("2026-01-09"), CashCents: 2000},
			{DeclarationID: 6, EmployeeID: 7, DeclarationDate: day("2026-01-09"), CreditCents: 1000},
		},
	}})

	total, err := svc.GetTipTotal(context.Background(), 7, day("2026-01-09"), day("2026-01-09"))
	require.NoError(t, err)
	assert.Equal(t, int64(3000), total.TotalCents)
}

func TestGetTipTotalRangeValidation(t *testing.T) {
	svc := NewService(&fakeStore{sources: &TipSources{}})

	_, err := svc.GetTipTotal(context.Background(), 7, day("2026-01-09"), day("2026-01-08"))
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.GetTipTotal(context.Background(), 7, day("2024-01-01"), day("2026-01-01"))
	require.ErrorIs(t, err, ErrRangeTooWide)
}
