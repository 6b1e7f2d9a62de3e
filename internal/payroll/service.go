package payroll

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Common errors
var (
	ErrInvalidRange = errors.New("end date is before start date")
	ErrRangeTooWide = errors.New("date range exceeds one year")
)

const dateLayout = "2006-01-02"

// Store reads the tip sources the aggregator needs. Implementations must
// return one consistent snapshot: a pool approved mid-query must not appear
// for some dates and not others.
type Store interface {
	ReadTipSources(ctx context.Context, employeeID int64, from, to time.Time) (*TipSources, error)
}

// Service produces exactly one tip total per employee per date for payroll,
// regardless of how many data sources describe that day's tips
type Service struct {
	store Store
}

// NewService creates a new payroll service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetTipTotal aggregates an employee's tips over a date range, applying the
// per-date precedence rule independently for every date and summing the
// results.
//
// Precedence per date: the most recently approved pool item wins; an
// employee declaration counts only when no approved pool item exists for
// that date. Summing both would double the employee's tips whenever a
// manager formalizes an already-declared amount into an approved split.
func (s *Service) GetTipTotal(ctx context.Context, employeeID int64, from, to time.Time) (*Total, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	if to.Sub(from) > 366*24*time.Hour {
		return nil, ErrRangeTooWide
	}

	src, err := s.store.ReadTipSources(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}

	splits := indexApprovedItems(src.ApprovedItems, employeeID)
	declared := indexDeclarations(src.Declarations)

	total := &Total{
		EmployeeID: employeeID,
		From:       from.Format(dateLayout),
		To:         to.Format(dateLayout),
	}

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		key := date.Format(dateLayout)
		day := DayTotal{Date: key, SourceType: SourceNone}

		if item, ok := splits[key]; ok {
			day.SourceType = SourceSplit
			day.AmountCents = item.AmountCents
			day.PoolID = &item.PoolID
		} else if decl, ok := declared[key]; ok {
			day.SourceType = SourceDeclaration
			day.AmountCents = decl.CashCents + decl.CreditCents
			day.DeclarationID = &decl.DeclarationID
		}

		total.TotalCents += day.AmountCents
		total.Breakdown = append(total.Breakdown, day)
	}

	return total, nil
}

// indexApprovedItems keeps one item per date: the most recently approved,
// then the highest item ID. The lifecycle prevents multiple approved pools
// for the same (employee, date); should the data hold them anyway, the
// aggregator warns and uses the latest instead of summing.
func indexApprovedItems(items []*ApprovedItem, employeeID int64) map[string]*ApprovedItem {
	byDate := make(map[string]*ApprovedItem)
	for _, item := range items {
		key := item.PoolDate.Format(dateLayout)
		current, ok := byDate[key]
		if !ok {
			byDate[key] = item
			continue
		}

		kept, dropped := current, item
		if item.ApprovedAt.After(current.ApprovedAt) ||
			(item.ApprovedAt.Equal(current.ApprovedAt) && item.ItemID > current.ItemID) {
			kept, dropped = item, current
			byDate[key] = item
		}
		slog.Warn("duplicate approved pool items for employee and date, using the latest approval",
			"employee_id", employeeID,
			"date", key,
			"kept_pool_id", kept.PoolID,
			"dropped_pool_id", dropped.PoolID,
		)
	}
	return byDate
}

// indexDeclarations merges an employee's declarations per date; split shifts
// can produce more than one declaration for the same day.
func indexDeclarations(declarations []*DeclaredTips) map[string]*DeclaredTips {
	byDate := make(map[string]*DeclaredTips)
	for _, d := range declarations {
		key := d.DeclarationDate.Format(dateLayout)
		if current, ok := byDate[key]; ok {
			current.CashCents += d.CashCents
			current.CreditCents += d.CreditCents
			continue
		}
		merged := *d
		byDate[key] = &merged
	}
	return byDate
}
