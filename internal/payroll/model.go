package payroll

import "time"

// SourceType identifies where a day's tip amount came from
type SourceType string

const (
	// SourceSplit means an approved pool item is authoritative for the day.
	SourceSplit SourceType = "split"
	// SourceDeclaration means only the employee's self-declared tips exist.
	SourceDeclaration SourceType = "declaration"
	// SourceNone means no tip record exists for the day.
	SourceNone SourceType = "none"
)

// DayTotal is one date's tip contribution with its provenance, so employees
// can see why their total is what it is
type DayTotal struct {
	Date          string     `json:"date"`
	SourceType    SourceType `json:"source_type"`
	AmountCents   int64      `json:"amount_cents"`
	PoolID        *int64     `json:"pool_id,omitempty"`
	DeclarationID *int64     `json:"declaration_id,omitempty"`
}

// Total is the payroll tip line for one employee over a pay period
type Total struct {
	EmployeeID int64      `json:"employee_id"`
	From       string     `json:"from"`
	To         string     `json:"to"`
	TotalCents int64      `json:"total_cents"`
	Breakdown  []DayTotal `json:"breakdown"`
}

// ApprovedItem is an approved pool item row as read by the aggregator
type ApprovedItem struct {
	ItemID      int64
	PoolID      int64
	EmployeeID  int64
	PoolDate    time.Time
	AmountCents int64
	ApprovedAt  time.Time
}

// DeclaredTips is a declaration row as read by the aggregator
type DeclaredTips struct {
	DeclarationID   int64
	EmployeeID      int64
	DeclarationDate time.Time
	CashCents       int64
	CreditCents     int64
}

// TipSources is one consistent snapshot of everything describing an
// employee's tips for a date range
type TipSources struct {
	ApprovedItems []*ApprovedItem
	Declarations  []*DeclaredTips
}
