package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Ensure Repository implements Store
var _ Store = (*Repository)(nil)

// Repository reads tip sources from Postgres
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payroll repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ReadTipSources reads approved pool items and declarations for an employee
// within a date range. Both reads run in one repeatable-read transaction so
// the aggregator sees a single consistent snapshot: a pool approved while
// the query runs cannot show up for some dates and not others.
func (r *Repository) ReadTipSources(ctx context.Context, employeeID int64, from, to time.Time) (*TipSources, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	src := &TipSources{}

	rows, err := tx.QueryContext(ctx, `
		SELECT i.id, i.pool_id, i.employee_id, p.pool_date, i.amount_cents, p.approved_at
		FROM tip_pool_items i
		JOIN tip_pools p ON i.pool_id = p.id
		WHERE i.employee_id = $1
		  AND p.status = 'approved'
		  AND p.pool_date BETWEEN $2 AND $3
		ORDER BY p.pool_date, p.approved_at, i.id`,
		employeeID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved pool items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &ApprovedItem{}
		if err := rows.Scan(&item.ItemID, &item.PoolID, &item.EmployeeID, &item.PoolDate, &item.AmountCents, &item.ApprovedAt); err != nil {
			return nil, fmt.Errorf("failed to scan approved pool item: %w", err)
		}
		src.ApprovedItems = append(src.ApprovedItems, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate approved pool items: %w", err)
	}

	declRows, err := tx.QueryContext(ctx, `
		SELECT id, employee_id, declaration_date, cash_amount_cents, credit_amount_cents
		FROM tip_declarations
		WHERE employee_id = $1 AND declaration_date BETWEEN $2 AND $3
		ORDER BY declaration_date, id`,
		employeeID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query declarations: %w", err)
	}
	defer declRows.Close()

	for declRows.Next() {
		d := &DeclaredTips{}
		if err := declRows.Scan(&d.DeclarationID, &d.EmployeeID, &d.DeclarationDate, &d.CashCents, &d.CreditCents); err != nil {
			return nil, fmt.Errorf("failed to scan declaration: %w", err)
		}
		src.Declarations = append(src.Declarations, d)
	}
	if err := declRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate declarations: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return src, nil
}
