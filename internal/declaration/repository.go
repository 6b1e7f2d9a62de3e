package declaration

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Ensure Repository implements Store
var _ Store = (*Repository)(nil)

// Repository handles declaration persistence on Postgres
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new declaration repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new declaration
func (r *Repository) Create(ctx context.Context, d *Declaration) (*Declaration, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tip_declarations (restaurant_id, employee_id, declaration_date, cash_amount_cents, credit_amount_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		d.RestaurantID, d.EmployeeID, d.DeclarationDate, d.CashAmountCents, d.CreditAmountCents,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create declaration: %w", err)
	}
	return d, nil
}

// GetByID retrieves a declaration by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Declaration, error) {
	d := &Declaration{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, restaurant_id, employee_id, declaration_date, cash_amount_cents, credit_amount_cents, created_at
		FROM tip_declarations
		WHERE id = $1`,
		id,
	).Scan(&d.ID, &d.RestaurantID, &d.EmployeeID, &d.DeclarationDate, &d.CashAmountCents, &d.CreditAmountCents, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrDeclarationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get declaration: %w", err)
	}
	return d, nil
}

// ListByEmployee retrieves an employee's declarations within a date range
func (r *Repository) ListByEmployee(ctx context.Context, employeeID int64, from, to time.Time) ([]*Declaration, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, restaurant_id, employee_id, declaration_date, cash_amount_cents, credit_amount_cents, created_at
		FROM tip_declarations
		WHERE employee_id = $1 AND declaration_date BETWEEN $2 AND $3
		ORDER BY declaration_date, id`,
		employeeID, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list declarations: %w", err)
	}
	defer rows.Close()

	var declarations []*Declaration
	for rows.Next() {
		d := &Declaration{}
		if err := rows.Scan(&d.ID, &d.RestaurantID, &d.EmployeeID, &d.DeclarationDate, &d.CashAmountCents, &d.CreditAmountCents, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan declaration: %w", err)
		}
		declarations = append(declarations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate declarations: %w", err)
	}

	return declarations, nil
}

// Delete removes a declaration
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tip_declarations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete declaration: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrDeclarationNotFound
	}

	return nil
}
