package dispute

import (
	"context"
	"database/sql"
	"fmt"
)

// Ensure Repository implements Store
var _ Store = (*Repository)(nil)

// Repository handles dispute persistence on Postgres
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new dispute repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const disputeColumns = `id, restaurant_id, employee_id, pool_id, dispute_type, message, status, resolution_note, created_at, resolved_at, resolved_by`

func scanDispute(row interface{ Scan(...interface{}) error }) (*Dispute, error) {
	d := &Dispute{}
	err := row.Scan(&d.ID, &d.RestaurantID, &d.EmployeeID, &d.PoolID, &d.DisputeType, &d.Message, &d.Status, &d.ResolutionNote, &d.CreatedAt, &d.ResolvedAt, &d.ResolvedBy)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Create inserts a new open dispute
func (r *Repository) Create(ctx context.Context, d *Dispute) (*Dispute, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tip_disputes (restaurant_id, employee_id, pool_id, dispute_type, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		d.RestaurantID, d.EmployeeID, d.PoolID, d.DisputeType, d.Message, d.Status,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispute: %w", err)
	}
	return d, nil
}

// GetByID retrieves a dispute by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Dispute, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+disputeColumns+` FROM tip_disputes WHERE id = $1`, id)

	d, err := scanDispute(row)
	if err == sql.ErrNoRows {
		return nil, ErrDisputeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dispute: %w", err)
	}
	return d, nil
}

// ListByRestaurant retrieves a restaurant's disputes, newest first,
// optionally filtered by status
func (r *Repository) ListByRestaurant(ctx context.Context, restaurantID int64, status *Status, limit, offset int) ([]*Dispute, int, error) {
	var total int
	var err error
	if status != nil {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tip_disputes WHERE restaurant_id = $1 AND status = $2`,
			restaurantID, *status).Scan(&total)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tip_disputes WHERE restaurant_id = $1`,
			restaurantID).Scan(&total)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count disputes: %w", err)
	}

	var rows *sql.Rows
	if status != nil {
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+disputeColumns+`
			FROM tip_disputes
			WHERE restaurant_id = $1 AND status = $2
			ORDER BY created_at DESC, id DESC
			LIMIT $3 OFFSET $4`,
			restaurantID, *status, limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+disputeColumns+`
			FROM tip_disputes
			WHERE restaurant_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2 OFFSET $3`,
			restaurantID, limit, offset)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list disputes: %w", err)
	}
	defer rows.Close()

	var disputes []*Dispute
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan dispute: %w", err)
		}
		disputes = append(disputes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate disputes: %w", err)
	}

	return disputes, total, nil
}

// Resolve marks an open dispute as resolved. The status guard in the WHERE
// clause makes concurrent resolutions lose cleanly instead of overwriting
// the first resolver's note.
func (r *Repository) Resolve(ctx context.Context, id, resolverID int64, note string) (*Dispute, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE tip_disputes
		SET status = $1, resolution_note = $2, resolved_at = NOW(), resolved_by = $3
		WHERE id = $4 AND status = $5
		RETURNING `+disputeColumns,
		StatusResolved, note, resolverID, id, StatusOpen)

	d, err := scanDispute(row)
	if err == sql.ErrNoRows {
		// Either the dispute is gone or someone resolved it first.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrAlreadyResolved
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dispute: %w", err)
	}
	return d, nil
}
