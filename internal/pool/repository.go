package pool

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Ensure Repository implements Store
var _ Store = (*Repository)(nil)

// Repository handles pool, item and audit persistence on Postgres.
// Lifecycle transitions lock the pool row (SELECT ... FOR UPDATE) so that
// concurrent operations on the same pool serialize; operations on different
// pools are independent.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new pool repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const poolColumns = `id, restaurant_id, pool_date, total_amount_cents, allocation_method, status, version, created_by, created_at, approved_by, approved_at`

func scanPool(row interface{ Scan(...interface{}) error }) (*Pool, error) {
	p := &Pool{}
	err := row.Scan(
		&p.ID,
		&p.RestaurantID,
		&p.PoolDate,
		&p.TotalAmountCents,
		&p.AllocationMethod,
		&p.Status,
		&p.Version,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.ApprovedBy,
		&p.ApprovedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePool persists a new pool with its items and audit history in one
// transaction
func (r *Repository) CreatePool(ctx context.Context, p *Pool, items []*Item, approve bool) (*PoolWithItems, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO tip_pools (restaurant_id, pool_date, total_amount_cents, allocation_method, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+poolColumns,
		p.RestaurantID, p.PoolDate, p.TotalAmountCents, p.AllocationMethod, StatusDraft, p.CreatedBy,
	).Scan(
		&p.ID, &p.RestaurantID, &p.PoolDate, &p.TotalAmountCents, &p.AllocationMethod,
		&p.Status, &p.Version, &p.CreatedBy, &p.CreatedAt, &p.ApprovedBy, &p.ApprovedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert pool: %w", err)
	}

	for _, it := range items {
		it.PoolID = p.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO tip_pool_items (pool_id, employee_id, amount_cents, hours_worked, role_weight, manual_override)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			it.PoolID, it.EmployeeID, it.AmountCents, it.HoursWorked, it.RoleWeight, it.ManualOverride,
		).Scan(&it.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert pool item: %w", err)
		}
	}

	if err := insertAudit(ctx, tx, p.ID, AuditCreated, p.CreatedBy, ""); err != nil {
		return nil, err
	}

	if approve {
		now := time.Now().UTC()
		err = tx.QueryRowContext(ctx, `
			UPDATE tip_pools
			SET status = $2, approved_by = $3, approved_at = $4
			WHERE id = $1
			RETURNING status, approved_by, approved_at`,
			p.ID, StatusApproved, p.CreatedBy, now,
		).Scan(&p.Status, &p.ApprovedBy, &p.ApprovedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to approve pool: %w", err)
		}
		if err := insertAudit(ctx, tx, p.ID, AuditApproved, p.CreatedBy, ""); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &PoolWithItems{Pool: p, Items: items}, nil
}

// GetPool retrieves a pool with its items
func (r *Repository) GetPool(ctx context.Context, id int64) (*PoolWithItems, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+poolColumns+` FROM tip_pools WHERE id = $1`, id)
	p, err := scanPool(row)
	if err == sql.ErrNoRows {
		return nil, ErrPoolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}

	items, err := r.itemsForPool(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	return &PoolWithItems{Pool: p, Items: items}, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (r *Repository) itemsForPool(ctx context.Context, q querier, poolID int64) ([]*Item, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, pool_id, employee_id, amount_cents, hours_worked, role_weight, manual_override
		FROM tip_pool_items
		WHERE pool_id = $1
		ORDER BY id`,
		poolID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it := &Item{}
		if err := rows.Scan(&it.ID, &it.PoolID, &it.EmployeeID, &it.AmountCents, &it.HoursWorked, &it.RoleWeight, &it.ManualOverride); err != nil {
			return nil, fmt.Errorf("failed to scan pool item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pool items: %w", err)
	}

	return items, nil
}

// ListPools retrieves pools for a restaurant within a date range
func (r *Repository) ListPools(ctx context.Context, restaurantID int64, from, to time.Time, limit, offset int) ([]*Pool, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tip_pools
		WHERE restaurant_id = $1 AND pool_date BETWEEN $2 AND $3`,
		restaurantID, from, to,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count pools: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+poolColumns+` FROM tip_pools
		WHERE restaurant_id = $1 AND pool_date BETWEEN $2 AND $3
		ORDER BY pool_date DESC, id DESC
		LIMIT $4 OFFSET $5`,
		restaurantID, from, to, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pools: %w", err)
	}
	defer rows.Close()

	var pools []*Pool
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan pool: %w", err)
		}
		pools = append(pools, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate pools: %w", err)
	}

	return pools, total, nil
}

// lockPool reads a pool row under FOR UPDATE within tx
func lockPool(ctx context.Context, tx *sql.Tx, id int64) (*Pool, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+poolColumns+` FROM tip_pools WHERE id = $1 FOR UPDATE`, id)
	p, err := scanPool(row)
	if err == sql.ErrNoRows {
		return nil, ErrPoolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock pool: %w", err)
	}
	return p, nil
}

func insertAudit(ctx context.Context, tx *sql.Tx, poolID int64, action AuditAction, actorID int64, metadata string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO tip_audit_entries (pool_id, action, actor_id, metadata)
		VALUES ($1, $2, $3, $4)`,
		poolID, action, actorID, metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// ApprovePool transitions a pool to approved, revalidating the sum invariant
// inside the transaction
func (r *Repository) ApprovePool(ctx context.Context, id, actorID int64) (*Pool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := lockPool(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(StatusApproved) {
		return nil, fmt.Errorf("%w: cannot approve a pool that is %s", ErrInvalidState, p.Status)
	}

	var sum int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM tip_pool_items WHERE pool_id = $1`, id,
	).Scan(&sum)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pool items: %w", err)
	}
	if sum != p.TotalAmountCents {
		return nil, fmt.Errorf("%w: items sum to %d, pool total is %d", ErrSumMismatch, sum, p.TotalAmountCents)
	}

	now := time.Now().UTC()
	err = tx.QueryRowContext(ctx, `
		UPDATE tip_pools
		SET status = $2, approved_by = $3, approved_at = $4
		WHERE id = $1
		RETURNING status, approved_by, approved_at`,
		id, StatusApproved, actorID, now,
	).Scan(&p.Status, &p.ApprovedBy, &p.ApprovedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to approve pool: %w", err)
	}

	if err := insertAudit(ctx, tx, id, AuditApproved, actorID, ""); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return p, nil
}

// ReopenPool transitions an approved pool back to an editable state
func (r *Repository) ReopenPool(ctx context.Context, id, actorID int64) (*Pool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := lockPool(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(StatusReopened) {
		return nil, fmt.Errorf("%w: cannot reopen a pool that is %s", ErrInvalidState, p.Status)
	}

	// Item amounts are deliberately left untouched: they are the starting
	// point for edits.
	_, err = tx.ExecContext(ctx, `UPDATE tip_pools SET status = $2 WHERE id = $1`, id, StatusReopened)
	if err != nil {
		return nil, fmt.Errorf("failed to reopen pool: %w", err)
	}
	p.Status = StatusReopened

	if err := insertAudit(ctx, tx, id, AuditReopened, actorID, ""); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return p, nil
}

// ReplaceItems swaps a pool's items under the row lock and bumps its version
func (r *Repository) ReplaceItems(ctx context.Context, poolID, expectedVersion int64, items []*Item, actorID int64, metadata string) (*PoolWithItems, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := lockPool(ctx, tx, poolID)
	if err != nil {
		return nil, err
	}
	if !p.Status.Editable() {
		return nil, fmt.Errorf("%w: pool is %s", ErrInvalidState, p.Status)
	}
	if p.Version != expectedVersion {
		return nil, fmt.Errorf("%w: expected version %d, have %d", ErrVersionConflict, expectedVersion, p.Version)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tip_pool_items WHERE pool_id = $1`, poolID); err != nil {
		return nil, fmt.Errorf("failed to clear pool items: %w", err)
	}

	for _, it := range items {
		it.PoolID = poolID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO tip_pool_items (pool_id, employee_id, amount_cents, hours_worked, role_weight, manual_override)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			it.PoolID, it.EmployeeID, it.AmountCents, it.HoursWorked, it.RoleWeight, it.ManualOverride,
		).Scan(&it.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert pool item: %w", err)
		}
	}

	err = tx.QueryRowContext(ctx,
		`UPDATE tip_pools SET version = version + 1 WHERE id = $1 RETURNING version`, poolID,
	).Scan(&p.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to bump pool version: %w", err)
	}

	if err := insertAudit(ctx, tx, poolID, AuditItemAdjusted, actorID, metadata); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &PoolWithItems{Pool: p, Items: items}, nil
}

// DeletePool removes a draft pool; its items and audit entries cascade
func (r *Repository) DeletePool(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := lockPool(ctx, tx, id)
	if err != nil {
		return err
	}
	if p.Status != StatusDraft {
		return fmt.Errorf("%w: only draft pools can be deleted", ErrInvalidState)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tip_pools WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete pool: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// AuditTrail returns a pool's audit entries in chronological order
func (r *Repository) AuditTrail(ctx context.Context, poolID int64) ([]*AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pool_id, action, actor_id, occurred_at, metadata
		FROM tip_audit_entries
		WHERE pool_id = $1
		ORDER BY occurred_at, id`,
		poolID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit trail: %w", err)
	}
	defer rows.Close()

	var entries []*AuditEntry
	for rows.Next() {
		e := &AuditEntry{}
		if err := rows.Scan(&e.ID, &e.PoolID, &e.Action, &e.ActorID, &e.OccurredAt, &e.Metadata); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit entries: %w", err)
	}

	return entries, nil
}
