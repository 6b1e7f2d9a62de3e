package database

import "database/sql"

// schema contains the SQL statements to set up the database tables.
// These run on startup to ensure tables exist. tip_pools must be created
// before its child tables because of the foreign key constraints.
const schema = `
CREATE TABLE IF NOT EXISTS tip_pools (
    id BIGSERIAL PRIMARY KEY,
    restaurant_id BIGINT NOT NULL,
    pool_date DATE NOT NULL,
    total_amount_cents BIGINT NOT NULL CHECK (total_amount_cents >= 0),
    allocation_method TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'draft',
    version BIGINT NOT NULL DEFAULT 1,
    created_by BIGINT NOT NULL,
    approved_by BIGINT,
    approved_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tip_pool_items (
    id BIGSERIAL PRIMARY KEY,
    pool_id BIGINT NOT NULL REFERENCES tip_pools(id) ON DELETE CASCADE,
    employee_id BIGINT NOT NULL,
    amount_cents BIGINT NOT NULL CHECK (amount_cents >= 0),
    hours_worked DOUBLE PRECISION,
    role_weight DOUBLE PRECISION,
    manual_override BOOLEAN NOT NULL DEFAULT FALSE,
    UNIQUE (pool_id, employee_id)
);

CREATE TABLE IF NOT EXISTS tip_audit_entries (
    id BIGSERIAL PRIMARY KEY,
    pool_id BIGINT NOT NULL REFERENCES tip_pools(id) ON DELETE CASCADE,
    action TEXT NOT NULL,
    actor_id BIGINT NOT NULL,
    metadata TEXT NOT NULL DEFAULT '',
    occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tip_declarations (
    id BIGSERIAL PRIMARY KEY,
    restaurant_id BIGINT NOT NULL,
    employee_id BIGINT NOT NULL,
    declaration_date DATE NOT NULL,
    cash_amount_cents BIGINT NOT NULL DEFAULT 0 CHECK (cash_amount_cents >= 0),
    credit_amount_cents BIGINT NOT NULL DEFAULT 0 CHECK (credit_amount_cents >= 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tip_disputes (
    id BIGSERIAL PRIMARY KEY,
    restaurant_id BIGINT NOT NULL,
    employee_id BIGINT NOT NULL,
    pool_id BIGINT REFERENCES tip_pools(id) ON DELETE SET NULL,
    dispute_type TEXT NOT NULL,
    message TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'open',
    resolution_note TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    resolved_at TIMESTAMPTZ,
    resolved_by BIGINT
);

CREATE INDEX IF NOT EXISTS idx_tip_pools_restaurant_date ON tip_pools(restaurant_id, pool_date);
CREATE INDEX IF NOT EXISTS idx_tip_pool_items_pool_id ON tip_pool_items(pool_id);
CREATE INDEX IF NOT EXISTS idx_tip_pool_items_employee_id ON tip_pool_items(employee_id);
CREATE INDEX IF NOT EXISTS idx_tip_audit_entries_pool_id ON tip_audit_entries(pool_id);
CREATE INDEX IF NOT EXISTS idx_tip_declarations_employee_date ON tip_declarations(employee_id, declaration_date);
CREATE INDEX IF NOT EXISTS idx_tip_disputes_restaurant_id ON tip_disputes(restaurant_id);
`

// Migrate executes the schema setup.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
