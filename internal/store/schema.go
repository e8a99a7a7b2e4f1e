package store

// schemaSQL is portable between SQLite and PostgreSQL. Money is stored as
// decimal text so values round-trip to the cent.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS debts (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL DEFAULT '',
    kind                 TEXT NOT NULL DEFAULT 'other',
    balance              TEXT NOT NULL,
    apr                  TEXT NOT NULL,
    minimum_payment      TEXT NOT NULL,
    position             INTEGER NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS plans (
    id                   TEXT PRIMARY KEY,
    label                TEXT NOT NULL DEFAULT '',
    strategy             TEXT NOT NULL,
    monthly_budget       TEXT NOT NULL,
    months               INTEGER NOT NULL,
    total_interest       TEXT NOT NULL,
    total_paid           TEXT NOT NULL,
    incomplete           INTEGER NOT NULL DEFAULT 0,
    payoff_order         TEXT NOT NULL DEFAULT '',
    created_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_debts_position ON debts(position);
CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at);
`
