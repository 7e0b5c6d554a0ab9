package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transactions (
    id           TEXT PRIMARY KEY,
    date         TEXT NOT NULL,
    kind         TEXT NOT NULL,
    amount       REAL NOT NULL,
    institution  TEXT NOT NULL,
    created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_institution ON transactions(institution);
`
