// Package store provides the SQLite-backed transaction ledger.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/tfsaroom/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Ledger persists admitted transactions between runs. Row order is the
// admission order, which is also the tie-break order for same-day entries
// during simulation.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*Ledger, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// SaveTransaction stores a single admitted transaction.
func (l *Ledger) SaveTransaction(tx model.Transaction) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := l.db.Exec(`INSERT OR REPLACE INTO transactions
		(id, date, kind, amount, institution, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.DateKey(), string(tx.Kind), tx.Amount, tx.Institution, now,
	)
	if err != nil {
		return fmt.Errorf("saving transaction: %w", err)
	}
	return nil
}

// SaveTransactions stores a batch of admitted transactions atomically,
// preserving their slice order as the admission order.
func (l *Ledger) SaveTransactions(txs []model.Transaction) error {
	dbTx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = dbTx.Rollback() }()

	stmt, err := dbTx.Prepare(`INSERT OR REPLACE INTO transactions
		(id, date, kind, amount, institution, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, tx := range txs {
		if _, err := stmt.Exec(tx.ID, tx.DateKey(), string(tx.Kind), tx.Amount, tx.Institution, now); err != nil {
			return fmt.Errorf("saving transaction %s: %w", tx.ID, err)
		}
	}

	return dbTx.Commit()
}

// LoadTransactions reads the full ledger in admission order.
func (l *Ledger) LoadTransactions() ([]model.Transaction, error) {
	rows, err := l.db.Query(`SELECT id, date, kind, amount, institution
		FROM transactions ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var txs []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		var dateStr, kindStr string
		if err := rows.Scan(&tx.ID, &dateStr, &kindStr, &tx.Amount, &tx.Institution); err != nil {
			return nil, err
		}
		tx.Date, err = time.Parse(model.DateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing date for %s: %w", tx.ID, err)
		}
		tx.Kind = model.Kind(kindStr)
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// DeleteByPrefix removes the single transaction whose ID starts with the
// given prefix. Zero or multiple matches are errors so a short prefix
// never silently deletes the wrong entry.
func (l *Ledger) DeleteByPrefix(prefix string) (model.Transaction, error) {
	rows, err := l.db.Query(`SELECT id, date, kind, amount, institution
		FROM transactions WHERE id LIKE ?`, prefix+"%")
	if err != nil {
		return model.Transaction{}, err
	}
	defer func() { _ = rows.Close() }()

	var matches []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		var dateStr, kindStr string
		if err := rows.Scan(&tx.ID, &dateStr, &kindStr, &tx.Amount, &tx.Institution); err != nil {
			return model.Transaction{}, err
		}
		tx.Date, _ = time.Parse(model.DateLayout, dateStr)
		tx.Kind = model.Kind(kindStr)
		matches = append(matches, tx)
	}
	if err := rows.Err(); err != nil {
		return model.Transaction{}, err
	}

	switch len(matches) {
	case 0:
		return model.Transaction{}, fmt.Errorf("no transaction matches %q", prefix)
	case 1:
	default:
		return model.Transaction{}, fmt.Errorf("prefix %q is ambiguous (%d matches)", prefix, len(matches))
	}

	if _, err := l.db.Exec("DELETE FROM transactions WHERE id = ?", matches[0].ID); err != nil {
		return model.Transaction{}, fmt.Errorf("deleting transaction: %w", err)
	}
	return matches[0], nil
}

// Count returns the number of stored transactions.
func (l *Ledger) Count() (int, error) {
	var count int
	err := l.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}

// Clear removes every transaction from the ledger.
func (l *Ledger) Clear() (int, error) {
	res, err := l.db.Exec("DELETE FROM transactions")
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
