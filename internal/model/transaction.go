// Package model defines domain types for the tfsaroom ledger and simulation.
package model

import "time"

// DateLayout is the canonical YYYY-MM-DD form used for ledger dates.
const DateLayout = "2006-01-02"

// Kind classifies a ledger entry.
type Kind string

const (
	Contribution Kind = "CONTRIBUTION"
	Withdrawal   Kind = "WITHDRAWAL"
)

// DefaultInstitution labels entries whose import source carried no institution.
const DefaultInstitution = "Imported"

// Transaction is one admitted ledger entry. Immutable once admitted: the
// normalizer assigns the ID and the engine never mutates the ledger it is given.
type Transaction struct {
	ID          string
	Date        time.Time // midnight UTC; no time-of-day component
	Kind        Kind
	Amount      float64 // strictly positive
	Institution string
}

// DateKey returns the date in canonical YYYY-MM-DD form. Lexical order of
// keys equals calendar order, which is what the simulation sorts by.
func (t Transaction) DateKey() string {
	return t.Date.Format(DateLayout)
}

// InYear reports whether the entry date falls inside the given calendar year.
func (t Transaction) InYear(year int) bool {
	return t.Date.Year() == year
}
