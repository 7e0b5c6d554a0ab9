package source

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/theirongolddev/tfsaroom/internal/model"
)

// ManualEntry holds the raw fields of a hand-entered transaction.
type ManualEntry struct {
	Date        string
	Kind        string
	Amount      string
	Institution string
}

// AdmitManual validates a manual entry and admits it as a transaction.
// Stricter than CSV admission: institution is required and the date must
// fall inside the simulation year. The first failing check is reported and
// the entry is not admitted.
func AdmitManual(e ManualEntry, year int) (model.Transaction, error) {
	if strings.TrimSpace(e.Institution) == "" {
		return model.Transaction{}, fmt.Errorf("institution is required")
	}
	if strings.TrimSpace(e.Date) == "" {
		return model.Transaction{}, fmt.Errorf("date is required")
	}
	if strings.TrimSpace(e.Amount) == "" {
		return model.Transaction{}, fmt.Errorf("amount is required")
	}

	amount, err := ParseAmount(e.Amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", e.Amount, err)
	}

	date, err := ParseDate(e.Date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date: %w", err)
	}
	if date.Year() != year {
		return model.Transaction{}, fmt.Errorf("date %s is outside simulation year %d", date.Format(model.DateLayout), year)
	}

	return model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Kind:        ParseKind(e.Kind),
		Amount:      amount,
		Institution: strings.TrimSpace(e.Institution),
	}, nil
}
