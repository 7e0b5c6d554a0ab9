package engine

import (
	"strings"

	"github.com/theirongolddev/tfsaroom/internal/model"
)

// FilterByInstitution returns transactions whose institution matches the
// given substring, case-insensitively.
func FilterByInstitution(txs []model.Transaction, institution string) []model.Transaction {
	if institution == "" {
		return txs
	}
	var result []model.Transaction
	for _, tx := range txs {
		if containsIgnoreCase(tx.Institution, institution) {
			result = append(result, tx)
		}
	}
	return result
}

// FilterByKind returns transactions of the given kind.
func FilterByKind(txs []model.Transaction, kind model.Kind) []model.Transaction {
	if kind == "" {
		return txs
	}
	var result []model.Transaction
	for _, tx := range txs {
		if tx.Kind == kind {
			result = append(result, tx)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
