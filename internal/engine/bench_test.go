package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/tfsaroom/internal/model"
)

// denseLedger builds a deterministic year of daily activity: a contribution
// every day plus a withdrawal on the first of each month.
func denseLedger(year int) []model.Transaction {
	var txs []model.Transaction
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	i := 0
	for !day.After(end) {
		txs = append(txs, model.Transaction{
			ID:          fmt.Sprintf("c-%04d", i),
			Date:        day,
			Kind:        model.Contribution,
			Amount:      float64(50 + i%200),
			Institution: "Bench Bank",
		})
		if day.Day() == 1 {
			txs = append(txs, model.Transaction{
				ID:          fmt.Sprintf("w-%04d", i),
				Date:        day,
				Kind:        model.Withdrawal,
				Amount:      300,
				Institution: "Bench Bank",
			})
		}
		day = day.AddDate(0, 0, 1)
		i++
	}
	return txs
}

func BenchmarkSimulate(b *testing.B) {
	txs := denseLedger(2025)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := Simulate(2025, 7000, txs)
		_ = res
	}
}

func BenchmarkSimulateLargeLedger(b *testing.B) {
	// Ten years of daily activity crammed into one simulated year means
	// most entries are out of range; sorting still sees all of them.
	var txs []model.Transaction
	for year := 2016; year <= 2025; year++ {
		txs = append(txs, denseLedger(year)...)
	}
	b.Logf("ledger size: %d entries", len(txs))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := Simulate(2025, 7000, txs)
		_ = res
	}
}

func BenchmarkAggregateInstitutions(b *testing.B) {
	txs := denseLedger(2025)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		stats := AggregateInstitutions(txs)
		_ = stats
	}
}
