package engine

import (
	"sort"
	"time"

	"github.com/theirongolddev/tfsaroom/internal/model"
)

// AggregateInstitutions computes per-institution totals from the ledger.
// Results are sorted by net contribution descending, name ascending on ties.
func AggregateInstitutions(txs []model.Transaction) []model.InstitutionStats {
	byInst := make(map[string]*model.InstitutionStats)

	for _, tx := range txs {
		st, ok := byInst[tx.Institution]
		if !ok {
			st = &model.InstitutionStats{Institution: tx.Institution}
			byInst[tx.Institution] = st
		}
		st.Entries++
		switch tx.Kind {
		case model.Contribution:
			st.Contributions += tx.Amount
		case model.Withdrawal:
			st.Withdrawals += tx.Amount
		}
	}

	stats := make([]model.InstitutionStats, 0, len(byInst))
	for _, st := range byInst {
		st.Net = st.Contributions - st.Withdrawals
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Net != stats[j].Net {
			return stats[i].Net > stats[j].Net
		}
		return stats[i].Institution < stats[j].Institution
	})

	return stats
}

// MonthlyFlows computes contribution and withdrawal volume per calendar
// month of the given year. Every month is present so charts show gaps
// as zeros.
func MonthlyFlows(year int, txs []model.Transaction) []model.MonthFlow {
	flows := make([]model.MonthFlow, 12)
	for i := range flows {
		flows[i].Month = time.Month(i + 1)
	}

	for _, tx := range txs {
		if !tx.InYear(year) {
			continue
		}
		mi := int(tx.Date.Month()) - 1
		switch tx.Kind {
		case model.Contribution:
			flows[mi].Contributions += tx.Amount
		case model.Withdrawal:
			flows[mi].Withdrawals += tx.Amount
		}
	}

	return flows
}
