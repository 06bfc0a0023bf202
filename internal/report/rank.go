package report

import (
	"sort"

	"github.com/salesboard/backend-insight/internal/pricing"
)

// rankedSeller pairs a seller with its totals and derived profit. Profit is
// kept in minor units here; ranking never looks at the rounded display value.
type rankedSeller struct {
	seller Seller
	totals *sellerTotals
	profit pricing.Money
	bonus  pricing.Money
}

// rank derives profit per seller and sorts descending. The sort is stable, so
// equal-profit sellers keep their input order. Duplicate seller ids collapse
// to one row carrying the attributes of the last occurrence, matching the
// indexer's overwrite semantics.
func rank(inputSellers []Seller, sellers map[string]Seller, totals map[string]*sellerTotals) []rankedSeller {
	ranked := make([]rankedSeller, 0, len(totals))
	emitted := make(map[string]bool, len(totals))
	for _, s := range inputSellers {
		if emitted[s.ID] {
			continue
		}
		emitted[s.ID] = true
		agg := totals[s.ID]
		ranked = append(ranked, rankedSeller{
			seller: sellers[s.ID],
			totals: agg,
			profit: agg.revenue - agg.cost,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].profit > ranked[j].profit
	})
	return ranked
}

// assignBonuses applies the bonus strategy to every ranked seller. Strategy
// results are clamped at zero to hold the non-negative contract even against
// a misbehaving implementation.
func assignBonuses(ranked []rankedSeller, strategy BonusStrategy) {
	total := len(ranked)
	for i := range ranked {
		bonus := strategy.Bonus(i, total, SellerView{
			SellerID: ranked[i].seller.ID,
			Profit:   ranked[i].profit,
		})
		if bonus < 0 {
			bonus = 0
		}
		ranked[i].bonus = bonus
	}
}
