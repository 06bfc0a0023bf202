package report

import (
	"sort"

	"github.com/salesboard/backend-insight/internal/pricing"
)

const topProductsLimit = 10

// format renders ranked sellers into output rows. Ordering is whatever the
// ranker produced; no re-sort happens here.
func format(ranked []rankedSeller) []SellerReport {
	reports := make([]SellerReport, 0, len(ranked))
	for _, rs := range ranked {
		reports = append(reports, SellerReport{
			SellerID:    rs.seller.ID,
			Name:        rs.seller.FirstName + " " + rs.seller.LastName,
			Revenue:     pricing.Float(rs.totals.revenue),
			Profit:      pricing.Float(rs.profit),
			SalesCount:  rs.totals.salesCount,
			TopProducts: topProducts(rs.totals),
			Bonus:       pricing.Float(rs.bonus),
		})
	}
	return reports
}

// topProducts sorts a seller's SKUs by cumulative quantity descending and
// keeps the first ten. The stable sort over first-encounter order breaks ties.
func topProducts(totals *sellerTotals) []TopProduct {
	entries := make([]TopProduct, 0, len(totals.skuOrder))
	for _, sku := range totals.skuOrder {
		entries = append(entries, TopProduct{SKU: sku, Quantity: totals.quantities[sku]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Quantity > entries[j].Quantity
	})
	if len(entries) > topProductsLimit {
		entries = entries[:topProductsLimit]
	}
	return entries
}
