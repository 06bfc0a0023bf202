package report

import "github.com/salesboard/backend-insight/internal/pricing"

// sellerTotals is the per-seller accumulator. Revenue and cost are held in
// minor units for the whole fold so ordering of additions cannot change the
// result; conversion to major units happens once, in the formatter.
type sellerTotals struct {
	revenue    pricing.Money
	cost       pricing.Money
	salesCount int
	quantities map[string]int
	// skuOrder records first-encounter order per SKU so quantity ties in the
	// top-products list resolve deterministically.
	skuOrder []string
}

// aggregate folds every purchase record into per-seller totals. Records with
// an unknown seller id and items with an unknown SKU contribute nothing.
func aggregate(dataset *Dataset, products map[string]Product, rev RevenueStrategy) (map[string]*sellerTotals, Stats) {
	totals := make(map[string]*sellerTotals, len(dataset.Sellers))
	for _, s := range dataset.Sellers {
		if _, ok := totals[s.ID]; !ok {
			totals[s.ID] = &sellerTotals{quantities: make(map[string]int)}
		}
	}

	var stats Stats
	for _, rec := range dataset.PurchaseRecords {
		agg, ok := totals[rec.SellerID]
		if !ok {
			stats.SkippedRecords++
			continue
		}
		agg.salesCount++
		for _, item := range rec.Items {
			product, ok := products[item.SKU]
			if !ok {
				stats.SkippedItems++
				continue
			}
			revenue := rev.Revenue(item, product)
			if revenue < 0 {
				revenue = 0
			}
			agg.revenue += revenue
			agg.cost += pricing.UnitTimesQty(pricing.FromFloat(product.PurchasePrice), item.Quantity)

			qty := item.Quantity
			if qty < 0 {
				qty = 0
			}
			if _, seen := agg.quantities[item.SKU]; !seen {
				agg.skuOrder = append(agg.skuOrder, item.SKU)
			}
			agg.quantities[item.SKU] += qty
		}
	}
	return totals, stats
}
