package report

import (
	"math"

	"github.com/salesboard/backend-insight/internal/pricing"
)

// RevenueStrategy computes the monetary value of one line item after discount.
// Implementations must return a non-negative amount in minor units.
type RevenueStrategy interface {
	Revenue(item LineItem, product Product) pricing.Money
}

// SellerView is the slice of seller state exposed to bonus strategies.
type SellerView struct {
	SellerID string
	Profit   pricing.Money
}

// BonusStrategy computes a seller's performance bonus from its profit rank.
// Rank is zero-based with 0 being the highest profit. Implementations must
// return a non-negative amount in minor units.
type BonusStrategy interface {
	Bonus(rank, totalSellers int, seller SellerView) pricing.Money
}

// Options carries the two injected calculation strategies for one call.
type Options struct {
	Revenue RevenueStrategy
	Bonus   BonusStrategy
}

// DefaultOptions returns the reference strategy pair.
func DefaultOptions() Options {
	return Options{Revenue: DiscountedRevenue{}, Bonus: TieredBonus{}}
}

// DiscountedRevenue is the reference revenue strategy:
// sale_price * quantity * (1 - clamp(discount, 0, 100) / 100), rounded half
// away from zero at the cent boundary. Missing or non-finite inputs
// contribute nothing.
type DiscountedRevenue struct{}

func (DiscountedRevenue) Revenue(item LineItem, _ Product) pricing.Money {
	return discountedLine(item.SalePrice, item.Quantity, item.Discount)
}

// CatalogRevenue prices every line at the catalog sale price, ignoring the
// per-item override. The discount from the line item still applies.
type CatalogRevenue struct{}

func (CatalogRevenue) Revenue(item LineItem, product Product) pricing.Money {
	return discountedLine(product.SalePrice, item.Quantity, item.Discount)
}

func discountedLine(price float64, qty int, discount float64) pricing.Money {
	if qty <= 0 {
		return 0
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0
	}
	if math.IsNaN(discount) || discount < 0 {
		discount = 0
	}
	if discount > 100 {
		discount = 100
	}
	return pricing.FromFloat(price * float64(qty) * (1 - discount/100))
}

// TieredBonus is the reference rank-based bonus schedule: the top seller gets
// 15% of profit, ranks 1 and 2 get 10%, the bottom seller gets nothing and
// everyone else gets 5%. The branches are evaluated top rank first, so a lone
// seller receives the top-rank bonus rather than the bottom-rank override.
// Non-positive profit yields a zero bonus.
type TieredBonus struct{}

func (TieredBonus) Bonus(rank, totalSellers int, seller SellerView) pricing.Money {
	if seller.Profit <= 0 {
		return 0
	}
	var bps int64
	switch {
	case rank == 0:
		bps = 1500
	case rank == 1 || rank == 2:
		bps = 1000
	case rank == totalSellers-1:
		bps = 0
	default:
		bps = 500
	}
	return pricing.Share(seller.Profit, bps)
}

// FlatBonus grants the same basis-point share of profit to every rank.
type FlatBonus struct {
	Bps int64
}

func (f FlatBonus) Bonus(_, _ int, seller SellerView) pricing.Money {
	if seller.Profit <= 0 || f.Bps <= 0 {
		return 0
	}
	return pricing.Share(seller.Profit, f.Bps)
}
