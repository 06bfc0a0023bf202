package insight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/salesboard/backend-insight/internal/report"
)

// ErrUnknownStrategy is returned when a caller names a strategy that is not
// registered.
var ErrUnknownStrategy = errors.New("unknown strategy")

// flatBonusBps is the share granted by the "flat" bonus schedule.
const flatBonusBps = 500

// StrategyNames selects calculation strategies by name, the form API callers
// use. Empty names select the reference defaults.
type StrategyNames struct {
	Revenue string `json:"revenue" validate:"omitempty,oneof=discounted catalog"`
	Bonus   string `json:"bonus" validate:"omitempty,oneof=tiered flat"`
}

// Normalized returns the names with defaults filled in, suitable for cache keys.
func (n StrategyNames) Normalized() StrategyNames {
	out := StrategyNames{
		Revenue: strings.ToLower(strings.TrimSpace(n.Revenue)),
		Bonus:   strings.ToLower(strings.TrimSpace(n.Bonus)),
	}
	if out.Revenue == "" {
		out.Revenue = "discounted"
	}
	if out.Bonus == "" {
		out.Bonus = "tiered"
	}
	return out
}

// Options resolves the names into strategy implementations.
func (n StrategyNames) Options() (report.Options, error) {
	resolved := n.Normalized()
	var opts report.Options
	switch resolved.Revenue {
	case "discounted":
		opts.Revenue = report.DiscountedRevenue{}
	case "catalog":
		opts.Revenue = report.CatalogRevenue{}
	default:
		return report.Options{}, fmt.Errorf("%w: revenue %q", ErrUnknownStrategy, n.Revenue)
	}
	switch resolved.Bonus {
	case "tiered":
		opts.Bonus = report.TieredBonus{}
	case "flat":
		opts.Bonus = report.FlatBonus{Bps: flatBonusBps}
	default:
		return report.Options{}, fmt.Errorf("%w: bonus %q", ErrUnknownStrategy, n.Bonus)
	}
	return opts, nil
}
