// Package report computes per-seller sales performance from an in-memory
// dataset: revenue, profit, receipt counts, the ten best-selling products and
// a rank-based bonus. The pipeline is a pure synchronous fold; the only
// injected behaviour is the pair of calculation strategies in Options.
package report

// Analyze validates the input and runs the full pipeline: index, aggregate,
// rank, assign bonuses, format. It either returns a complete report ordered
// by profit descending or a validation error; there are no partial results.
// Data-quality problems past validation (unknown seller ids or SKUs) are
// skipped silently.
func Analyze(dataset *Dataset, opts Options) ([]SellerReport, error) {
	reports, _, err := AnalyzeWithStats(dataset, opts)
	return reports, err
}

// AnalyzeWithStats is Analyze plus counters for skipped input rows, for
// callers that report them as metrics.
func AnalyzeWithStats(dataset *Dataset, opts Options) ([]SellerReport, Stats, error) {
	if err := Validate(dataset, opts); err != nil {
		return nil, Stats{}, err
	}
	products := indexProducts(dataset.Products)
	sellers := indexSellers(dataset.Sellers)
	totals, stats := aggregate(dataset, products, opts.Revenue)
	ranked := rank(dataset.Sellers, sellers, totals)
	assignBonuses(ranked, opts.Bonus)
	return format(ranked), stats, nil
}
