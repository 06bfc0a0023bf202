package report

import (
	"fmt"
	"reflect"
	"testing"
)

func singleSaleDataset() *Dataset {
	return &Dataset{
		Sellers: []Seller{{ID: "s1", FirstName: "Ana", LastName: "Costa"}},
		Products: []Product{
			{SKU: "sku-1", PurchasePrice: 40, SalePrice: 100},
		},
		PurchaseRecords: []PurchaseRecord{
			{SellerID: "s1", Items: []LineItem{{SKU: "sku-1", Discount: 10, Quantity: 2, SalePrice: 100}}},
		},
	}
}

func TestAnalyzeReferenceRevenue(t *testing.T) {
	reports, err := Analyze(singleSaleDataset(), DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	r := reports[0]
	if r.Revenue != 180.00 {
		t.Errorf("revenue = %v, want 180.00", r.Revenue)
	}
	if r.Name != "Ana Costa" {
		t.Errorf("name = %q, want %q", r.Name, "Ana Costa")
	}
	if r.SalesCount != 1 {
		t.Errorf("sales_count = %d, want 1", r.SalesCount)
	}
	// profit = 180 - 40*2
	if r.Profit != 100.00 {
		t.Errorf("profit = %v, want 100.00", r.Profit)
	}
	// A lone seller takes the top-rank branch: 15% of 100.00.
	if r.Bonus != 15.00 {
		t.Errorf("bonus = %v, want 15.00", r.Bonus)
	}
}

func TestAnalyzeSalesCountPerReceipt(t *testing.T) {
	d := singleSaleDataset()
	d.PurchaseRecords = []PurchaseRecord{
		{SellerID: "s1", Items: []LineItem{
			{SKU: "sku-1", Quantity: 1, SalePrice: 100},
			{SKU: "sku-1", Quantity: 3, SalePrice: 100},
		}},
		{SellerID: "s1", Items: []LineItem{{SKU: "sku-1", Quantity: 1, SalePrice: 100}}},
	}
	reports, err := Analyze(d, DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if got := reports[0].SalesCount; got != 2 {
		t.Fatalf("sales_count = %d, want 2 (one per receipt, not per item)", got)
	}
}

func TestAnalyzeUnknownReferencesSkipped(t *testing.T) {
	d := singleSaleDataset()
	d.PurchaseRecords = append(d.PurchaseRecords,
		PurchaseRecord{SellerID: "ghost", Items: []LineItem{{SKU: "sku-1", Quantity: 99, SalePrice: 100}}},
		PurchaseRecord{SellerID: "s1", Items: []LineItem{{SKU: "no-such-sku", Quantity: 5, SalePrice: 100}}},
	)
	reports, stats, err := AnalyzeWithStats(d, DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	r := reports[0]
	if r.Revenue != 180.00 {
		t.Errorf("revenue = %v, want unchanged 180.00", r.Revenue)
	}
	// The record with the unknown SKU still counts as a receipt for s1.
	if r.SalesCount != 2 {
		t.Errorf("sales_count = %d, want 2", r.SalesCount)
	}
	if stats.SkippedRecords != 1 || stats.SkippedItems != 1 {
		t.Errorf("stats = %+v, want 1 skipped record and 1 skipped item", stats)
	}
}

func TestAnalyzeRankingStableOnTies(t *testing.T) {
	d := &Dataset{
		Sellers: []Seller{
			{ID: "a", FirstName: "A", LastName: "A"},
			{ID: "b", FirstName: "B", LastName: "B"},
			{ID: "c", FirstName: "C", LastName: "C"},
		},
		Products: []Product{{SKU: "p", PurchasePrice: 0, SalePrice: 10}},
		PurchaseRecords: []PurchaseRecord{
			{SellerID: "a", Items: []LineItem{{SKU: "p", Quantity: 1, SalePrice: 10}}},
			{SellerID: "b", Items: []LineItem{{SKU: "p", Quantity: 1, SalePrice: 10}}},
			{SellerID: "c", Items: []LineItem{{SKU: "p", Quantity: 1, SalePrice: 10}}},
		},
	}
	reports, err := Analyze(d, DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if reports[i].SellerID != want {
			t.Fatalf("position %d = %s, want %s (input order preserved on ties)", i, reports[i].SellerID, want)
		}
	}
}

func TestAnalyzeZeroReceiptSellerStillReported(t *testing.T) {
	d := singleSaleDataset()
	d.Sellers = append(d.Sellers, Seller{ID: "idle", FirstName: "No", LastName: "Sales"})
	reports, err := Analyze(d, DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	idle := reports[1]
	if idle.SellerID != "idle" {
		t.Fatalf("idle seller should rank last, got %s", idle.SellerID)
	}
	if idle.Revenue != 0 || idle.Profit != 0 || idle.SalesCount != 0 {
		t.Errorf("idle totals = %+v, want zeros", idle)
	}
	if len(idle.TopProducts) != 0 {
		t.Errorf("idle top_products = %v, want empty", idle.TopProducts)
	}
}

func TestAnalyzeTopProductsCapAndOrder(t *testing.T) {
	d := &Dataset{
		Sellers:  []Seller{{ID: "s1", FirstName: "Ana", LastName: "Costa"}},
		Products: make([]Product, 0, 15),
	}
	items := make([]LineItem, 0, 15)
	for i := 0; i < 15; i++ {
		sku := fmt.Sprintf("sku-%02d", i)
		d.Products = append(d.Products, Product{SKU: sku, PurchasePrice: 1, SalePrice: 2})
		// Quantities 15..1 so the ten highest are sku-00..sku-09.
		items = append(items, LineItem{SKU: sku, Quantity: 15 - i, SalePrice: 2})
	}
	d.PurchaseRecords = []PurchaseRecord{{SellerID: "s1", Items: items}}

	reports, err := Analyze(d, DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	top := reports[0].TopProducts
	if len(top) != 10 {
		t.Fatalf("top_products length = %d, want 10", len(top))
	}
	for i, entry := range top {
		want := fmt.Sprintf("sku-%02d", i)
		if entry.SKU != want || entry.Quantity != 15-i {
			t.Fatalf("top[%d] = %+v, want {%s %d}", i, entry, want, 15-i)
		}
	}
}

func TestAnalyzeTopProductsTieKeepsEncounterOrder(t *testing.T) {
	d := &Dataset{
		Sellers: []Seller{{ID: "s1", FirstName: "Ana", LastName: "Costa"}},
		Products: []Product{
			{SKU: "late", PurchasePrice: 1, SalePrice: 2},
			{SKU: "early", PurchasePrice: 1, SalePrice: 2},
		},
		PurchaseRecords: []PurchaseRecord{
			{SellerID: "s1", Items: []LineItem{
				{SKU: "early", Quantity: 3, SalePrice: 2},
				{SKU: "late", Quantity: 3, SalePrice: 2},
			}},
		},
	}
	reports, err := Analyze(d, DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	top := reports[0].TopProducts
	if top[0].SKU != "early" || top[1].SKU != "late" {
		t.Fatalf("tie order = %v, want first-encountered SKU first", top)
	}
}

func TestAnalyzeBonusTiers(t *testing.T) {
	d := &Dataset{Products: []Product{{SKU: "p", PurchasePrice: 0, SalePrice: 1000}}}
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("s%d", i)
		d.Sellers = append(d.Sellers, Seller{ID: id, FirstName: "S", LastName: fmt.Sprintf("%d", i)})
		d.PurchaseRecords = append(d.PurchaseRecords, PurchaseRecord{
			SellerID: id,
			Items:    []LineItem{{SKU: "p", Quantity: 1, SalePrice: 1000}},
		})
	}
	reports, err := Analyze(d, DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	want := []float64{150.00, 100.00, 100.00, 50.00, 0.00}
	for i, w := range want {
		if reports[i].Bonus != w {
			t.Errorf("rank %d bonus = %v, want %v", i, reports[i].Bonus, w)
		}
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	d := singleSaleDataset()
	d.Sellers = append(d.Sellers, Seller{ID: "s2", FirstName: "Bo", LastName: "Lima"})
	first, err := Analyze(d, DefaultOptions())
	if err != nil {
		t.Fatalf("first analyze: %v", err)
	}
	second, err := Analyze(d, DefaultOptions())
	if err != nil {
		t.Fatalf("second analyze: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated analysis differs:\n%v\n%v", first, second)
	}
}

func TestAnalyzeDuplicateSellerIDLastWins(t *testing.T) {
	d := singleSaleDataset()
	d.Sellers = append(d.Sellers, Seller{ID: "s1", FirstName: "Renamed", LastName: "Costa"})
	reports, err := Analyze(d, DefaultOptions())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("duplicate id should collapse to one row, got %d", len(reports))
	}
	if reports[0].Name != "Renamed Costa" {
		t.Fatalf("name = %q, want later occurrence to win", reports[0].Name)
	}
}
