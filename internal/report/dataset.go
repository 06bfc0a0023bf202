package report

// Product is catalog reference data joined to line items by SKU.
type Product struct {
	SKU           string  `json:"sku"`
	PurchasePrice float64 `json:"purchase_price"`
	SalePrice     float64 `json:"sale_price"`
}

// Seller is reference data for one salesperson.
type Seller struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LineItem is one product entry within a receipt. Its price and discount may
// override the catalog values.
type LineItem struct {
	SKU       string  `json:"sku"`
	Discount  float64 `json:"discount"`
	Quantity  int     `json:"quantity"`
	SalePrice float64 `json:"sale_price"`
}

// PurchaseRecord is one receipt: a single transaction by one seller.
type PurchaseRecord struct {
	SellerID      string     `json:"seller_id"`
	Items         []LineItem `json:"items"`
	TotalAmount   float64    `json:"total_amount"`
	TotalDiscount float64    `json:"total_discount"`
}

// Dataset is the full in-memory input for one analysis call. Extra fields in
// source documents (customer lists and the like) are dropped during decoding.
type Dataset struct {
	Sellers         []Seller         `json:"sellers"`
	Products        []Product        `json:"products"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records"`
}

// TopProduct is one entry of a seller's best-seller list.
type TopProduct struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// SellerReport is one output row. Monetary fields are major units rounded to
// two decimals; the slice returned by Analyze is ordered by profit descending.
type SellerReport struct {
	SellerID    string       `json:"seller_id"`
	Name        string       `json:"name"`
	Revenue     float64      `json:"revenue"`
	Profit      float64      `json:"profit"`
	SalesCount  int          `json:"sales_count"`
	TopProducts []TopProduct `json:"top_products"`
	Bonus       float64      `json:"bonus"`
}

// Stats counts input rows that referenced unknown sellers or SKUs and were
// therefore skipped. Skips are not errors; the counts exist for observability.
type Stats struct {
	SkippedRecords int
	SkippedItems   int
}
