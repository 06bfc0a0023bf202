package report

// indexProducts maps SKU to product. Duplicate SKUs overwrite: the later
// occurrence wins.
func indexProducts(products []Product) map[string]Product {
	index := make(map[string]Product, len(products))
	for _, p := range products {
		index[p.SKU] = p
	}
	return index
}

// indexSellers maps seller id to seller with the same last-write-wins
// semantics as indexProducts.
func indexSellers(sellers []Seller) map[string]Seller {
	index := make(map[string]Seller, len(sellers))
	for _, s := range sellers {
		index[s.ID] = s
	}
	return index
}
