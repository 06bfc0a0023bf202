package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salesboard/backend-insight/internal/report"
)

// Postgres loads the analysis dataset from the relational schema created by
// the migrations in this repo. Row order follows insertion order, which is
// what the pipeline's stable tie-breaking expects.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres wraps a pgx pool as a dataset source.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{Pool: pool}
}

// LoadDataset reads sellers, products and purchase records with their line
// items in one pass each.
func (s *Postgres) LoadDataset(ctx context.Context) (*report.Dataset, error) {
	if s == nil || s.Pool == nil {
		return nil, fmt.Errorf("store: postgres source not configured")
	}
	sellers, err := s.loadSellers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sellers: %w", err)
	}
	products, err := s.loadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	records, err := s.loadPurchaseRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load purchase records: %w", err)
	}
	return &report.Dataset{Sellers: sellers, Products: products, PurchaseRecords: records}, nil
}

func (s *Postgres) loadSellers(ctx context.Context) ([]report.Seller, error) {
	rows, err := s.Pool.Query(ctx, `SELECT seller_id, first_name, last_name FROM sellers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sellers := []report.Seller{}
	for rows.Next() {
		var seller report.Seller
		if err := rows.Scan(&seller.ID, &seller.FirstName, &seller.LastName); err != nil {
			return nil, err
		}
		sellers = append(sellers, seller)
	}
	return sellers, rows.Err()
}

func (s *Postgres) loadProducts(ctx context.Context) ([]report.Product, error) {
	rows, err := s.Pool.Query(ctx, `SELECT sku, purchase_price, sale_price FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []report.Product{}
	for rows.Next() {
		var product report.Product
		if err := rows.Scan(&product.SKU, &product.PurchasePrice, &product.SalePrice); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (s *Postgres) loadPurchaseRecords(ctx context.Context) ([]report.PurchaseRecord, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, seller_id, total_amount, total_discount FROM purchase_records ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	records := []report.PurchaseRecord{}
	position := map[uuid.UUID]int{}
	var ids []uuid.UUID
	for rows.Next() {
		var (
			id  uuid.UUID
			rec report.PurchaseRecord
		)
		if err := rows.Scan(&id, &rec.SellerID, &rec.TotalAmount, &rec.TotalDiscount); err != nil {
			rows.Close()
			return nil, err
		}
		rec.Items = []report.LineItem{}
		position[id] = len(records)
		ids = append(ids, id)
		records = append(records, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}

	itemRows, err := s.Pool.Query(ctx,
		`SELECT record_id, sku, discount, quantity, sale_price FROM purchase_items WHERE record_id = ANY($1) ORDER BY id`,
		ids)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var (
			recordID uuid.UUID
			item     report.LineItem
		)
		if err := itemRows.Scan(&recordID, &item.SKU, &item.Discount, &item.Quantity, &item.SalePrice); err != nil {
			return nil, err
		}
		idx, ok := position[recordID]
		if !ok {
			continue
		}
		records[idx].Items = append(records[idx].Items, item)
	}
	return records, itemRows.Err()
}
