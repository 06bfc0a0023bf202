// Command seeder loads a sample sales dataset into Postgres for local
// development and demos.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salesboard/backend-insight/internal/config"
)

type seedProduct struct {
	sku           string
	purchasePrice float64
	salePrice     float64
}

func main() {
	var (
		sellers = flag.Int("sellers", 8, "number of sellers to create")
		records = flag.Int("records", 120, "number of purchase records to create")
		seed    = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	if err := run(*sellers, *records, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "seeder:", err)
		os.Exit(1)
	}
}

func run(sellerCount, recordCount int, seed int64) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	rng := rand.New(rand.NewSource(seed))

	products := []seedProduct{
		{"sku-espresso", 6.50, 14.00},
		{"sku-grinder", 42.00, 89.90},
		{"sku-kettle", 18.00, 39.50},
		{"sku-scale", 11.25, 24.00},
		{"sku-filter", 2.10, 6.75},
		{"sku-mug", 3.40, 9.90},
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	firstNames := []string{"Ana", "Bo", "Carla", "Dimas", "Eka", "Fajar", "Gita", "Hana", "Indra", "Joko"}
	lastNames := []string{"Costa", "Lima", "Sari", "Putra", "Wati", "Santoso", "Dewi", "Halim", "Utami", "Wijaya"}

	sellerIDs := make([]string, 0, sellerCount)
	for i := 0; i < sellerCount; i++ {
		id := fmt.Sprintf("seller-%03d", i+1)
		sellerIDs = append(sellerIDs, id)
		_, err := tx.Exec(ctx,
			`INSERT INTO sellers (seller_id, first_name, last_name)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (seller_id) DO NOTHING`,
			id, firstNames[i%len(firstNames)], lastNames[i%len(lastNames)])
		if err != nil {
			return fmt.Errorf("insert seller %s: %w", id, err)
		}
	}

	for _, p := range products {
		_, err := tx.Exec(ctx,
			`INSERT INTO products (sku, purchase_price, sale_price)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (sku) DO NOTHING`,
			p.sku, p.purchasePrice, p.salePrice)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.sku, err)
		}
	}

	for i := 0; i < recordCount; i++ {
		sellerID := sellerIDs[rng.Intn(len(sellerIDs))]
		itemCount := 1 + rng.Intn(4)

		var recordID string
		err := tx.QueryRow(ctx,
			`INSERT INTO purchase_records (seller_id) VALUES ($1) RETURNING id`,
			sellerID).Scan(&recordID)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}

		var total, totalDiscount float64
		batch := &pgx.Batch{}
		for j := 0; j < itemCount; j++ {
			p := products[rng.Intn(len(products))]
			quantity := 1 + rng.Intn(5)
			discount := float64(rng.Intn(4)) * 5
			gross := p.salePrice * float64(quantity)
			total += gross * (1 - discount/100)
			totalDiscount += gross * discount / 100
			batch.Queue(
				`INSERT INTO purchase_items (record_id, sku, discount, quantity, sale_price)
				 VALUES ($1, $2, $3, $4, $5)`,
				recordID, p.sku, discount, quantity, p.salePrice)
		}
		batch.Queue(
			`UPDATE purchase_records SET total_amount = $1, total_discount = $2 WHERE id = $3`,
			total, totalDiscount, recordID)
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	fmt.Printf("seeded %d sellers, %d products, %d purchase records\n", sellerCount, len(products), recordCount)
	return nil
}
