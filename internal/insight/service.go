// Package insight wraps the pure report pipeline into a service: named
// strategy selection, Redis-cached results and domain metrics.
package insight

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salesboard/backend-insight/internal/obs"
	"github.com/salesboard/backend-insight/internal/report"
)

// DatasetSource loads the transactional dataset from durable storage.
type DatasetSource interface {
	LoadDataset(ctx context.Context) (*report.Dataset, error)
}

// Service computes seller performance reports with an optional Redis cache.
// Cached entries are keyed by dataset digest and strategy names, so any
// change to the input or the calculation invalidates naturally.
type Service struct {
	Source DatasetSource
	R      *redis.Client
	TTL    time.Duration
}

func cacheKey(parts ...any) string {
	formatted := make([]string, 0, len(parts))
	for _, part := range parts {
		formatted = append(formatted, fmt.Sprint(part))
	}
	return strings.Join(formatted, ":")
}

// SellerPerformance analyzes the provided dataset under the named strategies.
func (s *Service) SellerPerformance(ctx context.Context, dataset *report.Dataset, names StrategyNames) ([]report.SellerReport, error) {
	if s == nil {
		return nil, fmt.Errorf("insight service not configured")
	}
	opts, err := names.Options()
	if err != nil {
		return nil, err
	}
	resolved := names.Normalized()
	key := cacheKey("ins", "sellers", datasetDigest(dataset), resolved.Revenue, resolved.Bonus)
	if rows, ok := s.fromCache(ctx, key); ok {
		obs.ObserveReportCache("hit")
		return rows, nil
	}
	obs.ObserveReportCache("miss")

	start := time.Now()
	rows, stats, err := report.AnalyzeWithStats(dataset, opts)
	if err != nil {
		obs.ObserveReportGenerated("error", 0)
		return nil, err
	}
	obs.ObserveReportGenerated("ok", time.Since(start))
	obs.ObserveReportSkips(stats.SkippedRecords, stats.SkippedItems)

	s.store(ctx, key, rows)
	return rows, nil
}

// StoredSellerPerformance loads the dataset from the configured source and
// analyzes it.
func (s *Service) StoredSellerPerformance(ctx context.Context, names StrategyNames) ([]report.SellerReport, error) {
	if s == nil || s.Source == nil {
		return nil, fmt.Errorf("insight service has no dataset source")
	}
	dataset, err := s.Source.LoadDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return s.SellerPerformance(ctx, dataset, names)
}

// datasetDigest hashes the canonical JSON encoding of the dataset. Encoding a
// typed struct is deterministic, so equal datasets share a digest.
func datasetDigest(dataset *report.Dataset) string {
	encoded, err := json.Marshal(dataset)
	if err != nil {
		return "unhashable"
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}

func (s *Service) fromCache(ctx context.Context, key string) ([]report.SellerReport, bool) {
	if s.R == nil || s.TTL <= 0 {
		return nil, false
	}
	data, err := s.R.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var rows []report.SellerReport
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (s *Service) store(ctx context.Context, key string, rows []report.SellerReport) {
	if s.R == nil || s.TTL <= 0 {
		return
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return
	}
	_ = s.R.Set(ctx, key, data, s.TTL).Err()
}
