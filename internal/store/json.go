// Package store provides dataset sources for the report pipeline: a lenient
// JSON decoder for request bodies and files, and a Postgres loader.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/salesboard/backend-insight/internal/report"
)

// rawDataset keeps the three required collections as raw tokens so a field
// that is present but not an array can be told apart from one that is absent.
type rawDataset struct {
	Sellers         json.RawMessage `json:"sellers"`
	Products        json.RawMessage `json:"products"`
	PurchaseRecords json.RawMessage `json:"purchase_records"`
}

// DecodeDataset reads a dataset document. Unknown top-level fields (customer
// lists and the like) are ignored. Structural problems map onto the report
// package's validation errors so callers see a single error taxonomy.
func DecodeDataset(r io.Reader) (*report.Dataset, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, report.ErrInvalidInput
	}

	var raw rawDataset
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrInvalidInput, err)
	}

	dataset := &report.Dataset{}
	if err := decodeCollection(raw.Sellers, "sellers", &dataset.Sellers); err != nil {
		return nil, err
	}
	if err := decodeCollection(raw.Products, "products", &dataset.Products); err != nil {
		return nil, err
	}
	if err := decodeCollection(raw.PurchaseRecords, "purchase_records", &dataset.PurchaseRecords); err != nil {
		return nil, err
	}
	return dataset, nil
}

// decodeCollection unmarshals one required collection. Absent or null fields
// stay nil so report.Validate reports them as missing; present non-array
// values fail here with ErrInvalidType.
func decodeCollection[T any](raw json.RawMessage, field string, out *[]T) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] != '[' {
		return fmt.Errorf("%w: %s", report.ErrInvalidType, field)
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: %s: %v", report.ErrInvalidType, field, err)
	}
	return nil
}
