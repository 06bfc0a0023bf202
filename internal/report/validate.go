package report

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when the dataset is absent or not a
	// structured record.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingField is returned when one of the required dataset
	// collections is absent.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidType is returned when a required dataset field is present
	// but is not a sequence. It is raised by the dataset decoder; a typed
	// Dataset cannot carry a wrongly typed collection.
	ErrInvalidType = errors.New("invalid type")
	// ErrEmptyCollection is returned when a required dataset collection has
	// no elements.
	ErrEmptyCollection = errors.New("empty collection")
	// ErrMissingStrategy is returned when one or both of the calculation
	// strategies are absent.
	ErrMissingStrategy = errors.New("missing strategy")
)

// Validate confirms the dataset and options are structurally sound. It runs
// before any accumulation; a failure here means no partial report was built.
func Validate(dataset *Dataset, opts Options) error {
	if dataset == nil {
		return ErrInvalidInput
	}
	if dataset.Sellers == nil {
		return fmt.Errorf("%w: sellers", ErrMissingField)
	}
	if dataset.Products == nil {
		return fmt.Errorf("%w: products", ErrMissingField)
	}
	if dataset.PurchaseRecords == nil {
		return fmt.Errorf("%w: purchase_records", ErrMissingField)
	}
	if len(dataset.Sellers) == 0 {
		return fmt.Errorf("%w: sellers", ErrEmptyCollection)
	}
	if len(dataset.Products) == 0 {
		return fmt.Errorf("%w: products", ErrEmptyCollection)
	}
	if len(dataset.PurchaseRecords) == 0 {
		return fmt.Errorf("%w: purchase_records", ErrEmptyCollection)
	}
	if opts.Revenue == nil && opts.Bonus == nil {
		return fmt.Errorf("%w: revenue, bonus", ErrMissingStrategy)
	}
	if opts.Revenue == nil {
		return fmt.Errorf("%w: revenue", ErrMissingStrategy)
	}
	if opts.Bonus == nil {
		return fmt.Errorf("%w: bonus", ErrMissingStrategy)
	}
	return nil
}
