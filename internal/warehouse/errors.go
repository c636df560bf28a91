package warehouse

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrQuery marks a statement the warehouse rejected or failed.
	ErrQuery = errors.New("query error")
)

// WrapQuery tags err with ErrQuery while keeping the cause visible for
// errors.Is/As further down the chain.
func WrapQuery(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrQuery, op, err)
}
