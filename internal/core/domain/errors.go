package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCart rejects submission of a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrSubmitInFlight rejects a submit attempt while another
	// one is still running for the same session.
	ErrSubmitInFlight = errors.New("order submission already in flight")

	// ErrStaleCompany marks a fetch result that arrived for a
	// superseded company selection. Callers discard it silently.
	ErrStaleCompany = errors.New("stale company context")

	// ErrDataUnavailable wraps store read failures. Recoverable,
	// the caller shows a retry affordance.
	ErrDataUnavailable = errors.New("store data unavailable")
)

// A MissingSupplierError lists cart lines without a resolved supplier.
type MissingSupplierError struct {
	ProductIDs []ProductID
}

func (e *MissingSupplierError) Error() string {
	ids := make([]string, len(e.ProductIDs))
	for i, id := range e.ProductIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return "missing supplier for products: " + strings.Join(ids, ", ")
}
