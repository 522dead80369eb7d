package port

import (
	"context"

	"github.com/stocksavvy/procure/internal/core/domain"
)

// InventoryReader is the store read interface. Implementations
// return empty slices, never nil-for-empty, and surface failures
// as errors.
type InventoryReader interface {
	FetchProducts(
		ctx context.Context, companyID domain.CompanyID,
	) ([]domain.Product, error)
	FetchSupplierQuotes(
		ctx context.Context,
		companyID domain.CompanyID,
		productIDs []domain.ProductID,
	) ([]domain.SupplierQuote, error)
	FetchSuppliers(ctx context.Context) ([]domain.Supplier, error)
}

// OrderSubmitter appends a submitted order to the order history.
type OrderSubmitter interface {
	SubmitOrder(context.Context, domain.Order) (domain.OrderID, error)
}

// OrderHistoryReader serves previously submitted orders.
type OrderHistoryReader interface {
	CompanyOrders(domain.CompanyID) ([]domain.Order, error)
}

// CartStore persists cart lines per session so the cart survives
// navigation within a session.
type CartStore interface {
	LoadCart(sessionID string) ([]domain.CartLine, error)
	SaveCart(sessionID string, lines []domain.CartLine) error
	DeleteCart(sessionID string) error
}

// Sessions is the opaque session/credential check.
type Sessions interface {
	Create(domain.CompanyID) domain.Session
	Get(token string) (domain.Session, bool)
	Delete(token string)
}

// UserFinder looks up stored credentials by email.
type UserFinder interface {
	FindUser(ctx context.Context, email string) (domain.User, error)
}
