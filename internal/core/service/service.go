package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocksavvy/procure/internal/core/cart"
	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stocksavvy/procure/internal/core/port"
	"github.com/stocksavvy/procure/pkg/retry"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownProduct     = errors.New("unknown product")
)

const fetchAttempts = 3

// A Service exposes the replenishment and procurement operations to
// the presentation layer: stock alerts, the supplier marketplace,
// the per-session cart and order submission.
type Service struct {
	store    port.InventoryReader
	orders   port.OrderSubmitter
	history  port.OrderHistoryReader
	carts    port.CartStore
	sessions port.Sessions
	users    port.UserFinder

	mu     sync.Mutex
	active map[string]*sessionState
}

// A sessionState is the mutable per-session context: the current
// company selection, the cart it exclusively owns and the submit
// in-flight flag. The epoch counter grows on every company switch so
// fetch results for a superseded selection can be discarded.
type sessionState struct {
	mu         sync.Mutex
	companyID  domain.CompanyID
	epoch      uint64
	cart       *cart.Cart
	submitting bool
}

func New(
	store port.InventoryReader,
	orders port.OrderSubmitter,
	history port.OrderHistoryReader,
	carts port.CartStore,
	sessions port.Sessions,
	users port.UserFinder,
) *Service {
	return &Service{
		store:    store,
		orders:   orders,
		history:  history,
		carts:    carts,
		sessions: sessions,
		users:    users,
		active:   make(map[string]*sessionState),
	}
}

// Login checks the stored credentials and opens a session scoped to
// the user's company.
func (s *Service) Login(
	ctx context.Context, email, password string,
) (domain.Session, error) {
	const op = "Service.Login"

	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	u, err := s.users.FindUser(ctx, email)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if u.Password != password {
		return domain.Session{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return s.sessions.Create(u.CompanyID), nil
}

// Logout closes the session and drops its persisted cart.
func (s *Service) Logout(sess domain.Session) error {
	const op = "Service.Logout"

	s.sessions.Delete(sess.Token)

	s.mu.Lock()
	delete(s.active, sess.Token)
	s.mu.Unlock()

	if err := s.carts.DeleteCart(sess.Token); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SelectCompany switches the session's company context. Results of
// fetches started before the switch are discarded when they land.
func (s *Service) SelectCompany(sess domain.Session, companyID domain.CompanyID) {
	st := s.state(sess)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.companyID == companyID {
		return
	}
	st.companyID = companyID
	st.epoch++
}

// An InventoryItem pairs a product with its stock classification.
type InventoryItem struct {
	Product        domain.Product
	Classification domain.Classification
}

// Inventory fetches and classifies the session company's products.
func (s *Service) Inventory(
	ctx context.Context, sess domain.Session,
) ([]InventoryItem, error) {
	const op = "Service.Inventory"

	st := s.state(sess)
	companyID, epoch := st.context()

	ps, err := s.fetchProducts(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if st.stale(epoch) {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrStaleCompany)
	}

	items := make([]InventoryItem, 0, len(ps))
	for _, p := range ps {
		items = append(items, InventoryItem{
			Product:        p,
			Classification: domain.Classify(p),
		})
	}
	return items, nil
}

// Alerts returns the out-of-stock and low-stock buckets for the
// session company's products.
func (s *Service) Alerts(
	ctx context.Context, sess domain.Session,
) (domain.Alerts, error) {
	const op = "Service.Alerts"

	st := s.state(sess)
	companyID, epoch := st.context()

	ps, err := s.fetchProducts(ctx, companyID)
	if err != nil {
		return domain.Alerts{}, fmt.Errorf("%s: %w", op, err)
	}
	if st.stale(epoch) {
		return domain.Alerts{}, fmt.Errorf("%s: %w", op, domain.ErrStaleCompany)
	}

	return domain.PartitionAlerts(ps), nil
}

// Marketplace groups the company's purchase history by supplier,
// including other products those suppliers are known to sell.
func (s *Service) Marketplace(
	ctx context.Context, sess domain.Session,
) ([]domain.SupplierCatalog, error) {
	const op = "Service.Marketplace"

	st := s.state(sess)
	companyID, epoch := st.context()

	suppliers, err := retry.DoWithResult(ctx, s.retryConfig(),
		func() ([]domain.Supplier, error) {
			return s.store.FetchSuppliers(ctx)
		})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, domain.ErrDataUnavailable, err)
	}

	quotes, err := s.fetchQuotes(ctx, companyID, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if st.stale(epoch) {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrStaleCompany)
	}

	return domain.GroupBySupplier(suppliers, quotes), nil
}

// AddToCart resolves the product's supplier from the company's own
// purchase history and adds it to the session cart. Repeated adds
// accumulate quantity on the one line for the product. A product
// without own-company history goes in unpriced; the line surfaces
// "no supplier history" rather than failing.
func (s *Service) AddToCart(
	ctx context.Context, sess domain.Session, productID domain.ProductID,
) (domain.CartLine, error) {
	const op = "Service.AddToCart"

	st := s.state(sess)
	companyID, epoch := st.context()

	ps, err := s.fetchProducts(ctx, companyID)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("%s: %w", op, err)
	}

	var product *domain.Product
	for i := range ps {
		if ps[i].ProductID == productID {
			product = &ps[i]
			break
		}
	}
	if product == nil {
		return domain.CartLine{}, fmt.Errorf("%s: %w", op, ErrUnknownProduct)
	}

	quotes, err := s.fetchQuotes(ctx, companyID, []domain.ProductID{productID})
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("%s: %w", op, err)
	}
	if st.stale(epoch) {
		return domain.CartLine{}, fmt.Errorf("%s: %w", op, domain.ErrStaleCompany)
	}

	var resolved *domain.ResolvedSupplier
	if rs, ok := domain.ResolveSupplier(productID, quotes); ok {
		resolved = &rs
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.cart.Add(*product, resolved)
	line := lineCopy(st.cart, productID)
	s.persistCart(sess.Token, st)
	return line, nil
}

// SetQuantity sets the line quantity, clamped to a minimum of 1.
func (s *Service) SetQuantity(
	sess domain.Session, productID domain.ProductID, n int,
) {
	st := s.state(sess)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cart.SetQuantity(productID, n)
	s.persistCart(sess.Token, st)
}

// ChangeQuantityBy adjusts the line quantity by delta, clamped to a
// minimum of 1.
func (s *Service) ChangeQuantityBy(
	sess domain.Session, productID domain.ProductID, delta int,
) {
	st := s.state(sess)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cart.ChangeQuantityBy(productID, delta)
	s.persistCart(sess.Token, st)
}

// RemoveLine deletes the line for the product.
func (s *Service) RemoveLine(sess domain.Session, productID domain.ProductID) {
	st := s.state(sess)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cart.Remove(productID)
	s.persistCart(sess.Token, st)
}

// ClearCart empties the session cart.
func (s *Service) ClearCart(sess domain.Session) {
	st := s.state(sess)
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cart.Clear()
	s.persistCart(sess.Token, st)
}

// SetSupplier re-prices a cart line from the chosen supplier's quote
// for that product. No-op when that supplier has no quote for it.
func (s *Service) SetSupplier(
	ctx context.Context,
	sess domain.Session,
	productID domain.ProductID,
	supplierID domain.SupplierID,
) error {
	const op = "Service.SetSupplier"

	st := s.state(sess)
	companyID, epoch := st.context()

	quotes, err := s.fetchQuotes(ctx, companyID, []domain.ProductID{productID})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if st.stale(epoch) {
		return fmt.Errorf("%s: %w", op, domain.ErrStaleCompany)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	st.cart.SetSupplier(productID, supplierID, quotes)
	s.persistCart(sess.Token, st)
	return nil
}

// A CartView is the cart read model for the presentation layer.
type CartView struct {
	Lines []domain.CartLine
	Total decimal.Decimal
}

func (s *Service) CartView(sess domain.Session) CartView {
	st := s.state(sess)
	st.mu.Lock()
	defer st.mu.Unlock()
	return CartView{Lines: st.cart.Lines(), Total: st.cart.Total()}
}

// SubmitOrder validates the cart, assembles the immutable order
// snapshot and hands it to the order persistence collaborator.
// The cart is cleared only after persistence succeeds; on failure it
// is left exactly as it was. A second submit while one is in flight
// is rejected with ErrSubmitInFlight.
func (s *Service) SubmitOrder(
	ctx context.Context, sess domain.Session,
) (domain.OrderID, error) {
	const op = "Service.SubmitOrder"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	st := s.state(sess)

	order, err := s.assemble(st)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	orderID, err := s.orders.SubmitOrder(ctx, order)

	st.mu.Lock()
	st.submitting = false
	if err == nil {
		st.cart.Clear()
		s.persistCart(sess.Token, st)
	}
	st.mu.Unlock()

	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return orderID, nil
}

// assemble checks the submit preconditions and deep-copies the cart
// into an order while marking the session as submitting.
func (s *Service) assemble(st *sessionState) (domain.Order, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.submitting {
		return domain.Order{}, domain.ErrSubmitInFlight
	}

	lines := st.cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	var missing []domain.ProductID
	for _, l := range lines {
		if l.SupplierID == nil {
			missing = append(missing, l.ProductID)
		}
	}
	if len(missing) > 0 {
		return domain.Order{}, &domain.MissingSupplierError{ProductIDs: missing}
	}

	order := domain.Order{
		CompanyID:   st.companyID,
		Lines:       make([]domain.OrderLine, 0, len(lines)),
		Total:       st.cart.Total(),
		SubmittedAt: time.Now().UTC(),
	}
	for _, l := range lines {
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID:     l.ProductID,
			Name:          l.Name,
			SKU:           l.SKU,
			UnitOfMeasure: l.UnitOfMeasure,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			SupplierID:    *l.SupplierID,
			SupplierName:  l.SupplierName,
		})
	}

	st.submitting = true
	return order, nil
}

// Orders returns the session company's submitted order history.
func (s *Service) Orders(sess domain.Session) ([]domain.Order, error) {
	const op = "Service.Orders"

	st := s.state(sess)
	companyID, _ := st.context()

	os, err := s.history.CompanyOrders(companyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return os, nil
}

func (s *Service) state(sess domain.Session) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.active[sess.Token]; ok {
		return st
	}

	st := &sessionState{companyID: sess.CompanyID, cart: cart.New()}
	if lines, err := s.carts.LoadCart(sess.Token); err == nil && len(lines) > 0 {
		st.cart = cart.Restore(lines)
	}
	s.active[sess.Token] = st
	return st
}

func (st *sessionState) context() (domain.CompanyID, uint64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.companyID, st.epoch
}

func (st *sessionState) stale(epoch uint64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.epoch != epoch
}

// persistCart is best effort: a failed write only costs durability
// across restarts, never the in-memory cart. Callers hold st.mu.
func (s *Service) persistCart(token string, st *sessionState) {
	_ = s.carts.SaveCart(token, st.cart.Lines())
}

func (s *Service) fetchProducts(
	ctx context.Context, companyID domain.CompanyID,
) ([]domain.Product, error) {
	ps, err := retry.DoWithResult(ctx, s.retryConfig(),
		func() ([]domain.Product, error) {
			return s.store.FetchProducts(ctx, companyID)
		})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	return ps, nil
}

func (s *Service) fetchQuotes(
	ctx context.Context,
	companyID domain.CompanyID,
	productIDs []domain.ProductID,
) ([]domain.SupplierQuote, error) {
	qs, err := retry.DoWithResult(ctx, s.retryConfig(),
		func() ([]domain.SupplierQuote, error) {
			return s.store.FetchSupplierQuotes(ctx, companyID, productIDs)
		})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	return qs, nil
}

func (s *Service) retryConfig() retry.Config {
	return retry.Config{MaxAttempts: fetchAttempts}
}

func lineCopy(c *cart.Cart, id domain.ProductID) domain.CartLine {
	for _, l := range c.Lines() {
		if l.ProductID == id {
			return l
		}
	}
	return domain.CartLine{}
}
