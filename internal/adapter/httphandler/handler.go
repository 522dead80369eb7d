package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stocksavvy/procure/internal/core/port"
	"github.com/stocksavvy/procure/internal/core/service"
)

// A ProcurementService is the surface the core exposes to this
// presentation shell.
type ProcurementService interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Logout(domain.Session) error
	SelectCompany(domain.Session, domain.CompanyID)
	Inventory(context.Context, domain.Session) ([]service.InventoryItem, error)
	Alerts(context.Context, domain.Session) (domain.Alerts, error)
	Marketplace(context.Context, domain.Session) ([]domain.SupplierCatalog, error)
	AddToCart(
		ctx context.Context, sess domain.Session, productID domain.ProductID,
	) (domain.CartLine, error)
	SetQuantity(sess domain.Session, productID domain.ProductID, n int)
	ChangeQuantityBy(sess domain.Session, productID domain.ProductID, delta int)
	RemoveLine(sess domain.Session, productID domain.ProductID)
	ClearCart(sess domain.Session)
	SetSupplier(
		ctx context.Context,
		sess domain.Session,
		productID domain.ProductID,
		supplierID domain.SupplierID,
	) error
	CartView(domain.Session) service.CartView
	SubmitOrder(context.Context, domain.Session) (domain.OrderID, error)
	Orders(domain.Session) ([]domain.Order, error)
}

type Handler struct {
	svc ProcurementService
}

// Register mounts every route. Session-gated routes go through
// RequireSession; login stays open.
func Register(mux *http.ServeMux, svc ProcurementService, sessions port.Sessions) {
	h := Handler{svc}

	mux.HandleFunc("POST /v1/login", h.PostLogin)

	gated := func(pattern string, hf http.HandlerFunc) {
		mux.Handle(pattern, RequireSession(sessions, hf))
	}
	gated("POST /v1/logout", h.PostLogout)
	gated("PUT /v1/company", h.PutCompany)
	gated("GET /v1/inventory", h.GetInventory)
	gated("GET /v1/alerts", h.GetAlerts)
	gated("GET /v1/suppliers", h.GetSuppliers)
	gated("GET /v1/cart", h.GetCart)
	gated("POST /v1/cart/items", h.PostCartItem)
	gated("PATCH /v1/cart/items/{id}", h.PatchCartItem)
	gated("PUT /v1/cart/items/{id}/supplier", h.PutCartItemSupplier)
	gated("DELETE /v1/cart/items/{id}", h.DeleteCartItem)
	gated("DELETE /v1/cart", h.DeleteCart)
	gated("POST /v1/orders", h.PostOrder)
	gated("GET /v1/orders", h.GetOrders)
}

func (h Handler) PostLogin(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.PostLogin"
	log := slog.With("op", op)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "login failed", http.StatusServiceUnavailable)
		log.Error("failed to login", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     sess.Token,
		CompanyID: int64(sess.CompanyID),
	})
}

func (h Handler) PostLogout(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.PostLogout"
	log := slog.With("op", op)

	if err := h.svc.Logout(sessionFromCtx(r)); err != nil {
		log.Error("failed to logout", "err", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h Handler) PutCompany(w http.ResponseWriter, r *http.Request) {
	var req SelectCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}
	h.svc.SelectCompany(sessionFromCtx(r), domain.CompanyID(req.CompanyID))
	w.WriteHeader(http.StatusNoContent)
}

func (h Handler) GetInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Inventory(r.Context(), sessionFromCtx(r))
	if err != nil {
		writeReadErr(w, "Handler.GetInventory", err)
		return
	}

	out := make([]InventoryItem, 0, len(items))
	for _, it := range items {
		out = append(out, InventoryItem{
			Product: toProduct(it.Product),
			Status:  it.Classification.Status.String(),
			Reorder: it.Classification.Reorder,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h Handler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.Alerts(r.Context(), sessionFromCtx(r))
	if err != nil {
		writeReadErr(w, "Handler.GetAlerts", err)
		return
	}

	out := Alerts{
		OutOfStock: make([]Product, 0, len(alerts.OutOfStock)),
		Low:        make([]Product, 0, len(alerts.Low)),
	}
	for _, p := range alerts.OutOfStock {
		out.OutOfStock = append(out.OutOfStock, toProduct(p))
	}
	for _, p := range alerts.Low {
		out.Low = append(out.Low, toProduct(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h Handler) GetSuppliers(w http.ResponseWriter, r *http.Request) {
	catalogs, err := h.svc.Marketplace(r.Context(), sessionFromCtx(r))
	if err != nil {
		writeReadErr(w, "Handler.GetSuppliers", err)
		return
	}

	out := make([]SupplierCatalog, 0, len(catalogs))
	for _, c := range catalogs {
		out = append(out, toSupplierCatalog(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCartView(h.svc.CartView(sessionFromCtx(r))))
}

func (h Handler) PostCartItem(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.PostCartItem"

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	line, err := h.svc.AddToCart(
		r.Context(), sessionFromCtx(r), domain.ProductID(req.ProductID),
	)
	if err != nil {
		if errors.Is(err, service.ErrUnknownProduct) {
			http.Error(w, "unknown product", http.StatusNotFound)
			return
		}
		writeReadErr(w, op, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCartLine(line))
}

func (h Handler) PatchCartItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathProductID(w, r)
	if !ok {
		return
	}

	var req PatchCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	sess := sessionFromCtx(r)
	switch {
	case req.Quantity != nil:
		h.svc.SetQuantity(sess, productID, *req.Quantity)
	case req.Change != nil:
		h.svc.ChangeQuantityBy(sess, productID, *req.Change)
	default:
		http.Error(w, "quantity or change is required", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, toCartView(h.svc.CartView(sess)))
}

func (h Handler) PutCartItemSupplier(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathProductID(w, r)
	if !ok {
		return
	}

	var req SetSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		return
	}

	sess := sessionFromCtx(r)
	err := h.svc.SetSupplier(
		r.Context(), sess, productID, domain.SupplierID(req.SupplierID),
	)
	if err != nil {
		writeReadErr(w, "Handler.PutCartItemSupplier", err)
		return
	}

	writeJSON(w, http.StatusOK, toCartView(h.svc.CartView(sess)))
}

func (h Handler) DeleteCartItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathProductID(w, r)
	if !ok {
		return
	}
	h.svc.RemoveLine(sessionFromCtx(r), productID)
	w.WriteHeader(http.StatusNoContent)
}

func (h Handler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearCart(sessionFromCtx(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h Handler) PostOrder(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.PostOrder"
	log := slog.With("op", op)

	orderID, err := h.svc.SubmitOrder(r.Context(), sessionFromCtx(r))
	if err != nil {
		var missing *domain.MissingSupplierError
		switch {
		case errors.As(err, &missing):
			ids := make([]int64, len(missing.ProductIDs))
			for i, id := range missing.ProductIDs {
				ids[i] = int64(id)
			}
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:      "missing supplier",
				ProductIDs: ids,
			})
		case errors.Is(err, domain.ErrEmptyCart):
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error: "empty cart",
			})
		case errors.Is(err, domain.ErrSubmitInFlight):
			http.Error(w, "submission in flight", http.StatusConflict)
		default:
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
				Error:     "failed to submit order",
				Retryable: true,
			})
			log.Error("failed to submit order", "err", err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, SubmitOrderResponse{OrderID: string(orderID)})
}

func (h Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.GetOrders"
	log := slog.With("op", op)

	orders, err := h.svc.Orders(sessionFromCtx(r))
	if err != nil {
		http.Error(w, "failed to load orders", http.StatusServiceUnavailable)
		log.Error("failed to load orders", "err", err)
		return
	}

	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeReadErr maps store read failures. A stale company context is
// a discarded result, not a user-visible error.
func writeReadErr(w http.ResponseWriter, op string, err error) {
	log := slog.With("op", op)

	switch {
	case errors.Is(err, domain.ErrStaleCompany):
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, domain.ErrDataUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:     "store is unavailable",
			Retryable: true,
		})
		log.Warn("store read failed", "err", err)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Error("unexpected error", "err", err)
	}
}

func pathProductID(w http.ResponseWriter, r *http.Request) (domain.ProductID, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return 0, false
	}
	return domain.ProductID(id), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func toProduct(p domain.Product) Product {
	return Product{
		ProductID:            int64(p.ProductID),
		Name:                 p.Name,
		Description:          p.Description,
		SKU:                  p.SKU,
		UnitOfMeasure:        p.UnitOfMeasure,
		CurrentStock:         p.CurrentStock,
		ReorderThresholdDays: p.ReorderThresholdDays,
		PredictedDaysLeft:    p.PredictedDaysLeft,
		NeedsReorder:         p.NeedsReorder,
	}
}

// Money renders with two decimals here and nowhere deeper: the
// internal amounts stay unrounded.
func toCartLine(l domain.CartLine) CartLine {
	out := CartLine{
		ProductID:     int64(l.ProductID),
		Name:          l.Name,
		SKU:           l.SKU,
		UnitOfMeasure: l.UnitOfMeasure,
		Quantity:      l.Quantity,
		UnitPrice:     l.UnitPrice.StringFixed(2),
		LineTotal:     l.LineTotal().StringFixed(2),
	}
	if l.SupplierID != nil {
		sid := int64(*l.SupplierID)
		out.SupplierID = &sid
		out.SupplierName = &l.SupplierName
	}
	return out
}

func toCartView(v service.CartView) CartView {
	lines := make([]CartLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, toCartLine(l))
	}
	return CartView{Lines: lines, Total: v.Total.StringFixed(2)}
}

func toCatalogProduct(p domain.CatalogProduct) CatalogProduct {
	out := CatalogProduct{
		ProductID:     int64(p.ProductID),
		Name:          p.Name,
		Description:   p.Description,
		SKU:           p.SKU,
		UnitOfMeasure: p.UnitOfMeasure,
		UnitPrice:     p.UnitPrice.StringFixed(2),
		Discount:      p.Discount,
	}
	if p.LastPurchaseDate != nil {
		d := p.LastPurchaseDate.Format(time.DateOnly)
		out.LastPurchaseDate = &d
	}
	return out
}

func toSupplierCatalog(c domain.SupplierCatalog) SupplierCatalog {
	out := SupplierCatalog{
		SupplierID:    int64(c.Supplier.SupplierID),
		Name:          c.Supplier.Name,
		Type:          c.Supplier.Type,
		Email:         c.Supplier.Email,
		Phone:         c.Supplier.Phone,
		Website:       c.Supplier.Website,
		Address:       c.Supplier.Address,
		Products:      make([]CatalogProduct, 0, len(c.Products)),
		OtherProducts: make([]CatalogProduct, 0, len(c.OtherProducts)),
	}
	for _, p := range c.Products {
		out.Products = append(out.Products, toCatalogProduct(p))
	}
	for _, p := range c.OtherProducts {
		out.OtherProducts = append(out.OtherProducts, toCatalogProduct(p))
	}
	return out
}

func toOrder(o domain.Order) Order {
	out := Order{
		OrderID:     string(o.OrderID),
		SubmittedAt: o.SubmittedAt.Format(time.RFC3339),
		Total:       o.Total.StringFixed(2),
		Lines:       make([]OrderLine, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, OrderLine{
			ProductID:     int64(l.ProductID),
			Name:          l.Name,
			SKU:           l.SKU,
			UnitOfMeasure: l.UnitOfMeasure,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice.StringFixed(2),
			SupplierID:    int64(l.SupplierID),
			SupplierName:  l.SupplierName,
		})
	}
	return out
}
