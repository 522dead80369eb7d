package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stocksavvy/procure/internal/core/port"
)

var _ port.InventoryReader = (*InventoryRepository)(nil)

// An InventoryRepository reads products, quotes and suppliers from
// the relational store. Nullable and loosely typed columns are
// normalized here so the core only sees the strict domain shapes.
type InventoryRepository struct {
	sqldb sqldb
}

func NewInventoryRepository(sqldb sqldb) InventoryRepository {
	return InventoryRepository{sqldb}
}

func (r InventoryRepository) FetchProducts(
	ctx context.Context, companyID domain.CompanyID,
) ([]domain.Product, error) {
	const op = "InventoryRepository.FetchProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			product_id, company_id,
			COALESCE(name, ''), COALESCE(description, ''),
			COALESCE(sku, ''), COALESCE(unit_of_measure, ''),
			COALESCE(current_stock, 0),
			COALESCE(reorder_threshold_days, 0),
			predicted_days_left,
			COALESCE(needs_reorder_flag, FALSE)
		FROM products
		WHERE company_id = $1
		ORDER BY product_id;`

	rows, err := r.sqldb.QueryContext(ctx, query, int64(companyID))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query: %w", op, err)
	}
	defer rows.Close()

	ps := make([]domain.Product, 0)
	for rows.Next() {
		var (
			p        domain.Product
			daysLeft sql.NullInt64
		)
		err := rows.Scan(
			&p.ProductID, &p.CompanyID,
			&p.Name, &p.Description,
			&p.SKU, &p.UnitOfMeasure,
			&p.CurrentStock,
			&p.ReorderThresholdDays,
			&daysLeft,
			&p.NeedsReorder,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan: %w", op, err)
		}
		if daysLeft.Valid {
			d := int(daysLeft.Int64)
			p.PredictedDaysLeft = &d
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (r InventoryRepository) FetchSupplierQuotes(
	ctx context.Context,
	companyID domain.CompanyID,
	productIDs []domain.ProductID,
) ([]domain.SupplierQuote, error) {
	const op = "InventoryRepository.FetchSupplierQuotes"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Rows for suppliers this company never bought from are of no
	// use to either resolution mode, so the relaxed-scope rows are
	// limited to the company's own supplier set.
	query := `
		SELECT
			i.supplier_id, s.name,
			i.product_id, COALESCE(p.name, ''),
			COALESCE(p.description, ''), COALESCE(p.sku, ''),
			COALESCE(p.unit_of_measure, ''),
			COALESCE(i.price_paid, i.unit_price, 0),
			i.discount, i.last_purchase_date,
			i.company_id = $1 AS own_history
		FROM company_product_supplier_info i
		JOIN suppliers s ON s.supplier_id = i.supplier_id
		JOIN products p ON p.product_id = i.product_id
		WHERE ($2::bigint[] = '{}'::bigint[] OR i.product_id = ANY($2::bigint[]))
			AND i.supplier_id IN (
				SELECT supplier_id FROM company_product_supplier_info
				WHERE company_id = $1
			)
		ORDER BY i.last_purchase_date DESC NULLS LAST, i.id_transaction;`

	rows, err := r.sqldb.QueryContext(
		ctx, query, int64(companyID), pgIntArray(productIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query: %w", op, err)
	}
	defer rows.Close()

	qs := make([]domain.SupplierQuote, 0)
	for rows.Next() {
		var (
			q        domain.SupplierQuote
			discount sql.NullFloat64
			lastDate sql.NullTime
		)
		err := rows.Scan(
			&q.SupplierID, &q.SupplierName,
			&q.ProductID, &q.ProductName,
			&q.Description, &q.SKU,
			&q.UnitOfMeasure,
			&q.UnitPrice,
			&discount, &lastDate,
			&q.OwnHistory,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan: %w", op, err)
		}
		if discount.Valid {
			d := discount.Float64
			q.Discount = &d
		}
		if lastDate.Valid {
			t := lastDate.Time.UTC()
			q.LastPurchaseDate = &t
		}
		qs = append(qs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return qs, nil
}

func (r InventoryRepository) FetchSuppliers(
	ctx context.Context,
) ([]domain.Supplier, error) {
	const op = "InventoryRepository.FetchSuppliers"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			supplier_id, name,
			COALESCE(type, ''), COALESCE(email, ''),
			COALESCE(phone, ''), COALESCE(website, ''),
			COALESCE(address, '')
		FROM suppliers
		ORDER BY name;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to query: %w", op, err)
	}
	defer rows.Close()

	ss := make([]domain.Supplier, 0)
	for rows.Next() {
		var s domain.Supplier
		err := rows.Scan(
			&s.SupplierID, &s.Name,
			&s.Type, &s.Email,
			&s.Phone, &s.Website,
			&s.Address,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan: %w", op, err)
		}
		ss = append(ss, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ss, nil
}

func pgIntArray[T ~int64](ids []T) string {
	if len(ids) == 0 {
		return "{}"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
