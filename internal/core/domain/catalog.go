package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// A CatalogProduct is one product row in the supplier marketplace,
// priced either from the company's own purchase history or from
// another company's listed price.
type CatalogProduct struct {
	ProductID        ProductID
	Name             string
	Description      string
	SKU              string
	UnitOfMeasure    string
	UnitPrice        decimal.Decimal
	Discount         *float64
	LastPurchaseDate *time.Time
}

// A SupplierCatalog groups a supplier with the products this company
// bought from it and the other products it is known to sell.
type SupplierCatalog struct {
	Supplier      Supplier
	Products      []CatalogProduct
	OtherProducts []CatalogProduct
}

// GroupBySupplier builds the marketplace view from quote records.
//
// Only suppliers with at least one own-company record appear.
// Own-history rows become Products; any-scope rows for the same
// suppliers become OtherProducts, deduplicated against the own
// list and against each other. Supplier order follows first
// appearance in the input.
func GroupBySupplier(suppliers []Supplier, quotes []SupplierQuote) []SupplierCatalog {
	byID := make(map[SupplierID]Supplier, len(suppliers))
	for _, s := range suppliers {
		byID[s.SupplierID] = s
	}

	var order []SupplierID
	catalogs := make(map[SupplierID]*SupplierCatalog)
	for _, q := range quotes {
		if !q.OwnHistory {
			continue
		}
		c, ok := catalogs[q.SupplierID]
		if !ok {
			s, known := byID[q.SupplierID]
			if !known {
				s = Supplier{SupplierID: q.SupplierID, Name: q.SupplierName}
			}
			c = &SupplierCatalog{Supplier: s}
			catalogs[q.SupplierID] = c
			order = append(order, q.SupplierID)
		}
		c.Products = append(c.Products, toCatalogProduct(q))
	}

	for _, q := range quotes {
		if q.OwnHistory {
			continue
		}
		c, ok := catalogs[q.SupplierID]
		if !ok || containsProduct(c.Products, q.ProductID) ||
			containsProduct(c.OtherProducts, q.ProductID) {
			continue
		}
		c.OtherProducts = append(c.OtherProducts, toCatalogProduct(q))
	}

	out := make([]SupplierCatalog, 0, len(order))
	for _, id := range order {
		out = append(out, *catalogs[id])
	}
	return out
}

func toCatalogProduct(q SupplierQuote) CatalogProduct {
	return CatalogProduct{
		ProductID:        q.ProductID,
		Name:             q.ProductName,
		Description:      q.Description,
		SKU:              q.SKU,
		UnitOfMeasure:    q.UnitOfMeasure,
		UnitPrice:        q.UnitPrice,
		Discount:         q.Discount,
		LastPurchaseDate: q.LastPurchaseDate,
	}
}

func containsProduct(ps []CatalogProduct, id ProductID) bool {
	for _, p := range ps {
		if p.ProductID == id {
			return true
		}
	}
	return false
}
