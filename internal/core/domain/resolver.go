package domain

// ResolveSupplier selects the applicable supplier and unit price for
// a product from its own-company purchase history.
//
// The most recent LastPurchaseDate wins. On equal or absent dates the
// first quote in input order is kept, so repeated calls over the same
// input always pick the same supplier. The second return value is
// false when the product has no own-company history.
func ResolveSupplier(id ProductID, quotes []SupplierQuote) (ResolvedSupplier, bool) {
	return resolve(id, quotes, true)
}

// ResolveCatalog is the relaxed variant used to price the
// "other products from this supplier" catalog view: any company
// scope is admissible, but an own-company quote still wins over a
// listed price so it never shadows the product's own resolution.
func ResolveCatalog(id ProductID, quotes []SupplierQuote) (ResolvedSupplier, bool) {
	if rs, ok := resolve(id, quotes, true); ok {
		return rs, true
	}
	return resolve(id, quotes, false)
}

func resolve(id ProductID, quotes []SupplierQuote, ownOnly bool) (ResolvedSupplier, bool) {
	var (
		best  SupplierQuote
		found bool
	)
	for _, q := range quotes {
		if q.ProductID != id {
			continue
		}
		if ownOnly && !q.OwnHistory {
			continue
		}
		if !found || moreRecent(q, best) {
			best = q
			found = true
		}
	}
	if !found {
		return ResolvedSupplier{}, false
	}
	return ResolvedSupplier{
		SupplierID:       best.SupplierID,
		SupplierName:     best.SupplierName,
		UnitPrice:        best.UnitPrice,
		Discount:         best.Discount,
		LastPurchaseDate: best.LastPurchaseDate,
		OwnHistory:       best.OwnHistory,
	}, true
}

// moreRecent reports whether a should replace b. A date always beats
// no date; equal dates keep the earlier quote.
func moreRecent(a, b SupplierQuote) bool {
	if a.LastPurchaseDate == nil {
		return false
	}
	if b.LastPurchaseDate == nil {
		return true
	}
	return a.LastPurchaseDate.After(*b.LastPurchaseDate)
}
