package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestResolveSupplier(t *testing.T) {
	t.Run("MostRecentPurchaseWins", func(t *testing.T) {
		quotes := []domain.SupplierQuote{
			{
				SupplierID: 10, SupplierName: "Acme", ProductID: 1,
				UnitPrice:        price("99.90"),
				LastPurchaseDate: date("2026-01-15"),
				OwnHistory:       true,
			},
			{
				SupplierID: 20, SupplierName: "Globex", ProductID: 1,
				UnitPrice:        price("104.50"),
				LastPurchaseDate: date("2026-03-02"),
				OwnHistory:       true,
			},
		}

		rs, ok := domain.ResolveSupplier(1, quotes)
		require.True(t, ok)
		assert.Equal(t, domain.SupplierID(20), rs.SupplierID)
		assert.True(t, rs.UnitPrice.Equal(price("104.50")))
	})

	t.Run("EqualDatesKeepFirstInInputOrder", func(t *testing.T) {
		quotes := []domain.SupplierQuote{
			{
				SupplierID: 10, ProductID: 1,
				UnitPrice:        price("10"),
				LastPurchaseDate: date("2026-02-01"),
				OwnHistory:       true,
			},
			{
				SupplierID: 20, ProductID: 1,
				UnitPrice:        price("9"),
				LastPurchaseDate: date("2026-02-01"),
				OwnHistory:       true,
			},
		}

		for range 5 {
			rs, ok := domain.ResolveSupplier(1, quotes)
			require.True(t, ok)
			assert.Equal(t, domain.SupplierID(10), rs.SupplierID)
		}
	})

	t.Run("DatedQuoteBeatsUndated", func(t *testing.T) {
		quotes := []domain.SupplierQuote{
			{SupplierID: 10, ProductID: 1, OwnHistory: true},
			{
				SupplierID: 20, ProductID: 1,
				LastPurchaseDate: date("2025-11-20"),
				OwnHistory:       true,
			},
		}

		rs, ok := domain.ResolveSupplier(1, quotes)
		require.True(t, ok)
		assert.Equal(t, domain.SupplierID(20), rs.SupplierID)
	})

	t.Run("IgnoresOtherCompaniesHistory", func(t *testing.T) {
		quotes := []domain.SupplierQuote{
			{
				SupplierID: 30, ProductID: 1,
				UnitPrice:        price("5"),
				LastPurchaseDate: date("2026-05-01"),
				OwnHistory:       false,
			},
		}

		_, ok := domain.ResolveSupplier(1, quotes)
		assert.False(t, ok)
	})

	t.Run("IgnoresOtherProducts", func(t *testing.T) {
		quotes := []domain.SupplierQuote{
			{SupplierID: 10, ProductID: 2, OwnHistory: true},
		}

		_, ok := domain.ResolveSupplier(1, quotes)
		assert.False(t, ok)
	})

	t.Run("MissingPriceResolvesToZero", func(t *testing.T) {
		quotes := []domain.SupplierQuote{
			{SupplierID: 10, SupplierName: "Acme", ProductID: 1, OwnHistory: true},
		}

		rs, ok := domain.ResolveSupplier(1, quotes)
		require.True(t, ok)
		assert.True(t, rs.UnitPrice.IsZero())
	})
}

func TestResolveCatalog(t *testing.T) {
	t.Run("FallsBackToAnyScope", func(t *testing.T) {
		quotes := []domain.SupplierQuote{
			{
				SupplierID: 30, SupplierName: "Initech", ProductID: 1,
				UnitPrice:  price("7.25"),
				OwnHistory: false,
			},
		}

		rs, ok := domain.ResolveCatalog(1, quotes)
		require.True(t, ok)
		assert.Equal(t, domain.SupplierID(30), rs.SupplierID)
		assert.False(t, rs.OwnHistory)
	})

	t.Run("OwnHistoryNeverShadowed", func(t *testing.T) {
		quotes := []domain.SupplierQuote{
			{
				SupplierID: 30, ProductID: 1,
				UnitPrice:        price("5"),
				LastPurchaseDate: date("2026-06-01"),
				OwnHistory:       false,
			},
			{
				SupplierID: 10, ProductID: 1,
				UnitPrice:        price("6"),
				LastPurchaseDate: date("2025-01-01"),
				OwnHistory:       true,
			},
		}

		rs, ok := domain.ResolveCatalog(1, quotes)
		require.True(t, ok)
		assert.Equal(t, domain.SupplierID(10), rs.SupplierID)
		assert.True(t, rs.OwnHistory)
	})
}
