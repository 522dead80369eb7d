package domain_test

import (
	"testing"

	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daysLeft(n int) *int {
	return &n
}

func TestClassify(t *testing.T) {
	t.Run("Normal", func(t *testing.T) {
		p := domain.Product{
			ProductID:         1,
			CurrentStock:      120,
			PredictedDaysLeft: daysLeft(30),
		}
		c := domain.Classify(p)
		assert.Equal(t, domain.StockNormal, c.Status)
		assert.False(t, c.Reorder)
	})

	t.Run("LowWhenFlagged", func(t *testing.T) {
		p := domain.Product{
			ProductID:         2,
			CurrentStock:      4,
			PredictedDaysLeft: daysLeft(3),
			NeedsReorder:      true,
		}
		c := domain.Classify(p)
		assert.Equal(t, domain.StockLow, c.Status)
		assert.True(t, c.Reorder)
	})

	t.Run("ZeroDaysLeftIsOutOfStock", func(t *testing.T) {
		p := domain.Product{
			ProductID:         3,
			CurrentStock:      0,
			PredictedDaysLeft: daysLeft(0),
			NeedsReorder:      true,
		}
		c := domain.Classify(p)
		assert.Equal(t, domain.StockOutOfStock, c.Status)
		assert.True(t, c.Reorder)
	})

	t.Run("ZeroDaysLeftWinsOverClearedFlag", func(t *testing.T) {
		p := domain.Product{
			ProductID:         4,
			PredictedDaysLeft: daysLeft(0),
			NeedsReorder:      false,
		}
		c := domain.Classify(p)
		assert.Equal(t, domain.StockOutOfStock, c.Status)
		assert.True(t, c.Reorder)
	})

	t.Run("UnknownDaysLeftUsesFlag", func(t *testing.T) {
		flagged := domain.Product{ProductID: 5, NeedsReorder: true}
		assert.Equal(t, domain.StockLow, domain.Classify(flagged).Status)

		calm := domain.Product{ProductID: 6}
		c := domain.Classify(calm)
		assert.Equal(t, domain.StockNormal, c.Status)
		assert.False(t, c.Reorder)
	})
}

func TestStockStatusString(t *testing.T) {
	assert.Equal(t, "Normal", domain.StockNormal.String())
	assert.Equal(t, "Low", domain.StockLow.String())
	assert.Equal(t, "OutOfStock", domain.StockOutOfStock.String())
}

func TestPartitionAlerts(t *testing.T) {
	ps := []domain.Product{
		{ProductID: 1, PredictedDaysLeft: daysLeft(30)},
		{ProductID: 2, PredictedDaysLeft: daysLeft(0)},
		{ProductID: 3, NeedsReorder: true},
		{ProductID: 4, PredictedDaysLeft: daysLeft(0), NeedsReorder: true},
		{ProductID: 5, PredictedDaysLeft: daysLeft(2), NeedsReorder: true},
	}

	a := domain.PartitionAlerts(ps)

	require.Len(t, a.OutOfStock, 2)
	assert.Equal(t, domain.ProductID(2), a.OutOfStock[0].ProductID)
	assert.Equal(t, domain.ProductID(4), a.OutOfStock[1].ProductID)

	require.Len(t, a.Low, 2)
	assert.Equal(t, domain.ProductID(3), a.Low[0].ProductID)
	assert.Equal(t, domain.ProductID(5), a.Low[1].ProductID)
}
