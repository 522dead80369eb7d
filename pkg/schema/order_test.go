package schema

import (
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderV1(t *testing.T) {
	t.Run("Regular", func(t *testing.T) {
		vMarshal := OrderV1{
			OrderID:     "testOrderID",
			CompanyID:   7,
			SubmittedAt: "2026-08-29T10:15:00Z",
			Total:       "219.80",
			Lines: []OrderLineV1{
				{
					ProductID:     1,
					Name:          "testName",
					SKU:           "testSKU",
					UnitOfMeasure: "pcs",
					Quantity:      2,
					UnitPrice:     "109.90",
					SupplierID:    10,
					SupplierName:  "testSupplier",
				},
			},
		}

		var orderSchema avro.Schema

		require.NotPanics(t, func() {
			orderSchema = OrderV1Avro()
		})

		data, err := avro.Marshal(orderSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal OrderV1
		err = avro.Unmarshal(orderSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal.OrderID, vUnmarshal.OrderID)
		assert.Equal(t, vMarshal.CompanyID, vUnmarshal.CompanyID)
		assert.Equal(t, vMarshal.SubmittedAt, vUnmarshal.SubmittedAt)
		assert.Equal(t, vMarshal.Total, vUnmarshal.Total)

		require.Len(t, vUnmarshal.Lines, len(vMarshal.Lines))
		for i, v := range vUnmarshal.Lines {
			assert.Equal(t, vMarshal.Lines[i], v)
		}
	})

	t.Run("NilLines", func(t *testing.T) {
		vMarshal := OrderV1{
			OrderID:     "testOrderID",
			CompanyID:   7,
			SubmittedAt: "2026-08-29T10:15:00Z",
			Total:       "0",
			Lines:       nil,
		}

		var orderSchema avro.Schema

		require.NotPanics(t, func() {
			orderSchema = OrderV1Avro()
		})

		data, err := avro.Marshal(orderSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal OrderV1
		err = avro.Unmarshal(orderSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal.OrderID, vUnmarshal.OrderID)
		assert.Equal(t, vMarshal.Total, vUnmarshal.Total)
		assert.Len(t, vUnmarshal.Lines, 0)
	})
}
