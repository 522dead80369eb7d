package schema

import "github.com/hamba/avro/v2"

const OrderSchemaTextV1 = `{
	"type": "record",
	"namespace": "orders",
	"name": "order",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "company_id", "type": "long"},
		{"name": "submitted_at", "type": "string"},
		{"name": "total", "type": "string"},
		{"name": "lines", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "order_line",
				"fields": [
					{"name": "product_id", "type": "long"},
					{"name": "name", "type": "string"},
					{"name": "sku", "type": "string"},
					{"name": "unit_of_measure", "type": "string"},
					{"name": "quantity", "type": "int"},
					{"name": "unit_price", "type": "string"},
					{"name": "supplier_id", "type": "long"},
					{"name": "supplier_name", "type": "string"}
				]
			}
		}}
	]
}`

// Prices travel as decimal strings so the exact amounts survive
// serialization.
type (
	OrderV1 struct {
		OrderID     string        `avro:"order_id"`
		CompanyID   int64         `avro:"company_id"`
		SubmittedAt string        `avro:"submitted_at"`
		Total       string        `avro:"total"`
		Lines       []OrderLineV1 `avro:"lines"`
	}

	OrderLineV1 struct {
		ProductID     int64  `avro:"product_id"`
		Name          string `avro:"name"`
		SKU           string `avro:"sku"`
		UnitOfMeasure string `avro:"unit_of_measure"`
		Quantity      int    `avro:"quantity"`
		UnitPrice     string `avro:"unit_price"`
		SupplierID    int64  `avro:"supplier_id"`
		SupplierName  string `avro:"supplier_name"`
	}
)

func OrderV1Avro() avro.Schema {
	return avro.MustParse(OrderSchemaTextV1)
}
