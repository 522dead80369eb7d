package kafka

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/hashicorp/go-uuid"
	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stocksavvy/procure/internal/core/port"
	"github.com/stocksavvy/procure/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.OrderSubmitter = (*OrdersProducer)(nil)

// An OrdersProducer appends submitted orders to the orders topic.
// Records are keyed by company so the history processor folds them
// into per-company tables.
type OrdersProducer struct {
	cl       ProducerClient
	encoder  Encoder
	opPrefix string
}

func NewOrdersProducer(opts ...ProducerOpt) (OrdersProducer, error) {
	const op = "NewOrdersProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return OrdersProducer{}, opErr(err, op)
		}
	}

	return OrdersProducer{
		cl:       options.cl,
		encoder:  options.encoder,
		opPrefix: "OrdersProducer",
	}, nil
}

func (p OrdersProducer) Close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p OrdersProducer) SubmitOrder(
	ctx context.Context, order domain.Order,
) (domain.OrderID, error) {
	const op = "SubmitOrder"

	if err := ctx.Err(); err != nil {
		return "", opErr(err, p.opPrefix, op)
	}

	id, err := uuid.GenerateUUID()
	if err != nil {
		return "", opErr(err, p.opPrefix, op)
	}
	orderID := domain.OrderID(id)

	r, err := p.createRecord(orderID, order)
	if err != nil {
		return "", opErr(err, p.opPrefix, op)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return "", opErr(err, p.opPrefix, op)
	}

	return orderID, nil
}

func (p OrdersProducer) createRecord(
	orderID domain.OrderID, order domain.Order,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := orderToSchemaV1(orderID, order)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}
	msgKey := []byte(strconv.FormatInt(int64(order.CompanyID), 10))
	return &kgo.Record{Key: msgKey, Value: b}, nil
}

func orderToSchemaV1(orderID domain.OrderID, v domain.Order) schema.OrderV1 {
	s := schema.OrderV1{
		OrderID:     string(orderID),
		CompanyID:   int64(v.CompanyID),
		SubmittedAt: v.SubmittedAt.Format(time.RFC3339Nano),
		Total:       v.Total.String(),
	}
	s.Lines = make([]schema.OrderLineV1, len(v.Lines))
	for i, l := range v.Lines {
		s.Lines[i] = schema.OrderLineV1{
			ProductID:     int64(l.ProductID),
			Name:          l.Name,
			SKU:           l.SKU,
			UnitOfMeasure: l.UnitOfMeasure,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice.String(),
			SupplierID:    int64(l.SupplierID),
			SupplierName:  l.SupplierName,
		}
	}
	return s
}
