package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/lovoo/goka"
	"github.com/shopspring/decimal"
	"github.com/stocksavvy/procure/internal/core/domain"
	"github.com/stocksavvy/procure/internal/core/port"
	"github.com/stocksavvy/procure/pkg/schema"
)

// historyCap bounds the per-company group table value; older orders
// fall off the view, the topic itself keeps the full log.
const historyCap = 50

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor].
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// An orderEventCodec used for serde [schema.OrderV1].
type orderEventCodec struct {
	serde Serde
}

func newOrderEventCodec(s Serde) orderEventCodec {
	return orderEventCodec{s}
}

func (c orderEventCodec) Encode(v any) ([]byte, error) {
	const op = "orderEventCodec.Encode"
	if _, ok := v.(schema.OrderV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c orderEventCodec) Decode(data []byte) (any, error) {
	const op = "orderEventCodec.Decode"
	var s schema.OrderV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// An orderLogValue is the per-company order history, newest first.
type orderLogValue []schema.OrderV1

// An orderLogCodec used for serde [orderLogValue] in the group table.
type orderLogCodec struct{}

func (orderLogCodec) Encode(v any) ([]byte, error) {
	const op = "orderLogCodec.Encode"
	lv, ok := v.(orderLogValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return json.Marshal(lv)
}

func (orderLogCodec) Decode(data []byte) (any, error) {
	const op = "orderLogCodec.Decode"
	var lv orderLogValue
	if err := json.Unmarshal(data, &lv); err != nil {
		return nil, opErr(err, op)
	}
	return lv, nil
}

// An OrderHistoryProcessor folds the orders stream into a
// per-company group table.
type OrderHistoryProcessor struct {
	opPrefix string
	proc     processor
}

func NewOrderHistoryProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	orderSerde Serde,
) (*OrderHistoryProcessor, error) {
	const op = "NewOrderHistoryProc"

	var p OrderHistoryProcessor
	p.opPrefix = "OrderHistoryProcessor"

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newOrderEventCodec(orderSerde),
			p.processFn,
		),
		goka.Persist(orderLogCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}
	return &p, nil
}

func (p *OrderHistoryProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *OrderHistoryProcessor) Close() {
	p.proc.close()
}

func (p *OrderHistoryProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	event, _ := msg.(schema.OrderV1)

	var lv orderLogValue
	if v := ctx.Value(); v != nil {
		lv, _ = v.(orderLogValue)
	}

	lv = append(orderLogValue{event}, lv...)
	if len(lv) > historyCap {
		lv = lv[:historyCap]
	}
	ctx.SetValue(lv)

	log.Info("order appended",
		"companyID", ctx.Key(),
		"orderID", event.OrderID,
	)
}

var _ port.OrderHistoryReader = (*OrdersView)(nil)

// An OrdersView serves the submitted order history from the
// history group table.
type OrdersView struct {
	opPrefix string
	gv       *goka.View
}

func NewOrdersView(
	seedBrokers []string, groupTable string,
) (*OrdersView, error) {
	const op = "NewOrdersView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(groupTable)),
		orderLogCodec{},
	)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &OrdersView{opPrefix: "OrdersView", gv: gv}, nil
}

func (v *OrdersView) Run(ctx context.Context) {
	const op = "Run"
	log := slog.With("op", makeOp(v.opPrefix, op))

	if err := v.gv.Run(ctx); err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

func (v *OrdersView) CompanyOrders(
	companyID domain.CompanyID,
) ([]domain.Order, error) {
	const op = "CompanyOrders"

	key := strconv.FormatInt(int64(companyID), 10)
	raw, err := v.gv.Get(key)
	if err != nil {
		return nil, opErr(err, v.opPrefix, op)
	}
	if raw == nil {
		return []domain.Order{}, nil
	}

	lv, ok := raw.(orderLogValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, v.opPrefix, op)
	}

	orders := make([]domain.Order, 0, len(lv))
	for _, s := range lv {
		orders = append(orders, orderFromSchemaV1(s))
	}
	return orders, nil
}

func orderFromSchemaV1(s schema.OrderV1) domain.Order {
	submittedAt, _ := time.Parse(time.RFC3339Nano, s.SubmittedAt)
	total, _ := decimal.NewFromString(s.Total)

	o := domain.Order{
		OrderID:     domain.OrderID(s.OrderID),
		CompanyID:   domain.CompanyID(s.CompanyID),
		Total:       total,
		SubmittedAt: submittedAt,
	}
	o.Lines = make([]domain.OrderLine, len(s.Lines))
	for i, l := range s.Lines {
		price, _ := decimal.NewFromString(l.UnitPrice)
		o.Lines[i] = domain.OrderLine{
			ProductID:     domain.ProductID(l.ProductID),
			Name:          l.Name,
			SKU:           l.SKU,
			UnitOfMeasure: l.UnitOfMeasure,
			Quantity:      l.Quantity,
			UnitPrice:     price,
			SupplierID:    domain.SupplierID(l.SupplierID),
			SupplierName:  l.SupplierName,
		}
	}
	return o
}
