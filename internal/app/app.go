package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/stocksavvy/procure/config"
	"github.com/stocksavvy/procure/internal/adapter/cartstore"
	"github.com/stocksavvy/procure/internal/adapter/httphandler"
	"github.com/stocksavvy/procure/internal/adapter/kafka"
	"github.com/stocksavvy/procure/internal/adapter/session"
	"github.com/stocksavvy/procure/internal/adapter/storage"
	"github.com/stocksavvy/procure/internal/core/service"
	"github.com/stocksavvy/procure/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type serdes struct {
	order schema.Serde
}

type outbound struct {
	sqldb     storage.SQLDB
	inventory storage.InventoryRepository
	users     storage.UsersRepository
	carts     *cartstore.Store
	sessions  *session.Manager
	orders    kafka.OrdersProducer
}

type processors struct {
	history *kafka.OrderHistoryProcessor
	view    *kafka.OrdersView
	wg      sync.WaitGroup
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	serdes     serdes
	outbound   outbound
	procs      processors
	service    *service.Service
	httpServer httphandler.HTTPServer
}

func New(context context.Context, config config.Config) *App {
	app := &App{ctx: context, cfg: config}

	app.initLogger()
	app.initSerdes()
	app.initOutboundAdapters()
	app.initProcessors()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	ctx := app.ctx

	srClient, err := sr.NewClient(sr.URLs(urls...))
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	orderSS := app.cfg.Broker.Topics.Orders + "-value"
	orderSerde, err := schema.NewSerdeOrderV1(
		ctx,
		schema.SubjectOpt(orderSS),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serdes.order = orderSerde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	ordersTopic := app.cfg.Broker.Topics.Orders

	sqldb, err := storage.NewSQLDB(ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}

	carts, err := cartstore.Open(app.cfg.CartStorePath)
	if err != nil {
		app.fallDown(op, err)
	}

	ordersProducer, err := kafka.NewOrdersProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, ordersTopic),
		kafka.ProducerEncoderOpt(app.serdes.order),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.outbound.sqldb = sqldb
	app.outbound.inventory = storage.NewInventoryRepository(sqldb)
	app.outbound.users = storage.NewUsersRepository(sqldb)
	app.outbound.carts = carts
	app.outbound.sessions = session.NewManager()
	app.outbound.orders = ordersProducer
}

func (app *App) initProcessors() {
	const op = "App.initProcessors"

	seedBrokers := app.cfg.Broker.SeedBrokers
	ordersTopic := app.cfg.Broker.Topics.Orders
	group := app.cfg.Broker.Consumers.OrderHistoryGroup

	proc, err := kafka.NewOrderHistoryProc(
		seedBrokers, ordersTopic, group, app.serdes.order,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewOrdersView(seedBrokers, group)
	if err != nil {
		app.fallDown(op, err)
	}

	app.procs.history = proc
	app.procs.view = view
}

func (app *App) initCoreService() {
	app.service = service.New(
		app.outbound.inventory,
		app.outbound.orders,
		app.procs.view,
		app.outbound.carts,
		app.outbound.sessions,
		app.outbound.users,
	)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	mux := http.NewServeMux()
	httphandler.Register(mux, app.service, app.outbound.sessions)

	handler := httphandler.AllowJSON(mux)
	httpServer := httphandler.NewHTTPServer(addr, handler)
	app.httpServer = httpServer
}

func (app *App) Run(stopFn context.CancelFunc) {
	app.procs.wg.Add(1)
	go app.procs.history.Run(app.ctx, stopFn, &app.procs.wg)
	go app.procs.view.Run(app.ctx)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.procs.history.Close()
	app.procs.wg.Wait()
	app.outbound.orders.Close()
	app.outbound.carts.Close()
	app.outbound.sqldb.Close()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
