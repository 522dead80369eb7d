package main

import (
	"context"
	"time"

	"github.com/stocksavvy/procure/config"
	"github.com/stocksavvy/procure/internal/app"
	"github.com/stocksavvy/procure/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	procureService := app.New(sigCtx, cfg)

	procureService.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	procureService.Close(ctx)
}
