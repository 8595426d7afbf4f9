package main

import (
	"context"
	"os"
	"os/signal"
	"paygate/blockchain/rack/config"
	"paygate/blockchain/rack/keypool"
	"paygate/blockchain/rack/nats"
	"paygate/pkg/dlog"
	"paygate/pkg/seal"
	"syscall"
)

func main() {
	config := config.ReadConfig()

	dlog := dlog.Init("signer", !config.Prod_env)

	sealer, err := seal.New(config.SealKey)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keys := keypool.New(config.Signer.Gateways, config.Signer.PoolSize)
	keys.Start(ctx)

	ns := nats.Init(config, dlog)
	defer ns.Nc.Drain()

	app := nats.App{
		Config: config,
		Ns:     ns,
		Keys:   keys,
		Sealer: sealer,
		Dlog:   dlog,
	}

	if err := app.Run(ctx); err != nil {
		dlog.Error("signer stopped", "error", err)
		os.Exit(1)
	}
}
