package nats

import (
	"fmt"
	"paygate/blockchain/rack/config"
	"paygate/pkg/dlog"
	"paygate/pkg/nats/natsdomain"
	"time"

	"github.com/nats-io/nats.go"
)

func Init(config *config.Config, dlog dlog.Dlog) *natsdomain.Ns {
	nc, err := nats.Connect(config.Nats.Servers,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(3*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			dlog.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			dlog.Info("nats reconnected", "url", nc.ConnectedUrl())
		}))
	if err != nil {
		panic(err)
	}

	fmt.Println("nats: Connected to", nc.ConnectedAddr())
	return &natsdomain.Ns{Nc: nc}
}
