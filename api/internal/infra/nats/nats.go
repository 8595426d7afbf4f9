package nats

import (
	"context"
	"fmt"
	"os"
	"paygate/api/internal/config"
	"paygate/api/internal/logger"
	"paygate/pkg/nats/natsdomain"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

type NatsInfra struct {
	*natsdomain.Ns
}

func Init(config *config.Config, log logger.Logger) *NatsInfra {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	nc, err := nats.Connect(config.Nats.Servers,
		nats.MaxReconnects(100),
		nats.ReconnectWait(3*time.Second),
		nats.DisconnectHandler(func(nc *nats.Conn) {
			log.TemplNatsInfo("disconnected", nc.ConnectedUrl())
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.TemplNatsInfo("reconnected", nc.ConnectedUrl())
		}))
	if err != nil {
		log.TemplNatsError("Connect failed", config.Nats.Servers, err)
		os.Exit(1)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		panic(err)
	}

	if _, err := InitDepositsStream(ctx, js); err != nil {
		panic("NATS: deposits stream: " + err.Error())
	}

	// signer must be up, remote addresses go through it
	if err := natsdomain.Ping(nc, 5*time.Second); err != nil {
		panic("NATS: ping signer failed: " + err.Error())
	}

	fmt.Println("nats: Connected to", nc.ConnectedAddr())
	return &NatsInfra{&natsdomain.Ns{Nc: nc, Js: js, Timeout: config.Nats.RequestTimeout}}
}

func InitDepositsStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       natsdomain.DepositsStream,
		Subjects:   natsdomain.SubjectsJetStream[:],
		Duplicates: 10 * time.Minute,
	})
}

func (n *NatsInfra) Close() {
	if n == nil || n.Nc == nil {
		return
	}
	n.Nc.Drain()
}
