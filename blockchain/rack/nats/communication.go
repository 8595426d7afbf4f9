package nats

import (
	"context"
	"errors"
	"fmt"
	"paygate/pkg/nats/natsdomain"
	"paygate/pkg/utils"

	"github.com/nats-io/nats.go"
)

const WORKERS_SUBJECT = "currencies.core.*"

func (app *App) natsCoreHandler(msg *nats.Msg) {
	var reply []byte

	switch msg.Subject {
	case natsdomain.SubjCreateAddress.String():
		reply = app.createAddress(msg.Data)
	case natsdomain.SubjPing.String():
		reply = []byte("pong")
	default:
		app.Dlog.Log("invalid subject", "subject", msg.Subject)
		reply = natsdomain.ErrorReply(fmt.Errorf("invalid subject %s", msg.Subject))
	}

	if err := msg.Respond(reply); err != nil {
		app.Dlog.Error("respond failed", "subject", msg.Subject, "error", err)
	}
}

// createAddress answers one create_address request. The secret leaves the
// signer sealed only.
func (app *App) createAddress(data []byte) []byte {
	req, err := utils.Unmarshal[natsdomain.ReqCreateAddress](data)
	if err != nil {
		return natsdomain.ErrorReply(fmt.Errorf("decode request: %w", err))
	}
	if req.OwnerID == "" || req.Gateway == "" {
		return natsdomain.ErrorReply(errors.New("owner_id and gateway are required"))
	}

	key, ok, err := app.Keys.Take(req.Gateway)
	if err != nil {
		app.Dlog.Error("take key failed", "gateway", req.Gateway, "owner_id", req.OwnerID, "error", err)
		return natsdomain.ErrorReply(err)
	}
	if !ok {
		app.Dlog.Log("key pool drained", "gateway", req.Gateway)
		return utils.MustMarshal(natsdomain.ResCreateAddress{NotReady: true})
	}

	secret, err := app.Sealer.Seal([]byte(key.Private))
	if err != nil {
		app.Dlog.Error("seal failed", "gateway", req.Gateway, "error", err)
		return natsdomain.ErrorReply(errors.New("seal secret failed"))
	}

	app.Dlog.Log("address created", "gateway", req.Gateway, "owner_id", req.OwnerID, "wallet_id", req.WalletID, "address", key.Address)

	return utils.MustMarshal(natsdomain.ResCreateAddress{
		Address: key.Address,
		Secret:  secret,
		Details: map[string]any{
			"gateway":    req.Gateway,
			"public_key": key.PublicKey,
			"sealed":     true,
			"signer":     true,
		},
	})
}

// Run subscribes the workers and blocks until ctx is done.
func (app *App) Run(ctx context.Context) error {
	subs := make([]*nats.Subscription, 0, app.Config.Signer.Workers)
	defer func() {
		for _, sub := range subs {
			sub.Drain()
		}
	}()

	for range app.Config.Signer.Workers {
		sub, err := app.Ns.Nc.QueueSubscribe(WORKERS_SUBJECT, natsdomain.SignerQueue, app.natsCoreHandler)
		if err != nil {
			return fmt.Errorf("queue subscribe: %w", err)
		}
		subs = append(subs, sub)
	}

	app.Dlog.Info("signer is running", "workers", len(subs), "gateways", app.Config.Signer.Gateways)

	<-ctx.Done()
	return nil
}
