package natsdomain

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// nats struct
type Ns struct {
	Nc      *nats.Conn
	Js      jetstream.JetStream
	Timeout time.Duration // core request timeout
}

type ActionType string

const (
	// api -> jetstream
	MsgActionCreated ActionType = "created"
)

// api -> signer
type ReqCreateAddress struct {
	OwnerID       string
	WalletID      uint
	Gateway       string // key generator family (eth, sol)
	CurrencyID    string
	BlockchainKey string
	Details       map[string]any // stored details of the payment address + updated_at
}

// signer -> api
type ResCreateAddress struct {
	NotReady bool // address is not generated yet, ask again later
	Address  string
	Secret   string // sealed by the signer, opaque for the api
	Details  map[string]any
}

// published to SubjJsAddressCreated
type MsgAddressCreated struct {
	PaymentAddressID uint      `json:"payment_address_id"`
	UID              string    `json:"uid"`
	CurrencyID       string    `json:"currency_id"`
	BlockchainKey    string    `json:"blockchain_key"`
	Address          string    `json:"address"`
	Remote           bool      `json:"remote"`
	CreatedAt        time.Time `json:"created_at"`
}
