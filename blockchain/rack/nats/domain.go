package nats

import (
	"paygate/blockchain/rack/config"
	"paygate/pkg/dlog"
	"paygate/pkg/keygen"
	"paygate/pkg/nats/natsdomain"
)

// key source, *keypool.Pool
type KeySource interface {
	Take(gateway string) (key *keygen.Key, ok bool, err error)
}

// secret sealing, *seal.Sealer
type Sealer interface {
	Seal(plain []byte) (string, error)
}

type App struct {
	Config *config.Config
	Ns     *natsdomain.Ns
	Keys   KeySource
	Sealer Sealer
	Dlog   dlog.Dlog
}
