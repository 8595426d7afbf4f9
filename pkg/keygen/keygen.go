// Package keygen generates fresh receiving keys for the supported gateways.
package keygen

import (
	"fmt"
	"sort"
)

const (
	GatewayEth = "eth"
	GatewaySol = "sol"
	GatewayTon = "ton"
)

type Key struct {
	Address   string
	Private   string // hex (eth), base58 (sol) or seed phrase (ton)
	PublicKey string
}

type GenerateFunc func() (*Key, error)

var generators = map[string]GenerateFunc{
	GatewayEth: NewEthKey,
	GatewaySol: NewSolKey,
	GatewayTon: NewTonKey,
}

type ErrUnsupportedGateway struct {
	Gateway string
}

func (e ErrUnsupportedGateway) Error() string {
	return fmt.Sprintf("keygen: unsupported gateway %q", e.Gateway)
}

func Supported(gateway string) bool {
	_, ok := generators[gateway]
	return ok
}

func Gateways() []string {
	list := make([]string, 0, len(generators))
	for g := range generators {
		list = append(list, g)
	}
	sort.Strings(list)
	return list
}

func Generate(gateway string) (*Key, error) {
	gen, ok := generators[gateway]
	if !ok {
		return nil, ErrUnsupportedGateway{Gateway: gateway}
	}
	return gen()
}
