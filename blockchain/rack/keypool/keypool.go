// Package keypool keeps pre-generated keys per gateway so create_address
// answers without generating on the request path.
package keypool

import (
	"context"
	"paygate/pkg/keygen"
	"time"
)

const retryWait = time.Second

type Pool struct {
	size  int
	pools map[string]chan *keygen.Key
	gen   func(gateway string) (*keygen.Key, error)
}

// New returns a pool for the given gateways. size 0 means no pooling, Take
// generates the key itself.
func New(gateways []string, size int) *Pool {
	p := &Pool{size: size, pools: make(map[string]chan *keygen.Key, len(gateways)), gen: keygen.Generate}
	for _, g := range gateways {
		p.pools[g] = make(chan *keygen.Key, size)
	}
	return p
}

// Start fills the pools until ctx is done.
func (p *Pool) Start(ctx context.Context) {
	if p.size == 0 {
		return
	}
	for gateway, pool := range p.pools {
		go p.fill(ctx, gateway, pool)
	}
}

func (p *Pool) fill(ctx context.Context, gateway string, pool chan *keygen.Key) {
	for {
		key, err := p.gen(gateway)
		if err != nil {
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryWait):
				continue
			}
		}
		if ctx.Err() != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case pool <- key:
		}
	}
}

// Take returns a fresh key. ok is false when the pool is drained, the caller
// should answer not ready.
func (p *Pool) Take(gateway string) (key *keygen.Key, ok bool, err error) {
	pool, found := p.pools[gateway]
	if !found {
		return nil, false, keygen.ErrUnsupportedGateway{Gateway: gateway}
	}

	if p.size == 0 {
		key, err := p.gen(gateway)
		if err != nil {
			return nil, false, err
		}
		return key, true, nil
	}

	select {
	case key := <-pool:
		return key, true, nil
	default:
		return nil, false, nil
	}
}

// Len is the number of ready keys for gateway.
func (p *Pool) Len(gateway string) int {
	return len(p.pools[gateway])
}
