package keypool

import (
	"context"
	"errors"
	"paygate/pkg/keygen"
	"testing"
	"time"
)

func waitLen(t *testing.T, p *Pool, gateway string, n int) {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for p.Len(gateway) < n {
		select {
		case <-deadline:
			t.Fatalf("%s pool has %d keys, want %d", gateway, p.Len(gateway), n)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestPoolFillAndDrain(t *testing.T) {
	p := New([]string{keygen.GatewayEth, keygen.GatewaySol}, 3)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	waitLen(t, p, keygen.GatewayEth, 3)
	waitLen(t, p, keygen.GatewaySol, 3)

	// stop refilling so draining is observable
	cancel()
	time.Sleep(10 * time.Millisecond)

	seen := make(map[string]bool)
	for p.Len(keygen.GatewayEth) > 0 {
		key, ok, err := p.Take(keygen.GatewayEth)
		if err != nil || !ok {
			t.Fatalf("take: %v, %v", ok, err)
		}
		if seen[key.Address] {
			t.Fatalf("duplicate key %s", key.Address)
		}
		seen[key.Address] = true
	}

	key, ok, err := p.Take(keygen.GatewayEth)
	if key != nil || ok || err != nil {
		t.Fatalf("drained pool: %v, %v, %v", key, ok, err)
	}
}

func TestPoolNoPooling(t *testing.T) {
	p := New([]string{keygen.GatewaySol}, 0)
	p.Start(context.Background())

	for range 3 {
		key, ok, err := p.Take(keygen.GatewaySol)
		if err != nil || !ok || key.Address == "" {
			t.Fatalf("take: %v, %v, %v", key, ok, err)
		}
	}
}

func TestPoolUnknownGateway(t *testing.T) {
	p := New([]string{keygen.GatewayEth}, 0)

	_, _, err := p.Take(keygen.GatewaySol)
	var unsupported keygen.ErrUnsupportedGateway
	if !errors.As(err, &unsupported) {
		t.Fatalf("got %v", err)
	}
}
