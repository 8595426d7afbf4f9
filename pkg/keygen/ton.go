package keygen

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/xssnick/tonutils-go/ton/wallet"
)

// TON_WALLET_VERSION is the wallet contract every generated address is derived for.
var TON_WALLET_VERSION = wallet.V4R2

// Address derivation is offline, no lite-client is needed.
func NewTonKey() (*Key, error) {
	seed := wallet.NewSeed()

	w, err := wallet.FromSeed(nil, seed, TON_WALLET_VERSION)
	if err != nil {
		return nil, err
	}

	pub, ok := w.PrivateKey().Public().(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("cannot assert type: publicKey is not of type ed25519.PublicKey")
	}

	return &Key{
		Address:   w.WalletAddress().String(),
		Private:   strings.Join(seed, " "),
		PublicKey: hex.EncodeToString(pub),
	}, nil
}

// TonSeedToAddress returns "" if the seed phrase is rejected.
func TonSeedToAddress(seed string) string {
	w, err := wallet.FromSeed(nil, strings.Fields(seed), TON_WALLET_VERSION)
	if err != nil {
		return ""
	}
	return w.WalletAddress().String()
}
