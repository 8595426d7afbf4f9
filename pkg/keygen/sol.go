package keygen

import "github.com/gagliardetto/solana-go"

func NewSolKey() (*Key, error) {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, err
	}

	return &Key{
		Address:   priv.PublicKey().String(),
		Private:   priv.String(),
		PublicKey: priv.PublicKey().String(),
	}, nil
}
