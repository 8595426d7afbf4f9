package keygen

import (
	"crypto/ecdsa"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

func NewEthKey() (*Key, error) {
	privKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	publicKeyECDSA, ok := privKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("cannot assert type: publicKey is not of type *ecdsa.PublicKey")
	}

	return &Key{
		Address:   crypto.PubkeyToAddress(*publicKeyECDSA).Hex(),
		Private:   strings.TrimPrefix(hexutil.Encode(crypto.FromECDSA(privKey)), "0x"),
		PublicKey: hexutil.Encode(crypto.CompressPubkey(publicKeyECDSA)),
	}, nil
}

// returns zero address if private key is invalid
func EthPrivateToAddress(private string) common.Address {
	privateKey, err := crypto.HexToECDSA(private)
	if err != nil {
		return common.Address{}
	}

	return crypto.PubkeyToAddress(privateKey.PublicKey)
}
