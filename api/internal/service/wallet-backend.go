package service

import (
	"context"
	"errors"
	"fmt"
	"paygate/api/internal/domain"
	"paygate/api/internal/logger"
	"paygate/pkg/keygen"
	"paygate/pkg/nats/natsdomain"
	"paygate/pkg/seal"
)

var errNoRemoteSigner = errors.New("remote signer is not configured")

// *nats.NatsInfra
type RemoteSigner interface {
	ReqCreateAddress(ctx context.Context, req natsdomain.ReqCreateAddress) (*natsdomain.ResCreateAddress, error)
}

// WalletBackendService generates addresses on the remote signer over nats,
// or in process for wallets that are not remote.
type WalletBackendService struct {
	remote RemoteSigner
	sealer *seal.Sealer // nil: local secrets are stored as generated
	l      logger.Logger
}

func NewWalletBackendService(remote RemoteSigner, sealer *seal.Sealer, l logger.Logger) *WalletBackendService {
	return &WalletBackendService{remote: remote, sealer: sealer, l: l}
}

func (s *WalletBackendService) CreateAddress(ctx context.Context, ownerID string, wallet *domain.Wallets, remote bool, details map[string]any) (*domain.AddressResult, error) {
	if remote {
		return s.createRemote(ctx, ownerID, wallet, details)
	}
	return s.createLocal(wallet)
}

func (s *WalletBackendService) createRemote(ctx context.Context, ownerID string, wallet *domain.Wallets, details map[string]any) (*domain.AddressResult, error) {
	if s.remote == nil {
		return nil, errNoRemoteSigner
	}

	res, err := s.remote.ReqCreateAddress(ctx, natsdomain.ReqCreateAddress{
		OwnerID:       ownerID,
		WalletID:      wallet.ID,
		Gateway:       wallet.Gateway,
		CurrencyID:    wallet.CurrencyID,
		BlockchainKey: wallet.BlockchainKey,
		Details:       details,
	})
	if err != nil {
		return nil, err
	}

	if res.NotReady {
		return nil, nil
	}

	result := &domain.AddressResult{Address: res.Address, Details: res.Details}
	if res.Secret != "" {
		secret := res.Secret
		result.Secret = &secret
	}
	return result, nil
}

func (s *WalletBackendService) createLocal(wallet *domain.Wallets) (*domain.AddressResult, error) {
	key, err := keygen.Generate(wallet.Gateway)
	if err != nil {
		return nil, err
	}

	secret := key.Private
	if s.sealer != nil {
		sealed, err := s.sealer.Seal([]byte(key.Private))
		if err != nil {
			return nil, fmt.Errorf("seal secret: %w", err)
		}
		secret = sealed
	}

	return &domain.AddressResult{
		Address: key.Address,
		Secret:  &secret,
		Details: map[string]any{
			"gateway":    wallet.Gateway,
			"public_key": key.PublicKey,
			"sealed":     s.sealer != nil,
		},
	}, nil
}
