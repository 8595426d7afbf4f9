package service

import (
	"context"
	"paygate/api/internal/config"
	"paygate/api/internal/domain"
	"paygate/api/internal/infra/cache"
	"paygate/api/internal/infra/nats"
	"paygate/api/internal/logger"
	"paygate/api/internal/repository"
	"paygate/pkg/seal"

	"gorm.io/gorm"
)

type Members interface {
	Exists(uid string) (bool, error)
	FindByUID(uid string) (*domain.Members, error)
}

// network configuration lookup used by provisioning
type Registry interface {
	Lookup(currencyID, blockchainKey string) (*domain.BlockchainCurrencies, error)
}

type BlockchainCurrencies interface {
	Registry
	Get(id uint) (*domain.BlockchainCurrencies, error)
	List(filter repository.BlockchainCurrenciesFilter) ([]domain.BlockchainCurrencies, int64, error)
	Create(params domain.BlockchainCurrencyParams) (*domain.BlockchainCurrencies, error)
	Update(id uint, params domain.BlockchainCurrencyParams) (*domain.BlockchainCurrencies, error)
}

type Wallets interface {
	DepositWallet(currencyID, blockchainKey string) (*domain.Wallets, error)
}

// generates address material, nil result means not ready yet
type WalletBackend interface {
	CreateAddress(ctx context.Context, ownerID string, wallet *domain.Wallets, remote bool, details map[string]any) (*domain.AddressResult, error)
}

type PaymentAddresses interface {
	Provision(ctx context.Context, req ProvisionRequest) (*domain.AddressView, error)
}

type QrCodes interface {
	// generates qr code and saves it to cache
	New(content string) (string, error)
	// returns qr code from cache or generates new one
	FindOrNew(content string) (string, error)
}

type Locker interface {
	Lock(ctx context.Context, key string) error
	Unlock(key string)
}

type OutboxEvents interface {
	StartProcessEvents(ctx context.Context)
}

type Services struct {
	OutboxEvents         OutboxEvents
	Members              Members
	BlockchainCurrencies BlockchainCurrencies
	Wallets              Wallets
	WalletBackend        WalletBackend
	PaymentAddresses     PaymentAddresses
	QrCodes              QrCodes
}

func NewServices(n *nats.NatsInfra, db *gorm.DB, l logger.Logger, config *config.Config) *Services {
	repos := repository.New()

	var sealer *seal.Sealer
	if config.SealKey != "" {
		s, err := seal.New(config.SealKey)
		if err != nil {
			panic(err)
		}
		sealer = s
	}

	members := NewMembersService(db, repos.Members)
	blockchainCurrencies := NewBlockchainCurrenciesService(db, repos.BlockchainCurrencies, repos.Currencies, repos.Blockchains, cache.InitStorage(), config.Provisioning.RegistryCacheTTL, l)
	wallets := NewWalletsService(db, repos.Wallets)
	backend := NewWalletBackendService(n, sealer, l)
	qrCodes := NewQrCodesService(cache.InitStorage(), config.Provisioning.QRCacheTTL)

	return &Services{
		OutboxEvents:         NewOutboxEventsService(db, repos.Events, n, l, config.Outbox.Interval, config.Outbox.BatchSize),
		Members:              members,
		BlockchainCurrencies: blockchainCurrencies,
		Wallets:              wallets,
		WalletBackend:        backend,
		PaymentAddresses:     NewPaymentAddressesService(db, repos.PaymentAddresses, repos.Events, members, blockchainCurrencies, wallets, backend, NewLockerService(), qrCodes, l),
		QrCodes:              qrCodes,
	}
}
