package repository

import (
	"context"
	"paygate/api/internal/domain"

	"gorm.io/gorm"
)

type Members interface {
	FindByUID(tx *gorm.DB, uid string) (*domain.Members, error)
	Exists(tx *gorm.DB, uid string) (bool, error)
}

type Currencies interface {
	Exists(tx *gorm.DB, currencyID string) (bool, error)
}

type Blockchains interface {
	Exists(tx *gorm.DB, key string) (bool, error)
}

type BlockchainCurrencies interface {
	Find(tx *gorm.DB, currencyID, blockchainKey string) (*domain.BlockchainCurrencies, error)
	FindByID(tx *gorm.DB, id uint) (*domain.BlockchainCurrencies, error)
	List(tx *gorm.DB, filter BlockchainCurrenciesFilter) ([]domain.BlockchainCurrencies, int64, error)
	Create(tx *gorm.DB, bc *domain.BlockchainCurrencies) error
	Update(tx *gorm.DB, bc *domain.BlockchainCurrencies) error
}

type Wallets interface {
	DepositWallet(tx *gorm.DB, currencyID, blockchainKey string) (*domain.Wallets, error)
}

// fn runs with the row locked, its tx commits when fn returns nil
type LockedFunc func(tx *gorm.DB, pa *domain.PaymentAddresses) error

type PaymentAddresses interface {
	FindOrCreate(tx *gorm.DB, memberID, walletID uint, blockchainKey string, remote bool) (*domain.PaymentAddresses, error)
	WithRowLock(ctx context.Context, db *gorm.DB, id uint, fn LockedFunc) error
	Commit(tx *gorm.DB, pa *domain.PaymentAddresses) error
}

type Events interface {
	Create(tx *gorm.DB, eventType string, eventRelationID uint, payload string) error
	Done(tx *gorm.DB, eventID uint) error
	FindNew(tx *gorm.DB, limit int) ([]domain.Events, error)
}

type Repositories struct {
	Members              Members
	Currencies           Currencies
	Blockchains          Blockchains
	BlockchainCurrencies BlockchainCurrencies
	Wallets              Wallets
	PaymentAddresses     PaymentAddresses
	Events               Events
}

func New() *Repositories {
	return &Repositories{
		Members:              InitMembersRepo(),
		Currencies:           InitCurrenciesRepo(),
		Blockchains:          InitBlockchainsRepo(),
		BlockchainCurrencies: InitBlockchainCurrenciesRepo(),
		Wallets:              InitWalletsRepo(),
		PaymentAddresses:     InitPaymentAddressesRepo(),
		Events:               InitEventsRepo(),
	}
}
