package service

import (
	"fmt"
	"paygate/api/internal/domain"
	"paygate/api/internal/infra/cache"
	"paygate/api/internal/infra/postgres"
	"paygate/api/internal/logger"
	"paygate/api/internal/repository"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BlockchainCurrenciesService struct {
	repo        repository.BlockchainCurrencies
	currencies  repository.Currencies
	blockchains repository.Blockchains

	cache *cache.Cache // NetworkKey -> *domain.BlockchainCurrencies
	ttl   time.Duration

	db *gorm.DB
	l  logger.Logger
}

func NewBlockchainCurrenciesService(db *gorm.DB, repo repository.BlockchainCurrencies, currencies repository.Currencies, blockchains repository.Blockchains, c *cache.Cache, ttl time.Duration, l logger.Logger) *BlockchainCurrenciesService {
	return &BlockchainCurrenciesService{repo: repo, currencies: currencies, blockchains: blockchains, cache: c, ttl: ttl, db: db, l: l}
}

// Lookup returns the config for the pair. The result is shared with the
// cache and must not be modified.
func (s *BlockchainCurrenciesService) Lookup(currencyID, blockchainKey string) (*domain.BlockchainCurrencies, error) {
	currencyID = domain.NormalizeCurrency(currencyID)
	key := domain.NetworkKey(currencyID, blockchainKey)

	if bc, ok := cache.LoadAs[*domain.BlockchainCurrencies](s.cache, key); ok {
		return bc, nil
	}

	bc, err := s.repo.Find(s.db, currencyID, blockchainKey)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrCurrencyOrNetworkUnknown
		}
		return nil, fmt.Errorf("lookup blockchain currency: %w", err)
	}

	s.cache.Set(key, bc, s.ttl)
	return bc, nil
}

func (s *BlockchainCurrenciesService) Get(id uint) (*domain.BlockchainCurrencies, error) {
	bc, err := s.repo.FindByID(s.db, id)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrNetworkConfigNotFound
		}
		return nil, err
	}
	return bc, nil
}

func (s *BlockchainCurrenciesService) List(filter repository.BlockchainCurrenciesFilter) ([]domain.BlockchainCurrencies, int64, error) {
	filter.CurrencyID = domain.NormalizeCurrency(filter.CurrencyID)
	return s.repo.List(s.db, filter)
}

func (s *BlockchainCurrenciesService) Create(params domain.BlockchainCurrencyParams) (*domain.BlockchainCurrencies, error) {
	if params.CurrencyID == nil || params.BlockchainKey == nil {
		return nil, fmt.Errorf("%w: currency_id and blockchain_key are required", domain.ErrInvalidParams)
	}

	bc := &domain.BlockchainCurrencies{
		CurrencyID:        domain.NormalizeCurrency(*params.CurrencyID),
		BlockchainKey:     *params.BlockchainKey,
		DepositEnabled:    true,
		WithdrawalEnabled: true,
		BaseFactor:        1,
		Status:            domain.STATUS_ENABLED,
	}

	if err := applyParams(bc, params); err != nil {
		return nil, err
	}

	if err := s.checkRefs(bc.CurrencyID, bc.BlockchainKey); err != nil {
		return nil, err
	}

	if _, err := s.repo.Find(s.db, bc.CurrencyID, bc.BlockchainKey); err == nil {
		return nil, domain.ErrNetworkConfigExists
	} else if !postgres.IsNotFound(err) {
		return nil, err
	}

	if err := s.repo.Create(s.db, bc); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, domain.ErrNetworkConfigExists
		}
		return nil, err
	}

	s.cache.Del(domain.NetworkKey(bc.CurrencyID, bc.BlockchainKey))
	s.l.TemplAdminInfo("blockchain currency created", bc.ID, bc.CurrencyID, bc.BlockchainKey)
	return bc, nil
}

// Update applies the given params only, the (currency, blockchain) pair is fixed.
func (s *BlockchainCurrenciesService) Update(id uint, params domain.BlockchainCurrencyParams) (*domain.BlockchainCurrencies, error) {
	bc, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if params.CurrencyID != nil && domain.NormalizeCurrency(*params.CurrencyID) != bc.CurrencyID {
		return nil, fmt.Errorf("%w: currency_id cannot be changed", domain.ErrInvalidParams)
	}
	if params.BlockchainKey != nil && *params.BlockchainKey != bc.BlockchainKey {
		return nil, fmt.Errorf("%w: blockchain_key cannot be changed", domain.ErrInvalidParams)
	}

	if err := applyParams(bc, params); err != nil {
		return nil, err
	}

	if err := s.repo.Update(s.db, bc); err != nil {
		return nil, err
	}

	s.cache.Del(domain.NetworkKey(bc.CurrencyID, bc.BlockchainKey))
	s.l.TemplAdminInfo("blockchain currency updated", bc.ID, bc.CurrencyID, bc.BlockchainKey)
	return bc, nil
}

func (s *BlockchainCurrenciesService) checkRefs(currencyID, blockchainKey string) error {
	ok, err := s.currencies.Exists(s.db, currencyID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCurrencyNotFound
	}

	ok, err = s.blockchains.Exists(s.db, blockchainKey)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrBlockchainNotFound
	}
	return nil
}

func applyParams(bc *domain.BlockchainCurrencies, p domain.BlockchainCurrencyParams) error {
	if p.BaseFactor != nil && p.Subunits != nil {
		return fmt.Errorf("%w: base_factor and subunits are mutually exclusive", domain.ErrInvalidParams)
	}

	decimals := []struct {
		name string
		src  *decimal.Decimal
		dst  *decimal.Decimal
	}{
		{"deposit_fee", p.DepositFee, &bc.DepositFee},
		{"min_deposit_amount", p.MinDepositAmount, &bc.MinDepositAmount},
		{"min_collection_amount", p.MinCollectionAmount, &bc.MinCollectionAmount},
		{"withdraw_fee", p.WithdrawFee, &bc.WithdrawFee},
		{"min_withdraw_amount", p.MinWithdrawAmount, &bc.MinWithdrawAmount},
		{"withdraw_limit_24h", p.WithdrawLimit24h, &bc.WithdrawLimit24h},
		{"withdraw_limit_72h", p.WithdrawLimit72h, &bc.WithdrawLimit72h},
	}
	for _, d := range decimals {
		if d.src == nil {
			continue
		}
		if d.src.IsNegative() {
			return fmt.Errorf("%w: %s must be >= 0", domain.ErrInvalidParams, d.name)
		}
		*d.dst = *d.src
	}

	if p.BaseFactor != nil {
		if *p.BaseFactor < 1 {
			return fmt.Errorf("%w: base_factor must be >= 1", domain.ErrInvalidParams)
		}
		bc.BaseFactor = *p.BaseFactor
	}
	if p.Subunits != nil {
		if *p.Subunits < 0 || *p.Subunits > domain.MaxSubunits {
			return fmt.Errorf("%w: subunits must be in [0, %d]", domain.ErrInvalidParams, domain.MaxSubunits)
		}
		bc.BaseFactor = domain.BaseFactorFromSubunits(*p.Subunits)
	}

	if p.Status != nil {
		if !domain.IsValidStatus(*p.Status) {
			return fmt.Errorf("%w: status must be one of %v", domain.ErrInvalidParams, domain.Statuses)
		}
		bc.Status = *p.Status
	}
	if p.DepositEnabled != nil {
		bc.DepositEnabled = *p.DepositEnabled
	}
	if p.WithdrawalEnabled != nil {
		bc.WithdrawalEnabled = *p.WithdrawalEnabled
	}
	if p.Options != nil {
		bc.Options = *p.Options
	}
	return nil
}
