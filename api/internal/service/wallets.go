package service

import (
	"fmt"
	"paygate/api/internal/domain"
	"paygate/api/internal/infra/postgres"
	"paygate/api/internal/repository"

	"gorm.io/gorm"
)

type WalletsService struct {
	repo repository.Wallets
	db   *gorm.DB
}

func NewWalletsService(db *gorm.DB, repo repository.Wallets) *WalletsService {
	return &WalletsService{repo: repo, db: db}
}

func (s *WalletsService) DepositWallet(currencyID, blockchainKey string) (*domain.Wallets, error) {
	wallet, err := s.repo.DepositWallet(s.db, domain.NormalizeCurrency(currencyID), blockchainKey)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("find deposit wallet: %w", err)
	}
	return wallet, nil
}
