package repository

import (
	"paygate/api/internal/domain"

	"gorm.io/gorm"
)

type WalletsRepo struct {
}

func InitWalletsRepo() *WalletsRepo {
	return &WalletsRepo{}
}

// active deposit wallet for the pair, lowest id wins
func (r *WalletsRepo) DepositWallet(tx *gorm.DB, currencyID, blockchainKey string) (*domain.Wallets, error) {
	var wallet domain.Wallets
	return &wallet, tx.Where(&domain.Wallets{
		CurrencyID:    currencyID,
		BlockchainKey: blockchainKey,
		Kind:          domain.WALLET_KIND_DEPOSIT,
		Status:        domain.WALLET_STATUS_ACTIVE,
	}).Order("id").First(&wallet).Error
}
