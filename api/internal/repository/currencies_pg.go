package repository

import (
	"paygate/api/internal/domain"

	"gorm.io/gorm"
)

type CurrenciesRepo struct {
}

func InitCurrenciesRepo() *CurrenciesRepo {
	return &CurrenciesRepo{}
}

func (r *CurrenciesRepo) Exists(tx *gorm.DB, currencyID string) (bool, error) {
	var count int64
	err := tx.Model(&domain.Currencies{}).Where("id = ?", currencyID).Count(&count).Error
	return count > 0, err
}

type BlockchainsRepo struct {
}

func InitBlockchainsRepo() *BlockchainsRepo {
	return &BlockchainsRepo{}
}

func (r *BlockchainsRepo) Exists(tx *gorm.DB, key string) (bool, error) {
	var count int64
	err := tx.Model(&domain.Blockchains{}).Where("key = ?", key).Count(&count).Error
	return count > 0, err
}
