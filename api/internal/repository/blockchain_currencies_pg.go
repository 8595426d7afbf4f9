package repository

import (
	"paygate/api/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlockchainCurrenciesFilter struct {
	CurrencyID        string
	BlockchainKey     string
	DepositEnabled    *bool
	WithdrawalEnabled *bool
	Status            string

	OrderBy  string // column, checked against OrderColumns
	Ordering string // asc/desc
	Page     int    // from 1
	Limit    int
}

var OrderColumns = map[string]bool{
	"id":             true,
	"currency_id":    true,
	"blockchain_key": true,
	"created_at":     true,
	"updated_at":     true,
}

type BlockchainCurrenciesRepo struct {
}

func InitBlockchainCurrenciesRepo() *BlockchainCurrenciesRepo {
	return &BlockchainCurrenciesRepo{}
}

func (r *BlockchainCurrenciesRepo) Find(tx *gorm.DB, currencyID, blockchainKey string) (*domain.BlockchainCurrencies, error) {
	var bc domain.BlockchainCurrencies
	return &bc, tx.Where(&domain.BlockchainCurrencies{CurrencyID: currencyID, BlockchainKey: blockchainKey}).First(&bc).Error
}

func (r *BlockchainCurrenciesRepo) FindByID(tx *gorm.DB, id uint) (*domain.BlockchainCurrencies, error) {
	var bc domain.BlockchainCurrencies
	return &bc, tx.First(&bc, id).Error
}

func (r *BlockchainCurrenciesRepo) List(tx *gorm.DB, filter BlockchainCurrenciesFilter) ([]domain.BlockchainCurrencies, int64, error) {
	q := tx.Model(&domain.BlockchainCurrencies{})

	if filter.CurrencyID != "" {
		q = q.Where("currency_id = ?", filter.CurrencyID)
	}
	if filter.BlockchainKey != "" {
		q = q.Where("blockchain_key = ?", filter.BlockchainKey)
	}
	if filter.DepositEnabled != nil {
		q = q.Where("deposit_enabled = ?", *filter.DepositEnabled)
	}
	if filter.WithdrawalEnabled != nil {
		q = q.Where("withdrawal_enabled = ?", *filter.WithdrawalEnabled)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := filter.OrderBy
	if !OrderColumns[orderBy] {
		orderBy = "id"
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 100
	}

	var list []domain.BlockchainCurrencies
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: orderBy}, Desc: filter.Ordering == "desc"}).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).Error
	return list, total, err
}

func (r *BlockchainCurrenciesRepo) Create(tx *gorm.DB, bc *domain.BlockchainCurrencies) error {
	return tx.Create(bc).Error
}

func (r *BlockchainCurrenciesRepo) Update(tx *gorm.DB, bc *domain.BlockchainCurrencies) error {
	return tx.Save(bc).Error
}
