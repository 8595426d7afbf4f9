package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

const MaxSubunits = 18

// per (currency, blockchain) parameters, one row per pair
type BlockchainCurrencies struct {
	Model
	ID                  uint            `gorm:"primaryKey" json:"id"`
	CurrencyID          string          `gorm:"size:10;not null;uniqueIndex:idx_currency_blockchain" json:"currency_id"`
	BlockchainKey       string          `gorm:"size:32;not null;uniqueIndex:idx_currency_blockchain" json:"blockchain_key"`
	DepositFee          decimal.Decimal `gorm:"type:numeric(36,18);not null" json:"deposit_fee"`
	MinDepositAmount    decimal.Decimal `gorm:"type:numeric(36,18);not null" json:"min_deposit_amount"`
	MinCollectionAmount decimal.Decimal `gorm:"type:numeric(36,18);not null" json:"min_collection_amount"`
	WithdrawFee         decimal.Decimal `gorm:"type:numeric(36,18);not null" json:"withdraw_fee"`
	MinWithdrawAmount   decimal.Decimal `gorm:"type:numeric(36,18);not null" json:"min_withdraw_amount"`
	WithdrawLimit24h    decimal.Decimal `gorm:"column:withdraw_limit_24h;type:numeric(36,18);not null" json:"withdraw_limit_24h"`
	WithdrawLimit72h    decimal.Decimal `gorm:"column:withdraw_limit_72h;type:numeric(36,18);not null" json:"withdraw_limit_72h"`
	DepositEnabled      bool            `gorm:"not null" json:"deposit_enabled"`
	WithdrawalEnabled   bool            `gorm:"not null" json:"withdrawal_enabled"`
	BaseFactor          int64           `gorm:"not null" json:"base_factor"`
	Status              string          `gorm:"size:16;not null" json:"status"`
	Options             NetworkOptions  `gorm:"type:jsonb;serializer:json" json:"options"`
}

// named backend parameters plus an open map for anything chain specific
type NetworkOptions struct {
	GasLimit             *uint64        `json:"gas_limit,omitempty"`
	GasPrice             *uint64        `json:"gas_price,omitempty"`
	Erc20ContractAddress string         `json:"erc20_contract_address,omitempty"`
	Extra                map[string]any `json:"extra,omitempty"`
}

func (b *BlockchainCurrencies) CanDeposit() bool {
	return b.DepositEnabled && b.Status != STATUS_DISABLED
}

// log10 of base factor, rounded
func (b *BlockchainCurrencies) Subunits() int {
	if b.BaseFactor <= 0 {
		return 0
	}
	return int(math.Round(math.Log10(float64(b.BaseFactor))))
}

// base factor for subunits in [0, MaxSubunits]
func BaseFactorFromSubunits(subunits int) int64 {
	return decimal.New(1, int32(subunits)).IntPart()
}

func NetworkKey(currencyID, blockchainKey string) string {
	return NormalizeCurrency(currencyID) + ":" + blockchainKey
}

// admin create/update input, nil means not given
type BlockchainCurrencyParams struct {
	CurrencyID          *string
	BlockchainKey       *string
	DepositFee          *decimal.Decimal
	MinDepositAmount    *decimal.Decimal
	MinCollectionAmount *decimal.Decimal
	WithdrawFee         *decimal.Decimal
	MinWithdrawAmount   *decimal.Decimal
	WithdrawLimit24h    *decimal.Decimal
	WithdrawLimit72h    *decimal.Decimal
	DepositEnabled      *bool
	WithdrawalEnabled   *bool
	BaseFactor          *int64
	Subunits            *int
	Status              *string
	Options             *NetworkOptions
}
