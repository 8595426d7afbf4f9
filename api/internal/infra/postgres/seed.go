package postgres

import (
	"fmt"
	"os"
	"paygate/api/internal/domain"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reference data loaded on startup
type Seed struct {
	Blockchains          []SeedBlockchain
	Currencies           []SeedCurrency
	BlockchainCurrencies []SeedBlockchainCurrency `toml:"blockchain_currencies"`
	Wallets              []SeedWallet
	Members              []SeedMember
}

type SeedBlockchain struct {
	Key      string
	Name     string
	Protocol string
	Status   string
}

type SeedCurrency struct {
	ID        string
	Name      string
	Type      string
	Precision int
	Status    string
}

type SeedBlockchainCurrency struct {
	CurrencyID        string `toml:"currency_id"`
	BlockchainKey     string `toml:"blockchain_key"`
	DepositFee        string `toml:"deposit_fee"`
	MinDepositAmount  string `toml:"min_deposit_amount"`
	WithdrawFee       string `toml:"withdraw_fee"`
	DepositEnabled    *bool  `toml:"deposit_enabled"`
	WithdrawalEnabled *bool  `toml:"withdrawal_enabled"`
	Subunits          int
	Status            string
}

type SeedWallet struct {
	Name          string
	CurrencyID    string `toml:"currency_id"`
	BlockchainKey string `toml:"blockchain_key"`
	Kind          string
	Gateway       string
	RemoteCapable bool `toml:"remote_capable"`
}

type SeedMember struct {
	UID   string
	Email string
}

func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if _, err := toml.Decode(string(data), &seed); err != nil {
		return nil, err
	}
	return &seed, nil
}

func SeedFile(db *gorm.DB, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	seed, err := ParseSeed(data)
	if err != nil {
		return fmt.Errorf("parse seed %s: %w", path, err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		return seed.Apply(tx)
	})
}

// Apply inserts rows that do not exist yet, existing rows are left as they are.
func (s *Seed) Apply(tx *gorm.DB) error {
	doNothing := clause.OnConflict{DoNothing: true}

	for _, b := range s.Blockchains {
		row := domain.Blockchains{Key: b.Key, Name: b.Name, Protocol: b.Protocol, Status: orDefault(b.Status, domain.STATUS_ENABLED)}
		if err := tx.Clauses(doNothing).Create(&row).Error; err != nil {
			return fmt.Errorf("seed blockchain %s: %w", b.Key, err)
		}
	}

	for _, c := range s.Currencies {
		row := c.ToRow()
		if err := tx.Clauses(doNothing).Create(&row).Error; err != nil {
			return fmt.Errorf("seed currency %s: %w", c.ID, err)
		}
	}

	for _, bc := range s.BlockchainCurrencies {
		row, err := bc.ToRow()
		if err != nil {
			return fmt.Errorf("seed blockchain currency %s/%s: %w", bc.CurrencyID, bc.BlockchainKey, err)
		}
		if err := tx.Clauses(doNothing).Create(row).Error; err != nil {
			return fmt.Errorf("seed blockchain currency %s/%s: %w", bc.CurrencyID, bc.BlockchainKey, err)
		}
	}

	for _, w := range s.Wallets {
		row := w.ToRow()

		// wallets have no natural unique key, match on the seeded fields
		var count int64
		err := tx.Model(&domain.Wallets{}).
			Where("currency_id = ? AND blockchain_key = ? AND kind = ? AND name = ?", row.CurrencyID, row.BlockchainKey, row.Kind, row.Name).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("seed wallet %s: %w", w.Name, err)
		}
	}

	for _, m := range s.Members {
		row := domain.Members{UID: m.UID, Email: m.Email, State: domain.MEMBER_STATE_ACTIVE}
		if err := tx.Clauses(doNothing).Create(&row).Error; err != nil {
			return fmt.Errorf("seed member %s: %w", m.UID, err)
		}
	}

	return nil
}

func (c SeedCurrency) ToRow() domain.Currencies {
	return domain.Currencies{
		ID:        domain.NormalizeCurrency(c.ID),
		Name:      c.Name,
		Type:      orDefault(c.Type, domain.CURRENCY_TYPE_COIN),
		Precision: c.Precision,
		Status:    orDefault(c.Status, domain.STATUS_ENABLED),
	}
}

func (bc SeedBlockchainCurrency) ToRow() (*domain.BlockchainCurrencies, error) {
	if bc.Subunits < 0 || bc.Subunits > domain.MaxSubunits {
		return nil, fmt.Errorf("subunits must be in [0, %d]", domain.MaxSubunits)
	}
	if bc.Status != "" && !domain.IsValidStatus(bc.Status) {
		return nil, fmt.Errorf("invalid status %q", bc.Status)
	}

	row := &domain.BlockchainCurrencies{
		CurrencyID:        domain.NormalizeCurrency(bc.CurrencyID),
		BlockchainKey:     bc.BlockchainKey,
		DepositEnabled:    orTrue(bc.DepositEnabled),
		WithdrawalEnabled: orTrue(bc.WithdrawalEnabled),
		BaseFactor:        domain.BaseFactorFromSubunits(bc.Subunits),
		Status:            orDefault(bc.Status, domain.STATUS_ENABLED),
	}

	var err error
	if row.DepositFee, err = decimalOrZero(bc.DepositFee); err != nil {
		return nil, err
	}
	if row.MinDepositAmount, err = decimalOrZero(bc.MinDepositAmount); err != nil {
		return nil, err
	}
	if row.WithdrawFee, err = decimalOrZero(bc.WithdrawFee); err != nil {
		return nil, err
	}
	return row, nil
}

func (w SeedWallet) ToRow() domain.Wallets {
	return domain.Wallets{
		Name:          w.Name,
		CurrencyID:    domain.NormalizeCurrency(w.CurrencyID),
		BlockchainKey: w.BlockchainKey,
		Kind:          orDefault(w.Kind, domain.WALLET_KIND_DEPOSIT),
		Gateway:       w.Gateway,
		Status:        domain.WALLET_STATUS_ACTIVE,
		RemoteCapable: w.RemoteCapable,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orTrue(v *bool) bool {
	return v == nil || *v
}

func decimalOrZero(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
