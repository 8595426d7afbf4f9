package domain

import "strings"

type Currencies struct {
	Model
	ID        string `gorm:"primaryKey;size:10" json:"id"` // lowercase code: eth, usdt
	Name      string `gorm:"size:255" json:"name"`
	Type      string `gorm:"size:8;not null" json:"type"`
	Precision int    `gorm:"not null" json:"precision"`
	Status    string `gorm:"size:16;not null" json:"status"`
}

const CURRENCY_TYPE_COIN = "coin"

// shared by currencies and blockchain currencies
const (
	STATUS_ENABLED  = "enabled"
	STATUS_DISABLED = "disabled"
	STATUS_HIDDEN   = "hidden"
)

var Statuses = [...]string{STATUS_ENABLED, STATUS_DISABLED, STATUS_HIDDEN}

func IsValidStatus(s string) bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// currency codes are case insensitive
func NormalizeCurrency(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

type Blockchains struct {
	Model
	ID       uint   `gorm:"primaryKey" json:"id"`
	Key      string `gorm:"size:32;uniqueIndex;not null" json:"key"` // erc20, sol-mainnet
	Name     string `gorm:"size:255" json:"name"`
	Protocol string `gorm:"size:32" json:"protocol"`
	Status   string `gorm:"size:16;not null" json:"status"`
}
