package domain

import (
	"paygate/pkg/utils"
	"time"
)

// one row per provisioning key (member_id, wallet_id)
type PaymentAddresses struct {
	Model
	ID            uint           `gorm:"primaryKey" json:"id"`
	MemberID      uint           `gorm:"not null;uniqueIndex:idx_member_wallet" json:"member_id"`
	WalletID      uint           `gorm:"not null;uniqueIndex:idx_member_wallet" json:"wallet_id"`
	BlockchainKey string         `gorm:"size:32;not null" json:"blockchain_key"`
	Address       *string        `gorm:"size:128" json:"address"`
	Secret        *string        `gorm:"type:text" json:"-"`
	Details       map[string]any `gorm:"type:jsonb;serializer:json" json:"details"`
	Remote        bool           `gorm:"not null" json:"remote"`
}

// backend output
type AddressResult struct {
	Address string
	Secret  *string
	Details map[string]any
}

func (p *PaymentAddresses) HasAddress() bool {
	return p.Address != nil && *p.Address != ""
}

// stored details plus updated_at, passed to the backend so it can detect stale state
func (p *PaymentAddresses) BackendContext() map[string]any {
	ctx := utils.CopyMap(p.Details)
	ctx["updated_at"] = p.UpdatedAt.UTC().Format(time.RFC3339Nano)
	return ctx
}

// Apply sets address material from the backend. Keys the backend returns
// override stored ones, stored keys it does not mention are kept.
func (p *PaymentAddresses) Apply(res *AddressResult) {
	address := res.Address
	p.Address = &address
	p.Secret = res.Secret
	p.Details = MergeDetails(p.Details, res.Details)
}

func MergeDetails(stored, backend map[string]any) map[string]any {
	merged := utils.CopyMap(stored)
	for k, v := range backend {
		merged[k] = v
	}
	return merged
}

type ProvisionStatus string

const (
	PROVISION_CREATED   ProvisionStatus = "created"
	PROVISION_EXISTING  ProvisionStatus = "existing"
	PROVISION_NOT_READY ProvisionStatus = "not_ready"
)

// returned by provisioning, same shape for every outcome
type AddressView struct {
	ID            uint            `json:"id"`
	MemberID      uint            `json:"member_id"`
	WalletID      uint            `json:"wallet_id"`
	UID           string          `json:"uid"`
	Currency      string          `json:"currency"`
	BlockchainKey string          `json:"blockchain_key"`
	Address       *string         `json:"address"`
	Details       map[string]any  `json:"details"`
	Remote        bool            `json:"remote"`
	Status        ProvisionStatus `json:"status"`
	QRCode        string          `json:"qr_code,omitempty"` // base64 png
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewAddressView(p *PaymentAddresses, uid, currency string, status ProvisionStatus) *AddressView {
	return &AddressView{
		ID:            p.ID,
		MemberID:      p.MemberID,
		WalletID:      p.WalletID,
		UID:           uid,
		Currency:      currency,
		BlockchainKey: p.BlockchainKey,
		Address:       p.Address,
		Details:       utils.CopyMap(p.Details),
		Remote:        p.Remote,
		Status:        status,
		UpdatedAt:     p.UpdatedAt,
	}
}
