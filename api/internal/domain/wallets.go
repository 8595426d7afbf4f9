package domain

// operational wallet bound to a (currency, blockchain) pair
type Wallets struct {
	Model
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:64" json:"name"`
	CurrencyID    string `gorm:"size:10;not null;index:idx_wallet_lookup" json:"currency_id"`
	BlockchainKey string `gorm:"size:32;not null;index:idx_wallet_lookup" json:"blockchain_key"`
	Kind          string `gorm:"size:16;not null;index:idx_wallet_lookup" json:"kind"`
	Gateway       string `gorm:"size:16;not null" json:"gateway"` // key generator: eth, sol, ton
	Status        string `gorm:"size:16;not null" json:"status"`
	RemoteCapable bool   `gorm:"not null" json:"remote_capable"` // can be served by the remote signer
}

const WALLET_KIND_DEPOSIT = "deposit"

const WALLET_STATUS_ACTIVE = "active"

// explicit request value wins, otherwise the wallet decides
func (w *Wallets) ResolveRemote(requested *bool) (bool, error) {
	if requested == nil {
		return w.RemoteCapable, nil
	}
	if *requested && !w.RemoteCapable {
		return false, ErrRemoteUnsupported
	}
	return *requested, nil
}
