package repository

import (
	"context"
	"paygate/api/internal/domain"
	"paygate/api/internal/infra/postgres"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentAddressesRepo struct {
}

func InitPaymentAddressesRepo() *PaymentAddressesRepo {
	return &PaymentAddressesRepo{}
}

// FindOrCreate returns the row for (memberID, walletID), creating it with no
// address when missing. Concurrent creators get the same row.
func (r *PaymentAddressesRepo) FindOrCreate(tx *gorm.DB, memberID, walletID uint, blockchainKey string, remote bool) (*domain.PaymentAddresses, error) {
	pa, err := r.find(tx, memberID, walletID)
	if err == nil {
		return pa, nil
	}
	if !postgres.IsNotFound(err) {
		return nil, err
	}

	row := domain.PaymentAddresses{
		MemberID:      memberID,
		WalletID:      walletID,
		BlockchainKey: blockchainKey,
		Details:       map[string]any{},
		Remote:        remote,
	}
	if err := r.insertIfAbsent(tx, &row).Error; err != nil {
		return nil, err
	}

	// lost the race: read the winner's row
	return r.find(tx, memberID, walletID)
}

// unique (member_id, wallet_id) makes the loser of a concurrent insert a no-op
func (r *PaymentAddressesRepo) insertIfAbsent(tx *gorm.DB, row *domain.PaymentAddresses) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_id"}, {Name: "wallet_id"}},
		DoNothing: true,
	}).Create(row)
}

func (r *PaymentAddressesRepo) lockRow(tx *gorm.DB, pa *domain.PaymentAddresses, id uint) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(pa, id)
}

func (r *PaymentAddressesRepo) find(tx *gorm.DB, memberID, walletID uint) (*domain.PaymentAddresses, error) {
	var pa domain.PaymentAddresses
	err := tx.Where("member_id = ? AND wallet_id = ?", memberID, walletID).First(&pa).Error
	if err != nil {
		return nil, err
	}
	return &pa, nil
}

// WithRowLock runs fn in a transaction holding SELECT ... FOR UPDATE on the row.
//
// Waiting for the lock is cancelled with ctx. Once the lock is held the
// transaction no longer depends on ctx, fn runs to completion and the
// result is committed or rolled back.
func (r *PaymentAddressesRepo) WithRowLock(ctx context.Context, db *gorm.DB, id uint, fn LockedFunc) (err error) {
	tx := db.WithContext(context.WithoutCancel(ctx)).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	var pa domain.PaymentAddresses
	if err := r.lockRow(tx.WithContext(ctx), &pa, id).Error; err != nil {
		tx.Rollback()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	if err := fn(tx, &pa); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// single update of the address material, call only inside WithRowLock
func (r *PaymentAddressesRepo) Commit(tx *gorm.DB, pa *domain.PaymentAddresses) error {
	return tx.Model(pa).Select("address", "secret", "details", "updated_at").Updates(pa).Error
}
