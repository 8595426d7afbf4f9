package repository

import (
	"context"
	"errors"
	"paygate/api/internal/domain"
	"paygate/api/internal/infra/postgres"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := postgres.InitTest()
	if err != nil {
		t.Fatal(err)
	}
	if db == nil {
		t.Skip(postgres.TestDSNEnv + " is not set")
	}
	return db
}

func TestFindOrCreateConcurrent(t *testing.T) {
	db := testDB(t)
	r := InitPaymentAddressesRepo()

	memberID := uint(gofakeit.IntRange(1_000_000, 9_000_000))
	walletID := uint(gofakeit.IntRange(1, 1000))

	const N = 20
	ids := make([]uint, N)

	var wg sync.WaitGroup
	wg.Add(N)
	for i := range N {
		go func() {
			defer wg.Done()
			pa, err := r.FindOrCreate(db, memberID, walletID, "erc20", false)
			if err != nil {
				t.Error(err)
				return
			}
			ids[i] = pa.ID
		}()
	}
	wg.Wait()

	for _, id := range ids {
		if id == 0 || id != ids[0] {
			t.Fatalf("different rows for one key: %v", ids)
		}
	}

	var count int64
	db.Model(&domain.PaymentAddresses{}).Where("member_id = ? AND wallet_id = ?", memberID, walletID).Count(&count)
	if count != 1 {
		t.Fatalf("rows = %d", count)
	}
}

func TestWithRowLockCommit(t *testing.T) {
	db := testDB(t)
	r := InitPaymentAddressesRepo()

	pa, err := r.FindOrCreate(db, uint(gofakeit.IntRange(1_000_000, 9_000_000)), 1, "erc20", false)
	if err != nil {
		t.Fatal(err)
	}

	err = r.WithRowLock(context.Background(), db, pa.ID, func(tx *gorm.DB, locked *domain.PaymentAddresses) error {
		locked.Apply(&domain.AddressResult{Address: "0xABC", Details: map[string]any{"b": 2}})
		return r.Commit(tx, locked)
	})
	if err != nil {
		t.Fatal(err)
	}

	// rolled back
	boom := errors.New("boom")
	err = r.WithRowLock(context.Background(), db, pa.ID, func(tx *gorm.DB, locked *domain.PaymentAddresses) error {
		other := "0xDEF"
		locked.Address = &other
		if err := r.Commit(tx, locked); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var stored domain.PaymentAddresses
	if err := db.First(&stored, pa.ID).Error; err != nil {
		t.Fatal(err)
	}
	if !stored.HasAddress() || *stored.Address != "0xABC" || stored.Details["b"] != float64(2) {
		t.Fatalf("stored row: %+v", stored)
	}
}

func TestWithRowLockCancelWhileWaiting(t *testing.T) {
	db := testDB(t)
	r := InitPaymentAddressesRepo()

	pa, err := r.FindOrCreate(db, uint(gofakeit.IntRange(1_000_000, 9_000_000)), 2, "erc20", false)
	if err != nil {
		t.Fatal(err)
	}

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- r.WithRowLock(context.Background(), db, pa.ID, func(tx *gorm.DB, _ *domain.PaymentAddresses) error {
			close(locked)
			<-release
			return nil
		})
	}()
	<-locked

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	called := false
	err = r.WithRowLock(ctx, db, pa.ID, func(tx *gorm.DB, _ *domain.PaymentAddresses) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("waiter entered critical section: err=%v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestEvents(t *testing.T) {
	db := testDB(t)
	r := InitEventsRepo()

	relation := uint(gofakeit.IntRange(1_000_000, 9_000_000))

	if err := r.Create(db, domain.EVENT_PAYMENT_ADDRESS_CREATED, relation, "{}"); err != nil {
		t.Fatal(err)
	}
	if err := r.Create(db, domain.EVENT_PAYMENT_ADDRESS_CREATED, relation, "{}"); err != nil {
		t.Fatal(err)
	}
	if err := r.Create(db, domain.EVENT_PAYMENT_ADDRESS_CREATED, relation, "not json"); err == nil {
		t.Fatal("invalid payload accepted")
	}

	events, err := r.FindNew(db, 1000)
	if err != nil {
		t.Fatal(err)
	}

	var found *domain.Events
	for i := range events {
		if events[i].RelationID == relation {
			if found != nil {
				t.Fatal("duplicate event")
			}
			found = &events[i]
		}
	}
	if found == nil {
		t.Fatal("event not found")
	}

	if err := r.Done(db, found.ID); err != nil {
		t.Fatal(err)
	}
}
