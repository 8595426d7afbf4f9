package service

import (
	"context"
	"errors"
	"paygate/api/internal/domain"
	"paygate/api/internal/logger"
	"paygate/api/internal/repository"
	"paygate/pkg/utils"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/gorm"
)

// fakeStore keeps payment addresses and events in memory. Each WithRowLock
// call gets its own *gorm.DB used only as a transaction handle, writes made
// through it are applied when fn returns nil.
type fakeStore struct {
	mu       sync.Mutex
	rows     map[uint]*domain.PaymentAddresses
	byKey    map[[2]uint]uint
	nextID   uint
	rowLocks map[uint]chan struct{}
	events   []domain.Events
	staged   map[*gorm.DB]*stagedTx

	failCommit error
}

type stagedTx struct {
	row    *domain.PaymentAddresses
	events []domain.Events
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:     make(map[uint]*domain.PaymentAddresses),
		byKey:    make(map[[2]uint]uint),
		rowLocks: make(map[uint]chan struct{}),
		staged:   make(map[*gorm.DB]*stagedTx),
	}
}

func copyRow(p *domain.PaymentAddresses) *domain.PaymentAddresses {
	cp := *p
	cp.Details = utils.CopyMap(p.Details)
	if p.Address != nil {
		a := *p.Address
		cp.Address = &a
	}
	if p.Secret != nil {
		s := *p.Secret
		cp.Secret = &s
	}
	return &cp
}

func (f *fakeStore) FindOrCreate(tx *gorm.DB, memberID, walletID uint, blockchainKey string, remote bool) (*domain.PaymentAddresses, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if id, ok := f.byKey[[2]uint{memberID, walletID}]; ok {
		return copyRow(f.rows[id]), nil
	}

	f.nextID++
	row := &domain.PaymentAddresses{
		ID:            f.nextID,
		MemberID:      memberID,
		WalletID:      walletID,
		BlockchainKey: blockchainKey,
		Details:       map[string]any{},
		Remote:        remote,
	}
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt

	f.rows[row.ID] = row
	f.byKey[[2]uint{memberID, walletID}] = row.ID
	return copyRow(row), nil
}

func (f *fakeStore) rowLock(id uint) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()

	l, ok := f.rowLocks[id]
	if !ok {
		l = make(chan struct{}, 1)
		f.rowLocks[id] = l
	}
	return l
}

// holds the row lock like another instance would
func (f *fakeStore) holdRowLock(id uint) (release func()) {
	l := f.rowLock(id)
	l <- struct{}{}
	return func() { <-l }
}

func (f *fakeStore) WithRowLock(ctx context.Context, db *gorm.DB, id uint, fn repository.LockedFunc) error {
	l := f.rowLock(id)
	select {
	case l <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l }()

	f.mu.Lock()
	row, ok := f.rows[id]
	if !ok {
		f.mu.Unlock()
		return gorm.ErrRecordNotFound
	}
	locked := copyRow(row)
	tx := &gorm.DB{}
	f.staged[tx] = &stagedTx{}
	f.mu.Unlock()

	err := fn(tx, locked)

	f.mu.Lock()
	defer f.mu.Unlock()

	st := f.staged[tx]
	delete(f.staged, tx)
	if err != nil {
		return err
	}
	if st.row != nil {
		f.rows[id] = st.row
	}
	for _, e := range st.events {
		e.ID = uint(len(f.events) + 1)
		f.events = append(f.events, e)
	}
	return nil
}

func (f *fakeStore) Commit(tx *gorm.DB, pa *domain.PaymentAddresses) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCommit != nil {
		return f.failCommit
	}

	st, ok := f.staged[tx]
	if !ok {
		return errors.New("commit outside of row lock")
	}
	row := copyRow(pa)
	row.UpdatedAt = time.Now()
	st.row = row
	return nil
}

func (f *fakeStore) Create(tx *gorm.DB, eventType string, eventRelationID uint, payload string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	event := domain.Events{Type: eventType, RelationID: eventRelationID, Payload: payload, Status: domain.EVENT_STATUS_NEW, CreatedAt: time.Now()}
	if st, ok := f.staged[tx]; ok {
		st.events = append(st.events, event)
		return nil
	}
	event.ID = uint(len(f.events) + 1)
	f.events = append(f.events, event)
	return nil
}

func (f *fakeStore) Done(tx *gorm.DB, eventID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.events {
		if f.events[i].ID == eventID {
			f.events[i].Status = domain.EVENT_STATUS_DONE
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeStore) FindNew(tx *gorm.DB, limit int) ([]domain.Events, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var events []domain.Events
	for _, e := range f.events {
		if e.Status == domain.EVENT_STATUS_NEW && len(events) < limit {
			events = append(events, e)
		}
	}
	return events, nil
}

func (f *fakeStore) rowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *fakeStore) row(memberID, walletID uint) *domain.PaymentAddresses {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.byKey[[2]uint{memberID, walletID}]
	if !ok {
		return nil
	}
	return copyRow(f.rows[id])
}

func (f *fakeStore) eventCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type backendCall struct {
	ownerID string
	remote  bool
	details map[string]any
}

// fakeBackend counts calls, respond decides the outcome of the n-th call (from 1)
type fakeBackend struct {
	calls   atomic.Int32
	delay   time.Duration
	respond func(n int32, call backendCall) (*domain.AddressResult, error)

	mu      sync.Mutex
	history []backendCall

	// per owner: closed when the call started, call waits for gate to close
	started map[string]chan struct{}
	gates   map[string]chan struct{}
}

func (b *fakeBackend) CreateAddress(ctx context.Context, ownerID string, wallet *domain.Wallets, remote bool, details map[string]any) (*domain.AddressResult, error) {
	n := b.calls.Add(1)
	call := backendCall{ownerID: ownerID, remote: remote, details: utils.CopyMap(details)}

	b.mu.Lock()
	b.history = append(b.history, call)
	started, gate := b.started[ownerID], b.gates[ownerID]
	b.mu.Unlock()

	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}
	if b.delay > 0 {
		time.Sleep(b.delay)
	}

	if b.respond == nil {
		return &domain.AddressResult{Address: "0xABC", Details: map[string]any{}}, nil
	}
	return b.respond(n, call)
}

func (b *fakeBackend) lastCall() backendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history[len(b.history)-1]
}

type fakeMembers map[string]*domain.Members

func (m fakeMembers) Exists(uid string) (bool, error) {
	_, ok := m[uid]
	return ok, nil
}

func (m fakeMembers) FindByUID(uid string) (*domain.Members, error) {
	member, ok := m[uid]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	return member, nil
}

type fakeRegistry map[string]*domain.BlockchainCurrencies

func (r fakeRegistry) add(bc *domain.BlockchainCurrencies) {
	r[domain.NetworkKey(bc.CurrencyID, bc.BlockchainKey)] = bc
}

func (r fakeRegistry) Lookup(currencyID, blockchainKey string) (*domain.BlockchainCurrencies, error) {
	bc, ok := r[domain.NetworkKey(currencyID, blockchainKey)]
	if !ok {
		return nil, domain.ErrCurrencyOrNetworkUnknown
	}
	return bc, nil
}

type fakeWallets map[string]*domain.Wallets

func (w fakeWallets) add(wallet *domain.Wallets) {
	w[domain.NetworkKey(wallet.CurrencyID, wallet.BlockchainKey)] = wallet
}

func (w fakeWallets) DepositWallet(currencyID, blockchainKey string) (*domain.Wallets, error) {
	wallet, ok := w[domain.NetworkKey(currencyID, blockchainKey)]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return wallet, nil
}

type fakeQrCodes struct{}

func (fakeQrCodes) New(content string) (string, error) { return "qr:" + content, nil }
func (fakeQrCodes) FindOrNew(content string) (string, error) { return "qr:" + content, nil }

type testEnv struct {
	svc      *PaymentAddressesService
	store    *fakeStore
	backend  *fakeBackend
	locker   *LockerService
	members  fakeMembers
	registry fakeRegistry
	wallets  fakeWallets
}

// u1, u2 members, eth/erc20 enabled with a local wallet, usdt/erc20 disabled,
// btc/bitcoin without wallet, sol/solana with a remote capable wallet
func newTestEnv() *testEnv {
	env := &testEnv{
		store:   newFakeStore(),
		backend: &fakeBackend{started: map[string]chan struct{}{}, gates: map[string]chan struct{}{}},
		locker:  NewLockerService(),
		members: fakeMembers{
			"u1": {ID: 1, UID: "u1", State: domain.MEMBER_STATE_ACTIVE},
			"u2": {ID: 2, UID: "u2", State: domain.MEMBER_STATE_ACTIVE},
		},
		registry: fakeRegistry{},
		wallets:  fakeWallets{},
	}

	env.registry.add(&domain.BlockchainCurrencies{ID: 1, CurrencyID: "eth", BlockchainKey: "erc20", DepositEnabled: true, Status: domain.STATUS_ENABLED})
	env.registry.add(&domain.BlockchainCurrencies{ID: 2, CurrencyID: "usdt", BlockchainKey: "erc20", DepositEnabled: false, Status: domain.STATUS_ENABLED})
	env.registry.add(&domain.BlockchainCurrencies{ID: 3, CurrencyID: "btc", BlockchainKey: "bitcoin", DepositEnabled: true, Status: domain.STATUS_ENABLED})
	env.registry.add(&domain.BlockchainCurrencies{ID: 4, CurrencyID: "sol", BlockchainKey: "solana", DepositEnabled: true, Status: domain.STATUS_ENABLED})
	env.registry.add(&domain.BlockchainCurrencies{ID: 5, CurrencyID: "trx", BlockchainKey: "tron", DepositEnabled: true, Status: domain.STATUS_DISABLED})

	env.wallets.add(&domain.Wallets{ID: 10, CurrencyID: "eth", BlockchainKey: "erc20", Kind: domain.WALLET_KIND_DEPOSIT, Gateway: "eth", Status: domain.WALLET_STATUS_ACTIVE})
	env.wallets.add(&domain.Wallets{ID: 11, CurrencyID: "usdt", BlockchainKey: "erc20", Kind: domain.WALLET_KIND_DEPOSIT, Gateway: "eth", Status: domain.WALLET_STATUS_ACTIVE})
	env.wallets.add(&domain.Wallets{ID: 12, CurrencyID: "sol", BlockchainKey: "solana", Kind: domain.WALLET_KIND_DEPOSIT, Gateway: "sol", Status: domain.WALLET_STATUS_ACTIVE, RemoteCapable: true})
	env.wallets.add(&domain.Wallets{ID: 13, CurrencyID: "trx", BlockchainKey: "tron", Kind: domain.WALLET_KIND_DEPOSIT, Gateway: "eth", Status: domain.WALLET_STATUS_ACTIVE})

	env.svc = NewPaymentAddressesService(nil, env.store, env.store, env.members, env.registry, env.wallets, env.backend, env.locker, fakeQrCodes{}, logger.Logger{})
	return env
}

// fake repositories for the registry / admin service

type fakeBlockchainCurrenciesRepo struct {
	mu     sync.Mutex
	rows   map[uint]*domain.BlockchainCurrencies
	nextID uint
	finds  int
}

func newFakeBlockchainCurrenciesRepo() *fakeBlockchainCurrenciesRepo {
	return &fakeBlockchainCurrenciesRepo{rows: make(map[uint]*domain.BlockchainCurrencies)}
}

func (r *fakeBlockchainCurrenciesRepo) Find(tx *gorm.DB, currencyID, blockchainKey string) (*domain.BlockchainCurrencies, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finds++
	for _, bc := range r.rows {
		if bc.CurrencyID == currencyID && bc.BlockchainKey == blockchainKey {
			cp := *bc
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBlockchainCurrenciesRepo) FindByID(tx *gorm.DB, id uint) (*domain.BlockchainCurrencies, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bc, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *bc
	return &cp, nil
}

func (r *fakeBlockchainCurrenciesRepo) List(tx *gorm.DB, filter repository.BlockchainCurrenciesFilter) ([]domain.BlockchainCurrencies, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []domain.BlockchainCurrencies
	for id := uint(1); id <= r.nextID; id++ {
		bc, ok := r.rows[id]
		if !ok {
			continue
		}
		if filter.CurrencyID != "" && bc.CurrencyID != filter.CurrencyID {
			continue
		}
		if filter.DepositEnabled != nil && bc.DepositEnabled != *filter.DepositEnabled {
			continue
		}
		list = append(list, *bc)
	}
	return list, int64(len(list)), nil
}

func (r *fakeBlockchainCurrenciesRepo) Create(tx *gorm.DB, bc *domain.BlockchainCurrencies) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	bc.ID = r.nextID
	cp := *bc
	r.rows[bc.ID] = &cp
	return nil
}

func (r *fakeBlockchainCurrenciesRepo) Update(tx *gorm.DB, bc *domain.BlockchainCurrencies) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[bc.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *bc
	r.rows[bc.ID] = &cp
	return nil
}

type fakeExists map[string]bool

func (f fakeExists) Exists(tx *gorm.DB, key string) (bool, error) {
	return f[key], nil
}
