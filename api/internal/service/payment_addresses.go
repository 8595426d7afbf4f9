package service

import (
	"context"
	"errors"
	"fmt"
	"paygate/api/internal/domain"
	"paygate/api/internal/logger"
	"paygate/api/internal/repository"
	"paygate/pkg/nats/natsdomain"
	"paygate/pkg/utils"
	"time"

	"gorm.io/gorm"
)

type ProvisionRequest struct {
	UID           string
	CurrencyID    string
	BlockchainKey string
	Remote        *bool // nil: wallet default
}

// returned from the critical section, already logged
var errBackend = errors.New("backend failed")

type PaymentAddressesService struct {
	repo   repository.PaymentAddresses
	events repository.Events

	members  Members
	registry Registry
	wallets  Wallets
	backend  WalletBackend
	locker   Locker
	qrCodes  QrCodes

	db *gorm.DB
	l  logger.Logger
}

func NewPaymentAddressesService(db *gorm.DB, repo repository.PaymentAddresses, events repository.Events, members Members, registry Registry, wallets Wallets, backend WalletBackend, locker Locker, qrCodes QrCodes, l logger.Logger) *PaymentAddressesService {
	return &PaymentAddressesService{repo: repo, events: events, members: members, registry: registry, wallets: wallets, backend: backend, locker: locker, qrCodes: qrCodes, db: db, l: l}
}

func lockKey(paymentAddressID uint) string {
	return fmt.Sprintf("payment_address:%d", paymentAddressID)
}

// Provision returns the deposit address of the member for the pair,
// generating it on first use. Concurrent calls for one (member, wallet)
// make at most one backend call between them.
func (s *PaymentAddressesService) Provision(ctx context.Context, req ProvisionRequest) (*domain.AddressView, error) {
	currency := domain.NormalizeCurrency(req.CurrencyID)

	member, err := s.members.FindByUID(req.UID)
	if err != nil {
		return nil, s.resolveErr("find member", req, err)
	}

	bc, err := s.registry.Lookup(currency, req.BlockchainKey)
	if err != nil {
		return nil, s.resolveErr("lookup network", req, err)
	}
	if !bc.CanDeposit() {
		return nil, domain.ErrDepositDisabled
	}

	wallet, err := s.wallets.DepositWallet(currency, req.BlockchainKey)
	if err != nil {
		return nil, s.resolveErr("find deposit wallet", req, err)
	}

	remote, err := wallet.ResolveRemote(req.Remote)
	if err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, domain.ErrRequestCancelled
	}

	pa, err := s.repo.FindOrCreate(s.session(ctx), member.ID, wallet.ID, req.BlockchainKey, remote)
	if err != nil {
		if ctx.Err() != nil {
			return nil, domain.ErrRequestCancelled
		}
		return nil, s.resolveErr("find or create payment address", req, err)
	}

	key := lockKey(pa.ID)
	if err := s.locker.Lock(ctx, key); err != nil {
		return nil, domain.ErrRequestCancelled
	}
	defer s.locker.Unlock(key)

	var (
		entered bool
		status  domain.ProvisionStatus
		current *domain.PaymentAddresses
	)

	err = s.repo.WithRowLock(ctx, s.db, pa.ID, func(tx *gorm.DB, locked *domain.PaymentAddresses) error {
		entered = true
		current = locked

		if locked.HasAddress() {
			status = domain.PROVISION_EXISTING
			return nil
		}

		// the row lock is held until the backend answers, caller cancellation does not abort it
		res, err := s.backend.CreateAddress(context.WithoutCancel(ctx), member.UID, wallet, locked.Remote, locked.BackendContext())
		if err != nil {
			s.l.TemplProvisionErr("create address failed", logger.GenErrorId(), member.UID, currency, req.BlockchainKey, err)
			return errBackend
		}
		if res == nil {
			status = domain.PROVISION_NOT_READY
			return nil
		}
		if res.Address == "" {
			s.l.TemplProvisionErr("backend returned empty address", logger.GenErrorId(), member.UID, currency, req.BlockchainKey, nil)
			return errBackend
		}

		locked.Apply(res)
		if err := s.repo.Commit(tx, locked); err != nil {
			return fmt.Errorf("commit address: %w", err)
		}

		payload := natsdomain.MsgAddressCreated{
			PaymentAddressID: locked.ID,
			UID:              member.UID,
			CurrencyID:       currency,
			BlockchainKey:    req.BlockchainKey,
			Address:          *locked.Address,
			Remote:           locked.Remote,
			CreatedAt:        time.Now().UTC(),
		}
		if err := s.events.Create(tx, domain.EVENT_PAYMENT_ADDRESS_CREATED, locked.ID, string(utils.MustMarshal(payload))); err != nil {
			return fmt.Errorf("create outbox event: %w", err)
		}

		status = domain.PROVISION_CREATED
		return nil
	})

	switch {
	case err == nil:
	case !entered && ctx.Err() != nil:
		return nil, domain.ErrRequestCancelled
	case errors.Is(err, errBackend):
		return nil, domain.ErrAddressGenerationFailed
	case entered:
		// rolled back, nothing written
		s.l.TemplProvisionErr("persist address failed", logger.GenErrorId(), member.UID, currency, req.BlockchainKey, err)
		return nil, domain.ErrAddressGenerationFailed
	default:
		return nil, s.resolveErr("lock payment address", req, err)
	}

	if status == domain.PROVISION_CREATED {
		s.l.TemplProvisionInfo("address created", member.UID, currency, req.BlockchainKey, *current.Address)
	}

	view := domain.NewAddressView(current, member.UID, currency, status)
	if current.HasAddress() && s.qrCodes != nil {
		if qr, err := s.qrCodes.FindOrNew(*current.Address); err == nil {
			view.QRCode = qr
		}
	}
	return view, nil
}

func (s *PaymentAddressesService) session(ctx context.Context) *gorm.DB {
	if s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx)
}

// known kinds pass through, anything else is logged and becomes internal
func (s *PaymentAddressesService) resolveErr(message string, req ProvisionRequest, err error) error {
	if domain.GetKindByErr(err) != domain.KIND_INTERNAL {
		return err
	}
	s.l.TemplProvisionErr(message, logger.GenErrorId(), req.UID, req.CurrencyID, req.BlockchainKey, err)
	return domain.ErrInternalServerError
}
