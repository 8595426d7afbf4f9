package service

import (
	"context"
	"fmt"
	"paygate/api/internal/domain"
	"paygate/api/internal/logger"
	"paygate/api/internal/repository"
	"paygate/pkg/nats/natsdomain"
	"time"

	"gorm.io/gorm"
)

// *nats.NatsInfra
type EventPublisher interface {
	PublishEvent(ctx context.Context, subj natsdomain.SubjJsType, payload []byte, msgId string) error
}

type OutboxEventsService struct {
	repo      repository.Events
	publisher EventPublisher

	interval  time.Duration
	batchSize int

	db *gorm.DB
	l  logger.Logger
}

func NewOutboxEventsService(db *gorm.DB, repo repository.Events, publisher EventPublisher, l logger.Logger, interval time.Duration, batchSize int) *OutboxEventsService {
	return &OutboxEventsService{repo: repo, publisher: publisher, interval: interval, batchSize: batchSize, db: db, l: l}
}

// checks events table every interval and publishes new events until ctx is done
func (s *OutboxEventsService) StartProcessEvents(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.ProcessEvents(ctx); err != nil {
					s.l.TemplOutboxErr("process events failed", 0, err)
				}
			}
		}
	}()
}

// ProcessEvents handles one batch and returns the number of events marked done.
func (s *OutboxEventsService) ProcessEvents(ctx context.Context) (int, error) {
	events, err := s.repo.FindNew(s.db, s.batchSize)
	if err != nil {
		return 0, err
	}

	var done int
	for _, event := range events {
		if ctx.Err() != nil {
			return done, ctx.Err()
		}

		switch event.Type {
		case domain.EVENT_PAYMENT_ADDRESS_CREATED:
			if err := s.handleAddressCreatedEvent(ctx, event); err != nil {
				s.l.TemplOutboxErr("publish address created failed", event.ID, err)
				continue
			}
		default:
			s.l.TemplOutboxErr("invalid event type: "+event.Type, event.ID, nil)
		}

		if err := s.repo.Done(s.db, event.ID); err != nil {
			s.l.TemplOutboxErr("mark event done failed", event.ID, err)
			continue
		}
		done++
	}

	return done, nil
}

func (s *OutboxEventsService) handleAddressCreatedEvent(ctx context.Context, event domain.Events) error {
	msgId := natsdomain.NewMsgId(fmt.Sprintf("payment_address_%d", event.RelationID), natsdomain.MsgActionCreated)
	return s.publisher.PublishEvent(ctx, natsdomain.SubjJsAddressCreated, []byte(event.Payload), msgId)
}
