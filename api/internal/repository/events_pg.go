package repository

import (
	"encoding/json"
	"fmt"
	"paygate/api/internal/domain"
	"paygate/api/internal/infra/postgres"

	"gorm.io/gorm"
)

type EventsRepo struct {
}

func InitEventsRepo() *EventsRepo {
	return &EventsRepo{}
}

// one event per (relation, type), repeated creates are ignored
func (r *EventsRepo) Create(tx *gorm.DB, eventType string, eventRelationID uint, payload string) error {
	if !json.Valid([]byte(payload)) {
		return fmt.Errorf("invalid payload: %s", payload)
	}

	_, err := r.find(tx, eventRelationID, eventType)
	if err != nil {
		if !postgres.IsNotFound(err) {
			return err
		}
		return tx.Create(&domain.Events{Type: eventType, RelationID: eventRelationID, Payload: payload, Status: domain.EVENT_STATUS_NEW}).Error
	}
	return nil
}

func (r *EventsRepo) Done(tx *gorm.DB, eventID uint) error {
	return tx.Model(&domain.Events{ID: eventID}).Update("status", domain.EVENT_STATUS_DONE).Error
}

func (r *EventsRepo) FindNew(tx *gorm.DB, limit int) ([]domain.Events, error) {
	var events []domain.Events
	return events, tx.Where(&domain.Events{Status: domain.EVENT_STATUS_NEW}).Order("id").Limit(limit).Find(&events).Error
}

func (r *EventsRepo) find(tx *gorm.DB, eventRelationID uint, eventType string) (*domain.Events, error) {
	var existsEvent domain.Events
	return &existsEvent, tx.Where(&domain.Events{RelationID: eventRelationID, Type: eventType}).First(&existsEvent).Error
}
