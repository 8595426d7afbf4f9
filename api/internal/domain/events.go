package domain

import "time"

const (
	EVENT_PAYMENT_ADDRESS_CREATED = "payment_address.created" // address attached, deposit scanners can start watching
)

const (
	EVENT_STATUS_NEW  = "new"
	EVENT_STATUS_DONE = "done"
)

// outbox, written in the same transaction as the change it describes
type Events struct {
	ID         uint   `gorm:"primaryKey"`
	RelationID uint   `gorm:"not null"`
	Type       string `gorm:"type:varchar(255)"` //const EVENT_*
	Payload    string
	Status     string `gorm:"index"` // new/done
	CreatedAt  time.Time
}
