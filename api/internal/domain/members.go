package domain

// account holders, owned by the member directory and never mutated here
type Members struct {
	Model
	ID    uint   `gorm:"primaryKey" json:"id"`
	UID   string `gorm:"size:32;uniqueIndex;not null" json:"uid"`
	Email string `gorm:"size:255" json:"email"`
	State string `gorm:"size:16;not null" json:"state"`
}

const MEMBER_STATE_ACTIVE = "active"
