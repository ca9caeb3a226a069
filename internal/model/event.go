package model

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventWishAdded     EventKind = "wish_added"
	EventWishFulfilled EventKind = "wish_fulfilled"
)

// WishEvent is an append-only notification record consumed by external
// indexers, either via the postgres event log or the redis channel.
type WishEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Kind      EventKind `gorm:"type:varchar(32);not null;index" json:"kind"`
	UserID    string    `gorm:"type:varchar(128);not null;index" json:"user_id"`
	WishID    uint32    `gorm:"not null" json:"wish_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (WishEvent) TableName() string { return "wish_events" }
