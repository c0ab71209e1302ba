package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Business holds the issuing side of every invoice: the user's own GST
// registration and address. At most one business exists per user; its
// lifecycle is tied to the account and it is never deleted on its own.
type Business struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	GSTNumber string         `gorm:"size:20;not null;column:gst_number" json:"gst_number"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   string         `gorm:"type:text;not null" json:"address"`
	State     string         `gorm:"size:100;not null" json:"state"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User    User     `gorm:"foreignKey:UserID" json:"-"`
	Clients []Client `gorm:"foreignKey:BusinessID" json:"clients,omitempty"`
}

// BeforeCreate generates a UUID before creating a new business
func (b *Business) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Business model
func (Business) TableName() string {
	return "businesses"
}
