package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegistryData captures the metadata returned by the GST registry when a
// client was validated. Stored as JSONB for reference; never interpreted
// again after creation.
type RegistryData struct {
	Status           string   `json:"status,omitempty"`
	RegistrationDate string   `json:"registration_date,omitempty"`
	BusinessType     string   `json:"business_type,omitempty"`
	TradeName        string   `json:"trade_name,omitempty"`
	Jurisdiction     string   `json:"jurisdiction,omitempty"`
	NatureOfBusiness []string `json:"nature_of_business,omitempty"`
}

// Value implements driver.Valuer so GORM can persist the struct as JSONB
func (d RegistryData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for reading the JSONB column back
func (d *RegistryData) Scan(value interface{}) error {
	if value == nil {
		*d = RegistryData{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			b = []byte(s)
		} else {
			return errors.New("registry data: unsupported scan type")
		}
	}
	return json.Unmarshal(b, d)
}

// Client represents a billed party. Clients are created only after their GST
// number passed registry validation; the GST number is unique within a
// business. Deleting a client leaves its invoices in place. The uniqueness
// index is partial so a soft-deleted client's GSTIN can be added again.
type Client struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BusinessID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_clients_business_gst,unique,where:deleted_at IS NULL" json:"business_id"`
	GSTNumber    string         `gorm:"size:20;not null;column:gst_number;index:idx_clients_business_gst,unique,where:deleted_at IS NULL" json:"gst_number"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Address      string         `gorm:"type:text" json:"address"`
	State        string         `gorm:"size:100" json:"state"`
	RegistryData RegistryData   `gorm:"type:jsonb" json:"registry_data"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Business Business  `gorm:"foreignKey:BusinessID" json:"-"`
	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"invoices,omitempty"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}
