package models

import (
	"vetcare/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID             uuid.UUID `gorm:"primarykey;type:uuid" json:"id"`
	UserID         uint      `json:"user_id,omitempty"`
	Title          string    `json:"title"`
	Message        string    `json:"message,omitempty"`
	Type           string    `json:"type,omitempty"`
	ReferenceType  string    `json:"ref_name,omitempty"`
	ReferenceValue string    `json:"ref_value,omitempty"`

	types.Timestamps
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
