package models

import (
	"vetcare/src/types"
)

type Pet struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	Name    string `json:"name,omitempty"`
	Species string `json:"species,omitempty"`
	Breed   string `json:"breed,omitempty"`
	OwnerID uint   `json:"owner_id,omitempty"`

	Owner        *User          `gorm:"foreignKey:owner_id" json:"owner,omitempty"`
	Appointments []*Appointment `gorm:"many2many:appointment_pets;" json:"appointments,omitempty"`

	types.Timestamps
}
