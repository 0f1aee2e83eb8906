package models

import (
	"vetcare/src/types"
)

type User struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Role          string `gorm:"default:'client'" json:"role,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`

	Pets         []Pet         `gorm:"foreignKey:owner_id" json:"pets,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:user_id" json:"appointments,omitempty"`

	types.Timestamps
}
