package models

import (
	"fmt"
	"time"
	"vetcare/src/types"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Cage occupancy fields mirror the single checked_in reservation and are
// mutated only through the status transition path.
type Cage struct {
	ID          uint             `gorm:"primarykey" json:"id"`
	Number      string           `json:"number,omitempty"`
	Type        string           `json:"type,omitempty"`
	Capacity    uint             `json:"capacity,omitempty"`
	DailyRate   float64          `json:"daily_rate"`
	Description string           `json:"description,omitempty"`
	Location    string           `json:"location,omitempty"`
	Slug        string           `json:"slug,omitempty"`
	Status      types.CageStatus `gorm:"default:'available'" json:"status,omitempty"`

	CurrentPetID         *uint      `json:"current_pet_id,omitempty"`
	CurrentAppointmentID *uint      `json:"current_appointment_id,omitempty"`
	CheckInDate          *time.Time `json:"check_in_date,omitempty"`
	CheckOutDate         *time.Time `json:"check_out_date,omitempty"`

	TotalDays   int     `gorm:"-" json:"total_days,omitempty"`
	TotalAmount float64 `gorm:"-" json:"total_amount,omitempty"`

	Reservations []Reservation `gorm:"foreignKey:cage_id" json:"reservations,omitempty"`

	types.Timestamps
}

func (c *Cage) BeforeCreate(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slug.Make(fmt.Sprintf("%s %s", c.Type, c.Number))
	}
	return nil
}
