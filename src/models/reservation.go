package models

import (
	"time"
	"vetcare/src/types"
)

// Reservation is the ledger entry binding a cage, a date range and the owning
// appointment. Rows are never deleted, only terminalized.
type Reservation struct {
	ID            uint `gorm:"primarykey" json:"id"`
	CageID        uint `json:"cage_id,omitempty"`
	AppointmentID uint `json:"appointment_id,omitempty"`
	UserID        uint `json:"user_id,omitempty"`
	PetID         uint `json:"pet_id,omitempty"`

	CheckInDate         time.Time `json:"check_in_date"`
	CheckOutDate        time.Time `json:"check_out_date"`
	TotalDays           int       `json:"total_days,omitempty"`
	TotalAmount         float64   `json:"total_amount,omitempty"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`

	Status types.ReservationStatus `gorm:"default:'reserved'" json:"status,omitempty"`

	Cage        *Cage        `gorm:"foreignKey:cage_id" json:"cage,omitempty"`
	Appointment *Appointment `gorm:"foreignKey:appointment_id" json:"appointment,omitempty"`
	User        *User        `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Pet         *Pet         `gorm:"foreignKey:pet_id" json:"pet,omitempty"`

	types.Timestamps
}

func (Reservation) TableName() string {
	return "cage_reservations"
}

// Range returns the half-open interval this reservation holds.
func (r *Reservation) Range() *types.DateRange {
	return &types.DateRange{CheckIn: r.CheckInDate, CheckOut: r.CheckOutDate}
}
