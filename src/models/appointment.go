package models

import (
	"time"
	"vetcare/src/types"
)

type Appointment struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	UserID    uint  `json:"user_id,omitempty"`
	ServiceID uint  `json:"service_id,omitempty"`
	CageID    *uint `json:"cage_id,omitempty"`

	DateTime      *time.Time `json:"date_time,omitempty"`
	CheckInDate   *time.Time `json:"check_in_date,omitempty"`
	CheckOutDate  *time.Time `json:"check_out_date,omitempty"`
	BoardingDays  int        `json:"boarding_days,omitempty"`
	CageDailyRate float64    `json:"cage_daily_rate,omitempty"`

	PaymentMethod   string  `json:"payment_method,omitempty"`
	PaymentAmount   float64 `json:"payment_amount,omitempty"`
	ServiceAmount   float64 `json:"service_amount,omitempty"`
	ReceiptURL      *string `json:"receipt_url,omitempty"`
	ReceiptVerified bool    `json:"receipt_verified"`

	IDDocumentURL             *string `json:"id_document_url,omitempty"`
	IDDocumentVerified        bool    `json:"id_document_verified"`
	IDDocumentRejectionReason *string `json:"id_document_rejection_reason,omitempty"`
	SignatureURL              *string `json:"signature_url,omitempty"`
	SignatureVerified         bool    `json:"signature_verified"`
	SignatureRejectionReason  *string `json:"signature_rejection_reason,omitempty"`

	Notes  string                  `json:"notes,omitempty"`
	Status types.AppointmentStatus `gorm:"default:'pending'" json:"status,omitempty"`

	User        *User        `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Service     *Service     `gorm:"foreignKey:service_id" json:"service,omitempty"`
	Cage        *Cage        `gorm:"foreignKey:cage_id" json:"cage,omitempty"`
	Pets        []*Pet       `gorm:"many2many:appointment_pets;" json:"pets,omitempty"`
	Reservation *Reservation `gorm:"foreignKey:appointment_id" json:"reservation,omitempty"`

	types.Timestamps
}

// IsBoarding reports whether this appointment holds a cage.
func (a *Appointment) IsBoarding() bool {
	return a.CageID != nil
}

// PaymentVerified is the transition guard for in_progress/completed. Cash
// bypasses receipt verification entirely.
func (a *Appointment) PaymentVerified() bool {
	if a.PaymentMethod == types.PAYMENT_CASH {
		return true
	}
	return a.ReceiptVerified
}
