package types

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type AppointmentStatus string

const (
	APPOINTMENT_PENDING         AppointmentStatus = "pending"
	APPOINTMENT_PENDING_PAYMENT AppointmentStatus = "pending payment"
	APPOINTMENT_CONFIRMED       AppointmentStatus = "confirmed"
	APPOINTMENT_PAID            AppointmentStatus = "paid"
	APPOINTMENT_IN_PROGRESS     AppointmentStatus = "in_progress"
	APPOINTMENT_COMPLETED       AppointmentStatus = "completed"
	APPOINTMENT_CANCELLED       AppointmentStatus = "cancelled"
	APPOINTMENT_REJECTED        AppointmentStatus = "rejected"
)

// Terminal reports whether no further lifecycle movement is expected.
func (s AppointmentStatus) Terminal() bool {
	return s == APPOINTMENT_COMPLETED || s == APPOINTMENT_CANCELLED || s == APPOINTMENT_REJECTED
}

type ReservationStatus string

const (
	RESERVATION_RESERVED    ReservationStatus = "reserved"
	RESERVATION_CHECKED_IN  ReservationStatus = "checked_in"
	RESERVATION_CHECKED_OUT ReservationStatus = "checked_out"
	RESERVATION_CANCELLED   ReservationStatus = "cancelled"
)

// ActiveReservationStatuses are the states that hold a cage for a date range.
var ActiveReservationStatuses = []ReservationStatus{
	RESERVATION_RESERVED,
	RESERVATION_CHECKED_IN,
}

type CageStatus string

const (
	CAGE_AVAILABLE CageStatus = "available"
	CAGE_OCCUPIED  CageStatus = "occupied"
)

const PAYMENT_CASH = "cash"

type DocumentType string

const (
	DOCUMENT_ID        DocumentType = "id"
	DOCUMENT_SIGNATURE DocumentType = "signature"
)

type StatusAction string

const (
	ACTION_STATUS         StatusAction = "status"
	ACTION_VERIFY_RECEIPT StatusAction = "verify_receipt"
	ACTION_REJECT_RECEIPT StatusAction = "reject_receipt"
)

type AvailabilityQueryParams struct {
	CheckInDate  string `form:"check_in_date" binding:"required,boardingdate"`
	CheckOutDate string `form:"check_out_date" binding:"required,boardingdate"`
}

type CreateBookingRequestBody struct {
	PetIDs               []uint  `json:"pet_ids" binding:"required,min=1"`
	ServiceID            uint    `json:"service_id" binding:"required"`
	PaymentMethod        string  `json:"payment_method" binding:"required"`
	DateTime             *string `json:"date_time,omitempty" binding:"omitempty"`
	CageID               *uint   `json:"cage_id,omitempty"`
	CheckInDate          *string `json:"check_in_date,omitempty" binding:"omitempty,boardingdate"`
	CheckOutDate         *string `json:"check_out_date,omitempty" binding:"omitempty,boardingdate"`
	BoardingInstructions string  `json:"boarding_instructions,omitempty"`
}

type UpdateStatusRequestBody struct {
	Action StatusAction      `json:"action" binding:"required,oneof=status verify_receipt reject_receipt"`
	Status AppointmentStatus `json:"status,omitempty"`
	Notes  string            `json:"notes,omitempty"`
}

type VerifyDocumentRequestBody struct {
	DocumentType    DocumentType `json:"document_type" binding:"required,oneof=id signature"`
	Approved        *bool        `json:"approved" binding:"required"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
}

type SetReceiptRequestBody struct {
	ReceiptURL    string  `json:"receipt_url" binding:"required"`
	PaymentAmount float64 `json:"payment_amount,omitempty"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type APIResponseBooking struct {
	AppointmentID uint              `json:"appointment_id"`
	Status        AppointmentStatus `json:"status"`
	IsBoarding    bool              `json:"is_boarding"`
	PetCount      int               `json:"pet_count"`
}

type APIResponseDocuments struct {
	BothVerified  bool `json:"both_verified"`
	StatusChanged bool `json:"status_changed"`
}

type Claims struct {
	Username    string   `json:"username"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}
