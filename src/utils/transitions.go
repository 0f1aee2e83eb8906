package utils

import (
	"errors"
	"log"
	"vetcare/src/db"
	"vetcare/src/models"
	"vetcare/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cageEffect int

const (
	cageNone cageEffect = iota
	cageOccupy
	cageRelease
)

type transitionRule struct {
	reservation     types.ReservationStatus
	cage            cageEffect
	requiresPayment bool
	nonTerminalOnly bool
}

// statusTransitions is the closed transition table for operator/client status
// changes. A target status not listed here is rejected outright; receipt and
// document actions have their own entry points below.
var statusTransitions = map[types.AppointmentStatus]transitionRule{
	types.APPOINTMENT_CONFIRMED:   {reservation: types.RESERVATION_RESERVED, cage: cageRelease, nonTerminalOnly: true},
	types.APPOINTMENT_IN_PROGRESS: {reservation: types.RESERVATION_CHECKED_IN, cage: cageOccupy, requiresPayment: true},
	types.APPOINTMENT_COMPLETED:   {reservation: types.RESERVATION_CHECKED_OUT, cage: cageRelease, requiresPayment: true},
	types.APPOINTMENT_CANCELLED:   {reservation: types.RESERVATION_CANCELLED, cage: cageRelease},
	types.APPOINTMENT_REJECTED:    {reservation: types.RESERVATION_CANCELLED, cage: cageRelease},
}

// UpdateAppointmentStatus validates the requested transition against the table
// and applies the appointment, cage and reservation updates as one transaction.
// The guard failure leaves the status untouched.
func UpdateAppointmentStatus(id uint, newStatus types.AppointmentStatus, notes string) (*models.Appointment, error) {
	rule, ok := statusTransitions[newStatus]
	if !ok {
		return nil, types.ErrMissingFields
	}

	var appointment models.Appointment
	var oldStatus types.AppointmentStatus
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Appointment{ID: id}).
			First(&appointment).
			Error; err != nil {
			return types.ErrAppointmentNotFound
		}
		oldStatus = appointment.Status

		if rule.nonTerminalOnly && oldStatus.Terminal() {
			return types.ErrMissingFields
		}
		if rule.requiresPayment && !appointment.PaymentVerified() {
			return types.ErrPaymentNotVerified
		}

		updates := map[string]any{"status": newStatus}
		if notes != "" {
			updates["notes"] = notes
		}
		if err := tx.
			Model(&models.Appointment{}).
			Where(&models.Appointment{ID: id}).
			Updates(updates).
			Error; err != nil {
			return err
		}
		appointment.Status = newStatus

		return syncCageAndReservation(tx, &appointment, rule)
	})
	if err != nil {
		var apiErr *types.APIError
		if !errors.As(err, &apiErr) {
			log.Printf("UpdateAppointmentStatus failed for appointment %d: %s\n", id, err.Error())
		}
		return nil, err
	}

	if oldStatus != appointment.Status && appointment.UserID > 0 {
		go NotifyStatusChange(appointment.ID, appointment.Status)
	}
	return &appointment, nil
}

// syncCageAndReservation applies the transition's side effects to the cage row
// and the reservation ledger inside the caller's transaction. No-op for
// appointments without a cage; tolerant of rows already in the target state.
func syncCageAndReservation(tx *gorm.DB, appointment *models.Appointment, rule transitionRule) error {
	if !appointment.IsBoarding() {
		return nil
	}

	var cage models.Cage
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(&models.Cage{ID: *appointment.CageID}).
		First(&cage).
		Error; err != nil {
		return types.ErrCageNotFound
	}

	switch rule.cage {
	case cageOccupy:
		// The reservation ledger is authoritative for occupant and dates.
		checkIn, checkOut := appointment.CheckInDate, appointment.CheckOutDate
		var reservation models.Reservation
		var petID *uint
		if err := tx.
			Where(&models.Reservation{AppointmentID: appointment.ID}).
			First(&reservation).
			Error; err == nil {
			petID = &reservation.PetID
			rng := reservation.Range()
			checkIn, checkOut = &rng.CheckIn, &rng.CheckOut
		}
		if err := tx.
			Model(&models.Cage{}).
			Where(&models.Cage{ID: cage.ID}).
			Updates(map[string]any{
				"status":                 types.CAGE_OCCUPIED,
				"current_pet_id":         petID,
				"current_appointment_id": appointment.ID,
				"check_in_date":          checkIn,
				"check_out_date":         checkOut,
			}).
			Error; err != nil {
			return err
		}
	case cageRelease:
		// Only the current occupant may free the cage; another appointment's
		// occupancy is left untouched.
		if cage.CurrentAppointmentID != nil && *cage.CurrentAppointmentID == appointment.ID {
			if err := tx.
				Model(&models.Cage{}).
				Where(&models.Cage{ID: cage.ID}).
				Updates(map[string]any{
					"status":                 types.CAGE_AVAILABLE,
					"current_pet_id":         nil,
					"current_appointment_id": nil,
					"check_in_date":          nil,
					"check_out_date":         nil,
				}).
				Error; err != nil {
				return err
			}
		}
	}

	if rule.reservation != "" {
		if err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{AppointmentID: appointment.ID}).
			Update("status", rule.reservation).
			Error; err != nil {
			return err
		}
	}
	return nil
}

// VerifyReceipt marks the uploaded receipt as verified and moves the
// appointment to paid. The receipt must exist.
func VerifyReceipt(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	var oldStatus types.AppointmentStatus
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.Appointment{ID: id}).
			First(&appointment).
			Error; err != nil {
			return types.ErrAppointmentNotFound
		}
		if appointment.ReceiptURL == nil {
			return types.ErrMissingFields
		}
		oldStatus = appointment.Status
		if err := tx.
			Model(&models.Appointment{}).
			Where(&models.Appointment{ID: id}).
			Updates(map[string]any{
				"receipt_verified": true,
				"status":           types.APPOINTMENT_PAID,
			}).
			Error; err != nil {
			return err
		}
		appointment.ReceiptVerified = true
		appointment.Status = types.APPOINTMENT_PAID
		return nil
	})
	if err != nil {
		return nil, err
	}
	if oldStatus != appointment.Status && appointment.UserID > 0 {
		go NotifyStatusChange(appointment.ID, appointment.Status)
	}
	return &appointment, nil
}

// RejectReceipt sends the appointment back to pending payment so the client
// can upload a new receipt.
func RejectReceipt(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	var oldStatus types.AppointmentStatus
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.Appointment{ID: id}).
			First(&appointment).
			Error; err != nil {
			return types.ErrAppointmentNotFound
		}
		oldStatus = appointment.Status
		if err := tx.
			Model(&models.Appointment{}).
			Where(&models.Appointment{ID: id}).
			Updates(map[string]any{
				"receipt_verified": false,
				"status":           types.APPOINTMENT_PENDING_PAYMENT,
			}).
			Error; err != nil {
			return err
		}
		appointment.ReceiptVerified = false
		appointment.Status = types.APPOINTMENT_PENDING_PAYMENT
		return nil
	})
	if err != nil {
		return nil, err
	}
	if oldStatus != appointment.Status && appointment.UserID > 0 {
		go NotifyStatusChange(appointment.ID, appointment.Status)
	}
	return &appointment, nil
}

// VerifyDocument records the review result for a boarding document. A
// rejection needs a reason and forces the appointment to rejected with the
// same cage/reservation clearing as a cancellation. When both documents are
// approved only a notification goes out.
func VerifyDocument(id uint, docType types.DocumentType, approved bool, rejectionReason string) (*types.APIResponseDocuments, error) {
	if !approved && rejectionReason == "" {
		return nil, types.ErrMissingFields
	}

	var appointment models.Appointment
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.Appointment{ID: id}).
			First(&appointment).
			Error; err != nil {
			return types.ErrAppointmentNotFound
		}

		updates := map[string]any{}
		switch docType {
		case types.DOCUMENT_ID:
			updates["id_document_verified"] = approved
			if approved {
				updates["id_document_rejection_reason"] = nil
				appointment.IDDocumentRejectionReason = nil
			} else {
				updates["id_document_rejection_reason"] = rejectionReason
				appointment.IDDocumentRejectionReason = &rejectionReason
			}
			appointment.IDDocumentVerified = approved
		case types.DOCUMENT_SIGNATURE:
			updates["signature_verified"] = approved
			if approved {
				updates["signature_rejection_reason"] = nil
				appointment.SignatureRejectionReason = nil
			} else {
				updates["signature_rejection_reason"] = rejectionReason
				appointment.SignatureRejectionReason = &rejectionReason
			}
			appointment.SignatureVerified = approved
		default:
			return types.ErrMissingFields
		}
		return tx.
			Model(&models.Appointment{}).
			Where(&models.Appointment{ID: id}).
			Updates(updates).
			Error
	})
	if err != nil {
		return nil, err
	}

	result := &types.APIResponseDocuments{
		BothVerified: appointment.IDDocumentVerified && appointment.SignatureVerified,
	}
	if !approved {
		oldStatus := appointment.Status
		if _, err := UpdateAppointmentStatus(id, types.APPOINTMENT_REJECTED, ""); err != nil {
			return nil, err
		}
		result.StatusChanged = oldStatus != types.APPOINTMENT_REJECTED
		return result, nil
	}
	if result.BothVerified && appointment.UserID > 0 {
		go NotifyDocumentsVerified(appointment.ID)
	}
	return result, nil
}

// DeleteAppointment reverses any cage occupancy and terminalizes the
// reservation like a cancellation, then removes the appointment row for good.
// Admin only; enforced at the handler.
func DeleteAppointment(id uint) error {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Appointment{ID: id}).
			First(&appointment).
			Error; err != nil {
			return types.ErrAppointmentNotFound
		}
		if err := syncCageAndReservation(tx, &appointment, statusTransitions[types.APPOINTMENT_CANCELLED]); err != nil {
			return err
		}
		if err := tx.Model(&appointment).Association("Pets").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&appointment).Error
	})
	if err != nil {
		var apiErr *types.APIError
		if !errors.As(err, &apiErr) {
			log.Printf("DeleteAppointment failed for appointment %d: %s\n", id, err.Error())
		}
		return err
	}
	return nil
}
