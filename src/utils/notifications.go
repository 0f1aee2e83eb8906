package utils

import (
	"fmt"
	"log"
	"os"
	"vetcare/src/db"
	"vetcare/src/lib"
	"vetcare/src/lib/mailer"
	"vetcare/src/models"
	"vetcare/src/types"

	"gorm.io/gorm"
)

type notificationCopy struct {
	Title   string
	Message string
}

var statusNotifications = map[types.AppointmentStatus]notificationCopy{
	types.APPOINTMENT_PENDING_PAYMENT: {
		Title:   "Receipt rejected",
		Message: "The receipt for appointment #%d was rejected. Please upload a new one.",
	},
	types.APPOINTMENT_CONFIRMED: {
		Title:   "Appointment confirmed",
		Message: "Your appointment #%d has been confirmed.",
	},
	types.APPOINTMENT_PAID: {
		Title:   "Payment verified",
		Message: "Payment for appointment #%d has been verified.",
	},
	types.APPOINTMENT_IN_PROGRESS: {
		Title:   "Appointment in progress",
		Message: "Your appointment #%d is now in progress.",
	},
	types.APPOINTMENT_COMPLETED: {
		Title:   "Appointment completed",
		Message: "Your appointment #%d has been completed. Thank you for visiting us.",
	},
	types.APPOINTMENT_CANCELLED: {
		Title:   "Appointment cancelled",
		Message: "Your appointment #%d has been cancelled.",
	},
	types.APPOINTMENT_REJECTED: {
		Title:   "Appointment rejected",
		Message: "Your appointment #%d has been rejected. Please contact the clinic for details.",
	},
}

// NotifyStatusChange records a notification for the appointment owner and
// hands an email to the mailer queue. Best effort; a delivery problem never
// surfaces to the transition that triggered it.
func NotifyStatusChange(appointmentId uint, status types.AppointmentStatus) {
	copy, ok := statusNotifications[status]
	if !ok {
		return
	}
	appointment, err := loadAppointmentForNotify(appointmentId)
	if err != nil {
		log.Printf("[notify] Error loading appointment %d: %s\n", appointmentId, err.Error())
		return
	}
	message := fmt.Sprintf(copy.Message, appointment.ID)
	if status == types.APPOINTMENT_IN_PROGRESS && appointment.Cage != nil {
		message = fmt.Sprintf("Your pet has been checked in to cage %s for appointment #%d.", appointment.Cage.Number, appointment.ID)
	}
	emit(appointment, copy.Title, message, string(status))
}

// NotifyDocumentsVerified fires once both boarding documents pass review.
func NotifyDocumentsVerified(appointmentId uint) {
	appointment, err := loadAppointmentForNotify(appointmentId)
	if err != nil {
		log.Printf("[notify] Error loading appointment %d: %s\n", appointmentId, err.Error())
		return
	}
	emit(appointment, "Documents verified", fmt.Sprintf("All boarding documents for appointment #%d have been verified.", appointment.ID), "documents_verified")
}

func loadAppointmentForNotify(id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.Appointment{}).
			Where(&models.Appointment{ID: id}).
			Preload("User").
			Preload("Cage").
			First(&appointment).
			Error
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func emit(appointment *models.Appointment, title string, message string, kind string) {
	db := db.GetDb()
	notification := models.Notification{
		UserID:         appointment.UserID,
		Title:          title,
		Message:        message,
		Type:           kind,
		ReferenceType:  "appointments",
		ReferenceValue: fmt.Sprint(appointment.ID),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("[notify] Error saving notification for appointment %d: %s\n", appointment.ID, err.Error())
	}

	if appointment.User == nil || appointment.User.Email == "" {
		return
	}
	senderFrom := os.Getenv("SMTP_FROM")
	input := &lib.SendMailInput{
		Subject:  fmt.Sprintf("Pet Care Notification: %s", title),
		From:     senderFrom,
		FromName: "noreply",
		To:       []string{appointment.User.Email},
		Body: fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>%s</p>
			<p>This is a system-generated message. Do not reply to this email.</p>
			`,
			appointment.User.Name,
			message,
		),
		Html: true,
	}
	if err := mailer.NewMailerMessage(input); err != nil {
		log.Printf("[mailer] Error sending message: %s\n", err.Error())
	}
}
