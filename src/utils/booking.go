package utils

import (
	"errors"
	"log"
	"time"
	"vetcare/src/config"
	"vetcare/src/db"
	"vetcare/src/models"
	"vetcare/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateBooking creates an Appointment and, for boarding services, its
// Reservation in one transaction. The overlap condition is re-checked under a
// row lock on the cage at commit time; a booking that loses the race fails with
// CageUnavailable and leaves no partial rows behind.
func CreateBooking(params *types.CreateBookingRequestBody, userId uint) (*models.Appointment, error) {
	initialStatus := types.APPOINTMENT_PENDING_PAYMENT
	if params.PaymentMethod == types.PAYMENT_CASH {
		initialStatus = types.APPOINTMENT_PENDING
	}

	var appointment models.Appointment
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.
			Where(&models.Service{ID: params.ServiceID}).
			First(&service).
			Error; err != nil {
			return types.ErrServiceNotFound
		}

		var pets []*models.Pet
		if err := tx.
			Where("id IN (?)", params.PetIDs).
			Find(&pets).
			Error; err != nil {
			return err
		}
		if len(pets) != len(params.PetIDs) {
			return types.ErrMissingFields
		}

		appointment = models.Appointment{
			UserID:        userId,
			ServiceID:     service.ID,
			PaymentMethod: params.PaymentMethod,
			ServiceAmount: service.Price,
			Notes:         params.BoardingInstructions,
			Status:        initialStatus,
		}
		if params.DateTime != nil {
			dateTime, err := time.Parse(config.TIME_PARSE_FORMAT, *params.DateTime)
			if err != nil {
				return types.ErrMissingFields
			}
			appointment.DateTime = &dateTime
		}

		if params.CageID == nil {
			// Non-boarding visit, no cage or reservation involved.
			if err := tx.Create(&appointment).Error; err != nil {
				return err
			}
			return tx.Model(&appointment).Association("Pets").Append(pets)
		}

		if params.CheckInDate == nil || params.CheckOutDate == nil {
			return types.ErrMissingFields
		}
		rng, err := types.ParseDateRange(*params.CheckInDate, *params.CheckOutDate)
		if err != nil {
			return err
		}

		var cage models.Cage
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Cage{ID: *params.CageID}).
			First(&cage).
			Error; err != nil {
			return types.ErrCageNotFound
		}

		// Availability is checked again here, not only at search time, so two
		// concurrent bookers cannot both take the cage.
		var conflicts int64
		if err := tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{CageID: cage.ID}).
			Where("status IN (?)", types.ActiveReservationStatuses).
			Where("check_in_date < ? AND check_out_date > ?", rng.CheckOut, rng.CheckIn).
			Count(&conflicts).
			Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return types.ErrCageUnavailable
		}

		days := rng.Days()
		appointment.CageID = &cage.ID
		appointment.CheckInDate = &rng.CheckIn
		appointment.CheckOutDate = &rng.CheckOut
		appointment.BoardingDays = days
		appointment.CageDailyRate = cage.DailyRate
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}
		if err := tx.Model(&appointment).Association("Pets").Append(pets); err != nil {
			return err
		}

		reservation := models.Reservation{
			CageID:              cage.ID,
			AppointmentID:       appointment.ID,
			UserID:              userId,
			PetID:               pets[0].ID,
			CheckInDate:         rng.CheckIn,
			CheckOutDate:        rng.CheckOut,
			TotalDays:           days,
			TotalAmount:         cage.DailyRate * float64(days),
			SpecialInstructions: params.BoardingInstructions,
			Status:              types.RESERVATION_RESERVED,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return err
		}
		appointment.Reservation = &reservation
		return nil
	})
	if err != nil {
		var apiErr *types.APIError
		if !errors.As(err, &apiErr) {
			log.Printf("CreateBooking failed: %s\n", err.Error())
		}
		return nil, err
	}
	return &appointment, nil
}
