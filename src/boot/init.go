package boot

import (
	"fmt"
	"log"
	"os"
	"time"
	"vetcare/src/db"
	"vetcare/src/lib"
	"vetcare/src/lib/mailer"
	"vetcare/src/models"
	"vetcare/src/types"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.Service{},
		&models.Cage{},
		&models.Appointment{},
		&models.Reservation{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitScheduler() {
	if _, err := lib.CreateCronJob(SendCheckoutReminders, 12*time.Hour); err != nil {
		log.Printf("Error scheduling checkout reminders: %s\n", err.Error())
		return
	}
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	sched.Start()
	log.Println("Jobs in queue:", len(sched.Jobs()))
}

// SendCheckoutReminders mails the owners of boarders whose check-out date has
// arrived. Read-only with respect to the scheduler core.
func SendCheckoutReminders() {
	db := db.GetDb()
	var reservations []models.Reservation
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.Reservation{}).
			Where(&models.Reservation{Status: types.RESERVATION_CHECKED_IN}).
			Where("check_out_date <= ?", time.Now()).
			Preload("User").
			Preload("Cage").
			Preload("Pet").
			Find(&reservations).
			Error
	}); err != nil {
		log.Printf("[reminders] Error querying due reservations: %s\n", err.Error())
		return
	}
	senderFrom := os.Getenv("SMTP_FROM")
	for _, reservation := range reservations {
		if reservation.User == nil || reservation.User.Email == "" {
			continue
		}
		petName := "your pet"
		if reservation.Pet != nil {
			petName = reservation.Pet.Name
		}
		input := &lib.SendMailInput{
			Subject:  "Pet Care Notification: Boarding check-out due",
			From:     senderFrom,
			FromName: "noreply",
			To:       []string{reservation.User.Email},
			Body: fmt.Sprintf(`
				<p>Hi %s,</p>
				<p>The boarding stay for %s ends today. Please drop by the clinic to pick them up.</p>
				<p>This is a system-generated message. Do not reply to this email.</p>
				`,
				reservation.User.Name,
				petName,
			),
			Html: true,
		}
		if err := mailer.NewMailerMessage(input); err != nil {
			log.Printf("[mailer] Error sending message: %s\n", err.Error())
		}
	}
}
