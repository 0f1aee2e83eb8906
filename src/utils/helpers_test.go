package utils

import (
	"fmt"
	"testing"
	"vetcare/src/db"
	"vetcare/src/models"
	"vetcare/src/types"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := d.DB()
	require.NoError(t, err)
	// A single connection serializes concurrent transactions the way the
	// cage row lock does on postgres.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, d.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.Service{},
		&models.Cage{},
		&models.Appointment{},
		&models.Reservation{},
		&models.Notification{},
	))
	db.NewDB(d)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	return d
}

type fixtures struct {
	User    models.User
	Pet     models.Pet
	Service models.Service
	Cage    models.Cage
}

func seedBoardingFixtures(t *testing.T, d *gorm.DB) fixtures {
	t.Helper()
	f := fixtures{
		User:    models.User{Name: "Maria Santos", Email: "maria@example.com", Role: "client"},
		Service: models.Service{Name: "Pet Boarding", Price: 0, Boarding: true},
		Cage:    models.Cage{Number: "C-03", Type: "medium", Capacity: 1, DailyRate: 500, Status: types.CAGE_AVAILABLE},
	}
	require.NoError(t, d.Create(&f.User).Error)
	f.Pet = models.Pet{Name: "Bantay", Species: "dog", Breed: "aspin", OwnerID: f.User.ID}
	require.NoError(t, d.Create(&f.Pet).Error)
	require.NoError(t, d.Create(&f.Service).Error)
	require.NoError(t, d.Create(&f.Cage).Error)
	return f
}

func strptr(s string) *string {
	return &s
}

func bookingParams(f fixtures, checkIn string, checkOut string, paymentMethod string) *types.CreateBookingRequestBody {
	return &types.CreateBookingRequestBody{
		PetIDs:        []uint{f.Pet.ID},
		ServiceID:     f.Service.ID,
		PaymentMethod: paymentMethod,
		CageID:        &f.Cage.ID,
		CheckInDate:   strptr(checkIn),
		CheckOutDate:  strptr(checkOut),
	}
}
