package utils

import (
	"vetcare/src/db"
	"vetcare/src/models"
	"vetcare/src/types"
)

// FindAvailableCages returns every cage that is not occupied and has no
// reservation in an active state overlapping the requested range. Results are
// annotated with total days and total amount for the stay. Read-only.
func FindAvailableCages(rng *types.DateRange) ([]*models.Cage, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	db := db.GetDb()
	var cages []*models.Cage
	conflicting := db.
		Model(&models.Reservation{}).
		Select("cage_id").
		Where("status IN (?)", types.ActiveReservationStatuses).
		Where("check_in_date < ? AND check_out_date > ?", rng.CheckOut, rng.CheckIn)
	err := db.
		Model(&models.Cage{}).
		Where(&models.Cage{Status: types.CAGE_AVAILABLE}).
		Where("id NOT IN (?)", conflicting).
		Order("number asc").
		Find(&cages).
		Error
	if err != nil {
		return nil, err
	}
	days := rng.Days()
	for _, cage := range cages {
		cage.TotalDays = days
		cage.TotalAmount = cage.DailyRate * float64(days)
	}
	return cages, nil
}
