package types

import (
	"time"
	"vetcare/src/config"
)

// DateRange is a half-open boarding interval [CheckIn, CheckOut).
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func ParseDateRange(checkIn string, checkOut string) (*DateRange, error) {
	in, err := time.Parse(config.DATE_PARSE_FORMAT, checkIn)
	if err != nil {
		return nil, ErrInvalidRange
	}
	out, err := time.Parse(config.DATE_PARSE_FORMAT, checkOut)
	if err != nil {
		return nil, ErrInvalidRange
	}
	r := &DateRange{CheckIn: in, CheckOut: out}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *DateRange) Validate() error {
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !r.CheckIn.Before(r.CheckOut) {
		return ErrInvalidRange
	}
	if r.Days() < 1 {
		return ErrInvalidRange
	}
	return nil
}

// Overlaps is true when the two half-open ranges share at least one day.
func (r *DateRange) Overlaps(other *DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Days bills any started day in full.
func (r *DateRange) Days() int {
	hours := r.CheckOut.Sub(r.CheckIn).Hours()
	days := int(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	return days
}
