// Package calculator prices a stay. Everything here is pure.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"time"

	"staybook/internal/domains/pricing/model"
)

var (
	ErrInvalidRate     = errors.New("nightly rate must be greater than 0")
	ErrInvalidRooms    = errors.New("rooms must be at least 1")
	ErrInvalidNights   = errors.New("stay must be at least 1 night")
	ErrInvalidAdults   = errors.New("adults must not be negative")
	ErrUnknownMealPlan = errors.New("meal plan must be one of none, breakfast, all")
)

// Compute prices rooms for nights at nightlyRate plus the meal plan charge
// for adults, then adds tax.
func Compute(nightlyRate float64, rooms, nights, adults int, mealPlan model.MealPlan) (model.Quote, error) {
	switch {
	case nightlyRate <= 0:
		return model.Quote{}, ErrInvalidRate
	case rooms < 1:
		return model.Quote{}, ErrInvalidRooms
	case nights < 1:
		return model.Quote{}, ErrInvalidNights
	case adults < 0:
		return model.Quote{}, ErrInvalidAdults
	case !mealPlan.Valid():
		return model.Quote{}, fmt.Errorf("%w: %q", ErrUnknownMealPlan, mealPlan)
	}

	roomCost := nightlyRate * float64(rooms) * float64(nights)
	mealCost := mealPlan.Rate() * float64(adults) * float64(nights)
	subtotal := roomCost + mealCost
	tax := subtotal * model.TaxRate

	return model.Quote{
		Nights:   nights,
		RoomCost: roomCost,
		MealCost: mealCost,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}, nil
}

// Nights counts billable nights between checkIn and checkOut. A partial day
// counts as a full night.
func Nights(checkIn, checkOut time.Time) (int, error) {
	hours := checkOut.Sub(checkIn).Hours()
	nights := int(math.Ceil(hours / model.HoursPerNight))

	if nights < 1 {
		return 0, ErrInvalidNights
	}

	return nights, nil
}
