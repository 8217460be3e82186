package model

import (
	"time"

	pricingModel "staybook/internal/domains/pricing/model"
	"staybook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldHomestayID    = "homestay_id"
	FieldHomestayName  = "homestay_name"
	FieldCustomerName  = "customer_name"
	FieldCustomerPhone = "customer_phone"
	FieldEmail         = "email"
	FieldCheckIn       = "check_in"
	FieldCheckOut      = "check_out"
	FieldAdults        = "adults"
	FieldChildren      = "children"
	FieldRooms         = "rooms"
	FieldMealPlan      = "meal_plan"
	FieldTotalPrice    = "total_price"
	FieldBookingDate   = "booking_date"
)

// Booking is append-only. HomestayName is copied from the homestay when the
// booking is made and is not refreshed on rename.
type Booking struct {
	ID            string                `db:"id"`
	HomestayID    string                `db:"homestay_id"`
	HomestayName  string                `db:"homestay_name"`
	CustomerName  string                `db:"customer_name"`
	CustomerPhone string                `db:"customer_phone"`
	Email         string                `db:"email"`
	CheckIn       time.Time             `db:"check_in"`
	CheckOut      time.Time             `db:"check_out"`
	Adults        int                   `db:"adults"`
	Children      int                   `db:"children"`
	Rooms         int                   `db:"rooms"`
	MealPlan      pricingModel.MealPlan `db:"meal_plan"`
	TotalPrice    float64               `db:"total_price"`
	BookingDate   *time.Time            `db:"booking_date"`
	model.Metadata
}

// CreationTime is the booking date, or the check-in when no booking date was
// recorded. Reports bucket on this.
func (b *Booking) CreationTime() time.Time {
	if b.BookingDate != nil && !b.BookingDate.IsZero() {
		return *b.BookingDate
	}

	return b.CheckIn
}

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
)

// ClassifyStatus places now relative to the stay. Both ends of the stay
// count as ongoing.
func ClassifyStatus(checkIn, checkOut, now time.Time) Status {
	switch {
	case now.Before(checkIn):
		return StatusUpcoming
	case !now.After(checkOut):
		return StatusOngoing
	default:
		return StatusCompleted
	}
}

func (b *Booking) Status(now time.Time) Status {
	return ClassifyStatus(b.CheckIn, b.CheckOut, now)
}
