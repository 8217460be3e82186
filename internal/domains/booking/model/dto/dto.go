package dto

import (
	"time"

	"github.com/google/uuid"

	"staybook/internal/domains/booking/model"
	"staybook/internal/domains/pricing/calculator"
	pricingModel "staybook/internal/domains/pricing/model"
	"staybook/shared"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	gModel "staybook/shared/model"
	"staybook/shared/timezone"
)

type CreateBookingRequest struct {
	HomestayID    string                `json:"homestay_id"    validate:"required,max=50"`
	CustomerName  string                `json:"customer_name"  validate:"required,max=100"`
	CustomerPhone string                `json:"customer_phone" validate:"required,numeric,min=7,max=15"`
	Email         string                `json:"email"          validate:"required,email,max=100"`
	CheckIn       string                `json:"check_in"       validate:"required,staydate"`
	CheckOut      string                `json:"check_out"      validate:"required,staydate"`
	Adults        int                   `json:"adults"         validate:"gte=1"`
	Children      int                   `json:"children"       validate:"gte=0"`
	Rooms         int                   `json:"rooms"          validate:"gte=1"`
	MealPlan      pricingModel.MealPlan `json:"meal_plan"      validate:"omitempty,oneof=none breakfast all"`
	TotalPrice    float64               `json:"total_price"    validate:"gt=0"`
}

// Stay parses the check-in and check-out dates.
func (c *CreateBookingRequest) Stay() (checkIn, checkOut time.Time, err error) {
	if checkIn, err = timezone.ParseDate(c.CheckIn); err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = timezone.ParseDate(c.CheckOut)

	return checkIn, checkOut, err
}

func (c *CreateBookingRequest) ToModel(homestayName string, checkIn, checkOut, now time.Time) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		HomestayID:    c.HomestayID,
		HomestayName:  homestayName,
		CustomerName:  c.CustomerName,
		CustomerPhone: c.CustomerPhone,
		Email:         c.Email,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Adults:        c.Adults,
		Children:      c.Children,
		Rooms:         c.Rooms,
		MealPlan:      c.MealPlan.OrDefault(),
		TotalPrice:    c.TotalPrice,
		BookingDate:   &now,
		Metadata:      gModel.NewMetadata(constant.ContextGuest, now),
	}
}

type BookingResponse struct {
	ID            string                `json:"id"`
	HomestayID    string                `json:"homestay_id"`
	HomestayName  string                `json:"homestay_name"`
	CustomerName  string                `json:"customer_name"`
	CustomerPhone string                `json:"customer_phone"`
	Email         string                `json:"email"`
	CheckIn       string                `json:"check_in"`
	CheckOut      string                `json:"check_out"`
	Nights        int                   `json:"nights"`
	Adults        int                   `json:"adults"`
	Children      int                   `json:"children"`
	Rooms         int                   `json:"rooms"`
	MealPlan      pricingModel.MealPlan `json:"meal_plan"`
	TotalPrice    float64               `json:"total_price"`
	BookingDate   string                `json:"booking_date"`
	Status        model.Status          `json:"status"`
}

// FromModel fills the response; status is derived against now.
func (r *BookingResponse) FromModel(booking model.Booking, now time.Time) {
	r.ID = booking.ID
	r.HomestayID = booking.HomestayID
	r.HomestayName = booking.HomestayName
	r.CustomerName = booking.CustomerName
	r.CustomerPhone = booking.CustomerPhone
	r.Email = booking.Email
	r.CheckIn = timezone.Format(booking.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(booking.CheckOut, constant.DateFormat)
	r.Nights, _ = calculator.Nights(booking.CheckIn, booking.CheckOut)
	r.Adults = booking.Adults
	r.Children = booking.Children
	r.Rooms = booking.Rooms
	r.MealPlan = booking.MealPlan
	r.TotalPrice = booking.TotalPrice
	r.BookingDate = timezone.Format(booking.CreationTime(), constant.DateFormat)
	r.Status = booking.Status(now)
}

func FromModels(bookings []model.Booking, now time.Time) []BookingResponse {
	res := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking, now)
	}

	return res
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int, now time.Time) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Bookings = FromModels(models, now)
}

// ListFilter narrows GET /bookings. From and To bound check-in, To exclusive.
type ListFilter struct {
	HomestayID string `json:"homestay_id" validate:"omitempty,max=50"`
	From       string `json:"from"        validate:"omitempty,staydate"`
	To         string `json:"to"          validate:"omitempty,staydate"`
}

func (f *ListFilter) ToFilterGroup() (gDto.FilterGroup, error) {
	filters := []gDto.Filter{{
		Field:    model.FieldHomestayID,
		Value:    f.HomestayID,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	}}

	if f.From != constant.Empty {
		from, err := timezone.ParseDate(f.From)
		if err != nil {
			return gDto.FilterGroup{}, err
		}

		filters = append(filters, gDto.Filter{
			ArgName:  "check_in_from",
			Field:    model.FieldCheckIn,
			Value:    from,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if f.To != constant.Empty {
		to, err := timezone.ParseDate(f.To)
		if err != nil {
			return gDto.FilterGroup{}, err
		}

		filters = append(filters, gDto.Filter{
			ArgName:  "check_in_to",
			Field:    model.FieldCheckIn,
			Value:    to,
			Operator: gDto.FilterOperatorLess,
			Table:    model.TableName,
		})
	}

	return gDto.And(filters...), nil
}

// BookingCreated is published after a booking is stored.
type BookingCreated struct {
	ID           string    `json:"id"`
	HomestayID   string    `json:"homestay_id"`
	HomestayName string    `json:"homestay_name"`
	CustomerName string    `json:"customer_name"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	TotalPrice   float64   `json:"total_price"`
	BookingDate  time.Time `json:"booking_date"`
}

func NewBookingCreated(booking model.Booking) BookingCreated {
	return BookingCreated{
		ID:           booking.ID,
		HomestayID:   booking.HomestayID,
		HomestayName: booking.HomestayName,
		CustomerName: booking.CustomerName,
		CheckIn:      booking.CheckIn,
		CheckOut:     booking.CheckOut,
		TotalPrice:   booking.TotalPrice,
		BookingDate:  booking.CreationTime(),
	}
}
