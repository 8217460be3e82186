package dto

import (
	"time"

	"staybook/internal/domains/pricing/model"
	"staybook/shared/timezone"
)

type QuoteRequest struct {
	HomestayID string         `json:"homestay_id" validate:"required,max=50"`
	CheckIn    string         `json:"check_in"    validate:"required,staydate"`
	CheckOut   string         `json:"check_out"   validate:"required,staydate"`
	Rooms      int            `json:"rooms"       validate:"gte=1"`
	Adults     int            `json:"adults"      validate:"gte=0"`
	MealPlan   model.MealPlan `json:"meal_plan"   validate:"omitempty,oneof=none breakfast all"`
}

func (q *QuoteRequest) Stay() (checkIn, checkOut time.Time, err error) {
	if checkIn, err = timezone.ParseDate(q.CheckIn); err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = timezone.ParseDate(q.CheckOut)

	return checkIn, checkOut, err
}

type QuoteResponse struct {
	HomestayID  string         `json:"homestay_id"`
	NightlyRate float64        `json:"nightly_rate"`
	Nights      int            `json:"nights"`
	Rooms       int            `json:"rooms"`
	Adults      int            `json:"adults"`
	MealPlan    model.MealPlan `json:"meal_plan"`
	RoomCost    float64        `json:"room_cost"`
	MealCost    float64        `json:"meal_cost"`
	Subtotal    float64        `json:"subtotal"`
	Tax         float64        `json:"tax"`
	Total       float64        `json:"total"`
}

func (r *QuoteResponse) FromQuote(quote model.Quote) {
	r.Nights = quote.Nights
	r.RoomCost = quote.RoomCost
	r.MealCost = quote.MealCost
	r.Subtotal = quote.Subtotal
	r.Tax = quote.Tax
	r.Total = quote.Total
}
