package dto

import (
	"time"

	bookingModel "staybook/internal/domains/booking/model"
	bookingDto "staybook/internal/domains/booking/model/dto"
	homestayDto "staybook/internal/domains/homestay/model/dto"
	"staybook/internal/domains/report/aggregate"
	"staybook/shared/constant"
	"staybook/shared/timezone"
)

type HomestayRef struct {
	HomestayID string `json:"homestay_id"`
	Name       string `json:"name"`
}

type RecentBookingResponse struct {
	bookingDto.BookingResponse
	Homestay HomestayRef `json:"homestay"`
}

type DashboardResponse struct {
	TotalRevenue        float64                 `json:"total_revenue"`
	CurrentMonthRevenue float64                 `json:"current_month_revenue"`
	TotalHomestays      int                     `json:"total_homestays"`
	TotalBookings       int                     `json:"total_bookings"`
	RecentBookings      []RecentBookingResponse `json:"recent_bookings"`
}

func (r *DashboardResponse) FromSummary(summary aggregate.DashboardSummary, now time.Time) {
	r.TotalRevenue = summary.TotalRevenue
	r.CurrentMonthRevenue = summary.CurrentMonthRevenue
	r.TotalHomestays = summary.TotalHomestays
	r.TotalBookings = summary.TotalBookings
	r.RecentBookings = make([]RecentBookingResponse, len(summary.RecentBookings))

	for i, recent := range summary.RecentBookings {
		r.RecentBookings[i].FromModel(recent.Booking, now)
		r.RecentBookings[i].Homestay = HomestayRef{HomestayID: recent.HomestayID, Name: recent.HomestayName}
	}
}

type MonthlyResponse struct {
	Year     int         `json:"year"`
	Months   [12]string  `json:"months"`
	Revenue  [12]float64 `json:"revenue"`
	Bookings [12]int     `json:"bookings"`
}

func (r *MonthlyResponse) FromReport(report aggregate.MonthlyReport) {
	r.Year = report.Year
	r.Revenue = report.RevenueByMonth
	r.Bookings = report.CountByMonth

	for i := range r.Months {
		r.Months[i] = time.Month(i + 1).String()[:3]
	}
}

type HomestaySummaryResponse struct {
	TotalBookings     int     `json:"total_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	ThisMonthBookings int     `json:"this_month_bookings"`
	ThisMonthRevenue  float64 `json:"this_month_revenue"`
	LatestBooking     *string `json:"latest_booking"`
}

func (r *HomestaySummaryResponse) FromSummary(summary aggregate.HomestaySummary) {
	r.TotalBookings = summary.TotalBookings
	r.TotalRevenue = summary.TotalRevenue
	r.ThisMonthBookings = summary.ThisMonthBookings
	r.ThisMonthRevenue = summary.ThisMonthRevenue
	r.LatestBooking = nil

	if summary.LatestBooking != nil {
		latest := timezone.Format(*summary.LatestBooking, constant.DateFormat)
		r.LatestBooking = &latest
	}
}

type HomestayDetailsResponse struct {
	Homestay homestayDto.HomestayResponse `json:"homestay"`
	Bookings []bookingDto.BookingResponse `json:"bookings"`
	Summary  HomestaySummaryResponse      `json:"summary"`
}

type OwnerDashboardResponse struct {
	HomestayDetailsResponse
	Monthly       MonthlyResponse              `json:"monthly"`
	Upcoming      []bookingDto.BookingResponse `json:"upcoming"`
	CurrentGuests int                          `json:"current_guests"`
	StatusCounts  map[bookingModel.Status]int  `json:"status_counts"`
}
