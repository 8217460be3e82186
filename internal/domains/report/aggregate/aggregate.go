// Package aggregate derives report figures from booking sets. Every function
// is pure and total: empty input yields zero values, never an error. Month
// and year boundaries are taken in the application timezone.
package aggregate

import (
	"slices"
	"time"

	"staybook/internal/domains/booking/model"
	homestayModel "staybook/internal/domains/homestay/model"
	"staybook/shared/timezone"
)

const (
	RecentLimit   = 5
	UpcomingLimit = 5
)

type MonthlyReport struct {
	Year           int
	RevenueByMonth [12]float64
	CountByMonth   [12]int
}

// Monthly buckets bookings of year by creation month, January at index 0.
func Monthly(bookings []model.Booking, year int) MonthlyReport {
	report := MonthlyReport{Year: year}

	for i := range bookings {
		created := timezone.ToAppTime(bookings[i].CreationTime())
		if created.Year() != year {
			continue
		}

		month := created.Month() - 1
		report.RevenueByMonth[month] += bookings[i].TotalPrice
		report.CountByMonth[month]++
	}

	return report
}

type RecentBooking struct {
	Booking      model.Booking
	HomestayID   string
	HomestayName string
}

type DashboardSummary struct {
	TotalRevenue        float64
	CurrentMonthRevenue float64
	TotalHomestays      int
	TotalBookings       int
	RecentBookings      []RecentBooking
}

func Dashboard(bookings []model.Booking, homestays []homestayModel.Homestay, now time.Time) DashboardSummary {
	summary := DashboardSummary{
		TotalHomestays: len(homestays),
		TotalBookings:  len(bookings),
	}

	for i := range bookings {
		summary.TotalRevenue += bookings[i].TotalPrice

		if sameMonth(bookings[i].CreationTime(), now) {
			summary.CurrentMonthRevenue += bookings[i].TotalPrice
		}
	}

	for _, booking := range Recent(bookings, RecentLimit) {
		summary.RecentBookings = append(summary.RecentBookings, RecentBooking{
			Booking:      booking,
			HomestayID:   booking.HomestayID,
			HomestayName: booking.HomestayName,
		})
	}

	return summary
}

// Recent returns up to limit bookings, newest creation time first. Ties keep
// their input order.
func Recent(bookings []model.Booking, limit int) []model.Booking {
	sorted := slices.Clone(bookings)
	slices.SortStableFunc(sorted, func(a, b model.Booking) int {
		return b.CreationTime().Compare(a.CreationTime())
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	return sorted
}

type HomestaySummary struct {
	TotalBookings     int
	TotalRevenue      float64
	ThisMonthBookings int
	ThisMonthRevenue  float64
	// LatestBooking is the check-in of the most recently created booking.
	LatestBooking *time.Time
}

func ForHomestay(bookings []model.Booking, now time.Time) HomestaySummary {
	summary := HomestaySummary{TotalBookings: len(bookings)}

	var latest *model.Booking

	for i := range bookings {
		booking := &bookings[i]
		summary.TotalRevenue += booking.TotalPrice

		if sameMonth(booking.CreationTime(), now) {
			summary.ThisMonthBookings++
			summary.ThisMonthRevenue += booking.TotalPrice
		}

		if latest == nil || booking.CreationTime().After(latest.CreationTime()) {
			latest = booking
		}
	}

	if latest != nil {
		checkIn := latest.CheckIn
		summary.LatestBooking = &checkIn
	}

	return summary
}

// Upcoming returns up to limit bookings that have not started, earliest
// check-in first.
func Upcoming(bookings []model.Booking, now time.Time, limit int) []model.Booking {
	var upcoming []model.Booking

	for i := range bookings {
		if bookings[i].Status(now) == model.StatusUpcoming {
			upcoming = append(upcoming, bookings[i])
		}
	}

	slices.SortStableFunc(upcoming, func(a, b model.Booking) int {
		return a.CheckIn.Compare(b.CheckIn)
	})

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}

	return upcoming
}

// StatusCounts has an entry for every status, zero included.
func StatusCounts(bookings []model.Booking, now time.Time) map[model.Status]int {
	counts := map[model.Status]int{
		model.StatusUpcoming:  0,
		model.StatusOngoing:   0,
		model.StatusCompleted: 0,
	}

	for i := range bookings {
		counts[bookings[i].Status(now)]++
	}

	return counts
}

func sameMonth(t, now time.Time) bool {
	t, now = timezone.ToAppTime(t), timezone.ToAppTime(now)

	return t.Year() == now.Year() && t.Month() == now.Month()
}
