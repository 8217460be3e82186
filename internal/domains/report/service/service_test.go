package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"staybook/infras/otel/mocks"
	bookingMocks "staybook/internal/domains/booking/mocks"
	bookingModel "staybook/internal/domains/booking/model"
	homestayMocks "staybook/internal/domains/homestay/mocks"
	homestayModel "staybook/internal/domains/homestay/model"
	"staybook/internal/domains/report/service"
	"staybook/permissions"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
	"staybook/shared/timezone"
)

var now = time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)

type fixture struct {
	bookingRepo  *bookingMocks.MockBooking
	homestayRepo *homestayMocks.MockHomestay
	svc          service.Report
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		bookingRepo:  bookingMocks.NewMockBooking(ctrl),
		homestayRepo: homestayMocks.NewMockHomestay(ctrl),
	}
	f.svc = service.New(f.bookingRepo, f.homestayRepo, timezone.FixedClock(now), mocks.NewOtel())

	return f
}

func stay(id, homestayID string, total float64, created, checkIn time.Time, nights int) bookingModel.Booking {
	return bookingModel.Booking{
		ID:          id,
		HomestayID:  homestayID,
		CheckIn:     checkIn,
		CheckOut:    checkIn.AddDate(0, 0, nights),
		TotalPrice:  total,
		BookingDate: &created,
	}
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 12, 0, 0, 0, time.UTC)
}

var (
	hillside = homestayModel.Homestay{ID: "uuid-1", HomestayID: "HS001", Name: "Hillside", Price: 1000}
	bookings = []bookingModel.Booking{
		stay("b1", "HS001", 2100, day(time.May, 2), day(time.June, 10), 2),
		stay("b2", "HS001", 3150, day(time.May, 10), day(time.May, 19), 3),
		stay("b3", "HS001", 1050, day(time.March, 12), day(time.April, 1), 1),
		stay("b4", "HS001", 1050, day(time.April, 12), day(time.May, 25), 1),
	}
)

func TestReportService_AdminDashboard(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "summary over all bookings",
			setupMock: func(f fixture) {
				f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings, nil)
				f.homestayRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]homestayModel.Homestay{hillside}, nil)
			},
		},
		{
			name: "booking repository error",
			setupMock: func(f fixture) {
				f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
				f.homestayRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "homestay repository error",
			setupMock: func(f fixture) {
				f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings, nil).AnyTimes()
				f.homestayRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.AdminDashboard(context.Background())

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, 7350, res.TotalRevenue, 1e-9)
			assert.InDelta(t, 5250, res.CurrentMonthRevenue, 1e-9)
			assert.Equal(t, 1, res.TotalHomestays)
			assert.Equal(t, 4, res.TotalBookings)
			require.Len(t, res.RecentBookings, 4)
			assert.Equal(t, "b2", res.RecentBookings[0].ID)
			assert.Equal(t, "Hillside", res.RecentBookings[0].Homestay.Name)
			assert.Equal(t, bookingModel.StatusOngoing, res.RecentBookings[0].Status)
		})
	}
}

func TestReportService_Monthly(t *testing.T) {
	tests := []struct {
		name      string
		year      string
		setupMock func(f fixture)
		wantYear  int
		wantCode  int
	}{
		{
			name: "defaults to current year",
			setupMock: func(f fixture) {
				f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings, nil)
			},
			wantYear: 2024,
		},
		{
			name: "explicit year",
			year: "2024",
			setupMock: func(f fixture) {
				f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings, nil)
			},
			wantYear: 2024,
		},
		{name: "non numeric year", year: "twenty", wantCode: http.StatusBadRequest},
		{name: "year out of range", year: "400", wantCode: http.StatusBadRequest},
		{
			name: "repository error",
			year: "2024",
			setupMock: func(f fixture) {
				f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.Monthly(context.Background(), tt.year)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, res.Year)
			assert.Equal(t, "Jan", res.Months[0])
			assert.Equal(t, "Dec", res.Months[11])
			assert.InDelta(t, 1050, res.Revenue[2], 1e-9)
			assert.InDelta(t, 1050, res.Revenue[3], 1e-9)
			assert.InDelta(t, 5250, res.Revenue[4], 1e-9)
			assert.Equal(t, 2, res.Bookings[4])
		})
	}
}

func TestReportService_HomestayDetails(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "homestay with bookings",
			setupMock: func(f fixture) {
				f.homestayRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hillside, nil)
				f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]bookingModel.Booking, error) {
						assert.Equal(t, bookingModel.FieldCheckIn, params.SortBy)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)
						require.Len(t, filter.Filters, 1)

						return bookings, nil
					})
			},
		},
		{
			name: "homestay not found",
			setupMock: func(f fixture) {
				f.homestayRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(homestayModel.Homestay{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "booking repository error",
			setupMock: func(f fixture) {
				f.homestayRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hillside, nil)
				f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.HomestayDetails(context.Background(), "HS001")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Hillside", res.Homestay.Name)
			assert.Len(t, res.Bookings, 4)
			assert.Equal(t, 4, res.Summary.TotalBookings)
			assert.Equal(t, 2, res.Summary.ThisMonthBookings)
			assert.InDelta(t, 5250, res.Summary.ThisMonthRevenue, 1e-9)
			require.NotNil(t, res.Summary.LatestBooking)
			assert.Equal(t, timezone.Format(day(time.May, 19), constant.DateFormat), *res.Summary.LatestBooking)
		})
	}
}

func TestReportService_OwnerDashboard(t *testing.T) {
	withSubject := func(role permissions.Role, subject string) context.Context {
		ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, string(role))

		return context.WithValue(ctx, constant.ContextKeyUserID, subject)
	}
	ownerCtx := withSubject(permissions.RoleOwner, "HS001")

	tests := []struct {
		name      string
		ctx       context.Context
		year      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "owner dashboard",
			ctx:  ownerCtx,
			setupMock: func(f fixture) {
				f.homestayRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hillside, nil)
				f.bookingRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings, nil)
			},
		},
		{
			name:     "missing owner subject",
			ctx:      context.Background(),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "api key caller is not an owner",
			ctx:      withSubject(permissions.RoleSuperAdmin, "system"),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "admin is not an owner",
			ctx:      withSubject(permissions.RoleAdmin, "admin-1"),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "bad year",
			ctx:      ownerCtx,
			year:     "400",
			wantCode: http.StatusBadRequest,
		},
		{
			name: "homestay removed",
			ctx:  ownerCtx,
			setupMock: func(f fixture) {
				f.homestayRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(homestayModel.Homestay{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.OwnerDashboard(tt.ctx, tt.year)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "HS001", res.Homestay.HomestayID)
			assert.Equal(t, 2024, res.Monthly.Year)
			assert.Equal(t, 1, res.CurrentGuests)
			assert.Equal(t, 2, res.StatusCounts[bookingModel.StatusUpcoming])
			assert.Equal(t, 1, res.StatusCounts[bookingModel.StatusCompleted])
			require.Len(t, res.Upcoming, 2)
			assert.Equal(t, "b4", res.Upcoming[0].ID)
			assert.Equal(t, "b1", res.Upcoming[1].ID)
		})
	}
}
