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

	"staybook/config"
	"staybook/infras/otel/mocks"
	bookingMocks "staybook/internal/domains/booking/mocks"
	"staybook/internal/domains/booking/model"
	"staybook/internal/domains/booking/model/dto"
	"staybook/internal/domains/booking/service"
	homestayModel "staybook/internal/domains/homestay/model"
	pricingMocks "staybook/internal/domains/pricing/mocks"
	pricingModel "staybook/internal/domains/pricing/model"
	"staybook/permissions"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	eventMocks "staybook/shared/event/mocks"
	"staybook/shared/failure"
	"staybook/shared/timezone"
)

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo    *bookingMocks.MockBooking
	pricing *pricingMocks.MockPricing
	broker  *eventMocks.MockBroker
	svc     service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Event.BookingTopic = "booking.created"

	f := fixture{
		repo:    bookingMocks.NewMockBooking(ctrl),
		pricing: pricingMocks.NewMockPricing(ctrl),
		broker:  eventMocks.NewMockBroker(ctrl),
	}
	f.svc = service.New(f.repo, f.pricing, f.broker, timezone.FixedClock(now), cfg, mocks.NewOtel())

	return f
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		HomestayID:    "HS001",
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		Email:         "asha@example.com",
		CheckIn:       "2024-03-20",
		CheckOut:      "2024-03-22",
		Adults:        2,
		Rooms:         1,
		MealPlan:      pricingModel.MealPlanBreakfast,
		TotalPrice:    2940,
	}
}

func TestBookingService_Create(t *testing.T) {
	homestay := homestayModel.Homestay{ID: "uuid-1", HomestayID: "HS001", Name: "Hillside", Price: 1000}

	tests := []struct {
		name      string
		req       func() dto.CreateBookingRequest
		setupMock func(f fixture, published chan<- dto.BookingCreated)
		publishes bool
		wantCode  int
	}{
		{
			name: "stores booking and publishes event",
			req:  createRequest,
			setupMock: func(f fixture, published chan<- dto.BookingCreated) {
				f.pricing.EXPECT().Rate(gomock.Any(), "HS001").Return(homestay, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b model.Booking) error {
					assert.Equal(t, "Hillside", b.HomestayName)
					assert.Equal(t, pricingModel.MealPlanBreakfast, b.MealPlan)
					assert.InDelta(t, 2940, b.TotalPrice, 1e-9)
					require.NotNil(t, b.BookingDate)
					assert.True(t, b.BookingDate.Equal(now))

					return nil
				})
				f.broker.EXPECT().Publish(gomock.Any(), "booking.created", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, payload any) error {
						published <- payload.(dto.BookingCreated)

						return nil
					})
			},
			publishes: true,
		},
		{
			name: "submitted total differing from quote is still stored",
			req: func() dto.CreateBookingRequest {
				req := createRequest()
				req.TotalPrice = 100

				return req
			},
			setupMock: func(f fixture, published chan<- dto.BookingCreated) {
				f.pricing.EXPECT().Rate(gomock.Any(), "HS001").Return(homestay, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, b model.Booking) error {
					assert.InDelta(t, 100, b.TotalPrice, 1e-9)

					return nil
				})
				f.broker.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, payload any) error {
						published <- payload.(dto.BookingCreated)

						return nil
					})
			},
			publishes: true,
		},
		{
			name: "publish failure does not fail the booking",
			req:  createRequest,
			setupMock: func(f fixture, published chan<- dto.BookingCreated) {
				f.pricing.EXPECT().Rate(gomock.Any(), gomock.Any()).Return(homestay, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.broker.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _, _ string, payload any) error {
						published <- payload.(dto.BookingCreated)

						return errors.New("broker down")
					})
			},
			publishes: true,
		},
		{
			name: "unknown homestay",
			req:  createRequest,
			setupMock: func(f fixture, _ chan<- dto.BookingCreated) {
				f.pricing.EXPECT().Rate(gomock.Any(), gomock.Any()).Return(homestayModel.Homestay{}, failure.NotFound("homestay not found"))
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "check out before check in",
			req: func() dto.CreateBookingRequest {
				req := createRequest()
				req.CheckOut = "2024-03-19"

				return req
			},
			setupMock: func(f fixture, _ chan<- dto.BookingCreated) {
				f.pricing.EXPECT().Rate(gomock.Any(), gomock.Any()).Return(homestay, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unparseable date",
			req: func() dto.CreateBookingRequest {
				req := createRequest()
				req.CheckIn = "20-03-2024"

				return req
			},
			setupMock: func(fixture, chan<- dto.BookingCreated) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error",
			req:  createRequest,
			setupMock: func(f fixture, _ chan<- dto.BookingCreated) {
				f.pricing.EXPECT().Rate(gomock.Any(), gomock.Any()).Return(homestay, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			published := make(chan dto.BookingCreated, 1)
			tt.setupMock(f, published)

			res, err := f.svc.Create(context.Background(), tt.req())

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, "HS001", res.HomestayID)
			assert.Equal(t, 2, res.Nights)
			assert.Equal(t, model.StatusUpcoming, res.Status)

			if tt.publishes {
				select {
				case event := <-published:
					assert.Equal(t, res.ID, event.ID)
					assert.Equal(t, "Hillside", event.HomestayName)
				case <-time.After(time.Second):
					t.Fatal("booking created event was not published")
				}
			}
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	checkIn := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	bookings := []model.Booking{
		{ID: "b1", HomestayID: "HS001", CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2), TotalPrice: 2100},
		{ID: "b2", HomestayID: "HS001", CheckIn: checkIn.AddDate(0, 0, 4), CheckOut: checkIn.AddDate(0, 0, 7), TotalPrice: 3150},
	}

	tests := []struct {
		name      string
		filter    dto.ListFilter
		setupMock func(f fixture)
		wantTotal int
		wantCode  int
	}{
		{
			name:   "filtered by homestay and date range",
			filter: dto.ListFilter{HomestayID: "HS001", From: "2024-03-01", To: "2024-04-01"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
						assert.Equal(t, model.FieldBookingDate, params.SortBy)
						assert.Len(t, filter.Filters, 3)

						return bookings, nil
					})
			},
			wantTotal: 2,
		},
		{
			name:     "invalid from date",
			filter:   dto.ListFilter{From: "March"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "count error",
			filter: dto.ListFilter{},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:   "get all error",
			filter: dto.ListFilter{},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
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

			res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, tt.filter)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalData)
			assert.Equal(t, 1, res.TotalPage)
			require.Len(t, res.Bookings, 2)
			assert.Equal(t, model.StatusCompleted, res.Bookings[0].Status)
			assert.Equal(t, model.StatusUpcoming, res.Bookings[1].Status)
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	checkIn := time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		setupMock  func(f fixture)
		wantStatus model.Status
		wantCode   int
	}{
		{
			name: "ongoing booking",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{ID: "b1", CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 3)}, nil)
			},
			wantStatus: model.StatusOngoing,
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), "b1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "b1", res.ID)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, 3, res.Nights)
		})
	}
}

func roleCtx(role permissions.Role, subject string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, string(role))

	return context.WithValue(ctx, constant.ContextKeyUserID, subject)
}

func TestBookingService_ByProperty(t *testing.T) {
	checkIn := time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC)
	bookings := []model.Booking{{ID: "b1", HomestayID: "HS001", CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 1)}}

	tests := []struct {
		name       string
		ctx        context.Context
		homestayID string
		setupMock  func(f fixture)
		wantCode   int
	}{
		{
			name:       "admin reads any homestay",
			ctx:        roleCtx(permissions.RoleAdmin, "admin-1"),
			homestayID: "HS001",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
						assert.Equal(t, model.FieldCheckIn, params.SortBy)
						assert.Equal(t, gDto.SortDirDesc, params.SortDir)

						return bookings, nil
					})
			},
		},
		{
			name:       "owner reads own homestay",
			ctx:        roleCtx(permissions.RoleOwner, "HS001"),
			homestayID: "HS001",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookings, nil)
			},
		},
		{
			name:       "owner cannot read another homestay",
			ctx:        roleCtx(permissions.RoleOwner, "HS002"),
			homestayID: "HS001",
			wantCode:   http.StatusForbidden,
		},
		{
			name:       "unknown role is treated like an owner",
			ctx:        roleCtx(permissions.Role("guest"), "HS002"),
			homestayID: "HS001",
			wantCode:   http.StatusForbidden,
		},
		{
			name:     "missing homestay id",
			ctx:      roleCtx(permissions.RoleAdmin, "admin-1"),
			wantCode: http.StatusBadRequest,
		},
		{
			name:       "no bookings",
			ctx:        roleCtx(permissions.RoleAdmin, "admin-1"),
			homestayID: "HS009",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:       "repository error",
			ctx:        roleCtx(permissions.RoleAdmin, "admin-1"),
			homestayID: "HS001",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
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

			res, err := f.svc.ByProperty(tt.ctx, tt.homestayID)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			require.Len(t, res, 1)
			assert.Equal(t, "b1", res[0].ID)
		})
	}
}
