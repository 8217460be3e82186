package service

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"staybook/config"
	"staybook/infras/otel"
	"staybook/internal/domains/booking/model"
	"staybook/internal/domains/booking/model/dto"
	"staybook/internal/domains/booking/repository"
	"staybook/internal/domains/pricing/calculator"
	pricingService "staybook/internal/domains/pricing/service"
	"staybook/permissions"
	"staybook/shared"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/event"
	"staybook/shared/failure"
	"staybook/shared/timezone"
)

const (
	errBookingNotFound      = "booking not found"
	errNoPropertyBookings   = "no bookings found for this homestay"
	errHomestayIDRequired   = "homestay_id is required"
	otelPriceMismatch       = "booking.price_mismatch"
	otelHomestayIDAttribute = "booking.homestay_id"

	// priceTolerance absorbs client side rounding to two decimals.
	priceTolerance = 0.01
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.ListFilter) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	ByProperty(ctx context.Context, homestayID string) ([]dto.BookingResponse, error)
}

type serviceImpl struct {
	repo    repository.Booking
	pricing pricingService.Pricing
	broker  event.Broker
	clock   timezone.Clock
	cfg     *config.Config
	otel    otel.Otel
}

func New(repo repository.Booking, pricing pricingService.Pricing, broker event.Broker, clock timezone.Clock, cfg *config.Config, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:    repo,
		pricing: pricing,
		broker:  broker,
		clock:   clock,
		cfg:     cfg,
		otel:    otel,
	}
}

// Create stores a booking at the price the client submitted. The server side
// quote is only compared and a mismatch is logged, not rejected.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelHomestayIDAttribute, req.HomestayID)

	checkIn, checkOut, err := req.Stay()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	homestay, err := s.pricing.Rate(ctx, req.HomestayID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	nights, err := calculator.Nights(checkIn, checkOut)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	quote, err := calculator.Compute(float64(homestay.Price), req.Rooms, nights, req.Adults, req.MealPlan.OrDefault())
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	mismatch := math.Abs(quote.Total-req.TotalPrice) > priceTolerance
	scope.SetAttribute(otelPriceMismatch, mismatch)

	if mismatch {
		log.Warn().
			Str("homestay_id", req.HomestayID).
			Float64("submitted", req.TotalPrice).
			Float64("quoted", quote.Total).
			Msg("booking total differs from server quote")
	}

	now := s.clock.Now()
	booking := req.ToModel(homestay.Name, checkIn, checkOut, now)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	go s.publishCreated(context.WithoutCancel(ctx), booking)

	res.FromModel(booking, now)

	return res, nil
}

func (s *serviceImpl) publishCreated(ctx context.Context, booking model.Booking) {
	if err := s.broker.Publish(ctx, s.cfg.Event.BookingTopic, booking.ID, dto.NewBookingCreated(booking)); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking created event")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, listFilter dto.ListFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.Sanitize(model.FieldBookingDate, model.FieldBookingDate, model.FieldCheckIn, model.FieldCheckOut, model.FieldTotalPrice)

	filter, err := listFilter.ToFilterGroup()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit, s.clock.Now())

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(errBookingNotFound) // nolint:wrapcheck
	}

	res.FromModel(booking, s.clock.Now())

	return res, nil
}

// ByProperty lists every booking of one homestay, latest check-in first.
// Anyone other than an admin may only read the homestay they signed in as.
func (s *serviceImpl) ByProperty(ctx context.Context, homestayID string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ByProperty")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if homestayID == constant.Empty {
		return nil, failure.BadRequestFromString(errHomestayIDRequired) // nolint:wrapcheck
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	subject, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if !permissions.Role(role).IsAdmin() && subject != homestayID {
		return nil, failure.ResourceRestrictedError
	}

	params := gDto.QueryParams{SortBy: model.FieldCheckIn, SortDir: gDto.SortDirDesc}

	bookings, err := s.repo.GetAll(ctx, params, shared.FilterByField(model.FieldHomestayID, homestayID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get homestay bookings")

		return nil, fmt.Errorf("failed to get homestay bookings: %w", err)
	}

	if len(bookings) == 0 {
		return nil, failure.NotFound(errNoPropertyBookings) // nolint:wrapcheck
	}

	return dto.FromModels(bookings, s.clock.Now()), nil
}
