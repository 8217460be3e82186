package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"staybook/infras/otel"
	bookingModel "staybook/internal/domains/booking/model"
	bookingDto "staybook/internal/domains/booking/model/dto"
	bookingRepo "staybook/internal/domains/booking/repository"
	homestayModel "staybook/internal/domains/homestay/model"
	homestayRepo "staybook/internal/domains/homestay/repository"
	"staybook/internal/domains/report/aggregate"
	"staybook/internal/domains/report/model/dto"
	"staybook/permissions"
	"staybook/shared"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
	"staybook/shared/timezone"
)

const (
	errHomestayNotFound = "homestay not found"
	errInvalidYear      = "year must be a number between 1970 and 9999"
	errOwnerRequired    = "owner session has no homestay"

	minYear = 1970
	maxYear = 9999
)

type Report interface {
	AdminDashboard(ctx context.Context) (dto.DashboardResponse, error)
	Monthly(ctx context.Context, year string) (dto.MonthlyResponse, error)
	HomestayDetails(ctx context.Context, homestayID string) (dto.HomestayDetailsResponse, error)
	OwnerDashboard(ctx context.Context, year string) (dto.OwnerDashboardResponse, error)
}

type serviceImpl struct {
	bookingRepo  bookingRepo.Booking
	homestayRepo homestayRepo.Homestay
	clock        timezone.Clock
	otel         otel.Otel
}

func New(bookingRepo bookingRepo.Booking, homestayRepo homestayRepo.Homestay, clock timezone.Clock, otel otel.Otel) Report {
	return &serviceImpl{
		bookingRepo:  bookingRepo,
		homestayRepo: homestayRepo,
		clock:        clock,
		otel:         otel,
	}
}

func (s *serviceImpl) AdminDashboard(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.AdminDashboard")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		bookings  []bookingModel.Booking
		homestays []homestayModel.Homestay
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		bookings, err = s.allBookings(groupCtx, gDto.FilterGroup{})

		return err
	})

	group.Go(func() (err error) {
		homestays, err = s.homestayRepo.GetAll(groupCtx, gDto.QueryParams{}, gDto.FilterGroup{})
		if err != nil {
			log.Error().Err(err).Msg("failed to get homestays")

			return fmt.Errorf("failed to get homestays: %w", err)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		return res, err //nolint:wrapcheck
	}

	now := s.clock.Now()
	res.FromSummary(aggregate.Dashboard(bookings, homestays, now), now)

	return res, nil
}

func (s *serviceImpl) Monthly(ctx context.Context, year string) (res dto.MonthlyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Monthly")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	target, err := s.year(year)
	if err != nil {
		return res, err
	}

	bookings, err := s.allBookings(ctx, gDto.FilterGroup{})
	if err != nil {
		return res, err
	}

	res.FromReport(aggregate.Monthly(bookings, target))

	return res, nil
}

func (s *serviceImpl) HomestayDetails(ctx context.Context, homestayID string) (res dto.HomestayDetailsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.HomestayDetails")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, _, err = s.details(ctx, homestayID)

	return res, err
}

// OwnerDashboard reports on the homestay named by the owner's token subject.
// Any other role is refused, since its subject is not a homestay key.
func (s *serviceImpl) OwnerDashboard(ctx context.Context, year string) (res dto.OwnerDashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.OwnerDashboard")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	homestayID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if homestayID == constant.Empty {
		return res, failure.Unauthorized(errOwnerRequired) // nolint:wrapcheck
	}

	if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); permissions.Role(role) != permissions.RoleOwner {
		return res, failure.ResourceRestrictedError
	}

	target, err := s.year(year)
	if err != nil {
		return res, err
	}

	details, bookings, err := s.details(ctx, homestayID)
	if err != nil {
		return res, err
	}

	now := s.clock.Now()
	counts := aggregate.StatusCounts(bookings, now)

	res.HomestayDetailsResponse = details
	res.Monthly.FromReport(aggregate.Monthly(bookings, target))
	res.Upcoming = bookingDto.FromModels(aggregate.Upcoming(bookings, now, aggregate.UpcomingLimit), now)
	res.CurrentGuests = counts[bookingModel.StatusOngoing]
	res.StatusCounts = counts

	return res, nil
}

func (s *serviceImpl) details(ctx context.Context, homestayID string) (res dto.HomestayDetailsResponse, bookings []bookingModel.Booking, err error) {
	homestay, err := s.homestayRepo.Get(ctx, shared.FilterByField(homestayModel.FieldHomestayID, homestayID, homestayModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("homestay_id", homestayID).Msg("failed to get homestay")

		return res, nil, fmt.Errorf("failed to get homestay: %w", err)
	}

	if homestay.ID == constant.Empty {
		return res, nil, failure.NotFound(errHomestayNotFound) // nolint:wrapcheck
	}

	bookings, err = s.allBookings(ctx, shared.FilterByField(bookingModel.FieldHomestayID, homestayID, bookingModel.TableName))
	if err != nil {
		return res, nil, err
	}

	now := s.clock.Now()

	res.Homestay.FromModel(homestay)
	res.Bookings = bookingDto.FromModels(bookings, now)
	res.Summary.FromSummary(aggregate.ForHomestay(bookings, now))

	return res, bookings, nil
}

// allBookings reads every matching booking, latest check-in first.
func (s *serviceImpl) allBookings(ctx context.Context, filter gDto.FilterGroup) ([]bookingModel.Booking, error) {
	params := gDto.QueryParams{SortBy: bookingModel.FieldCheckIn, SortDir: gDto.SortDirDesc}

	bookings, err := s.bookingRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return bookings, nil
}

// year defaults to the current year in the application timezone.
func (s *serviceImpl) year(value string) (int, error) {
	if value == constant.Empty {
		return timezone.ToAppTime(s.clock.Now()).Year(), nil
	}

	year, err := shared.ConvertStringToInt(value)
	if err != nil || year < minYear || year > maxYear {
		return 0, failure.BadRequestFromString(errInvalidYear) // nolint:wrapcheck
	}

	return year, nil
}
