package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"staybook/infras/otel"
	homestayModel "staybook/internal/domains/homestay/model"
	homestayRepo "staybook/internal/domains/homestay/repository"
	"staybook/internal/domains/pricing/calculator"
	"staybook/internal/domains/pricing/model/dto"
	"staybook/shared"
	"staybook/shared/constant"
	"staybook/shared/failure"
)

// Pricing quotes a prospective stay against the homestay's current rate.
type Pricing interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	Rate(ctx context.Context, homestayID string) (homestayModel.Homestay, error)
}

type serviceImpl struct {
	homestayRepo homestayRepo.Homestay
	otel         otel.Otel
}

func New(homestayRepo homestayRepo.Homestay, otel otel.Otel) Pricing {
	return &serviceImpl{
		homestayRepo: homestayRepo,
		otel:         otel,
	}
}

// Rate resolves the homestay whose price is the nightly rate. An unknown key
// is a not-found failure, never a zero rate.
func (s *serviceImpl) Rate(ctx context.Context, homestayID string) (homestay homestayModel.Homestay, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.Rate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	homestay, err = s.homestayRepo.Get(ctx, shared.FilterByField(homestayModel.FieldHomestayID, homestayID, homestayModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("homestay_id", homestayID).Msg("failed to get homestay rate")

		return homestay, fmt.Errorf("failed to get homestay: %w", err)
	}

	if homestay.ID == constant.Empty {
		return homestay, failure.NotFound("homestay not found") // nolint:wrapcheck
	}

	return homestay, nil
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := req.Stay()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	nights, err := calculator.Nights(checkIn, checkOut)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	homestay, err := s.Rate(ctx, req.HomestayID)
	if err != nil {
		return res, err
	}

	mealPlan := req.MealPlan.OrDefault()

	quote, err := calculator.Compute(float64(homestay.Price), req.Rooms, nights, req.Adults, mealPlan)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	res = dto.QuoteResponse{
		HomestayID:  homestay.HomestayID,
		NightlyRate: float64(homestay.Price),
		Rooms:       req.Rooms,
		Adults:      req.Adults,
		MealPlan:    mealPlan,
	}
	res.FromQuote(quote)

	return res, nil
}
