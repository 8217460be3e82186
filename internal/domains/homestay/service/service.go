package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"staybook/infras/otel"
	"staybook/infras/s3"
	bookingModel "staybook/internal/domains/booking/model"
	bookingRepo "staybook/internal/domains/booking/repository"
	"staybook/internal/domains/homestay/model"
	"staybook/internal/domains/homestay/model/dto"
	"staybook/internal/domains/homestay/repository"
	"staybook/shared"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
	gRepo "staybook/shared/repository"
	"staybook/shared/timezone"
)

const (
	errHomestayNotFound     = "homestay not found"
	errHomestayExists       = "homestay with this homestay_id already exists"
	errHomestayHasBookings  = "cannot delete homestay with existing bookings"
	errEmptyUpdate          = "update request cannot be empty"
	otelHomestayIDAttribute = "homestay.id"
)

type Homestay interface {
	Create(ctx context.Context, req dto.CreateHomestayRequest) (dto.HomestayResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, location string) (dto.GetHomestaysResponse, error)
	Get(ctx context.Context, homestayID string) (dto.HomestayResponse, error)
	Update(ctx context.Context, req dto.UpdateHomestayRequest, homestayID string) (dto.HomestayResponse, error)
	Delete(ctx context.Context, homestayID string) error
}

type serviceImpl struct {
	repo        repository.Homestay
	bookingRepo bookingRepo.Booking
	s3          s3.S3
	clock       timezone.Clock
	otel        otel.Otel
}

func New(repo repository.Homestay, bookingRepo bookingRepo.Booking, s3 s3.S3, clock timezone.Clock, otel otel.Otel) Homestay {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		s3:          s3,
		clock:       clock,
		otel:        otel,
	}
}

func byKey(homestayID string) gDto.FilterGroup {
	return shared.FilterByField(model.FieldHomestayID, homestayID, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateHomestayRequest) (res dto.HomestayResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".homestay.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelHomestayIDAttribute, req.HomestayID)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, byKey(req.HomestayID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if homestay exists")

		return res, fmt.Errorf("failed to check if homestay exists: %w", err)
	}

	if exist {
		return res, failure.Conflict(errHomestayExists) // nolint:wrapcheck
	}

	imageURL := constant.Empty
	if req.Image != nil {
		if imageURL, err = s.upload(ctx, req.Image); err != nil {
			return res, err
		}
	}

	homestay := req.ToModel(user, imageURL, s.clock.Now())

	if err = s.repo.Insert(ctx, homestay); err != nil {
		s.removeImage(ctx, imageURL)

		if errors.Is(err, gRepo.ErrDuplicate) {
			return res, failure.Conflict(errHomestayExists) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create homestay")

		return res, fmt.Errorf("failed to create homestay: %w", err)
	}

	res.FromModel(homestay)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, location string) (res dto.GetHomestaysResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".homestay.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.Sanitize(constant.FieldCreatedAt, constant.FieldCreatedAt, model.FieldName, model.FieldLocation, model.FieldPrice)

	filter := gDto.And(gDto.Filter{
		Field:    model.FieldLocation,
		Value:    location,
		Operator: gDto.FilterOperatorLike,
		Table:    model.TableName,
	})

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count homestays")

		return res, fmt.Errorf("failed to count homestays: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get homestays")

		return res, fmt.Errorf("failed to get homestays: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, homestayID string) (res dto.HomestayResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".homestay.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	homestay, err := s.find(ctx, homestayID)
	if err != nil {
		return res, err
	}

	res.FromModel(homestay)

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, homestayID string) (model.Homestay, error) {
	homestay, err := s.repo.Get(ctx, byKey(homestayID))
	if err != nil {
		log.Error().Err(err).Str("homestay_id", homestayID).Msg("failed to get homestay")

		return homestay, fmt.Errorf("failed to get homestay: %w", err)
	}

	if homestay.ID == constant.Empty {
		return homestay, failure.NotFound(errHomestayNotFound) // nolint:wrapcheck
	}

	return homestay, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateHomestayRequest, homestayID string) (res dto.HomestayResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".homestay.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelHomestayIDAttribute, homestayID)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString(errEmptyUpdate) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, homestayID)
	if err != nil {
		return res, err
	}

	updatedFields := shared.TransformFields(req, user)

	imageURL := constant.Empty
	if req.Image != nil {
		if imageURL, err = s.upload(ctx, req.Image); err != nil {
			return res, err
		}

		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, byKey(homestayID)); err != nil {
		log.Error().Err(err).Msg("failed to update homestay")

		s.removeImage(ctx, imageURL)

		return res, fmt.Errorf("failed to update homestay: %w", err)
	}

	if imageURL != constant.Empty {
		s.removeImage(ctx, current.Image)
	}

	updated, err := s.find(ctx, homestayID)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

// Delete refuses while any booking references the homestay; bookings are
// never cascaded.
func (s *serviceImpl) Delete(ctx context.Context, homestayID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".homestay.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelHomestayIDAttribute, homestayID)

	homestay, err := s.find(ctx, homestayID)
	if err != nil {
		return err
	}

	referenced, err := s.bookingRepo.Exist(ctx, shared.FilterByField(bookingModel.FieldHomestayID, homestayID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check homestay bookings")

		return fmt.Errorf("failed to check homestay bookings: %w", err)
	}

	if referenced {
		return failure.ReferentialIntegrity(errHomestayHasBookings) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, byKey(homestayID)); err != nil {
		log.Error().Err(err).Msg("failed to delete homestay")

		return fmt.Errorf("failed to delete homestay: %w", err)
	}

	s.removeImage(ctx, homestay.Image)

	return nil
}

func (s *serviceImpl) upload(ctx context.Context, image *gDto.Upload) (string, error) {
	defer image.Close()

	url, err := s.s3.Upload(ctx, model.EntityName, uuid.NewString()+image.Extension(), image.ContentType, image.File)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload homestay image")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

// removeImage is best effort; a leftover object is logged, not returned.
func (s *serviceImpl) removeImage(ctx context.Context, url string) {
	if url == constant.Empty {
		return
	}

	key := s.s3.ObjectKeyFromURL(url)
	if key == constant.Empty {
		return
	}

	if err := s.s3.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to remove homestay image")
	}
}
