package homestay

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staybook/infras/otel"
	"staybook/internal/domains/homestay/model"
	"staybook/internal/domains/homestay/model/dto"
	"staybook/internal/domains/homestay/service"
	"staybook/shared"
	"staybook/shared/constant"
	gDto "staybook/shared/dto"
	"staybook/shared/failure"
	"staybook/shared/validator"
	"staybook/transport/http/response"
)

const formFieldImage = "image"

type Handler struct {
	service service.Homestay
	otel    otel.Otel
}

func New(service service.Homestay, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/homestays", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetHomestays)
		routerGroup.Post("/", handler.CreateHomestay)
		routerGroup.Get("/{homestay_id}", handler.GetHomestay)
		routerGroup.Patch("/{homestay_id}", handler.UpdateHomestay)
		routerGroup.Delete("/{homestay_id}", handler.DeleteHomestay)
	})
}

// image reads the optional image part. A missing part is not an error.
func image(request *http.Request) (*gDto.Upload, error) {
	_, header, err := request.FormFile(formFieldImage)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}

	if err != nil {
		return nil, failure.BadRequest(err) //nolint:wrapcheck
	}

	upload, err := gDto.NewUpload(header)
	if err != nil {
		return nil, failure.BadRequest(err) //nolint:wrapcheck
	}

	return upload, nil
}

func price(value string) (*int, error) {
	if value == constant.Empty {
		return nil, nil
	}

	parsed, err := shared.ConvertStringToInt(value)
	if err != nil {
		return nil, failure.BadRequestFromString("price must be a whole number") //nolint:wrapcheck
	}

	return &parsed, nil
}

// CreateHomestay handles the creation of a new homestay.
// @Summary Create a new homestay
// @Description Create a homestay listing. The image is optional.
// @Tags Homestay
// @Accept multipart/form-data
// @Produce json
// @Param homestay_id formData string true "Homestay key"
// @Param name formData string true "Name"
// @Param owner formData string true "Owner name"
// @Param owner_mob formData string true "Owner mobile number"
// @Param location formData string true "Location"
// @Param price formData integer true "Nightly rate"
// @Param image formData file false "Image (png, jpg, jpeg, webp; max 2MB)"
// @Success 201 {object} response.Data[dto.HomestayResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/homestays [post]
// @Security BearerAuth
func (handler *Handler) CreateHomestay(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHomestay")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.CreateHomestayRequest{
		HomestayID: request.FormValue(model.FieldHomestayID),
		Name:       request.FormValue(model.FieldName),
		Owner:      request.FormValue(model.FieldOwner),
		OwnerMob:   request.FormValue(model.FieldOwnerMob),
		Location:   request.FormValue(model.FieldLocation),
	}

	nightly, err := price(request.FormValue(model.FieldPrice))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if nightly != nil {
		req.Price = *nightly
	}

	if req.Image, err = image(request); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err = validator.ValidateStruct(&req); err != nil {
		req.Image.Close()
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create homestay")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Homestay created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetHomestays lists homestays.
// @Summary Get all homestays
// @Description Paginated homestay list, newest first, optionally filtered by location.
// @Tags Homestay
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param location query string false "Case-insensitive location substring"
// @Success 200 {object} response.Data[dto.GetHomestaysResponse]
// @Failure 500 {object} response.Error
// @Router /v1/homestays [get]
func (handler *Handler) GetHomestays(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHomestays")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetAll(ctx, queryParams, r.URL.Query().Get(constant.RequestParamLocation))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get homestays")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetHomestay returns one homestay.
// @Summary Get a homestay
// @Tags Homestay
// @Produce json
// @Param homestay_id path string true "Homestay key"
// @Success 200 {object} response.Data[dto.HomestayResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/homestays/{homestay_id} [get]
func (handler *Handler) GetHomestay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHomestay")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamHomestayID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateHomestay partially updates a homestay.
// @Summary Update a homestay
// @Description Only the fields sent are changed. The homestay key cannot change.
// @Tags Homestay
// @Accept multipart/form-data
// @Produce json
// @Param homestay_id path string true "Homestay key"
// @Param name formData string false "Name"
// @Param owner formData string false "Owner name"
// @Param owner_mob formData string false "Owner mobile number"
// @Param location formData string false "Location"
// @Param price formData integer false "Nightly rate"
// @Param image formData file false "Replacement image"
// @Success 200 {object} response.Data[dto.HomestayResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/homestays/{homestay_id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateHomestay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateHomestay")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.UpdateHomestayRequest{
		Name:     r.FormValue(model.FieldName),
		Owner:    r.FormValue(model.FieldOwner),
		OwnerMob: r.FormValue(model.FieldOwnerMob),
		Location: r.FormValue(model.FieldLocation),
	}

	var err error

	if req.Price, err = price(r.FormValue(model.FieldPrice)); err != nil {
		response.WithError(w, err)

		return
	}

	if req.Image, err = image(r); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	if err = validator.ValidateStruct(&req); err != nil {
		req.Image.Close()
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamHomestayID))
	if err != nil {
		req.Image.Close()
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update homestay")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteHomestay removes a homestay without bookings.
// @Summary Delete a homestay
// @Tags Homestay
// @Produce json
// @Param homestay_id path string true "Homestay key"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Homestay has bookings"
// @Failure 500 {object} response.Error
// @Router /v1/homestays/{homestay_id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteHomestay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteHomestay")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamHomestayID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete homestay")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Homestay deleted successfully")
}
