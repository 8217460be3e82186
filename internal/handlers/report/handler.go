package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staybook/infras/otel"
	"staybook/internal/domains/report/service"
	"staybook/shared/constant"
	"staybook/transport/http/response"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/dashboard", handler.Dashboard)
		r.Get("/dashboard/monthly", handler.Monthly)
		r.Get("/homestays/{homestay_id}", handler.HomestayDetails)
	})

	r.Get("/owner/dashboard", handler.OwnerDashboard)
}

// Dashboard summarises revenue and recent bookings
// @Summary Admin dashboard
// @Description Totals across all homestays plus the five most recent bookings.
// @Tags Report
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/dashboard [get]
// @Security BearerAuth
func (handler *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Dashboard")
	defer scope.End()

	res, err := handler.service.AdminDashboard(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Monthly returns revenue and booking counts per month
// @Summary Monthly statistics
// @Tags Report
// @Produce json
// @Param year query int false "Calendar year, defaults to the current year"
// @Success 200 {object} response.Data[dto.MonthlyResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/dashboard/monthly [get]
// @Security BearerAuth
func (handler *Handler) Monthly(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Monthly")
	defer scope.End()

	res, err := handler.service.Monthly(ctx, r.URL.Query().Get(constant.RequestParamYear))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// HomestayDetails returns one homestay with its bookings and totals
// @Summary Homestay details
// @Tags Report
// @Produce json
// @Param homestay_id path string true "Homestay key"
// @Success 200 {object} response.Data[dto.HomestayDetailsResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/homestays/{homestay_id} [get]
// @Security BearerAuth
func (handler *Handler) HomestayDetails(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HomestayDetails")
	defer scope.End()

	res, err := handler.service.HomestayDetails(ctx, chi.URLParam(r, constant.RequestParamHomestayID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get homestay details")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// OwnerDashboard returns the signed in owner's homestay statistics
// @Summary Owner dashboard
// @Tags Owner
// @Produce json
// @Param year query int false "Calendar year for the monthly breakdown"
// @Success 200 {object} response.Data[dto.OwnerDashboardResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/owner/dashboard [get]
// @Security BearerAuth
func (handler *Handler) OwnerDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OwnerDashboard")
	defer scope.End()

	res, err := handler.service.OwnerDashboard(ctx, r.URL.Query().Get(constant.RequestParamYear))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build owner dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
