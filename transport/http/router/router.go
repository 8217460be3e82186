package router

import (
	"github.com/go-chi/chi/v5"

	"staybook/internal/handlers/auth"
	"staybook/internal/handlers/booking"
	"staybook/internal/handlers/homestay"
	"staybook/internal/handlers/pricing"
	"staybook/internal/handlers/report"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Homestay homestay.Handler
	Booking  booking.Handler
	Pricing  pricing.Handler
	Report   report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Homestay.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
