//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"staybook/config"
	"staybook/infras/jwt"
	"staybook/infras/otel"
	"staybook/infras/postgres"
	"staybook/infras/redis"
	"staybook/infras/s3"
	"staybook/permissions"
	"staybook/shared/cache"
	"staybook/shared/event"
	"staybook/shared/timezone"
	"staybook/transport/http"
	"staybook/transport/http/middleware"
	"staybook/transport/http/router"

	adminRepository "staybook/internal/domains/admin/repository"
	authService "staybook/internal/domains/auth/service"
	bookingRepository "staybook/internal/domains/booking/repository"
	bookingService "staybook/internal/domains/booking/service"
	homestayRepository "staybook/internal/domains/homestay/repository"
	homestayService "staybook/internal/domains/homestay/service"
	pricingService "staybook/internal/domains/pricing/service"
	reportService "staybook/internal/domains/report/service"

	authHandler "staybook/internal/handlers/auth"
	bookingHandler "staybook/internal/handlers/booking"
	homestayHandler "staybook/internal/handlers/homestay"
	pricingHandler "staybook/internal/handlers/pricing"
	reportHandler "staybook/internal/handlers/report"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.New,
	timezone.NewClock,
)

var homestayDomain = wire.NewSet(
	homestayRepository.New,
	homestayService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var authDomain = wire.NewSet(
	adminRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	homestayDomain,
	bookingDomain,
	authDomain,
	pricingService.New,
	reportService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	homestayHandler.New,
	bookingHandler.New,
	pricingHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}

func InitializeBroker() event.Broker {
	wire.Build(
		config.Get,
		otel.New,
		event.New,
	)

	return nil
}
