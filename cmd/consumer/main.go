package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"staybook/config"
	"staybook/di"
	"staybook/internal/domains/booking/listener"
	"staybook/shared/logger"
)

// consumer follows the booking topic and writes every created booking to the
// log. It runs next to the API and shares its configuration.
func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	broker := di.InitializeBroker()

	log.Info().
		Str("broker", cfg.Event.Broker).
		Str("topic", cfg.Event.BookingTopic).
		Str("group", cfg.Event.ConsumerGroup).
		Msg("Starting booking event consumer")

	err := broker.Subscribe(ctx, cfg.Event.ConsumerGroup, cfg.Event.BookingTopic, listener.Audit())
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Booking event consumer stopped")
	}

	log.Info().Msg("Booking event consumer stopped")
}
