package listener

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"staybook/internal/domains/booking/model/dto"
	"staybook/shared/constant"
	"staybook/shared/event"
)

// Audit returns the handler the consumer binary subscribes to the booking
// topic. Each event is decoded and written to the log.
func Audit() event.Handler {
	return func(key string, body []byte) error {
		created := dto.BookingCreated{}

		if err := json.Unmarshal(body, &created); err != nil {
			return fmt.Errorf("failed to decode booking event %q: %w", key, err)
		}

		if created.ID == constant.Empty {
			return fmt.Errorf("booking event %q has no id", key)
		}

		log.Info().
			Str("booking_id", created.ID).
			Str("homestay_id", created.HomestayID).
			Str("customer", created.CustomerName).
			Time("check_in", created.CheckIn).
			Time("check_out", created.CheckOut).
			Float64("total_price", created.TotalPrice).
			Msg("booking created")

		return nil
	}
}
