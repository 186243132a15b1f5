package bootstrap

import (
	"time"

	"restaurant-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewBookingLocation,
	),
)

// NewBookingLocation is the zone in which "today" is evaluated for bookings.
func NewBookingLocation(cfg config.Config) *time.Location {
	return config.LoadLocation(cfg.Booking.TimeZone)
}
