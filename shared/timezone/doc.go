// Package timezone pins every date the service reasons about to one
// application location, loaded from APP_TIMEZONE when the package is first
// imported. An unknown or empty name falls back to UTC.
//
// Stay dates arrive either as calendar dates or RFC3339 timestamps:
//
//	checkIn, err := timezone.ParseDate("2024-03-10")                // midnight, app location
//	checkOut, err := timezone.ParseDate("2024-03-12T11:00:00+05:30") // converted to app location
//
// Code whose outcome depends on "now" (booking status, current month
// revenue) takes a Clock rather than calling Now directly, so tests can
// freeze it with FixedClock.
package timezone
