package application

import "time"

// Clock supplies the current time to the services. Booking and cancellation
// rules are evaluated against an injected clock rather than time.Now so the
// 24-hour window and past-slot checks can be tested at fixed instants.
type Clock func() time.Time
