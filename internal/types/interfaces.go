package types

import "time"

// Clock abstracts time for testability. The risk scorer's wildfire seasonal
// bonus and every "generated at" timestamp read the clock instead of the wall
// clock directly, so tests can pin the current date.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the real system time (always UTC).
type RealClock struct{}

// Now returns the current UTC time.
func (RealClock) Now() time.Time { return time.Now().UTC() }

// Rand abstracts the random source used by synthetic data generation (mock
// weather fallback, multi-year projections) so tests can make it
// deterministic. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}
