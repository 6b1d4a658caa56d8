package clock

import "time"

// Clock supplies the current time. Services take a Clock instead of calling
// time.Now directly so that schedule and due-date computations are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the wall clock (UTC).
func System() Clock { return systemClock{} }

// Fixed is a Clock pinned to a single instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time { return f.Instant }

// FixedAt builds a Fixed clock at midnight UTC of the given date.
func FixedAt(year int, month time.Month, day int) Fixed {
	return Fixed{Instant: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}
