package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then UTC when tzdata is missing.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Clock returns the current time in the shop's timezone.
type Clock func() time.Time

func NewClock(tz string) Clock {
	loc := Location(tz)
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// Fixed is a Clock frozen at t, used by tests.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
