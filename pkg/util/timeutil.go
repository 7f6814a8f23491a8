package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Clock returns the current time; repositories accept one so tests can
// pin timestamps.
type Clock func() time.Time
