package workout

import "time"

// Clock returns the current time. Injected so tests can pin timestamps.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now().UTC()
}
