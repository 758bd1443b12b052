package ttlmemo

import "time"

// Clock is the time source sampled once per call.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
