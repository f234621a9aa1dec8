// internal/quota/clock.go
package quota

import "time"

// Clock abstracts wall-clock time so daily bucketing and monthly rollover
// are testable without waiting on real time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}
