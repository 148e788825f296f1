package level

import "time"

// Clock supplies the current time for levels created without an explicit timestamp.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function into a Clock.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// leveledUpAt returns at, or clock's current time when at is zero.
// A nil clock falls back to SystemClock.
func leveledUpAt(clock Clock, at time.Time) time.Time {
	if !at.IsZero() {
		return at
	}
	if clock == nil {
		clock = SystemClock()
	}
	return clock.Now()
}
