package adapter

import "time"

// Clock is the time source ledger events are stamped with
//
//go:generate mockgen -source=clock.go -destination=../mocks/clock.go -package=mocks -mock_names=Clock=MockClock
type Clock interface {
	// Now returns the current time in UTC at the precision PostgreSQL stores
	Now() time.Time
}

type RealClock struct{}

// NewClock creates a wall clock
func NewClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
