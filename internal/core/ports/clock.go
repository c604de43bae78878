package ports

import "time"

// Clock is the source of the ledger time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the time from the OS.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
