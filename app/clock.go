package app

import (
	"time"
)

// SystemClock maps wall time to discrete units of one second.
type SystemClock struct{}

func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}
