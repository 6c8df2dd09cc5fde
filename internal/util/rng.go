package util

import (
	"math/rand"
	"time"
)

// New returns a deterministic generator. Seed 0 is mapped to 1 so a zero
// flag value still gives a repeatable run.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// Stream derives the seed for job i on worker w of a batch started from base.
func Stream(base int64, worker, i int) int64 {
	return base + int64(worker)*7919 + int64(i)
}

// ClockSeed is for interactive rooms, where repeatability does not matter.
func ClockSeed() int64 {
	return time.Now().UnixNano()
}
